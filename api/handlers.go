package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"quizcoin/application"
	"quizcoin/domain"
	"quizcoin/domain/entities"
	"quizcoin/domain/interfaces"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// Handler wraps the application use cases and exposes them over HTTP.
type Handler struct {
	ledger *application.LedgerHandler
	quiz   *application.QuizHandler
	shop   *application.ShopHandler
}

// NewHandler creates a new HTTP handler
func NewHandler(ledger *application.LedgerHandler, quiz *application.QuizHandler, shop *application.ShopHandler) *Handler {
	return &Handler{
		ledger: ledger,
		quiz:   quiz,
		shop:   shop,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		writeError(w, http.StatusServiceUnavailable, "temporary conflict, please retry")
	case errors.Is(err, domain.ErrPersistence):
		log.WithError(err).Error("Storage unavailable")
		writeError(w, http.StatusServiceUnavailable, "storage unavailable, please retry")
	default:
		log.WithError(err).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 500 {
		return fallback
	}
	return limit
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type balanceResponse struct {
	UserID     int64 `json:"user_id"`
	Coins      int64 `json:"coins"`
	BonusCoins int64 `json:"bonus_coins"`
	Total      int64 `json:"total"`
}

func toBalanceResponse(b *entities.UserBalance) balanceResponse {
	return balanceResponse{
		UserID:     b.UserID,
		Coins:      b.Coins,
		BonusCoins: b.BonusCoins,
		Total:      b.Total(),
	}
}

// InitializeAccount handles POST /users/{userID}/account
func (h *Handler) InitializeAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.ledger.InitializeAccount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBalanceResponse(balance))
}

// GetBalance handles GET /users/{userID}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceResponse(balance))
}

// HasSufficientFunds handles GET /users/{userID}/funds-check?amount=N
func (h *Handler) HasSufficientFunds(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be a positive integer")
		return
	}

	ok, err := h.ledger.HasSufficientFunds(r.Context(), userID, amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sufficient": ok})
}

type creditRequest struct {
	Coins         int64                    `json:"coins"`
	BonusCoins    int64                    `json:"bonus_coins"`
	Type          entities.TransactionType `json:"type"`
	ReferenceType *entities.ReferenceType  `json:"reference_type,omitempty"`
	ReferenceID   *int64                   `json:"reference_id,omitempty"`
	Description   string                   `json:"description"`
	Metadata      map[string]any           `json:"metadata,omitempty"`
}

// Credit handles POST /users/{userID}/credit
func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req creditRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ledger.Credit(r.Context(), interfaces.CreditParams{
		UserID:        userID,
		Coins:         req.Coins,
		BonusCoins:    req.BonusCoins,
		Type:          req.Type,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"coins_added":       result.CoinsAdded,
		"bonus_coins_added": result.BonusCoinsAdded,
		"balance":           toBalanceResponse(result.NewBalance),
	})
}

type debitRequest struct {
	Amount        int64                    `json:"amount"`
	Type          entities.TransactionType `json:"type"`
	ReferenceType *entities.ReferenceType  `json:"reference_type,omitempty"`
	ReferenceID   *int64                   `json:"reference_id,omitempty"`
	Description   string                   `json:"description"`
	Metadata      map[string]any           `json:"metadata,omitempty"`
}

// Debit handles POST /users/{userID}/debit
func (h *Handler) Debit(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req debitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.ledger.Debit(r.Context(), interfaces.DebitParams{
		UserID:        userID,
		Amount:        req.Amount,
		Type:          req.Type,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"amount_deducted":  result.AmountDeducted,
		"from_coins":       result.FromCoins,
		"from_bonus_coins": result.FromBonusCoins,
		"balance":          toBalanceResponse(result.NewBalance),
	})
}

type setBalanceRequest struct {
	Coins      int64  `json:"coins"`
	BonusCoins int64  `json:"bonus_coins"`
	AdminID    int64  `json:"admin_id"`
	Reason     string `json:"reason"`
}

// SetBalance handles PUT /users/{userID}/balance
func (h *Handler) SetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req setBalanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AdminID <= 0 {
		writeError(w, http.StatusBadRequest, "admin_id is required")
		return
	}

	balance, err := h.ledger.SetBalance(r.Context(), userID, req.Coins, req.BonusCoins, req.AdminID, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceResponse(balance))
}

// GetTransactions handles GET /users/{userID}/transactions
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.ledger.GetUserTransactions(r.Context(), userID, parseLimit(r, 50))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

type referralRequest struct {
	InviterID int64 `json:"inviter_id"`
	InviteeID int64 `json:"invitee_id"`
}

// GrantReferralBonus handles POST /referrals
func (h *Handler) GrantReferralBonus(w http.ResponseWriter, r *http.Request) {
	var req referralRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InviterID <= 0 || req.InviteeID <= 0 {
		writeError(w, http.StatusBadRequest, "inviter_id and invitee_id are required")
		return
	}

	if err := h.ledger.GrantReferralBonus(r.Context(), req.InviterID, req.InviteeID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

type correctAnswerRequest struct {
	QuestionID  int64  `json:"question_id"`
	SessionID   string `json:"session_id"`
	RewardCoins int64  `json:"reward_coins"`
}

// CorrectAnswer handles POST /users/{userID}/correct-answer
func (h *Handler) CorrectAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req correctAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quiz.HandleCorrectAnswer(r.Context(), application.CorrectAnswerParams{
		UserID:      userID,
		QuestionID:  req.QuestionID,
		SessionID:   req.SessionID,
		RewardCoins: req.RewardCoins,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetJackpots handles GET /jackpots
func (h *Handler) GetJackpots(w http.ResponseWriter, r *http.Request) {
	pools, err := h.quiz.GetPools(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jackpots": pools})
}

// GetRecentWinners handles GET /jackpots/winners
func (h *Handler) GetRecentWinners(w http.ResponseWriter, r *http.Request) {
	winners, err := h.quiz.GetRecentWinners(r.Context(), parseLimit(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"winners": winners})
}

// GetJackpotHistory handles GET /jackpots/{jackpotID}/history
func (h *Handler) GetJackpotHistory(w http.ResponseWriter, r *http.Request) {
	jackpotID, err := parseIDParam(r, "jackpotID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.quiz.GetPoolHistory(r.Context(), jackpotID, parseLimit(r, 50))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// GetActiveItems handles GET /shop/items
func (h *Handler) GetActiveItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shop.GetActiveItems(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetItem handles GET /shop/items/{itemID}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.shop.GetItem(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type purchaseRequest struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

// Purchase handles POST /users/{userID}/purchases
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req purchaseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.shop.Purchase(r.Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"item":             result.Item,
		"quantity":         result.Quantity,
		"total_cost":       result.TotalCost,
		"from_coins":       result.FromCoins,
		"from_bonus_coins": result.FromBonusCoins,
		"balance":          toBalanceResponse(result.RemainingBalance),
	})
}

// UsePowerup handles POST /users/{userID}/powerups/{itemID}/use
func (h *Handler) UsePowerup(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	itemID, err := parseIDParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.shop.UsePowerup(r.Context(), userID, itemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetInventory handles GET /users/{userID}/inventory
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.shop.GetUserInventory(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inventory": items})
}

// GetPurchaseHistory handles GET /users/{userID}/purchases
func (h *Handler) GetPurchaseHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	purchases, err := h.shop.GetPurchaseHistory(r.Context(), userID, parseLimit(r, 50))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"purchases": purchases})
}

// GetTransactionStats handles GET /stats/transactions with optional
// user_id, type, from and to (RFC 3339) query filters.
func (h *Handler) GetTransactionStats(w http.ResponseWriter, r *http.Request) {
	var filter entities.TransactionFilter
	q := r.URL.Query()

	if raw := q.Get("user_id"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			writeError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		filter.UserID = &userID
	}
	if raw := q.Get("type"); raw != "" {
		txType := entities.TransactionType(raw)
		if !txType.Valid() {
			writeError(w, http.StatusBadRequest, "invalid type")
			return
		}
		filter.Type = &txType
	}
	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filter.To = &to
	}

	stats, err := h.ledger.GetTransactionStats(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GetTopEarners handles GET /stats/top-earners?limit=N&include_bonus=true
func (h *Handler) GetTopEarners(w http.ResponseWriter, r *http.Request) {
	includeBonus := r.URL.Query().Get("include_bonus") == "true"

	earners, err := h.ledger.GetTopEarners(r.Context(), parseLimit(r, 10), includeBonus)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"top_earners": earners})
}
