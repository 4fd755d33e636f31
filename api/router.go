package api

import (
	"net/http"

	"quizcoin/application"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP router with all API endpoints registered.
func NewRouter(ledger *application.LedgerHandler, quiz *application.QuizHandler, shop *application.ShopHandler) http.Handler {
	h := NewHandler(ledger, quiz, shop)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users/{userID}", func(r chi.Router) {
		r.Post("/account", h.InitializeAccount)
		r.Get("/balance", h.GetBalance)
		r.Get("/funds-check", h.HasSufficientFunds)
		r.Get("/transactions", h.GetTransactions)
		r.Get("/inventory", h.GetInventory)
		r.Get("/purchases", h.GetPurchaseHistory)
		r.Post("/credit", h.Credit)
		r.Post("/debit", h.Debit)
		r.Put("/balance", h.SetBalance)
		r.Post("/correct-answer", h.CorrectAnswer)
		r.Post("/purchases", h.Purchase)
		r.Post("/powerups/{itemID}/use", h.UsePowerup)
	})

	r.Post("/referrals", h.GrantReferralBonus)

	r.Get("/jackpots", h.GetJackpots)
	r.Get("/jackpots/winners", h.GetRecentWinners)
	r.Get("/jackpots/{jackpotID}/history", h.GetJackpotHistory)

	r.Get("/shop/items", h.GetActiveItems)
	r.Get("/shop/items/{itemID}", h.GetItem)

	r.Get("/stats/transactions", h.GetTransactionStats)
	r.Get("/stats/top-earners", h.GetTopEarners)

	return r
}
