package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quizcoin/cmd"
	"quizcoin/database"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; production uses real env vars.
	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Service error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: %s migrate [up|down <steps>|status]", os.Args[0])
	}

	switch os.Args[2] {
	case "up":
		return database.MigrateUp()
	case "down":
		if len(os.Args) < 4 {
			return fmt.Errorf("usage: %s migrate down <steps>", os.Args[0])
		}
		return database.MigrateDown(os.Args[3])
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
