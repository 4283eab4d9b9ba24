package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/metinatakli/cinex-booking/internal/app"
)

func main() {
	// a missing .env is fine, flags and the process environment still apply
	_ = godotenv.Load()

	err := app.Run(os.Args[1:])
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
