package main

import (
	"context"
	"log/slog"
	"os"

	"CardArena/service/game/internal/config"
	"CardArena/service/game/internal/db"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 1) Carica env e costruisce la DSN.
	config.LoadDotenv(logger)
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = config.BuildDSN()
	}

	// 2) Legge i file SQL da CLI.
	files := os.Args[1:]
	if len(files) == 0 {
		logger.Error("nessun file sql passato", "usage", "go run ./service/game/cmd/migrate <file.sql> [file2.sql]")
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.Open(ctx, logger, dsn, db.Options{MaxOpenConns: 1})
	if err != nil {
		logger.Error("db connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// 3) Ogni file gira nella propria transazione.
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			logger.Error("lettura file fallita", "file", file, "error", err)
			os.Exit(1)
		}
		if err := db.ExecFile(ctx, database, string(content)); err != nil {
			logger.Error("esecuzione sql fallita", "file", file, "error", err)
			os.Exit(1)
		}
		logger.Info("sql eseguito", "file", file)
	}
}
