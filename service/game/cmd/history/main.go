package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"CardArena/service/game/internal/config"
	"CardArena/service/game/internal/db"
	"CardArena/service/game/internal/history"
)

func main() {
	limit := flag.Int("limit", 10, "numero di duelli da mostrare")
	duelID := flag.String("id", "", "mostra un solo duello")
	follow := flag.Bool("follow", false, "segue gli eventi live su Redis invece di leggere Postgres")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	config.LoadDotenv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config non valida", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *follow {
		if err := followEvents(ctx, cfg); err != nil {
			logger.Error("sottoscrizione eventi fallita", "error", err)
			os.Exit(1)
		}
		return
	}

	database, err := db.Open(ctx, logger, cfg.DBDSN, db.Options{PingTimeout: cfg.DBPingTimeout, MaxOpenConns: 1})
	if err != nil {
		logger.Error("db connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	repo := history.NewRepo(database)

	// Un solo duello per id.
	if *duelID != "" {
		id, err := uuid.Parse(*duelID)
		if err != nil {
			logger.Error("id non valido", "id", *duelID, "error", err)
			os.Exit(1)
		}
		ev, err := repo.GetDuel(ctx, id)
		if errors.Is(err, history.ErrDuelNotFound) {
			logger.Error("duello non trovato", "id", id)
			os.Exit(1)
		}
		if err != nil {
			logger.Error("errore lettura duello", "error", err)
			os.Exit(1)
		}
		printDuel(ev)
		return
	}

	duels, err := repo.RecentDuels(ctx, *limit)
	if err != nil {
		logger.Error("errore lettura duelli", "error", err)
		os.Exit(1)
	}
	for _, ev := range duels {
		printDuel(ev)
	}
}

func printDuel(ev history.DuelEvent) {
	fmt.Printf("duel id=%s at=%s a=%s b=%s outcome=%s margin_a=%d margin_b=%d\n",
		ev.ID, ev.At.Format("2006-01-02 15:04:05"), ev.SessionA, ev.SessionB, ev.Outcome, ev.MarginA, ev.MarginB)
}

// followEvents stampa gli eventi pubblicati dal server finche' ctx e' attivo.
func followEvents(ctx context.Context, cfg config.Config) error {
	if cfg.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer client.Close()

	sub := history.NewRedisPublisher(client, cfg.EventsChannel).Subscribe(ctx)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	for {
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fmt.Println(msg.Payload)
	}
}
