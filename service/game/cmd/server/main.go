package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"CardArena/pkg/grpcx"
	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/config"
	"CardArena/service/game/internal/db"
	"CardArena/service/game/internal/duel"
	"CardArena/service/game/internal/history"
	"CardArena/service/game/internal/probe"
	"CardArena/service/game/internal/session"
)

func main() {
	// Bootstrap di logging e config.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	config.LoadDotenv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config non valida", "error", err)
		os.Exit(1)
	}
	logger = newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storico opzionale: senza DSN ne' Redis il gioco gira solo in memoria.
	recorder, closeSinks := openRecorder(ctx, logger, cfg)
	defer closeSinks()

	// Pool secondo la politica configurata.
	var pool *cards.Pool
	if cfg.PackMode() {
		rng := cards.NewSeededRandom(cfg.PackSeed)
		pool = cards.NewPackPool(cards.RareCards(), cards.CommonCards(rng), cfg.RareProbability, rng)
	} else {
		pool = cards.NewPool(cards.StarterDeck())
	}

	srv := session.NewServer(logger, pool, cards.NewHands(), duel.NewQueue(), session.Options{
		PackMode:     cfg.PackMode(),
		PackSize:     cfg.PackSize,
		WriteTimeout: cfg.WriteTimeout,
		Recorder:     recorder,
	})

	// Bind di tutti i socket prima di servire: un errore qui e' fatale.
	tcpLn, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		logger.Error("tcp listen failed", "addr", cfg.TCPAddr, "error", err)
		os.Exit(1)
	}
	udpConn, err := net.ListenPacket("udp", cfg.UDPAddr)
	if err != nil {
		logger.Error("udp listen failed", "addr", cfg.UDPAddr, "error", err)
		os.Exit(1)
	}
	echo := probe.New(logger, udpConn)

	var health *grpcx.Health
	var grpcLn net.Listener
	if cfg.GRPCAddr != "" {
		grpcLn, err = net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logger.Error("grpc listen failed", "addr", cfg.GRPCAddr, "error", err)
			os.Exit(1)
		}
		health = grpcx.NewHealth(logger, grpcx.ServiceTCP, grpcx.ServiceUDP)
	}

	logger.Info("game server avviato", "pool_mode", cfg.PoolMode, "cards", pool.Len(), "rares", pool.RaresLeft())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		setServing(health, grpcx.ServiceTCP, true)
		defer setServing(health, grpcx.ServiceTCP, false)
		return srv.Serve(gctx, tcpLn)
	})
	g.Go(func() error {
		setServing(health, grpcx.ServiceUDP, true)
		defer setServing(health, grpcx.ServiceUDP, false)
		return echo.Serve(gctx)
	})
	if health != nil {
		g.Go(func() error {
			return health.Serve(gctx, grpcLn)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("server terminato con errore", "error", err)
		os.Exit(1)
	}
	logger.Info("game server fermato")
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func setServing(h *grpcx.Health, component string, serving bool) {
	if h != nil {
		h.SetServing(component, serving)
	}
}

// openRecorder collega Postgres e Redis se configurati. Un sink irraggiungibile
// viene saltato con un warning: lo storico non blocca mai il gioco.
func openRecorder(ctx context.Context, logger *slog.Logger, cfg config.Config) (history.Recorder, func()) {
	var sinks history.Multi
	var database *sql.DB
	var client *redis.Client

	if cfg.DBDSN != "" {
		conn, err := db.Open(ctx, logger, cfg.DBDSN, db.Options{
			PingTimeout:  cfg.DBPingTimeout,
			MaxOpenConns: cfg.DBMaxConns,
		})
		if err != nil {
			logger.Warn("storico postgres disabilitato", "error", err)
		} else {
			database = conn
			sinks = append(sinks, history.NewRepo(conn))
			logger.Info("storico postgres attivo")
		}
	}

	if cfg.RedisAddr != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("eventi redis disabilitati", "addr", cfg.RedisAddr, "error", err)
			_ = client.Close()
			client = nil
		} else {
			sinks = append(sinks, history.NewRedisPublisher(client, cfg.EventsChannel))
			logger.Info("eventi redis attivi", "channel", cfg.EventsChannel)
		}
	}

	closeAll := func() {
		if database != nil {
			_ = database.Close()
		}
		if client != nil {
			_ = client.Close()
		}
	}
	if len(sinks) == 0 {
		return history.Nop{}, closeAll
	}
	return sinks, closeAll
}
