package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Politiche di pesca del pool.
const (
	ModeID   = "id"
	ModePack = "pack"
)

var (
	ErrInvalidMode   = errors.New("POOL_MODE must be id or pack")
	ErrInvalidNumber = errors.New("invalid numeric setting")
	ErrInvalidLevel  = errors.New("invalid LOG_LEVEL")
	ErrInvalidFormat = errors.New("LOG_FORMAT must be text or json")
)

// Config contiene le impostazioni runtime del game server.
type Config struct {
	TCPAddr  string
	UDPAddr  string
	GRPCAddr string

	PoolMode        string
	PackSize        int
	RareProbability float64
	PackSeed        uint64
	WriteTimeout    time.Duration

	DBDSN         string
	DBPingTimeout time.Duration
	DBMaxConns    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EventsChannel string

	LogLevel  slog.Level
	LogFormat string
}

// PackMode indica la politica a pacchetti.
func (c Config) PackMode() bool {
	return c.PoolMode == ModePack
}

// Load legge le variabili d'ambiente con default minimi.
// Numeri o modalita' non validi sono errori di avvio.
func Load() (Config, error) {
	dbDSN := os.Getenv("DB_DSN")
	if dbDSN == "" {
		dbDSN = buildDSN()
	}

	cfg := Config{
		TCPAddr:       getEnv("TCP_ADDR", ":5000"),
		UDPAddr:       getEnv("UDP_ADDR", ":6000"),
		GRPCAddr:      lookupEnv("GRPC_ADDR", ":50055"),
		PoolMode:      strings.ToLower(getEnv("POOL_MODE", ModeID)),
		DBDSN:         dbDSN,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		EventsChannel: getEnv("EVENTS_CHANNEL", "cards:events"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	if cfg.PoolMode != ModeID && cfg.PoolMode != ModePack {
		return Config{}, ErrInvalidMode
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, ErrInvalidFormat
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	var err error
	if cfg.PackSize, err = intEnv("PACK_SIZE", 3); err != nil {
		return Config{}, err
	}
	if cfg.PackSize < 1 || cfg.PackSize > 10 {
		return Config{}, fmt.Errorf("%w: PACK_SIZE must be 1..10", ErrInvalidNumber)
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RareProbability, err = floatEnv("RARE_PROBABILITY", 0.15); err != nil {
		return Config{}, err
	}
	if cfg.RareProbability < 0 || cfg.RareProbability > 1 {
		return Config{}, fmt.Errorf("%w: RARE_PROBABILITY must be 0..1", ErrInvalidNumber)
	}
	if cfg.PackSeed, err = strconv.ParseUint(getEnv("PACK_SEED", "0"), 10, 64); err != nil {
		return Config{}, fmt.Errorf("%w: PACK_SEED: %v", ErrInvalidNumber, err)
	}
	if cfg.WriteTimeout, err = time.ParseDuration(getEnv("WRITE_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("%w: WRITE_TIMEOUT: %v", ErrInvalidNumber, err)
	}
	if cfg.WriteTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: WRITE_TIMEOUT must be positive", ErrInvalidNumber)
	}
	if cfg.DBPingTimeout, err = time.ParseDuration(getEnv("DB_PING_TIMEOUT", "5s")); err != nil {
		return Config{}, fmt.Errorf("%w: DB_PING_TIMEOUT: %v", ErrInvalidNumber, err)
	}
	if cfg.DBMaxConns, err = intEnv("DB_MAX_CONNS", 10); err != nil {
		return Config{}, err
	}
	if cfg.DBMaxConns < 1 {
		return Config{}, fmt.Errorf("%w: DB_MAX_CONNS must be positive", ErrInvalidNumber)
	}

	return cfg, nil
}

// LoadDotenv carica le variabili da .env se presente (solo per dev).
func LoadDotenv(logger *slog.Logger) {
	envPath := os.Getenv("GO_DOTENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Overload(envPath); err != nil {
		// Se manca il file .env, continuiamo con le env già presenti.
		logger.Warn("impossibile caricare .env", "path", envPath, "error", err)
		return
	}
	logger.Info(".env caricato", "path", envPath)
}

// getEnv ritorna il fallback quando la variabile non è presente.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// lookupEnv distingue "non impostata" da "impostata vuota" (vuota disabilita).
func lookupEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidNumber, key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidNumber, key, err)
	}
	return f, nil
}

// BuildDSN compone la DSN Postgres dalle variabili DB_*.
func BuildDSN() string {
	return buildDSN()
}

func buildDSN() string {
	host := os.Getenv("DB_HOST")
	port := getEnv("DB_PORT", "5432")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := getEnv("DB_SSLMODE", "require")
	if host == "" || user == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslmode)
}
