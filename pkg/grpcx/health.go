package grpcx

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Nomi dei servizi esposti dal health check, uno per componente.
const (
	ServiceTCP = "cardarena.tcp"
	ServiceUDP = "cardarena.udp"
)

// Health espone grpc.health.v1.Health e la reflection.
// Lo stato complessivo ("") e' SERVING solo se tutti i componenti lo sono.
type Health struct {
	logger *slog.Logger
	server *grpc.Server
	health *health.Server

	mu         sync.Mutex
	components map[string]bool
}

// NewHealth registra i componenti come NOT_SERVING.
func NewHealth(logger *slog.Logger, components ...string) *Health {
	h := &Health{
		logger:     logger,
		server:     grpc.NewServer(),
		health:     health.NewServer(),
		components: make(map[string]bool, len(components)),
	}
	healthpb.RegisterHealthServer(h.server, h.health)
	reflection.Register(h.server)

	for _, name := range components {
		h.components[name] = false
		h.health.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// SetServing aggiorna un componente e ricalcola lo stato complessivo.
func (h *Health) SetServing(component string, serving bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.components[component] = serving
	h.health.SetServingStatus(component, toStatus(serving))

	all := true
	for _, ok := range h.components {
		all = all && ok
	}
	h.health.SetServingStatus("", toStatus(all))
	h.logger.Debug("health aggiornato", "component", component, "serving", serving, "overall", all)
}

// Serve risponde fino alla cancellazione del contesto.
func (h *Health) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		h.health.Shutdown()
		h.server.GracefulStop()
	})
	defer stop()

	h.logger.Info("grpc health in ascolto", "addr", ln.Addr().String())
	if err := h.server.Serve(ln); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func toStatus(serving bool) healthpb.HealthCheckResponse_ServingStatus {
	if serving {
		return healthpb.HealthCheckResponse_SERVING
	}
	return healthpb.HealthCheckResponse_NOT_SERVING
}
