package grpcx

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func startHealth(t *testing.T) (*Health, healthpb.HealthClient) {
	t.Helper()
	ln := bufconn.Listen(1 << 20)
	h := NewHealth(slog.New(slog.NewTextHandler(io.Discard, nil)), ServiceTCP, ServiceUDP)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx, ln) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ln.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("serve: %v", err)
		}
	})
	return h, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.GetStatus()
}

// Caso: lo stato complessivo diventa SERVING solo con tutti i componenti attivi.
func TestHealthOverallFollowsComponents(t *testing.T) {
	h, client := startHealth(t)

	if got := check(t, client, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected NOT_SERVING at start, got %v", got)
	}

	h.SetServing(ServiceTCP, true)
	if got := check(t, client, ServiceTCP); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected tcp SERVING, got %v", got)
	}
	if got := check(t, client, ""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected overall NOT_SERVING with udp down, got %v", got)
	}

	h.SetServing(ServiceUDP, true)
	if got := check(t, client, ""); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected overall SERVING, got %v", got)
	}

	h.SetServing(ServiceUDP, false)
	if got := check(t, client, ServiceUDP); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("expected udp NOT_SERVING, got %v", got)
	}
}
