package session

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/duel"
	"CardArena/service/game/internal/protocol"
)

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(logger, cards.NewPool(cards.StarterDeck()), cards.NewHands(), duel.NewQueue(), Options{})
}

// pipeClient collega un lato di net.Pipe a srv.Handle.
func pipeClient(t *testing.T, srv *Server, ctx context.Context) (*testClient, <-chan struct{}) {
	t.Helper()
	server, client := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Handle(ctx, server)
	}()
	t.Cleanup(func() { _ = client.Close() })
	return &testClient{t: t, conn: client, r: bufio.NewReader(client)}, done
}

// Caso: chi completa la coppia sparisce prima della conferma, l'avversario
// riceve comunque l'esito.
func TestDuelResolvedWhenCompletingSessionVanishes(t *testing.T) {
	srv := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := pipeClient(t, srv, ctx)
	b, bDone := pipeClient(t, srv, ctx)

	a.do("pegar 1")
	a.do("pegar 2")
	b.do("pegar 3")
	b.do("pegar 4")
	require.Equal(t, []string{protocol.MsgQueued}, a.do("duelo"))

	_, err := io.WriteString(b.conn, "duelo\n")
	require.NoError(t, err)
	require.NoError(t, b.conn.Close())

	require.Equal(t, []string{"Resultado do duelo: Você perdeu! (sua margem 1, margem do oponente 3)"}, a.read())
	require.Equal(t, 0, srv.queue.Len())

	select {
	case <-bDone:
	case <-time.After(3 * time.Second):
		t.Fatalf("vanished session was not torn down")
	}
}

// Caso: l'esito usa le mani del momento in cui la coppia si forma.
func TestDuelUsesHandsAtPairing(t *testing.T) {
	srv := newTestServer()
	ctx := context.Background()

	aConn, aPeer := net.Pipe()
	defer aConn.Close()
	defer aPeer.Close()
	sessA := newSession(aConn, time.Second)
	bServer, bClient := net.Pipe()
	defer bClient.Close()
	sessB := newSession(bServer, time.Second)

	srv.hands.Open(sessA.ID)
	srv.hands.Open(sessB.ID)
	require.NoError(t, srv.hands.Append(sessA.ID, cards.Card{ID: 1, Name: "Dragão", Attack: 8, Defense: 5}, cards.Card{ID: 2, Name: "Mago", Attack: 6, Defense: 4}))
	require.NoError(t, srv.hands.Append(sessB.ID, cards.Card{ID: 3, Name: "Guerreiro", Attack: 7, Defense: 6}, cards.Card{ID: 4, Name: "Elfo", Attack: 5, Defense: 7}))

	require.Equal(t, []string{protocol.MsgQueued}, srv.joinDuel(ctx, sessA).lines)
	r := srv.joinDuel(ctx, sessB)
	require.NotNil(t, r.after)

	// Scarto di A dopo la formazione della coppia: non deve contare.
	_, err := srv.hands.RemoveAt(sessA.ID, 0)
	require.NoError(t, err)

	frames := make(chan []string, 1)
	go func() {
		frame, _ := protocol.ReadFrame(bufio.NewReader(bClient))
		frames <- frame
	}()
	r.after()

	select {
	case frame := <-frames:
		require.Equal(t, []string{"Resultado do duelo: Você venceu! (sua margem 3, margem do oponente 1)"}, frame)
	case <-time.After(3 * time.Second):
		t.Fatalf("no outcome delivered")
	}
}

// Caso: una connessione arrivata a contesto gia' cancellato viene chiusa
// subito e Handle ritorna.
func TestHandleReturnsOnCancelledContext(t *testing.T) {
	srv := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, done := pipeClient(t, srv, ctx)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Handle did not return after cancellation")
	}
	_, err := c.r.ReadByte()
	require.Error(t, err)
	require.Equal(t, 0, srv.Len())
}
