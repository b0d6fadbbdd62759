package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/duel"
)

// Caso: verbo case-insensitive, spazi e byte non validi rimossi.
func TestParseNormalizesLine(t *testing.T) {
	cmd := Parse("  PeGaR \xff 7 \r\n")
	if cmd.Verb != VerbDraw {
		t.Fatalf("expected verb %q, got %q", VerbDraw, cmd.Verb)
	}
	n, err := cmd.IntArg()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}
}

// Caso: riga vuota.
func TestParseEmptyLine(t *testing.T) {
	cmd := Parse("   ")
	if cmd.Verb != "" || len(cmd.Args) != 0 {
		t.Fatalf("expected empty command, got %+v", cmd)
	}
}

// Caso: argomenti non numerici o in eccesso.
func TestIntArgMalformed(t *testing.T) {
	for _, line := range []string{"pegar", "pegar abc", "pegar 1 2", "descartar 1.5"} {
		if _, err := Parse(line).IntArg(); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%q: expected ErrMalformed, got %v", line, err)
		}
	}
}

// Caso: argomento opzionale assente.
func TestOptionalIntArg(t *testing.T) {
	n, err := Parse("pegar").OptionalIntArg(3)
	if err != nil || n != 3 {
		t.Fatalf("expected fallback 3, got %d (%v)", n, err)
	}
	n, err = Parse("pegar 5").OptionalIntArg(3)
	if err != nil || n != 5 {
		t.Fatalf("expected 5, got %d (%v)", n, err)
	}
	if _, err := Parse("pegar x").OptionalIntArg(3); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

// Caso: ogni risposta termina con END, anche se a riga singola.
func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, "Sua mão:", "1. Mago (ATK 6 / DEF 4)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteFrame(&buf, MsgQuit); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "Saindo do jogo...\nEND\n") {
		t.Fatalf("unexpected wire bytes %q", buf.String())
	}

	r := bufio.NewReader(&buf)
	first, err := ReadFrame(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 2 || first[0] != "Sua mão:" {
		t.Fatalf("unexpected first frame %v", first)
	}
	second, err := ReadFrame(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 || second[0] != MsgQuit {
		t.Fatalf("unexpected second frame %v", second)
	}
	if _, err := ReadFrame(r); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

// Caso: stream interrotto a meta' risposta.
func TestReadFrameUnterminated(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("Cartas disponíveis:\n1: Mago"))
	lines, err := ReadFrame(r)
	if !errors.Is(err, ErrUnterminatedFrame) {
		t.Fatalf("expected ErrUnterminatedFrame, got %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 partial lines, got %v", lines)
	}
}

// Caso: formato delle righe di listar e mao.
func TestPoolAndHandLines(t *testing.T) {
	deck := []cards.Card{{ID: 3, Name: "Guerreiro", Attack: 7, Defense: 6}}
	lines := PoolLines(deck)
	if len(lines) != 2 || lines[1] != "3: Guerreiro (ATK 7 / DEF 6)" {
		t.Fatalf("unexpected pool lines %v", lines)
	}
	if got := PoolLines(nil); len(got) != 1 || got[0] != MsgPoolEmpty {
		t.Fatalf("unexpected empty pool lines %v", got)
	}
	hand := HandLines(deck)
	if len(hand) != 2 || hand[1] != "1. Guerreiro (ATK 7 / DEF 6)" {
		t.Fatalf("unexpected hand lines %v", hand)
	}
	if got := HandLines(nil); got[0] != MsgHandEmpty {
		t.Fatalf("unexpected empty hand lines %v", got)
	}
}

// Caso: payload JSON con i nomi di campo del gioco.
func TestCardLineJSON(t *testing.T) {
	line, err := CardLine(cards.Card{ID: 1, Name: "Dragão", Attack: 8, Defense: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `CARTA {"id":1,"nome":"Dragão","ataque":8,"defesa":5}`
	if line != want {
		t.Fatalf("expected %s, got %s", want, line)
	}
}

// Caso: il verdetto e' speculare per i due lati.
func TestResultLineSides(t *testing.T) {
	res := duel.Result{Outcome: duel.WinB, MarginA: 1, MarginB: 3}
	if got := ResultLine(res, true); got != "Resultado do duelo: Você perdeu! (sua margem 1, margem do oponente 3)" {
		t.Fatalf("unexpected side A line %q", got)
	}
	if got := ResultLine(res, false); got != "Resultado do duelo: Você venceu! (sua margem 3, margem do oponente 1)" {
		t.Fatalf("unexpected side B line %q", got)
	}
	draw := duel.Result{MarginA: 2, MarginB: 2}
	if got := ResultLine(draw, false); !strings.Contains(got, "Empate!") {
		t.Fatalf("expected draw, got %q", got)
	}
}

// Caso: help diverso per politica a pacchetti.
func TestHelp(t *testing.T) {
	if !strings.Contains(Help(false), "pegar <id>") {
		t.Fatalf("unexpected help %q", Help(false))
	}
	if !strings.Contains(Help(true), "pegar [n]") {
		t.Fatalf("unexpected help %q", Help(true))
	}
}

// Caso: solo gli esiti di duello sono notifiche.
func TestIsNotification(t *testing.T) {
	res := ResultLine(duel.Result{MarginA: 1, MarginB: 0}, true)
	if !IsNotification([]string{res}) || !IsNotification([]string{MsgInsufficient}) {
		t.Fatalf("expected duel outcomes to be notifications")
	}
	if IsNotification([]string{MsgQueued}) || IsNotification([]string{MsgHandHeader, res}) {
		t.Fatalf("unexpected notification match")
	}
}
