package protocol

import (
	"encoding/json"
	"fmt"
	"strings"

	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/duel"
)

// Testi inviati ai client. Restano in portoghese come il gioco.
const (
	MsgPoolHeader      = "Cartas disponíveis:"
	MsgPoolEmpty       = "Não há cartas disponíveis."
	MsgCardUnavailable = "Carta não disponível"
	MsgInvalidCommand  = "Comando inválido"
	MsgHandHeader      = "Sua mão:"
	MsgHandEmpty       = "Você não tem cartas."
	MsgInvalidPosition = "Posição inválida"
	MsgQueued          = "Você entrou na fila de duelo..."
	MsgAlreadyQueued   = "Você já está na fila de duelo."
	MsgInsufficient    = "Um dos jogadores não tem cartas suficientes (mínimo 2)."
	MsgQuit            = "Saindo do jogo..."

	PrefixCard      = "CARTA "
	PrefixPack      = "CARTAS "
	PrefixDiscarded = "DESCARTADA "
)

// Help ritorna l'elenco comandi; packMode cambia la sintassi di pegar.
func Help(packMode bool) string {
	draw := "pegar <id>"
	if packMode {
		draw = "pegar [n]"
	}
	return "Comandos: listar, " + draw + ", mao, descartar <n>, duelo, sair"
}

// PoolLines formatta la risposta a listar.
func PoolLines(available []cards.Card) []string {
	if len(available) == 0 {
		return []string{MsgPoolEmpty}
	}
	lines := make([]string, 0, len(available)+1)
	lines = append(lines, MsgPoolHeader)
	for _, c := range available {
		lines = append(lines, fmt.Sprintf("%d: %s", c.ID, c.String()))
	}
	return lines
}

// HandLines formatta la risposta a mao (posizioni 1-based).
func HandLines(hand []cards.Card) []string {
	if len(hand) == 0 {
		return []string{MsgHandEmpty}
	}
	lines := make([]string, 0, len(hand)+1)
	lines = append(lines, MsgHandHeader)
	for i, c := range hand {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c.String()))
	}
	return lines
}

// CardLine produce "CARTA {json}".
func CardLine(c cards.Card) (string, error) {
	return prefixed(PrefixCard, c)
}

// PackLine produce "CARTAS [json]".
func PackLine(pack []cards.Card) (string, error) {
	return prefixed(PrefixPack, pack)
}

// DiscardLine produce "DESCARTADA {json}".
func DiscardLine(c cards.Card) (string, error) {
	return prefixed(PrefixDiscarded, c)
}

// ResultLine e' il verdetto visto da un lato del duello.
func ResultLine(res duel.Result, sideA bool) string {
	own, other := res.MarginA, res.MarginB
	if !sideA {
		own, other = other, own
	}
	verdict := "Empate!"
	switch {
	case own > other:
		verdict = "Você venceu!"
	case own < other:
		verdict = "Você perdeu!"
	}
	return fmt.Sprintf(PrefixResult+" %s (sua margem %d, margem do oponente %d)", verdict, own, other)
}

func prefixed(prefix string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return prefix + string(payload), nil
}

// PrefixResult apre l'esito di un duello.
const PrefixResult = "Resultado do duelo:"

// IsNotification riconosce i frame non richiesti (esiti di duello) che
// possono arrivare tra una richiesta e la sua risposta.
func IsNotification(frame []string) bool {
	if len(frame) != 1 {
		return false
	}
	return strings.HasPrefix(frame[0], PrefixResult) || frame[0] == MsgInsufficient
}
