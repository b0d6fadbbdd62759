package session

import (
	"context"
	"errors"
	"time"

	"CardArena/service/game/internal/cards"
	"CardArena/service/game/internal/duel"
	"CardArena/service/game/internal/history"
	"CardArena/service/game/internal/protocol"
)

// reply e' la risposta a un comando. after gira dopo l'invio della risposta.
type reply struct {
	lines []string
	quit  bool
	after func()
}

func lines(l ...string) reply {
	return reply{lines: l}
}

func (s *Server) dispatch(ctx context.Context, sess *Session, cmd protocol.Command) reply {
	switch cmd.Verb {
	case protocol.VerbList:
		return lines(protocol.PoolLines(s.pool.List())...)
	case protocol.VerbDraw:
		if s.packMode {
			return s.drawPack(ctx, sess, cmd)
		}
		return s.drawByID(ctx, sess, cmd)
	case protocol.VerbHand:
		return s.showHand(sess)
	case protocol.VerbDiscard:
		return s.discard(sess, cmd)
	case protocol.VerbDuel:
		return s.joinDuel(ctx, sess)
	case protocol.VerbQuit:
		return reply{lines: []string{protocol.MsgQuit}, quit: true}
	default:
		return lines(protocol.Help(s.packMode))
	}
}

func (s *Server) drawByID(ctx context.Context, sess *Session, cmd protocol.Command) reply {
	id, err := cmd.IntArg()
	if err != nil {
		return lines(protocol.MsgInvalidCommand)
	}
	card, err := s.pool.Draw(id)
	if errors.Is(err, cards.ErrCardNotFound) {
		return lines(protocol.MsgCardUnavailable)
	}
	if err != nil {
		s.logger.Error("errore pesca carta", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgCardUnavailable)
	}
	return s.deliverDrawn(ctx, sess, []cards.Card{card}, func() (string, error) {
		return protocol.CardLine(card)
	})
}

func (s *Server) drawPack(ctx context.Context, sess *Session, cmd protocol.Command) reply {
	n, err := cmd.OptionalIntArg(s.packSize)
	if err != nil {
		return lines(protocol.MsgInvalidCommand)
	}
	pack, err := s.pool.DrawPack(n)
	switch {
	case errors.Is(err, cards.ErrInvalidPackSize):
		return lines(protocol.MsgInvalidCommand)
	case errors.Is(err, cards.ErrPoolEmpty):
		return lines(protocol.MsgPoolEmpty)
	case err != nil:
		s.logger.Error("errore pesca pacchetto", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgPoolEmpty)
	}
	return s.deliverDrawn(ctx, sess, pack, func() (string, error) {
		return protocol.PackLine(pack)
	})
}

// deliverDrawn sposta le carte pescate nella mano e prepara la risposta.
func (s *Server) deliverDrawn(ctx context.Context, sess *Session, drawn []cards.Card, render func() (string, error)) reply {
	if err := s.hands.Append(sess.ID, drawn...); err != nil {
		s.logger.Error("mano non disponibile, carte perse", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgCardUnavailable)
	}
	line, err := render()
	if err != nil {
		s.logger.Error("errore serializzazione carta", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgInvalidCommand)
	}
	s.logger.Debug("carte pescate", "session_id", sess.ID.String(), "count", len(drawn))
	return reply{
		lines: []string{line},
		after: func() {
			now := time.Now().UTC()
			for _, card := range drawn {
				ev := history.DrawEvent{SessionID: sess.ID, Card: card, At: now}
				s.record(ctx, func(ctx context.Context, rec history.Recorder) error {
					return rec.RecordDraw(ctx, ev)
				})
			}
		},
	}
}

func (s *Server) showHand(sess *Session) reply {
	hand, err := s.hands.List(sess.ID)
	if err != nil {
		s.logger.Error("mano non disponibile", "session_id", sess.ID.String(), "error", err)
	}
	return lines(protocol.HandLines(hand)...)
}

func (s *Server) discard(sess *Session, cmd protocol.Command) reply {
	pos, err := cmd.IntArg()
	if err != nil {
		return lines(protocol.MsgInvalidCommand)
	}
	card, err := s.hands.RemoveAt(sess.ID, pos-1)
	if errors.Is(err, cards.ErrIndexOutOfRange) {
		return lines(protocol.MsgInvalidPosition)
	}
	if err != nil {
		s.logger.Error("errore scarto carta", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgInvalidPosition)
	}
	line, err := protocol.DiscardLine(card)
	if err != nil {
		s.logger.Error("errore serializzazione carta", "session_id", sess.ID.String(), "error", err)
		return lines(protocol.MsgInvalidCommand)
	}
	return lines(line)
}

func (s *Server) joinDuel(ctx context.Context, sess *Session) reply {
	pair, queued := s.queue.Enqueue(sess.ID)
	if !queued {
		return lines(protocol.MsgAlreadyQueued)
	}
	r := lines(protocol.MsgQueued)
	if pair != nil {
		// Le mani si fotografano alla formazione della coppia: uno scarto
		// successivo non cambia l'esito.
		v := s.settleDuel(*pair)
		r.after = func() { s.deliverDuel(ctx, sess, v) }
	}
	return r
}

// verdict e' l'esito di una coppia, gia' tradotto per i due lati.
type verdict struct {
	pair  duel.Pair
	lineA string
	lineB string
	event history.DuelEvent
}

func (s *Server) settleDuel(pair duel.Pair) verdict {
	// Una mano gia' rilasciata conta come vuota: esito "carte insufficienti".
	handA, _ := s.hands.List(pair.A)
	handB, _ := s.hands.List(pair.B)

	v := verdict{
		pair:  pair,
		event: history.DuelEvent{SessionA: pair.A, SessionB: pair.B, At: time.Now().UTC()},
	}
	res, err := duel.Resolve(handA, handB)
	if errors.Is(err, duel.ErrInsufficientCards) {
		v.lineA, v.lineB = protocol.MsgInsufficient, protocol.MsgInsufficient
		v.event.Outcome = history.OutcomeInsufficient
	} else {
		v.lineA, v.lineB = protocol.ResultLine(res, true), protocol.ResultLine(res, false)
		v.event.Outcome = res.Outcome.String()
		v.event.MarginA, v.event.MarginB = res.MarginA, res.MarginB
	}
	s.logger.Info("duello risolto",
		"session_a", pair.A.String(),
		"session_b", pair.B.String(),
		"outcome", v.event.Outcome,
		"margin_a", v.event.MarginA,
		"margin_b", v.event.MarginB,
	)
	return v
}

// deliverDuel gira sulla goroutine della sessione che ha completato la coppia,
// anche se la sua conferma non e' stata scritta: il proprio esito e' sincrono,
// quello dell'avversario parte su un'altra goroutine.
func (s *Server) deliverDuel(ctx context.Context, sess *Session, v verdict) {
	own, other, peer := v.lineA, v.lineB, v.pair.B
	if sess.ID == v.pair.B {
		own, other, peer = v.lineB, v.lineA, v.pair.A
	}
	if err := sess.Send(own); err != nil {
		s.logger.Debug("esito non consegnato", "session_id", sess.ID.String(), "error", err)
	}
	s.notify(peer, other)

	s.record(ctx, func(ctx context.Context, rec history.Recorder) error {
		return rec.RecordDuel(ctx, v.event)
	})
}
