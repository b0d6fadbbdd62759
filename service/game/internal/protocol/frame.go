package protocol

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// EndSentinel chiude ogni risposta, a riga singola o multipla.
const EndSentinel = "END"

// Encode serializza le righe di una risposta seguite da END.
func Encode(lines ...string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(EndSentinel)
	b.WriteByte('\n')
	return []byte(b.String())
}

// WriteFrame scrive una risposta completa con una sola Write.
func WriteFrame(w io.Writer, lines ...string) error {
	_, err := w.Write(Encode(lines...))
	return err
}

// ReadFrame legge righe fino a END. Ritorna io.EOF se lo stream finisce
// prima di qualsiasi riga, ErrUnterminatedFrame se finisce a meta' risposta.
func ReadFrame(r *bufio.Reader) ([]string, error) {
	var lines []string
	for {
		raw, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && raw != "") {
			if errors.Is(err, io.EOF) {
				if len(lines) == 0 {
					return nil, io.EOF
				}
				return lines, ErrUnterminatedFrame
			}
			return lines, err
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == EndSentinel {
			return lines, nil
		}
		lines = append(lines, line)
		if err != nil {
			return lines, ErrUnterminatedFrame
		}
	}
}

// WriteCommand invia una riga di richiesta.
func WriteCommand(w io.Writer, cmd Command) error {
	_, err := io.WriteString(w, cmd.String()+"\n")
	return err
}
