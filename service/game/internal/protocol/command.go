package protocol

import (
	"strconv"
	"strings"
)

// Verbi riconosciuti dal server (case-insensitive sul filo).
const (
	VerbList    = "listar"
	VerbDraw    = "pegar"
	VerbHand    = "mao"
	VerbDiscard = "descartar"
	VerbDuel    = "duelo"
	VerbQuit    = "sair"
)

// Command e' una riga di richiesta gia' normalizzata.
type Command struct {
	Verb string
	Args []string
}

// Parse normalizza una riga: byte non UTF-8 scartati, spazi rimossi, verbo minuscolo.
// Una riga vuota produce un Command con Verb vuoto.
func Parse(line string) Command {
	line = strings.ToValidUTF8(line, "")
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{
		Verb: strings.ToLower(fields[0]),
		Args: fields[1:],
	}
}

// IntArg legge l'unico argomento intero del comando.
func (c Command) IntArg() (int, error) {
	if len(c.Args) != 1 {
		return 0, ErrMalformed
	}
	n, err := strconv.Atoi(c.Args[0])
	if err != nil {
		return 0, ErrMalformed
	}
	return n, nil
}

// OptionalIntArg ritorna fallback se manca l'argomento.
func (c Command) OptionalIntArg(fallback int) (int, error) {
	if len(c.Args) == 0 {
		return fallback, nil
	}
	return c.IntArg()
}

// String ricostruisce la riga da inviare al server.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	return c.Verb + " " + strings.Join(c.Args, " ")
}
