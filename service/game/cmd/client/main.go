package main

import (
	"bufio"
	"flag"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"CardArena/service/game/internal/config"
	"CardArena/service/game/internal/protocol"
)

func main() {
	tcpAddr := flag.String("tcp", "localhost:5000", "indirizzo TCP del game server")
	udpAddr := flag.String("udp", "localhost:6000", "indirizzo UDP dell'echo")
	flag.Parse()

	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	config.LoadDotenv(logger)

	conn, err := net.Dial("tcp", *tcpAddr)
	if err != nil {
		logger.Error("connessione fallita", "addr", *tcpAddr, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	pterm.DefaultHeader.WithFullWidth().Println("CardArena")
	pterm.Success.Printfln("Connesso a %s", *tcpAddr)
	pterm.Info.Println(protocol.Help(false) + ", ping")

	tracker := &latencyTracker{}
	done := make(chan struct{})
	go readFrames(logger, conn, tracker, done)

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if strings.EqualFold(line, "ping") {
			rtt, err := ping(*udpAddr, 2*time.Second)
			if err != nil {
				pterm.Error.Printfln("ping UDP fallito: %v", err)
				continue
			}
			pterm.Info.Printfln("RTT UDP: %s", rtt)
			continue
		}

		tracker.sent(time.Now())
		if err := protocol.WriteCommand(conn, protocol.Parse(line)); err != nil {
			logger.Error("invio fallito", "error", err)
			return
		}
		if strings.EqualFold(line, protocol.VerbQuit) {
			<-done
			return
		}
	}
}

// readFrames stampa ogni risposta appena completa: i risultati di duello
// arrivano anche mentre l'utente sta scrivendo.
func readFrames(logger *slog.Logger, conn net.Conn, tracker *latencyTracker, done chan<- struct{}) {
	defer close(done)
	r := bufio.NewReader(conn)
	for {
		frame, err := protocol.ReadFrame(r)
		if err != nil {
			pterm.Warning.Println("Conexão encerrada pelo servidor")
			logger.Debug("lettura terminata", "error", err)
			return
		}
		if protocol.IsNotification(frame) {
			pterm.DefaultBox.WithTitle("Duelo").Println(strings.Join(frame, "\n"))
			continue
		}
		body := strings.Join(frame, "\n")
		if rtt, ok := tracker.received(time.Now()); ok {
			pterm.DefaultBox.WithTitle(pterm.Sprintf("TCP %s", rtt.Round(time.Microsecond))).Println(body)
		} else {
			pterm.DefaultBox.Println(body)
		}
	}
}
