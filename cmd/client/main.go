// Command client is a small terminal client for the mus server: it
// prints table events as they arrive and reads player commands from
// stdin.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/pterm/pterm"

	"github.com/DyLaNHurtado/mus-game-app/internal/game/eval"
	"github.com/DyLaNHurtado/mus-game-app/internal/logger"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

func main() {
	serverURL := flag.String("server", "ws://localhost:1780/ws", "URL del servidor")
	name := flag.String("nombre", "", "nombre del jugador")
	flag.Parse()

	if err := logger.Init(); err != nil {
		pterm.Warning.Printfln("sin fichero de log: %v", err)
	}
	defer logger.Close()

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		pterm.Error.Printfln("No se pudo conectar a %s: %v", *serverURL, err)
		os.Exit(1)
	}
	defer conn.Close()

	app := &app{conn: conn, name: *name}
	go app.readLoop()
	app.inputLoop()
}

type app struct {
	conn     *websocket.Conn
	name     string
	playerID string
}

// readLoop prints every server frame until the connection drops.
func (a *app) readLoop() {
	for {
		_, data, err := a.conn.ReadMessage()
		if err != nil {
			pterm.Error.Printfln("Conexión cerrada: %v", err)
			os.Exit(1)
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			logger.LogError("frame malformado: %v", err)
			continue
		}
		a.printEvent(msg)
	}
}

func (a *app) printEvent(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		p, err := protocol.ParsePayload[protocol.ConnectedPayload](msg)
		if err != nil {
			return
		}
		a.playerID = p.PlayerID
		pterm.Success.Printfln("Conectado como %s", p.PlayerName)

	case protocol.MsgRoomCreated:
		p, err := protocol.ParsePayload[protocol.RoomCreatedPayload](msg)
		if err != nil {
			return
		}
		pterm.DefaultBox.WithTitle("Sala creada").Println("Código: " + p.RoomCode)

	case protocol.MsgRoomJoined:
		p, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
		if err != nil {
			return
		}
		pterm.Success.Printfln("En la sala %s (%d jugadores)", p.RoomCode, len(p.Players))

	case protocol.MsgPlayerJoined:
		p, err := protocol.ParsePayload[protocol.PlayerJoinedPayload](msg)
		if err != nil {
			return
		}
		pterm.Info.Printfln("%s se sienta en el asiento %d", p.Player.Name, p.Player.Seat)

	case protocol.MsgPlayerLeft:
		p, err := protocol.ParsePayload[protocol.PlayerLeftPayload](msg)
		if err != nil {
			return
		}
		pterm.Info.Printfln("%s deja la mesa", p.PlayerName)

	case protocol.MsgGameStart:
		p, err := protocol.ParsePayload[protocol.GameStartPayload](msg)
		if err != nil {
			return
		}
		pterm.DefaultBox.WithTitle("¡Empieza la partida!").Printfln("Mano: asiento %d", p.Mano)

	case protocol.MsgDealCards:
		p, err := protocol.ParsePayload[protocol.DealCardsPayload](msg)
		if err != nil {
			return
		}
		cards := make([]string, len(p.Cards))
		for i, c := range p.Cards {
			cards[i] = c.String()
		}
		pterm.DefaultBox.WithTitle(fmt.Sprintf("Mano %d", p.HandNumber)).
			Println(strings.Join(cards, " | "))
		if eval.ShouldCutMus(p.Cards) {
			pterm.Info.Println("Pista: jugada fuerte, quizá convenga cortar con no-mus")
		}

	case protocol.MsgActionApplied:
		p, err := protocol.ParsePayload[protocol.ActionAppliedPayload](msg)
		if err != nil {
			return
		}
		pterm.Info.Printfln("%s  [fase: %s, turno: asiento %d]", p.Message, p.Phase, p.Turn)

	case protocol.MsgPhaseComplete:
		p, err := protocol.ParsePayload[protocol.PhaseCompletePayload](msg)
		if err != nil {
			return
		}
		if p.WinningTeam != nil {
			pterm.Success.Printfln("%s: %d tantos para el equipo %d  (marcador %d-%d)",
				p.Phase, p.PointsAwarded, *p.WinningTeam, p.Scores[0], p.Scores[1])
		} else {
			pterm.Info.Printfln("%s: nadie puntúa", p.Phase)
		}

	case protocol.MsgHandComplete:
		p, err := protocol.ParsePayload[protocol.HandCompletePayload](msg)
		if err != nil {
			return
		}
		pterm.DefaultSection.Printfln("Fin de la mano %d  (marcador %d-%d)", p.HandNumber, p.Scores[0], p.Scores[1])
		for _, e := range p.Evaluations {
			cards := make([]string, len(e.Hand))
			for i, c := range e.Hand {
				cards[i] = c.String()
			}
			pterm.Printfln("  asiento %d: %s  (%d puntos, pares: %s)", e.Seat, strings.Join(cards, ", "), e.Points, e.Pares)
		}

	case protocol.MsgGameOver:
		p, err := protocol.ParsePayload[protocol.GameOverPayload](msg)
		if err != nil {
			return
		}
		pterm.DefaultBox.WithTitle("🏆 Fin de la partida").
			Printfln("Gana el equipo %d  (%d-%d)", p.WinningTeam, p.Scores[0], p.Scores[1])

	case protocol.MsgPlayerOffline:
		p, err := protocol.ParsePayload[protocol.PlayerOfflinePayload](msg)
		if err != nil {
			return
		}
		pterm.Warning.Printfln("%s se ha desconectado (%ds para volver)", p.PlayerName, p.Timeout)

	case protocol.MsgPlayerOnline:
		p, err := protocol.ParsePayload[protocol.PlayerOnlinePayload](msg)
		if err != nil {
			return
		}
		pterm.Success.Printfln("%s ha vuelto", p.PlayerName)

	case protocol.MsgRoomList:
		p, err := protocol.ParsePayload[protocol.RoomListPayload](msg)
		if err != nil {
			return
		}
		if len(p.Rooms) == 0 {
			pterm.Info.Println("No hay salas abiertas")
			return
		}
		rows := pterm.TableData{{"Código", "Jugadores"}}
		for _, r := range p.Rooms {
			rows = append(rows, []string{r.RoomCode, fmt.Sprintf("%d/%d", r.PlayerCount, r.MaxPlayers)})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	case protocol.MsgLeaderboard:
		p, err := protocol.ParsePayload[protocol.LeaderboardPayload](msg)
		if err != nil {
			return
		}
		rows := pterm.TableData{{"#", "Jugador", "Puntos", "Victorias", "% Vict."}}
		for _, e := range p.Entries {
			rows = append(rows, []string{
				strconv.Itoa(e.Rank), e.PlayerName, strconv.Itoa(e.Score),
				strconv.Itoa(e.Wins), fmt.Sprintf("%.0f%%", e.WinRate),
			})
		}
		_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	case protocol.MsgError:
		p, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
		if err != nil {
			return
		}
		pterm.Error.Printfln("[%d] %s", p.Code, p.Message)

	default:
		logger.LogInfo("evento %s: %s", msg.Type, string(msg.Payload))
	}
}

// inputLoop reads commands until quit.
func (a *app) inputLoop() {
	pterm.Info.Println("Comandos: crear | unirse CÓDIGO | salas | mus | no-mus | paso | envido N | ordago | acepto | rechazo | descartar i... | estado | ranking | salir")

	for {
		line, _ := pterm.DefaultInteractiveTextInput.Show("mus>")
		fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "crear":
			a.send(protocol.MsgCreateRoom, protocol.CreateRoomPayload{PlayerName: a.name})
		case "unirse":
			if len(fields) < 2 {
				pterm.Warning.Println("uso: unirse CÓDIGO")
				continue
			}
			a.send(protocol.MsgJoinRoom, protocol.JoinRoomPayload{
				RoomCode:   strings.ToUpper(fields[1]),
				PlayerName: a.name,
			})
		case "salas":
			a.send(protocol.MsgGetRoomList, nil)
		case "mus", "paso", "ordago", "acepto", "rechazo":
			a.send(protocol.MsgAction, protocol.ActionPayload{Kind: fields[0]})
		case "no-mus", "nomus", "corto":
			a.send(protocol.MsgAction, protocol.ActionPayload{Kind: "no-mus"})
		case "envido":
			amount := 2
			if len(fields) > 1 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					amount = n
				}
			}
			a.send(protocol.MsgAction, protocol.ActionPayload{Kind: "envido", Amount: amount})
		case "descartar":
			indices := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				if n, err := strconv.Atoi(f); err == nil {
					indices = append(indices, n)
				}
			}
			a.send(protocol.MsgDiscard, protocol.DiscardPayload{Indices: indices})
		case "estado":
			a.send(protocol.MsgGetState, nil)
		case "ranking":
			a.send(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: 10})
		case "salir":
			a.send(protocol.MsgLeaveRoom, nil)
			pterm.Info.Println("¡Hasta otra!")
			return
		default:
			pterm.Warning.Printfln("comando desconocido: %s", fields[0])
		}
	}
}

func (a *app) send(msgType protocol.MessageType, payload any) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		logger.LogError("codificando %s: %v", msgType, err)
		return
	}
	data, err := msg.Encode()
	if err != nil {
		return
	}
	if err := a.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		pterm.Error.Printfln("Error de envío: %v", err)
	}
}
