package room

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/config"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/engine"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
	"github.com/DyLaNHurtado/mus-game-app/internal/storage"
)

// newHandDelay is the pause between the counting reveal and the next deal.
const newHandDelay = 5 * time.Second

// seatState tracks one occupied seat. Client is nil while the player is
// offline; ID and Name survive the disconnect so the seat can be
// reclaimed.
type seatState struct {
	ID     string
	Name   string
	Client ClientConn
}

// Room is one table. All game access goes through its mutex; timers
// re-enter through the same public methods.
type Room struct {
	Code      string
	CreatedAt time.Time

	mu     sync.RWMutex
	status Status
	seats  [engine.NumSeats]*seatState
	game   *engine.Game

	gameCfg config.GameConfig

	timerMu         sync.Mutex
	turnTimer       *time.Timer
	timerStart      time.Time
	remaining       time.Duration
	reconnectTimers [engine.NumSeats]*time.Timer
	newHandTimer    *time.Timer

	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager
}

func newRoom(code string, gameCfg config.GameConfig, store *storage.RedisStore, lb *storage.LeaderboardManager) *Room {
	return &Room{
		Code:        code,
		CreatedAt:   time.Now(),
		status:      StatusWaiting,
		gameCfg:     gameCfg,
		store:       store,
		leaderboard: lb,
	}
}

// Status returns the room lifecycle state.
func (r *Room) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// PlayerCount returns how many seats are taken.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.countSeats()
}

func (r *Room) countSeats() int {
	n := 0
	for _, s := range r.seats {
		if s != nil {
			n++
		}
	}
	return n
}

// HasPlayer reports whether the player occupies a seat here.
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.seatOf(playerID)
	return ok
}

func (r *Room) seatOf(playerID string) (engine.Seat, bool) {
	for i, s := range r.seats {
		if s != nil && s.ID == playerID {
			return engine.Seat(i), true
		}
	}
	return 0, false
}

// AddPlayer seats a client in the first free seat. Seating the fourth
// player starts the match.
func (r *Room) AddPlayer(client ClientConn) (engine.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting {
		return 0, apperrors.ErrGameStarted
	}
	if r.countSeats() >= engine.NumSeats {
		return 0, apperrors.ErrRoomFull
	}

	var seat engine.Seat = -1
	for i, s := range r.seats {
		if s == nil {
			seat = engine.Seat(i)
			break
		}
	}
	r.seats[seat] = &seatState{ID: client.GetID(), Name: client.GetName(), Client: client}
	client.SetRoom(r.Code)

	r.broadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: r.playerInfo(seat),
	}))

	log.Printf("👤 jugador %s se sienta en %s (asiento %d)", client.GetName(), r.Code, seat)

	if r.countSeats() == engine.NumSeats {
		if err := r.startGame(); err != nil {
			return seat, err
		}
	}

	r.persist()
	return seat, nil
}

// startGame creates the engine, deals and opens the mus. Caller holds mu.
func (r *Room) startGame() error {
	var seats [engine.NumSeats]engine.SeatInfo
	for i, s := range r.seats {
		seats[i] = engine.SeatInfo{ID: s.ID, Name: s.Name}
	}
	g, err := engine.New(r.Code, seats, r.gameCfg.WinningScore)
	if err != nil {
		return err
	}
	r.game = g
	r.status = StatusPlaying

	players := make([]protocol.PlayerInfo, 0, engine.NumSeats)
	for i := range r.seats {
		players = append(players, r.playerInfo(engine.Seat(i)))
	}
	r.broadcast(protocol.MustNewMessage(protocol.MsgGameStart, protocol.GameStartPayload{
		Players: players,
		Mano:    int(g.Mano()),
	}))
	r.dealToSeats()
	r.startTurnTimer()

	log.Printf("🃏 partida iniciada en sala %s", r.Code)
	return nil
}

// dealToSeats sends each connected seat its private hand. Caller holds mu.
func (r *Room) dealToSeats() {
	for i, s := range r.seats {
		if s == nil || s.Client == nil {
			continue
		}
		p, err := r.game.Player(engine.Seat(i))
		if err != nil {
			continue
		}
		s.Client.SendMessage(protocol.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
			Cards:      p.Hand,
			HandNumber: r.game.HandNumber(),
		}))
	}
}

// HandleAction routes one wire action from a player into the engine.
func (r *Room) HandleAction(playerID string, kind string, amount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok {
		r.sendError(playerID, apperrors.ErrNotInRoom)
		return
	}
	action, err := engine.ParseAction(kind, amount)
	if err != nil {
		r.sendError(playerID, err)
		return
	}
	r.applyAction(seat, action)
}

// HandleDiscard routes a mus discard from a player into the engine.
func (r *Room) HandleDiscard(playerID string, indices []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok {
		r.sendError(playerID, apperrors.ErrNotInRoom)
		return
	}
	out := r.game.SubmitDiscard(seat, indices)
	if out.Err != nil {
		r.sendError(playerID, out.Err)
		return
	}

	// Redeal the fresh hand privately.
	if s := r.seats[seat]; s != nil && s.Client != nil {
		if p, err := r.game.Player(seat); err == nil {
			s.Client.SendMessage(protocol.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
				Cards:      p.Hand,
				HandNumber: r.game.HandNumber(),
			}))
		}
	}
	r.afterOutcome(seat, engine.KindMus, 0, out)
}

// applyAction submits a parsed action and fans out the result. Caller
// holds mu.
func (r *Room) applyAction(seat engine.Seat, action engine.Action) {
	if r.status != StatusPlaying || r.game == nil {
		r.sendErrorSeat(seat, apperrors.ErrRoomFinished)
		return
	}
	out := r.game.SubmitAction(seat, action)
	if out.Err != nil {
		r.sendErrorSeat(seat, out.Err)
		return
	}
	amount := 0
	if env, ok := action.(engine.Envido); ok {
		amount = env.Amount
	}
	r.afterOutcome(seat, action.Kind(), amount, out)
}

// afterOutcome broadcasts an accepted outcome and drives the timers and
// hand lifecycle. Caller holds mu.
func (r *Room) afterOutcome(seat engine.Seat, kind engine.ActionKind, amount int, out engine.Outcome) {
	r.stopTurnTimer()

	snap := r.game.Snapshot()
	r.broadcast(protocol.MustNewMessage(protocol.MsgActionApplied, protocol.ActionAppliedPayload{
		PlayerID: r.seats[seat].ID,
		Seat:     int(seat),
		Kind:     string(kind),
		Amount:   amount,
		Message:  out.Message,
		Phase:    snap.Phase.String(),
		Turn:     int(snap.Turn),
		Stake:    snap.Stake,
	}))

	if out.PhaseComplete {
		var winning *int
		if out.WinningTeam != nil {
			w := int(*out.WinningTeam)
			winning = &w
		}
		r.broadcast(protocol.MustNewMessage(protocol.MsgPhaseComplete, protocol.PhaseCompletePayload{
			Phase:         out.Phase.String(),
			PointsAwarded: out.PointsAwarded,
			WinningTeam:   winning,
			Scores:        r.game.Ledger().Scores(),
			NextPhase:     snap.Phase.String(),
		}))
	}

	switch {
	case out.MatchOver:
		r.finishMatch(out.MatchWinner)
	case out.HandComplete:
		r.broadcastHandComplete()
		r.scheduleNewHand()
	default:
		r.startTurnTimer()
	}
	r.persist()
}

// broadcastHandComplete reveals every hand with its evaluation. Caller
// holds mu.
func (r *Room) broadcastHandComplete() {
	summaries := r.game.EvaluateAll()
	evals := make([]protocol.SeatEvaluation, 0, len(summaries))
	for _, s := range summaries {
		evals = append(evals, protocol.SeatEvaluation{
			Seat:     int(s.Seat),
			PlayerID: r.seats[s.Seat].ID,
			Team:     int(s.Team),
			Hand:     s.Hand,
			Best:     s.Eval.Best().String(),
			Points:   s.Eval.Points,
			HasJuego: s.Eval.HasJuego,
			Pares:    s.Eval.Pares.Tier.String(),
		})
	}
	r.broadcast(protocol.MustNewMessage(protocol.MsgHandComplete, protocol.HandCompletePayload{
		HandNumber:  r.game.HandNumber(),
		Scores:      r.game.Ledger().Scores(),
		Evaluations: evals,
	}))
}

// scheduleNewHand arms the pause before the next deal. Caller holds mu.
func (r *Room) scheduleNewHand() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()
	r.newHandTimer = time.AfterFunc(newHandDelay, r.beginNextHand)
}

func (r *Room) beginNextHand() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPlaying || r.game == nil {
		return
	}
	if err := r.game.StartNewHand(); err != nil {
		if !errors.Is(err, apperrors.ErrRoomFinished) {
			log.Printf("❌ sala %s: nueva mano: %v", r.Code, err)
		}
		return
	}
	r.dealToSeats()
	r.broadcastState()
	r.startTurnTimer()
	r.persist()
}

// finishMatch closes the room and records the result. Caller holds mu.
func (r *Room) finishMatch(winner engine.Team) {
	r.status = StatusFinished
	r.stopAllTimers()
	scores := r.game.Ledger().Scores()

	r.broadcast(protocol.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
		WinningTeam: int(winner),
		Scores:      scores,
	}))
	log.Printf("🏆 sala %s: gana el equipo %d (%d-%d)", r.Code, winner, scores[0], scores[1])

	if r.leaderboard == nil {
		return
	}
	for i, s := range r.seats {
		if s == nil {
			continue
		}
		team := engine.Seat(i).Team()
		go func(id, name string, won bool, tantos int) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.leaderboard.RecordMatchResult(ctx, id, name, won, tantos); err != nil {
				log.Printf("❌ clasificación %s: %v", id, err)
			}
		}(s.ID, s.Name, team == winner, scores[team])
	}
}

// RemovePlayer empties a seat. During a match the seat is kept and only
// marked offline; a true leave is only possible while waiting.
func (r *Room) RemovePlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok {
		return false
	}
	s := r.seats[seat]

	if r.status == StatusPlaying {
		r.markOffline(seat)
		return false
	}

	if s.Client != nil {
		s.Client.SetRoom("")
	}
	r.seats[seat] = nil
	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   s.ID,
		PlayerName: s.Name,
	}))
	log.Printf("👋 jugador %s deja la sala %s", s.Name, r.Code)
	r.persist()
	return r.countSeats() == 0
}

// PlayerInfoList returns the public info of all occupied seats.
func (r *Room) PlayerInfoList() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]protocol.PlayerInfo, 0, engine.NumSeats)
	for i, s := range r.seats {
		if s != nil {
			infos = append(infos, r.playerInfo(engine.Seat(i)))
		}
	}
	return infos
}

// playerInfo builds the public view of one seat. Caller holds mu.
func (r *Room) playerInfo(seat engine.Seat) protocol.PlayerInfo {
	s := r.seats[seat]
	info := protocol.PlayerInfo{
		ID:        s.ID,
		Name:      s.Name,
		Seat:      int(seat),
		Team:      int(seat.Team()),
		Connected: s.Client != nil,
	}
	if r.game != nil {
		if p, err := r.game.Player(seat); err == nil {
			info.HandSize = len(p.Hand)
			info.LastAction = string(p.LastAction)
		}
	}
	return info
}

// SendState sends a player their redacted snapshot.
func (r *Room) SendState(playerID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seat, ok := r.seatOf(playerID)
	if !ok || r.game == nil {
		return
	}
	if s := r.seats[seat]; s != nil && s.Client != nil {
		s.Client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.game.SnapshotFor(seat)))
	}
}

// broadcastState pushes each seat its own redacted snapshot. Caller
// holds mu.
func (r *Room) broadcastState() {
	for i, s := range r.seats {
		if s == nil || s.Client == nil || r.game == nil {
			continue
		}
		s.Client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.game.SnapshotFor(engine.Seat(i))))
	}
}

// broadcast sends a frame to every connected seat. Caller holds mu.
func (r *Room) broadcast(msg *protocol.Message) {
	for _, s := range r.seats {
		if s != nil && s.Client != nil {
			s.Client.SendMessage(msg)
		}
	}
}

// broadcastExcept sends a frame to everyone but one player. Caller
// holds mu.
func (r *Room) broadcastExcept(playerID string, msg *protocol.Message) {
	for _, s := range r.seats {
		if s != nil && s.Client != nil && s.ID != playerID {
			s.Client.SendMessage(msg)
		}
	}
}

func (r *Room) sendError(playerID string, err error) {
	if seat, ok := r.seatOf(playerID); ok {
		r.sendErrorSeat(seat, err)
	}
}

func (r *Room) sendErrorSeat(seat engine.Seat, err error) {
	s := r.seats[seat]
	if s == nil || s.Client == nil {
		return
	}
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		s.Client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	s.Client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// persist saves an advisory snapshot in the background. Caller holds mu.
func (r *Room) persist() {
	if r.store == nil {
		return
	}
	data := &storage.RoomData{
		Code:      r.Code,
		Status:    r.status.String(),
		CreatedAt: r.CreatedAt.Unix(),
	}
	for i, s := range r.seats {
		if s == nil {
			continue
		}
		data.Players = append(data.Players, storage.PlayerData{
			ID:        s.ID,
			Name:      s.Name,
			Seat:      i,
			Team:      int(engine.Seat(i).Team()),
			Connected: s.Client != nil,
		})
	}
	if r.game != nil {
		view := r.game.Snapshot()
		data.Game = &view
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.SaveRoom(ctx, data); err != nil {
			log.Printf("❌ guardar sala %s: %v", r.Code, err)
		}
	}()
}
