package room

import (
	"log"
	"time"

	"github.com/DyLaNHurtado/mus-game-app/internal/apperrors"
	"github.com/DyLaNHurtado/mus-game-app/internal/game/engine"
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

// startTurnTimer arms the turn clock for the current phase. Caller
// holds mu.
func (r *Room) startTurnTimer() {
	if r.game == nil {
		return
	}
	phase := r.game.Phase()
	if phase == engine.PhaseCounting || phase == engine.PhaseFinished {
		return
	}

	r.timerMu.Lock()
	defer r.timerMu.Unlock()

	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	timeout := r.gameCfg.TurnTimeoutDuration()
	r.timerStart = time.Now()
	r.remaining = timeout
	r.turnTimer = time.AfterFunc(timeout, r.handleTurnTimeout)
}

// stopTurnTimer cancels the turn clock. Caller holds mu.
func (r *Room) stopTurnTimer() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
}

// stopAllTimers cancels everything. Caller holds mu.
func (r *Room) stopAllTimers() {
	r.timerMu.Lock()
	defer r.timerMu.Unlock()
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	if r.newHandTimer != nil {
		r.newHandTimer.Stop()
		r.newHandTimer = nil
	}
	for i, t := range r.reconnectTimers {
		if t != nil {
			t.Stop()
			r.reconnectTimers[i] = nil
		}
	}
}

// handleTurnTimeout synthesizes the default action for whoever stalled:
// no-mus in the mus talk, a full discard in the discard round, rechazo
// against a pending wager and paso otherwise.
func (r *Room) handleTurnTimeout() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPlaying || r.game == nil {
		return
	}
	phase := r.game.Phase()

	switch {
	case phase == engine.PhaseMus && r.game.DiscardStep():
		r.timeoutDiscards()
	case phase == engine.PhaseMus:
		seat, ok := r.firstPendingMusSeat()
		if !ok {
			return
		}
		log.Printf("⏰ sala %s: mus agotado, %s corta", r.Code, seat)
		r.applyAction(seat, engine.NoMus{})
	case phase.IsBetting():
		seat := r.game.Turn()
		var action engine.Action = engine.Paso{}
		if r.game.Snapshot().PendingBet != nil {
			action = engine.Rechazo{}
		}
		log.Printf("⏰ sala %s: turno agotado en %s", r.Code, seat)
		r.applyAction(seat, action)
	}
}

// timeoutDiscards force-discards the whole hand of every seat that never
// answered, closing the round. Caller holds mu.
func (r *Room) timeoutDiscards() {
	all := []int{0, 1, 2, 3}
	for i := range r.seats {
		seat := engine.Seat(i)
		p, err := r.game.Player(seat)
		if err != nil || p.Discarded || !p.Connected {
			continue
		}
		out := r.game.SubmitDiscard(seat, all)
		if out.Err != nil {
			log.Printf("❌ sala %s: descarte forzoso %s: %v", r.Code, seat, out.Err)
			continue
		}
		if s := r.seats[seat]; s != nil && s.Client != nil {
			if np, err := r.game.Player(seat); err == nil {
				s.Client.SendMessage(protocol.MustNewMessage(protocol.MsgDealCards, protocol.DealCardsPayload{
					Cards:      np.Hand,
					HandNumber: r.game.HandNumber(),
				}))
			}
		}
		if out.PhaseComplete {
			r.afterOutcome(seat, engine.KindMus, 0, out)
			return
		}
	}
}

// firstPendingMusSeat finds a connected seat that has not spoken in the
// mus talk. Caller holds mu.
func (r *Room) firstPendingMusSeat() (engine.Seat, bool) {
	for i := range r.seats {
		seat := engine.Seat(i)
		p, err := r.game.Player(seat)
		if err != nil || !p.Connected {
			continue
		}
		if p.LastAction == "" {
			return seat, true
		}
	}
	return 0, false
}

// MarkOffline flags a player's seat as disconnected, pauses the clock if
// it was their turn and arms the reconnection grace timer.
func (r *Room) MarkOffline(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok {
		return
	}
	r.markOffline(seat)
}

// markOffline is the lock-held body of MarkOffline.
func (r *Room) markOffline(seat engine.Seat) {
	s := r.seats[seat]
	s.Client = nil

	if r.game != nil {
		_ = r.game.SetConnected(seat, false)
	}

	allOffline := true
	for _, other := range r.seats {
		if other != nil && other.Client != nil {
			allOffline = false
		}
	}
	if allOffline {
		r.status = StatusFinished
		r.stopAllTimers()
		log.Printf("🧹 sala %s: todos desconectados", r.Code)
		return
	}

	r.broadcast(protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
		PlayerID:   s.ID,
		PlayerName: s.Name,
		Timeout:    r.gameCfg.ReconnectTimeout,
	}))

	if r.status != StatusPlaying || r.game == nil {
		return
	}

	r.timerMu.Lock()
	// Pause the turn clock while its owner is away.
	if r.game.Turn() == seat && r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
		r.remaining = r.remaining - time.Since(r.timerStart)
		if r.remaining < 0 {
			r.remaining = 0
		}
	}
	id := s.ID
	r.reconnectTimers[seat] = time.AfterFunc(r.gameCfg.ReconnectTimeoutDuration(), func() {
		r.handleReconnectTimeout(id)
	})
	r.timerMu.Unlock()

	log.Printf("📴 jugador %s desconectado de %s (espera %ds)", s.Name, r.Code, r.gameCfg.ReconnectTimeout)
}

// Reconnect swaps in a fresh connection for a seat that went offline.
func (r *Room) Reconnect(playerID string, client ClientConn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok {
		return apperrors.ErrNotInRoom
	}
	s := r.seats[seat]
	s.Client = client
	client.SetRoom(r.Code)

	if r.game != nil {
		_ = r.game.SetConnected(seat, true)
	}

	r.timerMu.Lock()
	if t := r.reconnectTimers[seat]; t != nil {
		t.Stop()
		r.reconnectTimers[seat] = nil
	}
	// Resume the paused clock if it was this seat's turn.
	if r.status == StatusPlaying && r.game != nil && r.game.Turn() == seat &&
		r.turnTimer == nil && r.remaining > 0 {
		r.timerStart = time.Now()
		r.turnTimer = time.AfterFunc(r.remaining, r.handleTurnTimeout)
	}
	r.timerMu.Unlock()

	r.broadcastExcept(playerID, protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID:   s.ID,
		PlayerName: s.Name,
	}))

	// Bring the reconnected player up to date.
	if r.game != nil {
		client.SendMessage(protocol.MustNewMessage(protocol.MsgGameState, r.game.SnapshotFor(seat)))
	}

	log.Printf("📶 jugador %s reconectado a %s", s.Name, r.Code)
	return nil
}

// handleReconnectTimeout fires when the grace period lapses: the match
// keeps going and the absent seat plays defaults through the turn clock.
func (r *Room) handleReconnectTimeout(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.seatOf(playerID)
	if !ok || r.status != StatusPlaying || r.game == nil {
		return
	}
	if r.seats[seat].Client != nil {
		return // reconnected in the meantime
	}

	log.Printf("⏰ jugador %s no ha vuelto a %s", r.seats[seat].Name, r.Code)

	// If the match was waiting on this seat, play its default now.
	if r.game.Turn() == seat && r.game.Phase().IsBetting() {
		var action engine.Action = engine.Paso{}
		if r.game.Snapshot().PendingBet != nil {
			action = engine.Rechazo{}
		}
		r.applyAction(seat, action)
		return
	}
	if r.game.Phase() == engine.PhaseMus {
		if r.game.DiscardStep() {
			r.timeoutDiscards()
		} else if p, err := r.game.Player(seat); err == nil && p.LastAction == "" {
			r.applyAction(seat, engine.NoMus{})
		}
	}
}
