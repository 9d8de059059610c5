package apperrors

import (
	"github.com/DyLaNHurtado/mus-game-app/internal/protocol"
)

// GameError is an error value carrying a protocol code, shared by the
// engine, rooms and transport.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Predefined errors
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "la sala no existe"}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: "la sala está llena"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "no estás en una sala"}
	ErrGameStarted  = &GameError{Code: protocol.ErrCodeGameStarted, Message: "la partida ya ha empezado"}

	ErrInvalidTurn        = &GameError{Code: protocol.ErrCodeInvalidTurn, Message: "no es tu turno"}
	ErrInvalidPhaseAction = &GameError{Code: protocol.ErrCodeInvalidPhaseAction, Message: "acción no válida en esta fase"}
	ErrInvalidAmount      = &GameError{Code: protocol.ErrCodeInvalidAmount, Message: "cantidad de envido no válida"}
	ErrInvalidOrdago      = &GameError{Code: protocol.ErrCodeInvalidOrdago, Message: "no se puede cantar órdago en pares sin pares"}
	ErrInvalidDiscard     = &GameError{Code: protocol.ErrCodeInvalidDiscard, Message: "descarte no válido"}
	ErrSeatNotFound       = &GameError{Code: protocol.ErrCodeSeatNotFound, Message: "asiento no válido"}
	ErrRoomFinished       = &GameError{Code: protocol.ErrCodeRoomFinished, Message: "la partida ya ha terminado"}
	ErrNegativePoints     = &GameError{Code: protocol.ErrCodeNegativePoints, Message: "los puntos no pueden ser negativos"}
)
