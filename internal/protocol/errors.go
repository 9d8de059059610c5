package protocol

// Error codes
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004

	ErrCodeInvalidTurn        = 3001
	ErrCodeInvalidPhaseAction = 3002
	ErrCodeInvalidAmount      = 3003
	ErrCodeInvalidOrdago      = 3004
	ErrCodeInvalidDiscard     = 3005
	ErrCodeSeatNotFound       = 3006
	ErrCodeRoomFinished       = 3007
	ErrCodeNegativePoints     = 3008
)

// ErrorMessages maps error codes to their default user-facing text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:            "error desconocido",
	ErrCodeInvalidMsg:         "mensaje no válido",
	ErrCodeRoomNotFound:       "la sala no existe",
	ErrCodeRoomFull:           "la sala está llena",
	ErrCodeNotInRoom:          "no estás en una sala",
	ErrCodeGameStarted:        "la partida ya ha empezado",
	ErrCodeInvalidTurn:        "no es tu turno",
	ErrCodeInvalidPhaseAction: "acción no válida en esta fase",
	ErrCodeInvalidAmount:      "cantidad de envido no válida",
	ErrCodeInvalidOrdago:      "no se puede cantar órdago en pares sin pares",
	ErrCodeInvalidDiscard:     "descarte no válido",
	ErrCodeSeatNotFound:       "asiento no válido",
	ErrCodeRoomFinished:       "la partida ya ha terminado",
	ErrCodeNegativePoints:     "los puntos no pueden ser negativos",
}
