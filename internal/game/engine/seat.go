package engine

import "fmt"

// NumSeats is the fixed number of seats at a mus table.
const NumSeats = 4

// Seat is one of the four table positions, 0..3. Seat parity determines
// the team, so partners sit across from each other.
type Seat int

// Valid reports whether s is a real seat.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Team returns the seat's team.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Next returns the seat clockwise from s.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

func (s Seat) String() string {
	return fmt.Sprintf("seat %d", int(s))
}

// DistanceFrom returns the clockwise distance from the mano seat used for
// tie-breaks. The mano itself counts as the farthest candidate (4), so the
// seat immediately after the mano wins ties first.
func (s Seat) DistanceFrom(mano Seat) int {
	d := (int(s) - int(mano) + NumSeats) % NumSeats
	if d == 0 {
		return NumSeats
	}
	return d
}

// Team is one of the two partnerships.
type Team int

const (
	TeamA Team = 0
	TeamB Team = 1
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	return 1 - t
}

func (t Team) String() string {
	return fmt.Sprintf("team %d", int(t))
}
