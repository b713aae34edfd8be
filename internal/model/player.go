package model

// Player is a participant in a session. Color is empty until the player has
// been seated.
type Player struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
}

// Seats tracks who plays which side of a session.
type Seats struct {
	White Player `json:"white"`
	Black Player `json:"black"`
}

// Seat assigns playerID to the first free side. It reports false when both
// sides are taken.
func (s *Seats) Seat(playerID string) (Color, bool) {
	if s.White.ID == "" {
		s.White = Player{ID: playerID, Color: White}
		return White, true
	}
	if s.Black.ID == "" {
		s.Black = Player{ID: playerID, Color: Black}
		return Black, true
	}
	return "", false
}

// ColorOf returns the side playerID is seated on.
func (s *Seats) ColorOf(playerID string) (Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case s.White.ID == playerID:
		return White, true
	case s.Black.ID == playerID:
		return Black, true
	}
	return "", false
}

func (s *Seats) Full() bool {
	return s.White.ID != "" && s.Black.ID != ""
}
