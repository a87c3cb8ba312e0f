package sharedtypes

// GameID identifies a game document.
type GameID string

// RoundID identifies a player's round within a game.
type RoundID string

// PlayerID identifies a player.
type PlayerID string

// TeamID identifies a team on a hole.
type TeamID string

// TeeID identifies a set of tees on a course.
type TeeID string

func (id GameID) String() string   { return string(id) }
func (id RoundID) String() string  { return string(id) }
func (id PlayerID) String() string { return string(id) }
func (id TeamID) String() string   { return string(id) }
func (id TeeID) String() string    { return string(id) }
