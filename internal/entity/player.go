package entity

const (
	TokenX = "X"
	TokenO = "O"
)

// Player is one of the two participants of a session. Players are fixed at session start.
type Player struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}
