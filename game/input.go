package game

// Intent is the player input for one step. A window front end fills it
// from the keyboard; headless runs use a script.
type Intent struct {
	Left, Right bool
	Up          bool // jump, only honoured when grounded
	Down        bool // nudge down through the probe
}

