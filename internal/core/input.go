package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionPowerUp1        // 1 - select first avatar power-up
	ActionPowerUp2        // 2 - select second avatar power-up
	ActionPowerUp3        // 3 - select third avatar power-up
	ActionNextWave        // N - call the next wave early
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart stage after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPowerUp1:
		return "PowerUp1"
	case ActionPowerUp2:
		return "PowerUp2"
	case ActionPowerUp3:
		return "PowerUp3"
	case ActionNextWave:
		return "NextWave"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PowerUpSlot returns the avatar power-up slot selected by the action.
func (a Action) PowerUpSlot() (int, bool) {
	switch a {
	case ActionPowerUp1:
		return 0, true
	case ActionPowerUp2:
		return 1, true
	case ActionPowerUp3:
		return 2, true
	}
	return 0, false
}
