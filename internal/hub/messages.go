package hub

import (
	"github.com/slithergg/tournament-backend/internal/game"
)

type Msg interface{ isHubMsg() }

// Connect is posted once per websocket right after the upgrade; the hub
// replies by pushing a tournament_state snapshot to the session (silently
// skipped when the tournament does not exist yet).
type Connect struct {
	TournamentID string
	Sess         game.Conn
}

// Join registers a player in a tournament, auto-creating the tournament
// with defaults when it is missing.
type Join struct {
	TournamentID string
	Sess         game.Conn
	PlayerID     string
	Name         string
}

// Move updates a player's client-reported position and heading.
type Move struct {
	PlayerID  string
	X         float64
	Y         float64
	Direction float64
}

// Boost records boosting intent. Movement while boosting is client
// predicted; the server neither persists nor broadcasts it.
type Boost struct {
	PlayerID string
	Boosting bool
}

// OrbCollected awards the fixed orb score to a player.
type OrbCollected struct {
	PlayerID string
	OrbID    string
}

// Disconnect removes whichever player owns the closing session. Repeats
// are no-ops.
type Disconnect struct {
	TournamentID string
	Sess         game.Conn
}

// Create ensures a tournament exists. An already-present id returns the
// existing record untouched.
type Create struct {
	Cfg   game.Config
	Reply chan game.Summary
}

// List requests the public summaries of every registered tournament.
type List struct {
	Reply chan []game.Summary
}

// Start, End and Remove drive the lifecycle state machine. They are posted
// by quorum joins and one-shot timers; all three are guarded no-ops when
// the tournament is missing or already past the transition.
type Start struct{ TournamentID string }

type End struct{ TournamentID string }

type Remove struct{ TournamentID string }

// GetState reflects internal state for tests without data races.
type GetState struct {
	TournamentID string
	Reply        chan View
}

type View struct {
	Exists     bool
	Status     game.Status
	NumPlayers int
	StartTime  int64
	Scores     map[string]int
}

type Shutdown struct{}

func (Connect) isHubMsg()      {}
func (Join) isHubMsg()         {}
func (Move) isHubMsg()         {}
func (Boost) isHubMsg()        {}
func (OrbCollected) isHubMsg() {}
func (Disconnect) isHubMsg()   {}
func (Create) isHubMsg()       {}
func (List) isHubMsg()         {}
func (Start) isHubMsg()        {}
func (End) isHubMsg()          {}
func (Remove) isHubMsg()       {}
func (GetState) isHubMsg()     {}
func (Shutdown) isHubMsg()     {}
