package game

import (
	"math/rand"
	"time"
)

// WorldSize is the side length of the square play area. Spawn coordinates
// and client-reported positions live in [0, WorldSize).
const WorldSize = 4000.0

// OrbScore is the score awarded per collected orb.
const OrbScore = 10

// Quorum is the player count that auto-starts a waiting tournament.
const Quorum = 5

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Conn is the send half of a player's transport. Implementations must be
// safe to call from the hub goroutine while the reader side runs elsewhere.
type Conn interface {
	// TrySend queues the payload without blocking. It reports false when
	// the peer is closed or its queue is full; the caller skips it.
	TrySend(b []byte) bool
	Close()
}

// Player is the live session of one connected player inside one tournament.
// The hub goroutine owns all fields; Conn is the only part other goroutines
// touch.
type Player struct {
	ID           string
	Name         string
	Conn         Conn
	X            float64
	Y            float64
	Direction    float64 // radians
	Score        int
	Alive        bool
	Boosting     bool
	TournamentID string
	JoinOrder    int // monotonic insertion sequence, ranking tie-break
}

type Tournament struct {
	ID         string
	Name       string
	Status     Status
	StartTime  int64 // epoch ms; scheduled start while waiting, actual once active
	Duration   int   // minutes
	MaxPlayers int
	PrizePool  float64
	Players    map[string]*Player
}

// Config carries optional creation parameters; zero values get defaults.
type Config struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MaxPlayers   int     `json:"maxPlayers"`
	PrizePool    float64 `json:"prizePool"`
	Duration     int     `json:"duration"`
	DelayMinutes int     `json:"delayMinutes"`
}

const (
	DefaultName         = "New Tournament"
	DefaultMaxPlayers   = 50
	DefaultPrizePool    = 1.0
	DefaultDuration     = 10
	DefaultDelayMinutes = 2
)

// New builds a waiting tournament from cfg, applying defaults for unset
// fields. cfg.ID must already be resolved by the caller.
func New(cfg Config, now time.Time) *Tournament {
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}
	maxPlayers := cfg.MaxPlayers
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	prizePool := cfg.PrizePool
	if prizePool <= 0 {
		prizePool = DefaultPrizePool
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	delay := cfg.DelayMinutes
	if delay <= 0 {
		delay = DefaultDelayMinutes
	}
	return &Tournament{
		ID:         cfg.ID,
		Name:       name,
		Status:     StatusWaiting,
		StartTime:  now.Add(time.Duration(delay) * time.Minute).UnixMilli(),
		Duration:   duration,
		MaxPlayers: maxPlayers,
		PrizePool:  prizePool,
		Players:    make(map[string]*Player),
	}
}

func (t *Tournament) Full() bool {
	return len(t.Players) >= t.MaxPlayers
}

// Summary is the public-facing listing shape; it never exposes sessions.
type Summary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CurrentPlayers int     `json:"currentPlayers"`
	MaxPlayers     int     `json:"maxPlayers"`
	PrizePool      float64 `json:"prizePool"`
	Status         Status  `json:"status"`
	StartTime      int64   `json:"startTime"`
}

func (t *Tournament) Summary() Summary {
	return Summary{
		ID:             t.ID,
		Name:           t.Name,
		CurrentPlayers: len(t.Players),
		MaxPlayers:     t.MaxPlayers,
		PrizePool:      t.PrizePool,
		Status:         t.Status,
		StartTime:      t.StartTime,
	}
}

// PlayerState is a player's broadcast-safe snapshot.
type PlayerState struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction float64 `json:"direction"`
	Score     int     `json:"score"`
	Alive     bool    `json:"alive"`
}

func (p *Player) State() PlayerState {
	return PlayerState{
		ID:        p.ID,
		Name:      p.Name,
		X:         p.X,
		Y:         p.Y,
		Direction: p.Direction,
		Score:     p.Score,
		Alive:     p.Alive,
	}
}

// PlayerStates snapshots every player in join order.
func (t *Tournament) PlayerStates() []PlayerState {
	out := make([]PlayerState, 0, len(t.Players))
	for _, p := range byJoinOrder(t.Players) {
		out = append(out, p.State())
	}
	return out
}

// SpawnPosition picks a uniform random point inside the world square.
func SpawnPosition(rng *rand.Rand) (x, y float64) {
	return rng.Float64() * WorldSize, rng.Float64() * WorldSize
}
