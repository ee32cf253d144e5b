// Package protocol defines the JSON wire format between game clients and
// the server.
//
// Client -> Server, each {type, playerId, data}:
//
//	player_join:   data {id, name}
//	player_move:   data {x, y, direction}
//	player_boost:  data {boosting}
//	orb_collected: data {orbId}
//
// Server -> Client, each {type, data} (some also carry playerId):
//
//	tournament_state, player_join, player_move, player_left, orb_collected,
//	tournament_start, tournament_end, game_update, error
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slithergg/tournament-backend/internal/game"
)

const (
	TypePlayerJoin      = "player_join"
	TypePlayerMove      = "player_move"
	TypePlayerBoost     = "player_boost"
	TypeOrbCollected    = "orb_collected"
	TypePlayerLeft      = "player_left"
	TypeTournamentState = "tournament_state"
	TypeTournamentStart = "tournament_start"
	TypeTournamentEnd   = "tournament_end"
	TypeGameUpdate      = "game_update"
	TypeError           = "error"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// ClientMessage is one inbound envelope. Data stays raw until the tag has
// been matched to its payload type.
type ClientMessage struct {
	Type     string          `json:"type"`
	PlayerID string          `json:"playerId"`
	Data     json.RawMessage `json:"data"`
}

type JoinData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MoveData struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction float64 `json:"direction"`
}

type BoostData struct {
	Boosting bool `json:"boosting"`
}

type OrbData struct {
	OrbID string `json:"orbId"`
}

// Decode parses an inbound envelope. Unknown or missing tags are rejected
// here so handlers only ever see the enumerated message kinds.
func Decode(b []byte) (ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return ClientMessage{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch m.Type {
	case TypePlayerJoin, TypePlayerMove, TypePlayerBoost, TypeOrbCollected:
		return m, nil
	case "":
		return ClientMessage{}, fmt.Errorf("%w: missing type tag", ErrMalformed)
	default:
		return ClientMessage{}, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}

// DecodePayload unmarshals the envelope's data into the payload type for
// its tag.
func DecodePayload[T any](m ClientMessage) (T, error) {
	var out T
	if len(m.Data) == 0 {
		return out, fmt.Errorf("%w: empty payload for %q", ErrMalformed, m.Type)
	}
	if err := json.Unmarshal(m.Data, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// ServerMessage is one outbound envelope. Message is only set for the
// error type, mirroring the shape clients already parse.
type ServerMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId,omitempty"`
	Message  string `json:"message,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// Encode marshals an outbound envelope once; broadcast fan-out reuses the
// same bytes for every recipient.
func Encode(m ServerMessage) ([]byte, error) {
	if m.Type == "" {
		return nil, fmt.Errorf("encode: empty message type")
	}
	return json.Marshal(m)
}

// Outbound payload shapes.

type TournamentStateData struct {
	TournamentID string             `json:"tournamentId"`
	Players      []game.PlayerState `json:"players"`
	Status       game.Status        `json:"status"`
	StartTime    int64              `json:"startTime"`
}

type PlayerJoinData struct {
	PlayerID string           `json:"playerId"`
	Player   game.PlayerState `json:"player"`
}

type OrbCollectedData struct {
	OrbID    string `json:"orbId"`
	NewScore int    `json:"newScore"`
}

type TournamentStartData struct {
	StartTime int64 `json:"startTime"`
}

type WinnerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type TournamentEndData struct {
	Winners           []WinnerSummary `json:"winners"`
	PrizeDistribution []float64       `json:"prizeDistribution"`
}

type GameUpdateData struct {
	Players   []game.PlayerState `json:"players"`
	Timestamp int64              `json:"timestamp"`
}
