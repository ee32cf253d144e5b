package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJoin(t *testing.T) {
	raw := []byte(`{"type":"player_join","playerId":"p1","data":{"id":"p1","name":"ana"}}`)
	m, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, TypePlayerJoin, m.Type)
	assert.Equal(t, "p1", m.PlayerID)

	d, err := DecodePayload[JoinData](m)
	require.NoError(t, err)
	assert.Equal(t, JoinData{ID: "p1", Name: "ana"}, d)
}

func TestDecodeMove(t *testing.T) {
	raw := []byte(`{"type":"player_move","playerId":"p1","data":{"x":12.5,"y":7,"direction":1.57}}`)
	m, err := Decode(raw)
	require.NoError(t, err)

	d, err := DecodePayload[MoveData](m)
	require.NoError(t, err)
	assert.Equal(t, 12.5, d.X)
	assert.Equal(t, 7.0, d.Y)
	assert.Equal(t, 1.57, d.Direction)
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"teleport","playerId":"p1","data":{}}`))
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestDecodeRejectsMissingType(t *testing.T) {
	_, err := Decode([]byte(`{"playerId":"p1","data":{}}`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeRejectsBadJSON(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodePayloadEmptyData(t *testing.T) {
	m := ClientMessage{Type: TypeOrbCollected}
	_, err := DecodePayload[OrbData](m)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestEncodeEnvelopeShape(t *testing.T) {
	b, err := Encode(ServerMessage{
		Type:     TypeOrbCollected,
		PlayerID: "p1",
		Data:     OrbCollectedData{OrbID: "o9", NewScore: 10},
	})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "orb_collected", out["type"])
	assert.Equal(t, "p1", out["playerId"])
	data, ok := out["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "o9", data["orbId"])
	assert.Equal(t, float64(10), data["newScore"])
}

func TestEncodeErrorShape(t *testing.T) {
	b, err := Encode(ServerMessage{Type: TypeError, Message: "Tournament is full"})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "error", out["type"])
	assert.Equal(t, "Tournament is full", out["message"])
	_, hasData := out["data"]
	assert.False(t, hasData, "error envelope should omit data")
}

func TestEncodeRequiresType(t *testing.T) {
	_, err := Encode(ServerMessage{})
	require.Error(t, err)
}
