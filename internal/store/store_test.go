package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slithergg/tournament-backend/internal/game"
)

func TestRowsFromResult(t *testing.T) {
	ended := time.Now()
	r := game.Result{
		TournamentID:   "t1",
		TournamentName: "Finals",
		PrizePool:      1.0,
		EndedAt:        ended,
		Standings: []game.Standing{
			{Rank: 1, PlayerID: "p1", PlayerName: "ana", Score: 30, Prize: 0.5},
			{Rank: 2, PlayerID: "p2", PlayerName: "bo", Score: 20, Prize: 0.3},
		},
	}

	rows := rowsFromResult(r)
	require.Len(t, rows, 2)

	assert.Equal(t, "t1", rows[0].TournamentID)
	assert.Equal(t, "Finals", rows[0].TournamentName)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "ana", rows[0].PlayerName)
	assert.Equal(t, 0.5, rows[0].Prize)
	assert.Equal(t, ended, rows[0].EndedAt)

	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, "p2", rows[1].PlayerID)
}

func TestRowsFromResultEmpty(t *testing.T) {
	rows := rowsFromResult(game.Result{TournamentID: "t1"})
	assert.Empty(t, rows)
}
