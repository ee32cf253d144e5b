package game

import (
	"context"
	"sort"
	"time"
)

// prizeShares is the fixed split for ranks 1..3, applied progressively for
// the ranks that actually exist.
var prizeShares = []float64{0.5, 0.3, 0.2}

// PrizeSplit returns the payout per rank for the winners that exist. With a
// single survivor only the 50% share is produced; with none the list is
// empty.
func PrizeSplit(pool float64, winnerCount int) []float64 {
	n := winnerCount
	if n > len(prizeShares) {
		n = len(prizeShares)
	}
	prizes := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		prizes = append(prizes, pool*prizeShares[i])
	}
	return prizes
}

// RankWinners returns up to the top 3 alive players by descending score.
// Ties keep join order; there is no further tie-break.
func RankWinners(players map[string]*Player) []*Player {
	alive := make([]*Player, 0, len(players))
	for _, p := range byJoinOrder(players) {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	sort.SliceStable(alive, func(i, j int) bool {
		return alive[i].Score > alive[j].Score
	})
	if len(alive) > 3 {
		alive = alive[:3]
	}
	return alive
}

// byJoinOrder materializes the player map in insertion order so that every
// derived ordering is deterministic.
func byJoinOrder(players map[string]*Player) []*Player {
	out := make([]*Player, 0, len(players))
	for _, p := range players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinOrder < out[j].JoinOrder
	})
	return out
}

// Standing is one row of a tournament's final ranking.
type Standing struct {
	Rank       int
	PlayerID   string
	PlayerName string
	Score      int
	Prize      float64
}

// Result is the finished outcome handed to the (optional) archive.
type Result struct {
	TournamentID   string
	TournamentName string
	PrizePool      float64
	EndedAt        time.Time
	Standings      []Standing
}

// Archiver persists final standings somewhere durable. Implementations must
// tolerate being called from a short-lived goroutine after the tournament
// has already been broadcast as finished.
type Archiver interface {
	SaveResult(ctx context.Context, r Result) error
}

// BuildResult pairs ranked winners with their prize shares.
func BuildResult(t *Tournament, winners []*Player, prizes []float64, endedAt time.Time) Result {
	r := Result{
		TournamentID:   t.ID,
		TournamentName: t.Name,
		PrizePool:      t.PrizePool,
		EndedAt:        endedAt,
	}
	for i, w := range winners {
		var prize float64
		if i < len(prizes) {
			prize = prizes[i]
		}
		r.Standings = append(r.Standings, Standing{
			Rank:       i + 1,
			PlayerID:   w.ID,
			PlayerName: w.Name,
			Score:      w.Score,
			Prize:      prize,
		})
	}
	return r
}
