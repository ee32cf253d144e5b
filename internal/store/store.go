// Package store archives final tournament standings to Postgres. Live game
// state stays in memory; only finished results land here, best-effort.
package store

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/slithergg/tournament-backend/internal/game"
)

type StandingRow struct {
	ID             uint   `gorm:"primaryKey"`
	TournamentID   string `gorm:"index"`
	TournamentName string
	Rank           int
	PlayerID       string
	PlayerName     string
	Score          int
	Prize          float64
	EndedAt        time.Time
}

func (StandingRow) TableName() string { return "tournament_standings" }

type Archive struct {
	db *gorm.DB
}

func Open(dsn string) (*Archive, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&StandingRow{}); err != nil {
		return nil, err
	}
	return &Archive{db: db}, nil
}

// SaveResult implements game.Archiver.
func (a *Archive) SaveResult(ctx context.Context, r game.Result) error {
	rows := rowsFromResult(r)
	if len(rows) == 0 {
		return nil
	}
	return a.db.WithContext(ctx).Create(&rows).Error
}

func rowsFromResult(r game.Result) []StandingRow {
	rows := make([]StandingRow, 0, len(r.Standings))
	for _, s := range r.Standings {
		rows = append(rows, StandingRow{
			TournamentID:   r.TournamentID,
			TournamentName: r.TournamentName,
			Rank:           s.Rank,
			PlayerID:       s.PlayerID,
			PlayerName:     s.PlayerName,
			Score:          s.Score,
			Prize:          s.Prize,
			EndedAt:        r.EndedAt,
		})
	}
	return rows
}
