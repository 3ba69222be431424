package db

import (
	"context"
	"encoding/json"
	"fmt"

	"timeline-stats/internal/stats"
)

// SaveMatchStats upserts one computed match snapshot: a summary row with the
// team aggregates as JSON, plus one row per participant. Re-running a match
// ID replaces the earlier snapshot.
func (db *DB) SaveMatchStats(ctx context.Context, matchID string, m *stats.MatchStats) error {
	blueJSON, err := json.Marshal(m.Blue)
	if err != nil {
		return fmt.Errorf("failed to marshal blue team stats: %w", err)
	}
	redJSON, err := json.Marshal(m.Red)
	if err != nil {
		return fmt.Errorf("failed to marshal red team stats: %w", err)
	}

	_, err = db.pool.Exec(ctx, `
		INSERT INTO match_summaries (match_id, first_blood_by, blue, red, computed_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (match_id) DO UPDATE SET
			first_blood_by = EXCLUDED.first_blood_by,
			blue = EXCLUDED.blue,
			red = EXCLUDED.red,
			computed_at = EXCLUDED.computed_at
	`, matchID, m.FirstBloodBy, blueJSON, redJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert match summary: %w", err)
	}

	for id, s := range m.ParticipantStats {
		_, err := db.pool.Exec(ctx, `
			INSERT INTO match_participants (
				match_id, participant_id, name, kills, deaths, assists,
				minions_killed, monsters_killed, gold, xp, level
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (match_id, participant_id) DO UPDATE SET
				name = EXCLUDED.name,
				kills = EXCLUDED.kills,
				deaths = EXCLUDED.deaths,
				assists = EXCLUDED.assists,
				minions_killed = EXCLUDED.minions_killed,
				monsters_killed = EXCLUDED.monsters_killed,
				gold = EXCLUDED.gold,
				xp = EXCLUDED.xp,
				level = EXCLUDED.level
		`, matchID, id, m.ParticipantNames[id], s.Kills, s.Deaths, s.Assists,
			s.MinionsKilled, s.MonstersKilled, s.Gold, s.XP, s.Level)
		if err != nil {
			return fmt.Errorf("failed to upsert participant %d: %w", id, err)
		}
	}

	return nil
}

// MatchExists checks if a match snapshot is already stored
func (db *DB) MatchExists(ctx context.Context, matchID string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM match_summaries WHERE match_id = $1)
	`, matchID).Scan(&exists)
	return exists, err
}

// GetMatchCount returns the total number of stored match snapshots
func (db *DB) GetMatchCount(ctx context.Context) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM match_summaries`).Scan(&count)
	return count, err
}
