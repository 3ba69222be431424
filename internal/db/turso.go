package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"timeline-stats/internal/stats"
)

// TursoClient wraps a connection to Turso, where computed snapshots are
// published for the overlay frontend
type TursoClient struct {
	db *sql.DB
}

// NewTursoClient creates a new Turso client
func NewTursoClient(url, authToken string) (*TursoClient, error) {
	connStr := url
	if authToken != "" {
		connStr = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Turso: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping Turso: %w", err)
	}

	return &TursoClient{db: db}, nil
}

// Close closes the Turso connection
func (c *TursoClient) Close() error {
	return c.db.Close()
}

// CreateTables creates the required tables if they don't exist
func (c *TursoClient) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS match_meta (
			match_id TEXT PRIMARY KEY,
			first_blood_by INTEGER NOT NULL DEFAULT 0,
			blue_dragons INTEGER NOT NULL DEFAULT 0,
			blue_heralds INTEGER NOT NULL DEFAULT 0,
			red_dragons INTEGER NOT NULL DEFAULT 0,
			red_heralds INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS match_objectives (
			match_id TEXT NOT NULL,
			team TEXT NOT NULL,
			lane TEXT NOT NULL,
			plates INTEGER NOT NULL DEFAULT 0,
			towers INTEGER NOT NULL DEFAULT 0,
			inhib_down INTEGER NOT NULL DEFAULT 0,
			nexus_towers INTEGER,
			PRIMARY KEY (match_id, team, lane)
		)`,
		`CREATE TABLE IF NOT EXISTS match_participants (
			match_id TEXT NOT NULL,
			participant_id INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			kills INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			assists INTEGER NOT NULL DEFAULT 0,
			minions_killed INTEGER NOT NULL DEFAULT 0,
			monsters_killed INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (match_id, participant_id)
		)`,
	}

	for _, query := range queries {
		if _, err := c.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// PublishMatch replaces the published snapshot for one match
func (c *TursoClient) PublishMatch(ctx context.Context, matchID string, m *stats.MatchStats) error {
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO match_meta (
			match_id, first_blood_by, blue_dragons, blue_heralds,
			red_dragons, red_heralds, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, matchID, m.FirstBloodBy, m.Blue.Dragons, m.Blue.Heralds,
		m.Red.Dragons, m.Red.Heralds, now)
	if err != nil {
		return fmt.Errorf("failed to publish match meta: %w", err)
	}

	type laneRow struct {
		team  string
		lane  string
		stats *stats.LaneStats
		nexus *int
	}
	lanes := []laneRow{
		{"blue", "top", &m.Blue.Top, nil},
		{"blue", "mid", &m.Blue.Mid.LaneStats, &m.Blue.Mid.NexusTowers},
		{"blue", "bot", &m.Blue.Bot, nil},
		{"red", "top", &m.Red.Top, nil},
		{"red", "mid", &m.Red.Mid.LaneStats, &m.Red.Mid.NexusTowers},
		{"red", "bot", &m.Red.Bot, nil},
	}

	for _, row := range lanes {
		inhib := 0
		if row.stats.InhibDown {
			inhib = 1
		}
		var nexus interface{}
		if row.nexus != nil {
			nexus = *row.nexus
		}
		_, err := c.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO match_objectives (
				match_id, team, lane, plates, towers, inhib_down, nexus_towers
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`, matchID, row.team, row.lane, row.stats.Plates, row.stats.Towers, inhib, nexus)
		if err != nil {
			return fmt.Errorf("failed to publish %s %s lane: %w", row.team, row.lane, err)
		}
	}

	for id, s := range m.ParticipantStats {
		_, err := c.db.ExecContext(ctx, `
			INSERT OR REPLACE INTO match_participants (
				match_id, participant_id, name, kills, deaths, assists,
				minions_killed, monsters_killed, gold, xp, level
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, matchID, id, m.ParticipantNames[id], s.Kills, s.Deaths, s.Assists,
			s.MinionsKilled, s.MonstersKilled, s.Gold, s.XP, s.Level)
		if err != nil {
			return fmt.Errorf("failed to publish participant %d: %w", id, err)
		}
	}

	return nil
}
