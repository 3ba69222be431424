package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"timeline-stats/internal/stats"
)

// Test: snapshot round trip against a real Postgres instance
func TestSaveMatchStats_Integration(t *testing.T) {
	godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()

	database, err := NewDB(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.CreateTables(ctx); err != nil {
		t.Fatalf("Failed to create tables: %v", err)
	}

	matchID := fmt.Sprintf("TEST_%d", time.Now().UnixNano())

	exists, err := database.MatchExists(ctx, matchID)
	if err != nil {
		t.Fatalf("MatchExists failed: %v", err)
	}
	if exists {
		t.Fatalf("Match %s should not exist before save", matchID)
	}

	m := stats.NewMatchStats([]int{1, 2})
	m.ParticipantNames[1] = "Faker#KR1"
	m.ParticipantNames[2] = "Chovy#KR1"
	m.FirstBloodBy = 1
	m.ParticipantStats[1].Kills = 3
	m.Blue.Dragons = 2
	m.Blue.Mid.Towers = 2

	if err := database.SaveMatchStats(ctx, matchID, m); err != nil {
		t.Fatalf("SaveMatchStats failed: %v", err)
	}

	exists, err = database.MatchExists(ctx, matchID)
	if err != nil {
		t.Fatalf("MatchExists failed: %v", err)
	}
	if !exists {
		t.Errorf("Match %s should exist after save", matchID)
	}

	count, err := database.GetMatchCount(ctx)
	if err != nil {
		t.Fatalf("GetMatchCount failed: %v", err)
	}
	if count < 1 {
		t.Errorf("Match count = %d, want at least 1", count)
	}

	// Saving the same ID again must replace, not duplicate
	if err := database.SaveMatchStats(ctx, matchID, m); err != nil {
		t.Fatalf("Second SaveMatchStats failed: %v", err)
	}
	countAfter, err := database.GetMatchCount(ctx)
	if err != nil {
		t.Fatalf("GetMatchCount failed: %v", err)
	}
	if countAfter != count {
		t.Errorf("Match count after re-save = %d, want %d", countAfter, count)
	}
}
