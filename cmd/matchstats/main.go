package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"timeline-stats/internal/db"
	"timeline-stats/internal/discord"
	"timeline-stats/internal/riot"
	"timeline-stats/internal/stats"
	"timeline-stats/internal/storage"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	// Parse flags
	cacheDir := flag.String("cache-dir", "./timeline-cache", "Directory for cached timelines")
	noCache := flag.Bool("no-cache", false, "Always fetch timelines from the API")
	noDB := flag.Bool("no-db", false, "Skip persisting snapshots even if DATABASE_URL is set")
	noWebhook := flag.Bool("no-webhook", false, "Skip Discord notifications")
	asJSON := flag.Bool("json", false, "Print snapshots as JSON instead of text")
	flag.Parse()

	matchIDs := flag.Args()
	if len(matchIDs) == 0 {
		fmt.Println("Usage:")
		fmt.Println("  matchstats [flags] MATCH_ID [MATCH_ID ...]")
		fmt.Println()
		fmt.Println("Computes a per-match statistics snapshot from the match timeline:")
		fmt.Println("team objectives, lane tower/plate/inhibitor progress, and")
		fmt.Println("per-participant combat and economy totals.")
		fmt.Println()
		fmt.Println("RIOT_API_KEY must be set (in the environment or a .env file).")
		fmt.Println("Optional: DATABASE_URL (Postgres), TURSO_DATABASE_URL, DISCORD_WEBHOOK_URL.")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n[Shutdown] Cancelling...")
		cancel()
	}()

	// Validate the API key before doing any work
	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("RIOT-DEV-KEY")
	}
	validator := riot.NewKeyValidator()
	if valid, err := validator.ValidateKey(ctx, apiKey); err != nil {
		log.Printf("Warning: could not validate API key: %v", err)
	} else if !valid {
		log.Fatal("Riot API key is invalid or expired")
	}

	client, err := riot.NewClient()
	if err != nil {
		log.Fatalf("Failed to create Riot client: %v", err)
	}

	var cache *storage.TimelineCache
	if !*noCache {
		cache, err = storage.NewTimelineCache(strings.TrimSpace(*cacheDir))
		if err != nil {
			log.Fatalf("Failed to open timeline cache: %v", err)
		}
	}

	var store *db.DB
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" && !*noDB {
		store, err = db.NewDB(ctx, dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer store.Close()
		if err := store.CreateTables(ctx); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
	}

	var turso *db.TursoClient
	if tursoURL := os.Getenv("TURSO_DATABASE_URL"); tursoURL != "" && !*noDB {
		turso, err = db.NewTursoClient(tursoURL, os.Getenv("TURSO_AUTH_TOKEN"))
		if err != nil {
			log.Fatalf("Failed to connect to Turso: %v", err)
		}
		defer turso.Close()
		if err := turso.CreateTables(ctx); err != nil {
			log.Fatalf("Failed to create Turso tables: %v", err)
		}
	}

	var webhook *discord.WebhookClient
	if webhookURL := os.Getenv("DISCORD_WEBHOOK_URL"); webhookURL != "" && !*noWebhook {
		webhook = discord.NewWebhookClient(webhookURL)
	}

	// Each match ID is an independent unit of work: a failure is reported
	// and the remaining IDs still run.
	failed := 0
	for _, matchID := range matchIDs {
		select {
		case <-ctx.Done():
			fmt.Println("[Shutdown] Stopping before remaining matches")
			os.Exit(1)
		default:
		}

		if err := processMatch(ctx, matchID, client, cache, store, turso, webhook, *asJSON); err != nil {
			log.Printf("Match %s failed: %v", matchID, err)
			failed++
			if webhook != nil {
				if werr := webhook.SendMatchFailed(ctx, matchID, err); werr != nil {
					log.Printf("Webhook notification failed: %v", werr)
				}
			}
		}
	}

	if store != nil {
		if count, err := store.GetMatchCount(ctx); err != nil {
			log.Printf("Could not read stored match count: %v", err)
		} else {
			fmt.Printf("[DB] %d match snapshots stored\n", count)
		}
	}

	if failed > 0 {
		log.Printf("%d of %d matches failed", failed, len(matchIDs))
		os.Exit(1)
	}
}

// processMatch fetches (or loads from cache) one timeline, reduces it, and
// fans the snapshot out to stdout and the configured sinks
func processMatch(ctx context.Context, matchID string, client *riot.Client,
	cache *storage.TimelineCache, store *db.DB, turso *db.TursoClient,
	webhook *discord.WebhookClient, asJSON bool) error {

	timeline, err := fetchTimeline(ctx, matchID, client, cache)
	if err != nil {
		return fmt.Errorf("fetch timeline: %w", err)
	}

	matchStats, err := stats.ComputeMatchStats(ctx, timeline, client)
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(matchStats); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
	} else {
		matchStats.WriteText(os.Stdout, matchID)
		fmt.Println()
	}

	if store != nil {
		// Snapshots are deterministic for a finished match, so an ID that
		// is already stored does not need another write.
		exists, err := store.MatchExists(ctx, matchID)
		if err != nil {
			return fmt.Errorf("check existing snapshot: %w", err)
		}
		if exists {
			fmt.Printf("[DB] Snapshot for %s already stored, skipping save\n", matchID)
		} else if err := store.SaveMatchStats(ctx, matchID, matchStats); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
	}
	if turso != nil {
		if err := turso.PublishMatch(ctx, matchID, matchStats); err != nil {
			return fmt.Errorf("publish snapshot: %w", err)
		}
	}
	if webhook != nil {
		if err := webhook.SendMatchProcessed(ctx, matchID, matchStats); err != nil {
			// Notification failure shouldn't fail an otherwise processed match
			log.Printf("Webhook notification failed for %s: %v", matchID, err)
		}
	}

	return nil
}

// fetchTimeline loads a timeline from the cache when possible, falling back
// to the API and caching the response
func fetchTimeline(ctx context.Context, matchID string, client *riot.Client, cache *storage.TimelineCache) (*riot.TimelineResponse, error) {
	if cache != nil {
		timeline, ok, err := cache.Get(matchID)
		if err != nil {
			log.Printf("Cache read failed for %s: %v (refetching)", matchID, err)
		} else if ok {
			fmt.Printf("[Cache] Using cached timeline for %s\n", matchID)
			return timeline, nil
		}
	}

	timeline, err := client.GetTimeline(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Put(matchID, timeline); err != nil {
			log.Printf("Cache write failed for %s: %v", matchID, err)
		}
	}

	return timeline, nil
}
