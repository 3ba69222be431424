package stats

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"timeline-stats/internal/riot"
)

// NameResolver maps an opaque player handle (PUUID) to a display name.
// Implemented by the Riot API client; lookups may fail.
type NameResolver interface {
	ResolveName(ctx context.Context, puuid string) (string, error)
}

// resolveParticipantNames looks up every participant's display name
// concurrently. Lookups are independent I/O-bound requests, so they fan out
// one goroutine each and join before returning. Any single failure cancels
// the remaining lookups and fails the whole resolution; partial name sets
// are never returned.
func resolveParticipantNames(ctx context.Context, resolver NameResolver, participants []riot.TimelineParticipant) (map[int]string, error) {
	names := make(map[int]string, len(participants))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range participants {
		p := p
		g.Go(func() error {
			name, err := resolver.ResolveName(ctx, p.PUUID)
			if err != nil {
				return err
			}
			mu.Lock()
			names[p.ParticipantID] = name
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}
