package stats

import (
	"context"

	"timeline-stats/internal/riot"
)

// frameCutoffMillis bounds event processing: frames at or beyond this
// timestamp are excluded from the fold entirely.
const frameCutoffMillis = 930000

// ComputeMatchStats reduces a match timeline into a MatchStats snapshot.
//
// Participant names are resolved concurrently before any event is processed;
// a single failed lookup fails the whole computation. The fold itself is
// strictly sequential: frames in ascending time order, events in payload
// order, each dispatched through the handler table. Overwrite semantics
// (tower tiers, first blood, the snapshot pass) depend on that ordering.
func ComputeMatchStats(ctx context.Context, timeline *riot.TimelineResponse, resolver NameResolver) (*MatchStats, error) {
	participants := timeline.Info.Participants

	ids := make([]int, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ParticipantID)
	}

	matchStats := NewMatchStats(ids)

	names, err := resolveParticipantNames(ctx, resolver, participants)
	if err != nil {
		return nil, err
	}
	matchStats.ParticipantNames = names

	if len(timeline.Info.Frames) == 0 {
		return matchStats, nil
	}

	frames := make([]riot.TimelineFrame, 0, len(timeline.Info.Frames))
	for _, frame := range timeline.Info.Frames {
		if frame.Timestamp < frameCutoffMillis {
			frames = append(frames, frame)
		}
	}

	for i := range frames {
		for j := range frames[i].Events {
			event := &frames[i].Events[j]
			if err := handlerFor(event.Type)(event, matchStats); err != nil {
				return nil, err
			}
		}
	}

	// Snapshot pass: economy/level fields come from the last frame the event
	// loop visited, overwriting anything accumulated before. If the cutoff
	// filtered out every frame there is no snapshot source and the fields
	// stay zero.
	if len(frames) > 0 {
		last := frames[len(frames)-1]
		for _, pf := range last.ParticipantFrames {
			stats, ok := matchStats.ParticipantStats[pf.ParticipantID]
			if !ok {
				continue
			}
			stats.MinionsKilled = pf.MinionsKilled
			stats.MonstersKilled = pf.JungleMinionsKilled
			stats.Gold = pf.TotalGold
			stats.XP = pf.XP
			stats.Level = pf.Level
		}
	}

	return matchStats, nil
}
