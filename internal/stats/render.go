package stats

import (
	"fmt"
	"io"
	"sort"
)

// WriteText renders the match stats in a human-readable layout
func (m *MatchStats) WriteText(w io.Writer, matchID string) {
	fmt.Fprintf(w, "=== Match %s ===\n", matchID)

	if m.FirstBloodBy != 0 {
		name := m.ParticipantNames[m.FirstBloodBy]
		if name == "" {
			name = fmt.Sprintf("participant %d", m.FirstBloodBy)
		}
		fmt.Fprintf(w, "First blood: %s\n", name)
	}

	writeTeam(w, "Blue", &m.Blue)
	writeTeam(w, "Red", &m.Red)

	ids := make([]int, 0, len(m.ParticipantStats))
	for id := range m.ParticipantStats {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Fprintf(w, "\n%-28s %5s %6s %7s %4s %7s %6s %6s %5s\n",
		"Participant", "Kills", "Deaths", "Assists", "CS", "Jungle", "Gold", "XP", "Level")
	for _, id := range ids {
		s := m.ParticipantStats[id]
		name := m.ParticipantNames[id]
		if name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		fmt.Fprintf(w, "%-28s %5d %6d %7d %4d %7d %6d %6d %5d\n",
			name, s.Kills, s.Deaths, s.Assists,
			s.MinionsKilled, s.MonstersKilled, s.Gold, s.XP, s.Level)
	}
}

func writeTeam(w io.Writer, side string, t *TeamStats) {
	fmt.Fprintf(w, "\n[%s] dragons: %d, heralds: %d\n", side, t.Dragons, t.Heralds)
	fmt.Fprintf(w, "  top: %s\n", laneSummary(&t.Top))
	fmt.Fprintf(w, "  mid: %s, nexus towers: %d\n", laneSummary(&t.Mid.LaneStats), t.Mid.NexusTowers)
	fmt.Fprintf(w, "  bot: %s\n", laneSummary(&t.Bot))
}

func laneSummary(l *LaneStats) string {
	inhib := "standing"
	if l.InhibDown {
		inhib = "down"
	}
	return fmt.Sprintf("plates: %d, towers: %d, inhib: %s", l.Plates, l.Towers, inhib)
}
