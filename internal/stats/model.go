package stats

import "fmt"

// Team IDs as they appear in timeline event payloads
const (
	BlueTeamID = 100
	RedTeamID  = 200
)

// Lane type enumerants from timeline event payloads
const (
	TopLane = "TOP_LANE"
	MidLane = "MID_LANE"
	BotLane = "BOT_LANE"
)

// LaneStats tracks objective progress for one lane on one side.
// Towers holds the deepest destroyed tier (1=outer, 2=inner, 3=base),
// set rather than incremented: events arrive in time order, so a later
// event for the same lane always reflects a deeper push.
type LaneStats struct {
	Plates    int  `json:"plates"`
	Towers    int  `json:"towers"`
	InhibDown bool `json:"inhibDown"`
}

// MidLaneStats is the mid lane variant: it additionally counts nexus
// towers, which only ever fall to a mid lane push. Top and bot lanes
// never carry this field.
type MidLaneStats struct {
	LaneStats
	NexusTowers int `json:"nexusTowers"`
}

// TeamStats tracks one side's objectives and its three lanes
type TeamStats struct {
	Dragons int          `json:"dragons"`
	Heralds int          `json:"heralds"`
	Top     LaneStats    `json:"top"`
	Mid     MidLaneStats `json:"mid"`
	Bot     LaneStats    `json:"bot"`
}

// ParticipantStats accumulates a single participant's combat and economy
// totals. Kills/Deaths/Assists are incremented by event handlers; the
// economy fields are overwritten by the final snapshot pass.
type ParticipantStats struct {
	Kills          int `json:"kills"`
	Deaths         int `json:"deaths"`
	Assists        int `json:"assists"`
	MinionsKilled  int `json:"minionsKilled"`
	MonstersKilled int `json:"monstersKilled"`
	Gold           int `json:"gold"`
	XP             int `json:"xp"`
	Level          int `json:"level"`
}

// MatchStats is the root aggregate for one match. The participant key set
// is fixed at construction and names are resolved once before reduction;
// everything else is mutated in place by event handlers during the fold
// and read-only afterwards.
type MatchStats struct {
	ParticipantStats map[int]*ParticipantStats `json:"participantStats"`
	ParticipantNames map[int]string            `json:"participantNames"`
	FirstBloodBy     int                       `json:"firstBloodBy"` // 0 = unset
	Blue             TeamStats                 `json:"blue"`
	Red              TeamStats                 `json:"red"`
}

// NewMatchStats constructs a MatchStats with one zeroed ParticipantStats
// per participant ID
func NewMatchStats(participantIDs []int) *MatchStats {
	m := &MatchStats{
		ParticipantStats: make(map[int]*ParticipantStats, len(participantIDs)),
		ParticipantNames: make(map[int]string, len(participantIDs)),
	}
	for _, id := range participantIDs {
		m.ParticipantStats[id] = &ParticipantStats{}
	}
	return m
}

// InvalidLaneAssignmentError indicates a (team ID, lane type) pair outside
// the six valid combinations. It is the only data-validation failure in the
// reduction and aborts the match it occurred in.
type InvalidLaneAssignmentError struct {
	TeamID   int
	LaneType string
}

func (e *InvalidLaneAssignmentError) Error() string {
	return fmt.Sprintf("team or lane assignment invalid: %d, %s", e.TeamID, e.LaneType)
}

// resolveLane returns the lane addressed by (teamID, laneType). For the mid
// lane the second return value exposes the mid-only fields; it is nil for
// top and bot, so nexus tower counts are only reachable through a mid lane.
func (m *MatchStats) resolveLane(teamID int, laneType string) (*LaneStats, *MidLaneStats, error) {
	var team *TeamStats
	switch teamID {
	case BlueTeamID:
		team = &m.Blue
	case RedTeamID:
		team = &m.Red
	default:
		return nil, nil, &InvalidLaneAssignmentError{TeamID: teamID, LaneType: laneType}
	}

	switch laneType {
	case TopLane:
		return &team.Top, nil, nil
	case MidLane:
		return &team.Mid.LaneStats, &team.Mid, nil
	case BotLane:
		return &team.Bot, nil, nil
	default:
		return nil, nil, &InvalidLaneAssignmentError{TeamID: teamID, LaneType: laneType}
	}
}
