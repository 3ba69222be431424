package stats

import (
	"timeline-stats/internal/riot"
)

// Building and tower sub-types from BUILDING_KILL payloads
const (
	towerBuilding     = "TOWER_BUILDING"
	inhibitorBuilding = "INHIBITOR_BUILDING"

	outerTurret = "OUTER_TURRET"
	innerTurret = "INNER_TURRET"
	baseTurret  = "BASE_TURRET"
	nexusTurret = "NEXUS_TURRET"
)

// Monster and kill sub-types
const (
	monsterDragon     = "DRAGON"
	monsterRiftHerald = "RIFTHERALD"

	killFirstBlood = "KILL_FIRST_BLOOD"
)

// eventHandler mutates a bounded slice of the match aggregate for one event
type eventHandler func(event *riot.TimelineEvent, m *MatchStats) error

// eventHandlers maps event tags to their handlers. Lookup goes through
// handlerFor so unknown tags fall back to handleDefault instead of failing;
// adding support for a new tag is a one-line addition here.
var eventHandlers = map[string]eventHandler{
	"BUILDING_KILL":          handleBuildingKill,
	"CHAMPION_KILL":          handleChampionKill,
	"CHAMPION_SPECIAL_KILL":  handleChampionSpecialKill,
	"ELITE_MONSTER_KILL":     handleEliteMonsterKill,
	"TURRET_PLATE_DESTROYED": handleTurretPlateDestroyed,
}

// handlerFor returns the handler for an event tag, or the no-op default
// for unrecognized tags. Total: never fails regardless of tag value.
func handlerFor(eventType string) eventHandler {
	if h, ok := eventHandlers[eventType]; ok {
		return h
	}
	return handleDefault
}

// handleBuildingKill records a destroyed tower or inhibitor. Tower tiers are
// set, not incremented: a valid timeline never replays a lower tier after a
// higher one, so the last write for a lane is the deepest destroyed tower.
func handleBuildingKill(event *riot.TimelineEvent, m *MatchStats) error {
	lane, mid, err := m.resolveLane(event.TeamID, event.LaneType)
	if err != nil {
		return err
	}

	switch event.BuildingType {
	case towerBuilding:
		switch event.TowerType {
		case outerTurret:
			lane.Towers = 1
		case innerTurret:
			lane.Towers = 2
		case baseTurret:
			lane.Towers = 3
		case nexusTurret:
			// Nexus towers are only valid on the mid lane
			if mid == nil {
				return &InvalidLaneAssignmentError{TeamID: event.TeamID, LaneType: event.LaneType}
			}
			mid.NexusTowers++
		}
	case inhibitorBuilding:
		lane.InhibDown = true
	}

	return nil
}

// handleChampionKill attributes a kill to the killer, a death to the victim,
// and an assist to every assisting participant. Timelines omit the assist
// list entirely on solo kills; that is not an error.
func handleChampionKill(event *riot.TimelineEvent, m *MatchStats) error {
	for _, id := range event.AssistingParticipantIDs {
		if s, ok := m.ParticipantStats[id]; ok {
			s.Assists++
		}
	}

	if s, ok := m.ParticipantStats[event.KillerID]; ok {
		s.Kills++
	}
	if s, ok := m.ParticipantStats[event.VictimID]; ok {
		s.Deaths++
	}

	return nil
}

// handleChampionSpecialKill records the first blood. Last writer wins,
// though a valid timeline only ever carries one first blood.
func handleChampionSpecialKill(event *riot.TimelineEvent, m *MatchStats) error {
	if event.KillType == killFirstBlood {
		m.FirstBloodBy = event.KillerID
	}
	return nil
}

// handleEliteMonsterKill credits a dragon or herald to the killer's team.
// Other monster types (barons, void grubs) are ignored.
func handleEliteMonsterKill(event *riot.TimelineEvent, m *MatchStats) error {
	team := &m.Red
	if event.KillerTeamID == BlueTeamID {
		team = &m.Blue
	}

	switch event.MonsterType {
	case monsterDragon:
		team.Dragons++
	case monsterRiftHerald:
		team.Heralds++
	}

	return nil
}

// handleTurretPlateDestroyed credits a turret plate to the lane it fell in
func handleTurretPlateDestroyed(event *riot.TimelineEvent, m *MatchStats) error {
	lane, _, err := m.resolveLane(event.TeamID, event.LaneType)
	if err != nil {
		return err
	}
	lane.Plates++
	return nil
}

// handleDefault handles events with no special handler
func handleDefault(event *riot.TimelineEvent, m *MatchStats) error {
	return nil
}
