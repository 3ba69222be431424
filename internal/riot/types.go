package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-puuid
// and /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// DisplayName returns the player's Riot ID in "GameName#TagLine" form
func (a *AccountResponse) DisplayName() string {
	if a.TagLine == "" {
		return a.GameName
	}
	return a.GameName + "#" + a.TagLine
}

// TimelineResponse represents the response from /lol/match/v5/matches/{matchId}/timeline
type TimelineResponse struct {
	Metadata TimelineMetadata `json:"metadata"`
	Info     TimelineInfo     `json:"info"`
}

type TimelineMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type TimelineInfo struct {
	FrameInterval int                   `json:"frameInterval"`
	Participants  []TimelineParticipant `json:"participants"`
	Frames        []TimelineFrame       `json:"frames"`
}

// TimelineParticipant maps a participant ID (1-10) to the player's PUUID
type TimelineParticipant struct {
	ParticipantID int    `json:"participantId"`
	PUUID         string `json:"puuid"`
}

// TimelineFrame is one slice of the match timeline: the events that occurred
// during the interval plus a per-participant economic snapshot at its end.
// ParticipantFrames is keyed by participant ID as a string ("1" through "10").
type TimelineFrame struct {
	Timestamp         int                         `json:"timestamp"`
	Events            []TimelineEvent             `json:"events"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
}

// TimelineEvent carries the union of fields across the event types we handle.
// Fields that don't apply to a given type stay at their zero value after JSON
// decoding; AssistingParticipantIDs is nil when the payload omits it entirely.
type TimelineEvent struct {
	Type      string `json:"type"`
	Timestamp int    `json:"timestamp"`

	// BUILDING_KILL / TURRET_PLATE_DESTROYED
	TeamID       int    `json:"teamId,omitempty"`
	LaneType     string `json:"laneType,omitempty"`     // TOP_LANE, MID_LANE, BOT_LANE
	BuildingType string `json:"buildingType,omitempty"` // TOWER_BUILDING, INHIBITOR_BUILDING
	TowerType    string `json:"towerType,omitempty"`    // OUTER_TURRET, INNER_TURRET, BASE_TURRET, NEXUS_TURRET

	// CHAMPION_KILL / CHAMPION_SPECIAL_KILL
	KillerID                int    `json:"killerId,omitempty"`
	VictimID                int    `json:"victimId,omitempty"`
	AssistingParticipantIDs []int  `json:"assistingParticipantIds,omitempty"`
	KillType                string `json:"killType,omitempty"` // KILL_FIRST_BLOOD, KILL_MULTI, ...

	// ELITE_MONSTER_KILL
	KillerTeamID int    `json:"killerTeamId,omitempty"`
	MonsterType  string `json:"monsterType,omitempty"` // DRAGON, RIFTHERALD, BARON_NASHOR, HORDE
}

// ParticipantFrame is a participant's economic/level snapshot within a frame
type ParticipantFrame struct {
	ParticipantID       int `json:"participantId"`
	MinionsKilled       int `json:"minionsKilled"`
	JungleMinionsKilled int `json:"jungleMinionsKilled"`
	TotalGold           int `json:"totalGold"`
	XP                  int `json:"xp"`
	Level               int `json:"level"`
}
