package riot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Setenv("RIOT_API_KEY", "RGAPI-test-key")
	client, err := NewClient(WithClientBaseURL(baseURL))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestGetTimeline_ParsesFullPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Riot-Token") != "RGAPI-test-key" {
			t.Errorf("X-Riot-Token = %q, want test key", r.Header.Get("X-Riot-Token"))
		}
		if want := "/lol/match/v5/matches/NA1_42/timeline"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		w.Write([]byte(`{
			"metadata": {"matchId": "NA1_42", "participants": ["puuid-1", "puuid-2"]},
			"info": {
				"frameInterval": 60000,
				"participants": [
					{"participantId": 1, "puuid": "puuid-1"},
					{"participantId": 2, "puuid": "puuid-2"}
				],
				"frames": [
					{
						"timestamp": 60019,
						"events": [
							{"type": "CHAMPION_KILL", "timestamp": 55000, "killerId": 1, "victimId": 2, "assistingParticipantIds": [3, 4]},
							{"type": "BUILDING_KILL", "timestamp": 58000, "teamId": 100, "laneType": "MID_LANE", "buildingType": "TOWER_BUILDING", "towerType": "OUTER_TURRET"},
							{"type": "ELITE_MONSTER_KILL", "timestamp": 59000, "killerTeamId": 200, "monsterType": "DRAGON"}
						],
						"participantFrames": {
							"1": {"participantId": 1, "minionsKilled": 12, "jungleMinionsKilled": 0, "totalGold": 800, "xp": 540, "level": 3}
						}
					}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	timeline, err := client.GetTimeline(context.Background(), "NA1_42")
	if err != nil {
		t.Fatalf("GetTimeline failed: %v", err)
	}

	if timeline.Metadata.MatchID != "NA1_42" {
		t.Errorf("match ID = %q, want NA1_42", timeline.Metadata.MatchID)
	}
	if len(timeline.Info.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(timeline.Info.Participants))
	}
	if len(timeline.Info.Frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(timeline.Info.Frames))
	}

	frame := timeline.Info.Frames[0]
	if frame.Timestamp != 60019 {
		t.Errorf("frame timestamp = %d, want 60019", frame.Timestamp)
	}
	if len(frame.Events) != 3 {
		t.Fatalf("events = %d, want 3", len(frame.Events))
	}

	kill := frame.Events[0]
	if kill.KillerID != 1 || kill.VictimID != 2 {
		t.Errorf("kill event killer/victim = %d/%d, want 1/2", kill.KillerID, kill.VictimID)
	}
	if len(kill.AssistingParticipantIDs) != 2 {
		t.Errorf("assists = %v, want [3 4]", kill.AssistingParticipantIDs)
	}

	building := frame.Events[1]
	if building.TeamID != 100 || building.LaneType != "MID_LANE" || building.TowerType != "OUTER_TURRET" {
		t.Errorf("building event not preserved: %+v", building)
	}

	monster := frame.Events[2]
	if monster.KillerTeamID != 200 || monster.MonsterType != "DRAGON" {
		t.Errorf("monster event not preserved: %+v", monster)
	}

	pf, ok := frame.ParticipantFrames["1"]
	if !ok {
		t.Fatal("participantFrames missing key \"1\"")
	}
	if pf.TotalGold != 800 || pf.Level != 3 {
		t.Errorf("participant frame not preserved: %+v", pf)
	}
}

func TestGetTimeline_OmittedAssistListStaysNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"metadata": {"matchId": "NA1_43"},
			"info": {"frames": [{"timestamp": 0, "events": [
				{"type": "CHAMPION_KILL", "killerId": 5, "victimId": 6}
			]}]}
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	timeline, err := client.GetTimeline(context.Background(), "NA1_43")
	if err != nil {
		t.Fatalf("GetTimeline failed: %v", err)
	}

	event := timeline.Info.Frames[0].Events[0]
	if event.AssistingParticipantIDs != nil {
		t.Errorf("assist list = %v, want nil for omitted field", event.AssistingParticipantIDs)
	}
}

func TestGetAccountByRiotID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/riot/account/v1/accounts/by-riot-id/Faker/KR1"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		w.Write([]byte(`{"puuid": "puuid-9", "gameName": "Faker", "tagLine": "KR1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	account, err := client.GetAccountByRiotID(context.Background(), "Faker", "KR1")
	if err != nil {
		t.Fatalf("GetAccountByRiotID failed: %v", err)
	}
	if account.PUUID != "puuid-9" {
		t.Errorf("puuid = %q, want puuid-9", account.PUUID)
	}
	if account.DisplayName() != "Faker#KR1" {
		t.Errorf("display name = %q, want Faker#KR1", account.DisplayName())
	}
}

func TestResolveName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want := "/riot/account/v1/accounts/by-puuid/puuid-9"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		w.Write([]byte(`{"puuid": "puuid-9", "gameName": "Faker", "tagLine": "KR1"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	name, err := client.ResolveName(context.Background(), "puuid-9")
	if err != nil {
		t.Fatalf("ResolveName failed: %v", err)
	}
	if name != "Faker#KR1" {
		t.Errorf("name = %q, want Faker#KR1", name)
	}
}

func TestResolveName_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	if _, err := client.ResolveName(context.Background(), "puuid-missing"); err == nil {
		t.Error("Expected error for unknown PUUID")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		account AccountResponse
		want    string
	}{
		{"with tag", AccountResponse{GameName: "Faker", TagLine: "KR1"}, "Faker#KR1"},
		{"without tag", AccountResponse{GameName: "Faker"}, "Faker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.account.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Test: live timeline fetch against the real API
func TestGetTimeline_Integration(t *testing.T) {
	godotenv.Load("../../.env")

	if os.Getenv("RIOT_API_KEY") == "" {
		t.Skip("RIOT_API_KEY not set, skipping integration test")
	}

	client, err := NewClient()
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	matchID := os.Getenv("TEST_MATCH_ID")
	if matchID == "" {
		t.Skip("TEST_MATCH_ID not set, skipping integration test")
	}

	timeline, err := client.GetTimeline(context.Background(), matchID)
	if err != nil {
		t.Fatalf("GetTimeline failed: %v", err)
	}

	if timeline.Metadata.MatchID == "" {
		t.Error("Timeline metadata missing matchId")
	}
	if len(timeline.Info.Frames) == 0 {
		t.Error("Timeline has no frames")
	}
	if len(timeline.Info.Participants) != 10 {
		t.Errorf("Expected 10 participants, got %d", len(timeline.Info.Participants))
	}
}
