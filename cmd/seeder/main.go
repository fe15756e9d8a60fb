package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// Dev tool: registers an upload client against a running API and feeds
// it generated match history so the read endpoints have data to show.

var characters = []string{
	"Fox", "Falco", "Marth", "Sheik", "Peach",
	"Captain Falcon", "Jigglypuff", "Samus",
}

var stages = []string{
	"battlefield", "final_destination", "yoshis_story",
	"dream_land", "fountain_of_dreams", "pokemon_stadium",
}

type participant struct {
	PlayerTag     string `json:"player_tag"`
	CharacterName string `json:"character_name"`
	Result        string `json:"result"`
}

type matchUpload struct {
	StartTime    time.Time     `json:"start_time"`
	StageID      string        `json:"stage_id"`
	Participants []participant `json:"participants"`
}

type seedPlayer struct {
	tag   string
	main  string
	alt   string
	skill float64
}

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "stats api base url")
	matches := flag.Int("matches", 500, "matches to generate")
	players := flag.Int("players", 12, "roster size")
	batch := flag.Int("batch", 50, "matches per upload request")
	days := flag.Int("days", 45, "spread matches over the past N days")
	seed := flag.Int64("seed", 1, "rng seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	client := &http.Client{Timeout: 10 * time.Second}

	token, err := registerClient(client, *apiURL)
	if err != nil {
		log.Fatalf("Failed to register client: %v", err)
	}
	fmt.Println("Registered seed client")

	roster := buildRoster(rng, *players)

	accepted, rejected := 0, 0
	pending := make([]matchUpload, 0, *batch)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		a, r, err := uploadBatch(client, *apiURL, token, pending)
		if err != nil {
			log.Fatalf("Failed to upload batch: %v", err)
		}
		accepted += a
		rejected += r
		pending = pending[:0]
	}

	for i := 0; i < *matches; i++ {
		pending = append(pending, generateMatch(rng, roster, *days))
		if len(pending) >= *batch {
			flush()
		}
	}
	flush()

	fmt.Printf("Done: %d accepted, %d rejected\n", accepted, rejected)
}

func buildRoster(rng *rand.Rand, count int) []seedPlayer {
	roster := make([]seedPlayer, 0, count)
	for i := 0; i < count; i++ {
		main := characters[rng.Intn(len(characters))]
		alt := characters[rng.Intn(len(characters))]
		roster = append(roster, seedPlayer{
			tag:   fmt.Sprintf("SEED#%d", i+1),
			main:  main,
			alt:   alt,
			skill: rng.Float64(),
		})
	}
	return roster
}

func generateMatch(rng *rand.Rand, roster []seedPlayer, days int) matchUpload {
	a := roster[rng.Intn(len(roster))]
	b := roster[rng.Intn(len(roster))]
	for b.tag == a.tag {
		b = roster[rng.Intn(len(roster))]
	}

	// Stronger player wins proportionally more often.
	aWins := rng.Float64() < 0.5+(a.skill-b.skill)/4

	pick := func(p seedPlayer) string {
		if rng.Float64() < 0.8 {
			return p.main
		}
		return p.alt
	}
	result := func(win bool) string {
		if win {
			return "win"
		}
		return "loss"
	}

	start := time.Now().UTC().
		Add(-time.Duration(rng.Intn(days*24*60)) * time.Minute).
		Truncate(time.Minute)

	return matchUpload{
		StartTime: start,
		StageID:   stages[rng.Intn(len(stages))],
		Participants: []participant{
			{PlayerTag: a.tag, CharacterName: pick(a), Result: result(aWins)},
			{PlayerTag: b.tag, CharacterName: pick(b), Result: result(!aWins)},
		},
	}
}

func registerClient(client *http.Client, apiURL string) (string, error) {
	payload := []byte(`{"name": "seeder", "platform": "dev", "version": "0.0.0"}`)
	resp, err := client.Post(apiURL+"/api/v1/clients/register", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("registration status %s: %s", resp.Status, body)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func uploadBatch(client *http.Client, apiURL, token string, uploads []matchUpload) (accepted, rejected int, err error) {
	payload, err := json.Marshal(uploads)
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequest("POST", apiURL+"/api/v1/ingest/matches", bytes.NewReader(payload))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Token", token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("upload status %s: %s", resp.Status, body)
	}

	var out struct {
		Accepted int `json:"accepted"`
		Rejected int `json:"rejected"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, err
	}
	return out.Accepted, out.Rejected, nil
}
