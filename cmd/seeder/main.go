package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mlfc/matchday/internal/cache"
	"github.com/mlfc/matchday/internal/club"
	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/storage"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"CACHE_DB_NAME":  "matchday-cache.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

var seedPlayers = []sheets.Player{
	{Name: "Seeder Player A"},
	{Name: "Seeder Player B"},
	{Name: "Seeder Player C"},
	{Name: "Seeder Player D"},
}

func main() {
	log.Info("Starting cache seeder...")
	cfg := loadConfig()

	db, teardown, err := storage.InitDB(cfg["CACHE_DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize cache database: %s", err)
	}
	defer teardown()

	store := storage.New(db)
	seasonID := "season-" + uuid.NewString()[:8]
	startTime := time.Now()

	cache.Save(store, storage.Key(club.DomainSeasons, ""), cache.Wrap(sheets.SeasonList{
		Seasons:         []sheets.Season{{SeasonID: seasonID, Name: "Seeded season"}},
		CurrentSeasonID: seasonID,
	}))
	cache.Save(store, storage.Key(club.DomainPlayers, ""), cache.Wrap(club.PlayerDirectory{Players: seedPlayers}))

	const numMatches = 25
	open := make([]sheets.MatchSummary, 0, numMatches)
	for i := 0; i < numMatches; i++ {
		publicCode := "M-" + uuid.NewString()[:8]
		kickoff := time.Now().Add(time.Duration(rand.Intn(14*24)) * time.Hour)
		matchType := sheets.MatchTypeInternal
		if i%3 == 0 {
			matchType = sheets.MatchTypeOpponent
		}
		summary := sheets.MatchSummary{
			MatchID:    uuid.NewString(),
			PublicCode: publicCode,
			Title:      fmt.Sprintf("Seeded match %d", i+1),
			Date:       kickoff.Format("2006-01-02"),
			Time:       kickoff.Format("15:04"),
			Type:       matchType,
			Status:     sheets.MatchStatusOpen,
			CreatedAt:  time.Now().Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
		}
		open = append(open, summary)

		cache.Save(store, storage.Key(club.DomainMatchDetail, publicCode), cache.Wrap(sheets.MatchDetail{
			Match: summary,
			Availability: []sheets.AvailabilityEntry{
				{PlayerName: seedPlayers[0].Name, Availability: sheets.AvailabilityYes},
				{PlayerName: seedPlayers[1].Name, Availability: sheets.AvailabilityMaybe},
				{PlayerName: seedPlayers[2].Name, Availability: sheets.AvailabilityNo},
			},
			Captains: sheets.Captains{Captain1: seedPlayers[0].Name, Captain2: seedPlayers[1].Name},
		}))
	}

	cache.Save(store, storage.Key(club.DomainOpenMatches, seasonID), cache.Wrap(club.OpenMatchesList{Matches: open}))
	cache.Save(store, storage.Key(club.DomainLeaderboard, seasonID), cache.Wrap(sheets.Leaderboard{
		TopScorers:  []sheets.LeaderboardRow{{PlayerName: seedPlayers[0].Name, Goals: 7}},
		TopAssists:  []sheets.LeaderboardRow{{PlayerName: seedPlayers[1].Name, Assists: 5}},
		BestPlayers: []sheets.LeaderboardRow{{PlayerName: seedPlayers[2].Name, AvgRating: 8.2, MatchesRated: 4}},
	}))
	cache.Save(store, storage.Key(club.DomainSelectedSeason, ""), cache.Wrap(club.SelectedSeason{SeasonID: seasonID}))

	log.Info("Successfully seeded cache snapshots.",
		"season", seasonID,
		"matches", numMatches,
		"duration", time.Since(startTime),
	)
}
