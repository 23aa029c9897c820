package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	season       string
	code         string
	player       string
	choice       string
	note         string
	domain       string
	refreshID    string
	loadMore     bool
	captain      string
	team         string
	scoreFor     int
	scoreAgainst int
)

func init() {
	openCmd.Flags().StringVar(&season, "season", "", "Season ID (defaults to the daemon's selected season)")
	pastCmd.Flags().StringVar(&season, "season", "", "Season ID")
	pastCmd.Flags().BoolVar(&loadMore, "load-more", false, "Fetch and append the next page")
	matchCmd.Flags().StringVar(&code, "code", "", "Public match code")
	matchCmd.MarkFlagRequired("code")
	leaderboardCmd.Flags().StringVar(&season, "season", "", "Season ID")
	refreshCmd.Flags().StringVar(&domain, "domain", "", "Cache domain to refresh")
	refreshCmd.Flags().StringVar(&refreshID, "id", "", "Domain identifier (season or match code)")
	refreshCmd.MarkFlagRequired("domain")
	probeCmd.Flags().StringVar(&season, "season", "", "Season ID")
	availabilityCmd.Flags().StringVar(&code, "code", "", "Public match code")
	availabilityCmd.Flags().StringVar(&player, "player", "", "Player name")
	availabilityCmd.Flags().StringVar(&choice, "choice", "", "YES, NO or MAYBE")
	availabilityCmd.Flags().StringVar(&note, "note", "", "Optional note")
	availabilityCmd.MarkFlagRequired("code")
	availabilityCmd.MarkFlagRequired("player")
	availabilityCmd.MarkFlagRequired("choice")
	scoreCmd.Flags().StringVar(&code, "code", "", "Public match code")
	scoreCmd.Flags().StringVar(&captain, "captain", "", "Captain name")
	scoreCmd.Flags().StringVar(&team, "team", "", "INTERNAL or OPPONENT (defaults from the cached match)")
	scoreCmd.Flags().IntVar(&scoreFor, "for", 0, "Goals for")
	scoreCmd.Flags().IntVar(&scoreAgainst, "against", 0, "Goals against")
	scoreCmd.MarkFlagRequired("code")
	scoreCmd.MarkFlagRequired("captain")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(pastCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Show the cached open matches list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches/open", url.Values{"season": {season}})
	},
}

var pastCmd = &cobra.Command{
	Use:   "past",
	Short: "Show the cached past matches list",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"season": {season}}
		if loadMore {
			params.Set("loadMore", "true")
		}
		return performGetRequest("/matches/past", params)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show one cached match by its public code",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/match", url.Values{"code": {code}})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the cached leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard", url.Values{"season": {season}})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Show the cached player directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players", nil)
	},
}

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "Show the cached season list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/seasons", nil)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch a domain from the remote API and overwrite the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/refresh", url.Values{"domain": {domain}, "id": {refreshID}})
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run the cheap freshness probe for the open matches list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/probe", url.Values{"season": {season}})
	},
}

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Post availability for a match",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/availability", map[string]any{
			"code":         code,
			"player":       player,
			"availability": choice,
			"note":         note,
		})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Submit a final score as captain",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/captain/score", map[string]any{
			"code":         code,
			"captain":      captain,
			"team":         team,
			"scoreFor":     scoreFor,
			"scoreAgainst": scoreAgainst,
		})
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Clear the local snapshot cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/cache/clear", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func performGetRequest(endpoint string, params url.Values) error {
	target := host + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", target)

	resp, err := http.Get(target)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body map[string]any) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}
	resp, err := http.Post(target, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
