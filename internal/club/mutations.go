package club

import (
	"context"
	"strings"

	"github.com/mlfc/matchday/internal/sheets"
	"github.com/mlfc/matchday/internal/view"
)

// Mutation builders for the pages. Each Apply returns a new snapshot and
// leaves its argument alone, as the merge protocol requires.

// SetAvailabilityMutation posts one player's availability on a match and
// merges it into the cached detail.
func SetAvailabilityMutation(api sheets.Client, code, player string, choice sheets.AvailabilityChoice, note string) view.Mutation[sheets.MatchDetail] {
	return view.Mutation[sheets.MatchDetail]{
		Field: "availability:" + strings.ToLower(strings.TrimSpace(player)),
		Apply: func(detail sheets.MatchDetail) sheets.MatchDetail {
			entries := make([]sheets.AvailabilityEntry, 0, len(detail.Availability)+1)
			replaced := false
			for _, entry := range detail.Availability {
				if strings.EqualFold(entry.PlayerName, player) {
					entries = append(entries, sheets.AvailabilityEntry{PlayerName: entry.PlayerName, Availability: choice, Note: note})
					replaced = true
					continue
				}
				entries = append(entries, entry)
			}
			if !replaced {
				entries = append(entries, sheets.AvailabilityEntry{PlayerName: strings.TrimSpace(player), Availability: choice, Note: note})
			}
			detail.Availability = entries
			return detail
		},
		Submit: func(ctx context.Context) error {
			return api.SetAvailability(ctx, code, player, choice, note)
		},
		Success: "Availability saved",
	}
}

// SubmitScoreMutation records a captain's final score on a match.
func SubmitScoreMutation(api sheets.Client, code, givenBy, team string, scoreFor, scoreAgainst int) view.Mutation[sheets.MatchDetail] {
	return view.Mutation[sheets.MatchDetail]{
		Field: "score",
		Apply: func(detail sheets.MatchDetail) sheets.MatchDetail {
			detail.Score = &sheets.Score{Team: team, ScoreFor: scoreFor, ScoreAgainst: scoreAgainst, GivenBy: givenBy}
			return detail
		},
		Submit: func(ctx context.Context) error {
			return api.CaptainSubmitScore(ctx, code, givenBy, team, scoreFor, scoreAgainst)
		},
		Success: "Score submitted",
	}
}

// SubmitRatingsMutation posts a captain's ratings batch and merges it into
// the cached detail, replacing any earlier rating by the same captain for
// the same player.
func SubmitRatingsMutation(api sheets.Client, code, givenBy string, ratings []sheets.Rating) view.Mutation[sheets.MatchDetail] {
	return view.Mutation[sheets.MatchDetail]{
		Field: "ratings:" + strings.ToLower(strings.TrimSpace(givenBy)),
		Apply: func(detail sheets.MatchDetail) sheets.MatchDetail {
			merged := make([]sheets.Rating, 0, len(detail.Ratings)+len(ratings))
			for _, existing := range detail.Ratings {
				if existing.GivenBy == givenBy && ratingFor(ratings, existing.PlayerName) != nil {
					continue
				}
				merged = append(merged, existing)
			}
			for _, rating := range ratings {
				rating.GivenBy = givenBy
				merged = append(merged, rating)
			}
			detail.Ratings = merged
			return detail
		},
		Submit: func(ctx context.Context) error {
			return api.CaptainSubmitRatingsBatch(ctx, code, givenBy, ratings)
		},
		Success: "Ratings submitted",
	}
}

func ratingFor(ratings []sheets.Rating, player string) *sheets.Rating {
	for i := range ratings {
		if strings.EqualFold(ratings[i].PlayerName, player) {
			return &ratings[i]
		}
	}
	return nil
}

// CloseMatchMutation closes a match on the admin panel.
func CloseMatchMutation(api sheets.Client, adminKey, matchID string) view.Mutation[AdminMatchList] {
	return view.Mutation[AdminMatchList]{
		Field: "status:" + matchID,
		Apply: adminMatchUpdate(matchID, func(m *sheets.AdminMatch) {
			m.Status = sheets.MatchStatusClosed
		}),
		Submit: func(ctx context.Context) error {
			return api.AdminCloseMatch(ctx, adminKey, matchID)
		},
		Success: "Match closed",
	}
}

// LockRatingsMutation locks further ratings on a match.
func LockRatingsMutation(api sheets.Client, adminKey, matchID string) view.Mutation[AdminMatchList] {
	return view.Mutation[AdminMatchList]{
		Field: "lock:" + matchID,
		Apply: adminMatchUpdate(matchID, func(m *sheets.AdminMatch) {
			m.RatingsLocked = true
		}),
		Submit: func(ctx context.Context) error {
			return api.AdminLockRatings(ctx, adminKey, matchID)
		},
		Success: "Ratings locked",
	}
}

// UnlockMatchMutation reopens a match and unlocks its ratings.
func UnlockMatchMutation(api sheets.Client, adminKey, matchID string) view.Mutation[AdminMatchList] {
	return view.Mutation[AdminMatchList]{
		Field: "status:" + matchID,
		Apply: adminMatchUpdate(matchID, func(m *sheets.AdminMatch) {
			m.Status = sheets.MatchStatusOpen
			m.RatingsLocked = false
		}),
		Submit: func(ctx context.Context) error {
			return api.AdminUnlockMatch(ctx, adminKey, matchID)
		},
		Success: "Match unlocked",
	}
}

// adminMatchUpdate rewrites one row of the admin list, copying the slice so
// the original snapshot stays untouched.
func adminMatchUpdate(matchID string, update func(*sheets.AdminMatch)) func(AdminMatchList) AdminMatchList {
	return func(list AdminMatchList) AdminMatchList {
		matches := make([]sheets.AdminMatch, len(list.Matches))
		copy(matches, list.Matches)
		for i := range matches {
			if matches[i].MatchID == matchID {
				update(&matches[i])
			}
		}
		return AdminMatchList{Matches: matches}
	}
}
