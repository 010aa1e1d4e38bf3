package usecase

import (
	"context"

	"main/utils"
)

// StreakConfig bounds the backward walk. ChunkDays is how many days of counts
// are fetched per query; MaxLookbackDays is the hard ceiling on the walk.
type StreakConfig struct {
	ChunkDays       int
	MaxLookbackDays int
}

func DefaultStreakConfig() StreakConfig {
	return StreakConfig{
		ChunkDays:       35,
		MaxLookbackDays: 365,
	}
}

func LoadStreakConfig() StreakConfig {
	cfg := DefaultStreakConfig()
	cfg.ChunkDays = utils.GetEnvAsInt("STREAK_CHUNK_DAYS", cfg.ChunkDays)
	cfg.MaxLookbackDays = utils.GetEnvAsInt("STREAK_MAX_LOOKBACK_DAYS", cfg.MaxLookbackDays)
	return cfg
}

// StreakCalculator walks daily completion counts backward from today.
type StreakCalculator struct {
	facts FactSource
	clock Clock
	cfg   StreakConfig
}

func NewStreakCalculator(facts FactSource, clock Clock, cfg StreakConfig) *StreakCalculator {
	return &StreakCalculator{facts: facts, clock: clock, cfg: cfg}
}

// CurrentStreak counts consecutive days with at least one completion, ending
// today. A today with no completions so far does not break the streak: the
// day is still in progress, so the walk just starts counting from yesterday.
// longestKnown bounds the walk at twice the longest streak ever recorded for
// the user (with the chunk size as a floor and MaxLookbackDays as a ceiling),
// so a pathological history never triggers an unbounded scan.
func (s *StreakCalculator) CurrentStreak(ctx context.Context, userID string, longestKnown int) (int, error) {
	limit := 2 * longestKnown
	if limit < s.cfg.ChunkDays {
		limit = s.cfg.ChunkDays
	}
	if limit > s.cfg.MaxLookbackDays {
		limit = s.cfg.MaxLookbackDays
	}

	today := StartOfDay(s.clock.Now())
	counts := make(map[string]int)
	fetchedBack := 0

	// Fetch counts in chunks, walking further back only while the streak
	// is alive.
	fetch := func(throughDay int) error {
		for fetchedBack <= throughDay {
			from := today.AddDate(0, 0, -(fetchedBack + s.cfg.ChunkDays - 1))
			to := EndOfDay(today.AddDate(0, 0, -fetchedBack))
			chunk, err := s.facts.DailyCounts(ctx, userID, from, to)
			if err != nil {
				return computeFailed("fetching daily counts", err)
			}
			for k, v := range chunk {
				counts[k] = v
			}
			fetchedBack += s.cfg.ChunkDays
		}
		return nil
	}

	if err := fetch(0); err != nil {
		return 0, err
	}

	streak := 0
	if counts[dayKey(today)] > 0 {
		streak++
	}

	for back := 1; back <= limit; back++ {
		if err := fetch(back); err != nil {
			return 0, err
		}
		if counts[dayKey(today.AddDate(0, 0, -back))] == 0 {
			break
		}
		streak++
	}

	return streak, nil
}
