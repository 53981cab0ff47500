// Package progress implements the client-local study progress and achievement
// engine: pure transition functions over ProgressStats, durable local
// persistence, and merge-by-maximum reconciliation with the server copy.
package progress

import (
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// XP awards per answer, tiered by response speed
const (
	xpFastAnswer    = 15
	xpQuickAnswer   = 10
	xpSlowAnswer    = 5
	xpConsolation   = 2
	fastThreshold   = 5.0  // seconds
	quickThreshold  = 10.0 // seconds
	xpPerLevel      = 100
)

// Zero returns the documented initial state
func Zero() domain.ProgressStats {
	return domain.ProgressStats{
		Level:                1,
		DomainProgress:       make(map[string]domain.DomainProgress),
		UnlockedAchievements: []string{},
	}
}

// ZeroFlashcards returns the initial flashcard progress state
func ZeroFlashcards() domain.FlashcardProgress {
	return domain.FlashcardProgress{
		CardsKnown:    []string{},
		CardsLearning: []string{},
		DeckProgress:  make(map[string]float64),
	}
}

func levelFor(xp int) int {
	return xp/xpPerLevel + 1
}

// ApplyCorrectAnswer awards speed-tiered XP and advances the streak. Negative
// response times are clamped into the fastest tier rather than rejected.
func ApplyCorrectAnswer(s domain.ProgressStats, responseTimeSeconds float64) domain.ProgressStats {
	if responseTimeSeconds < 0 {
		responseTimeSeconds = 0
	}

	s = clone(s)
	s.TotalAnswered++
	s.TotalCorrect++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}

	switch {
	case responseTimeSeconds < fastThreshold:
		s.XP += xpFastAnswer
		s.FastAnswers++
	case responseTimeSeconds < quickThreshold:
		s.XP += xpQuickAnswer
	default:
		s.XP += xpSlowAnswer
	}

	s.Level = levelFor(s.XP)
	return s
}

// ApplyIncorrectAnswer resets the streak and awards consolation XP
func ApplyIncorrectAnswer(s domain.ProgressStats) domain.ProgressStats {
	s = clone(s)
	s.TotalAnswered++
	s.CurrentStreak = 0
	s.XP += xpConsolation
	s.Level = levelFor(s.XP)
	return s
}

// ApplySessionComplete records a finished quiz session for one exam domain.
// The best score only moves up, and a perfect run counts toward
// PerfectDomains exactly once per session.
func ApplySessionComplete(s domain.ProgressStats, domainID string, correctCount, totalCount int) domain.ProgressStats {
	s = clone(s)

	score := 0.0
	if totalCount > 0 {
		if correctCount < 0 {
			correctCount = 0
		}
		if correctCount > totalCount {
			correctCount = totalCount
		}
		score = float64(correctCount) / float64(totalCount)
	}

	dp := s.DomainProgress[domainID]
	dp.Completed++
	if score > dp.BestScore {
		dp.BestScore = score
	}
	s.DomainProgress[domainID] = dp

	if totalCount > 0 && correctCount == totalCount {
		s.PerfectDomains++
	}
	s.TotalSessions++
	return s
}

// Merge reconciles a local and a remote copy by taking the per-field maximum.
// All synced fields are monotonic counters or best-scores, so highest-value-
// wins never loses recorded progress; achievements are unioned.
func Merge(a, b domain.ProgressStats) domain.ProgressStats {
	merged := clone(a)
	merged.TotalAnswered = maxInt(a.TotalAnswered, b.TotalAnswered)
	merged.TotalCorrect = maxInt(a.TotalCorrect, b.TotalCorrect)
	merged.CurrentStreak = maxInt(a.CurrentStreak, b.CurrentStreak)
	merged.MaxStreak = maxInt(a.MaxStreak, b.MaxStreak)
	merged.XP = maxInt(a.XP, b.XP)
	merged.Level = levelFor(merged.XP)
	merged.TotalSessions = maxInt(a.TotalSessions, b.TotalSessions)
	merged.FastAnswers = maxInt(a.FastAnswers, b.FastAnswers)
	merged.PerfectDomains = maxInt(a.PerfectDomains, b.PerfectDomains)

	for id, dp := range b.DomainProgress {
		got := merged.DomainProgress[id]
		got.Completed = maxInt(got.Completed, dp.Completed)
		if dp.BestScore > got.BestScore {
			got.BestScore = dp.BestScore
		}
		merged.DomainProgress[id] = got
	}

	for _, id := range b.UnlockedAchievements {
		if !merged.HasAchievement(id) {
			merged.UnlockedAchievements = append(merged.UnlockedAchievements, id)
		}
	}
	return merged
}

// clone copies the stats value deeply enough that transitions stay pure
func clone(s domain.ProgressStats) domain.ProgressStats {
	dp := make(map[string]domain.DomainProgress, len(s.DomainProgress))
	for k, v := range s.DomainProgress {
		dp[k] = v
	}
	unlocked := make([]string, len(s.UnlockedAchievements))
	copy(unlocked, s.UnlockedAchievements)

	s.DomainProgress = dp
	s.UnlockedAchievements = unlocked
	return s
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
