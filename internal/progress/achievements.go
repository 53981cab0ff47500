package progress

import (
	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// Achievement pairs a predicate over ProgressStats with its XP reward. The
// predicate reads only stats fields, so evaluation is deterministic.
type Achievement struct {
	ID       string
	Name     string
	XPReward int
	Earned   func(domain.ProgressStats) bool
}

// Catalog is the achievement catalog in evaluation (insertion) order
var Catalog = []Achievement{
	{
		ID:       "first_answer",
		Name:     "First Steps",
		XPReward: 10,
		Earned:   func(s domain.ProgressStats) bool { return s.TotalAnswered >= 1 },
	},
	{
		ID:       "streak_5",
		Name:     "On a Roll",
		XPReward: 25,
		Earned:   func(s domain.ProgressStats) bool { return s.MaxStreak >= 5 },
	},
	{
		ID:       "streak_10",
		Name:     "Unstoppable",
		XPReward: 50,
		Earned:   func(s domain.ProgressStats) bool { return s.MaxStreak >= 10 },
	},
	{
		ID:       "sharp_shooter",
		Name:     "Sharp Shooter",
		XPReward: 100,
		Earned: func(s domain.ProgressStats) bool {
			return s.TotalAnswered >= 50 && float64(s.TotalCorrect)/float64(s.TotalAnswered) >= 0.8
		},
	},
	{
		ID:       "perfect_domain",
		Name:     "Flawless",
		XPReward: 50,
		Earned:   func(s domain.ProgressStats) bool { return s.PerfectDomains >= 1 },
	},
	{
		ID:       "speed_demon",
		Name:     "Speed Demon",
		XPReward: 60,
		Earned:   func(s domain.ProgressStats) bool { return s.FastAnswers >= 25 },
	},
	{
		ID:       "marathon",
		Name:     "Marathon",
		XPReward: 75,
		Earned:   func(s domain.ProgressStats) bool { return s.TotalSessions >= 10 },
	},
	{
		ID:       "level_5",
		Name:     "Seasoned Student",
		XPReward: 100,
		Earned:   func(s domain.ProgressStats) bool { return s.Level >= 5 },
	},
}

// Evaluate returns the ids whose predicate newly evaluates true against
// stats, in catalog order, excluding ids already unlocked.
func Evaluate(stats domain.ProgressStats, alreadyUnlocked []string) []string {
	unlocked := make(map[string]bool, len(alreadyUnlocked))
	for _, id := range alreadyUnlocked {
		unlocked[id] = true
	}

	var newly []string
	for _, a := range Catalog {
		if unlocked[a.ID] {
			continue
		}
		if a.Earned(stats) {
			newly = append(newly, a.ID)
		}
	}
	return newly
}

// Unlock adds id to the unlocked set and applies the XP reward. Unlocking an
// already-unlocked id is a no-op.
func Unlock(s domain.ProgressStats, id string, xpReward int) domain.ProgressStats {
	if s.HasAchievement(id) {
		return s
	}
	s = clone(s)
	s.UnlockedAchievements = append(s.UnlockedAchievements, id)
	s.XP += xpReward
	s.Level = levelFor(s.XP)
	return s
}

// Award evaluates the catalog against stats and unlocks everything newly
// earned, returning the updated stats and the achievements granted.
func Award(s domain.ProgressStats) (domain.ProgressStats, []Achievement) {
	var granted []Achievement
	for _, id := range Evaluate(s, s.UnlockedAchievements) {
		a := byID(id)
		s = Unlock(s, a.ID, a.XPReward)
		granted = append(granted, a)
	}
	return s, granted
}

func byID(id string) Achievement {
	for _, a := range Catalog {
		if a.ID == id {
			return a
		}
	}
	return Achievement{ID: id}
}
