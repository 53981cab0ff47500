package progress

import (
	"testing"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

func TestApplyCorrectAnswer_SpeedTiers(t *testing.T) {
	tests := []struct {
		name        string
		responseSec float64
		expectedXP  int
		expectFast  bool
	}{
		{name: "fast answer", responseSec: 3.2, expectedXP: 15, expectFast: true},
		{name: "boundary of fast tier", responseSec: 5.0, expectedXP: 10, expectFast: false},
		{name: "quick answer", responseSec: 7.5, expectedXP: 10, expectFast: false},
		{name: "boundary of quick tier", responseSec: 10.0, expectedXP: 5, expectFast: false},
		{name: "slow answer", responseSec: 42.0, expectedXP: 5, expectFast: false},
		{name: "negative time clamps to fastest tier", responseSec: -1.0, expectedXP: 15, expectFast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCorrectAnswer(Zero(), tt.responseSec)

			if got.XP != tt.expectedXP {
				t.Errorf("expected XP %d, got %d", tt.expectedXP, got.XP)
			}
			if got.TotalAnswered != 1 || got.TotalCorrect != 1 {
				t.Errorf("expected counters 1/1, got %d/%d", got.TotalAnswered, got.TotalCorrect)
			}
			if got.CurrentStreak != 1 || got.MaxStreak != 1 {
				t.Errorf("expected streaks 1/1, got %d/%d", got.CurrentStreak, got.MaxStreak)
			}
			if tt.expectFast && got.FastAnswers != 1 {
				t.Errorf("expected fast answer counted, got %d", got.FastAnswers)
			}
			if !tt.expectFast && got.FastAnswers != 0 {
				t.Errorf("expected no fast answer, got %d", got.FastAnswers)
			}
		})
	}
}

func TestApplyCorrectAnswer_FiveFastAnswers(t *testing.T) {
	s := Zero()
	for i := 0; i < 5; i++ {
		s = ApplyCorrectAnswer(s, 2.0)
	}

	if s.XP != 75 {
		t.Errorf("expected XP 75, got %d", s.XP)
	}
	if s.CurrentStreak != 5 || s.MaxStreak != 5 {
		t.Errorf("expected streaks 5/5, got %d/%d", s.CurrentStreak, s.MaxStreak)
	}
	if s.FastAnswers != 5 {
		t.Errorf("expected 5 fast answers, got %d", s.FastAnswers)
	}
	if s.Level != 1 {
		t.Errorf("expected level 1 at 75 XP, got %d", s.Level)
	}
}

func TestApplyIncorrectAnswer(t *testing.T) {
	s := Zero()
	s = ApplyCorrectAnswer(s, 2.0)
	s = ApplyCorrectAnswer(s, 2.0)
	s = ApplyIncorrectAnswer(s)

	if s.CurrentStreak != 0 {
		t.Errorf("expected streak reset, got %d", s.CurrentStreak)
	}
	if s.MaxStreak != 2 {
		t.Errorf("expected max streak preserved at 2, got %d", s.MaxStreak)
	}
	if s.XP != 32 {
		t.Errorf("expected XP 32 (15+15+2), got %d", s.XP)
	}
	if s.TotalAnswered != 3 || s.TotalCorrect != 2 {
		t.Errorf("expected counters 3/2, got %d/%d", s.TotalAnswered, s.TotalCorrect)
	}
}

func TestLevelProgression(t *testing.T) {
	tests := []struct {
		xp            int
		expectedLevel int
	}{
		{xp: 0, expectedLevel: 1},
		{xp: 99, expectedLevel: 1},
		{xp: 100, expectedLevel: 2},
		{xp: 250, expectedLevel: 3},
		{xp: 400, expectedLevel: 5},
	}

	for _, tt := range tests {
		if got := levelFor(tt.xp); got != tt.expectedLevel {
			t.Errorf("levelFor(%d): expected %d, got %d", tt.xp, tt.expectedLevel, got)
		}
	}
}

func TestApplySessionComplete(t *testing.T) {
	s := Zero()

	s = ApplySessionComplete(s, "security", 5, 5)
	dp := s.DomainProgress["security"]
	if dp.Completed != 1 {
		t.Errorf("expected completed 1, got %d", dp.Completed)
	}
	if dp.BestScore != 1.0 {
		t.Errorf("expected best score 1.0, got %f", dp.BestScore)
	}
	if s.PerfectDomains != 1 {
		t.Errorf("expected perfect domain counted, got %d", s.PerfectDomains)
	}
	if s.TotalSessions != 1 {
		t.Errorf("expected 1 session, got %d", s.TotalSessions)
	}

	// a worse run never lowers the best score
	s = ApplySessionComplete(s, "security", 3, 5)
	dp = s.DomainProgress["security"]
	if dp.Completed != 2 {
		t.Errorf("expected completed 2, got %d", dp.Completed)
	}
	if dp.BestScore != 1.0 {
		t.Errorf("expected best score to stay 1.0, got %f", dp.BestScore)
	}
	if s.PerfectDomains != 1 {
		t.Errorf("expected perfect domains unchanged, got %d", s.PerfectDomains)
	}
}

func TestApplySessionComplete_EdgeCounts(t *testing.T) {
	tests := []struct {
		name          string
		correct       int
		total         int
		expectedScore float64
		expectPerfect bool
	}{
		{name: "zero total yields zero score", correct: 0, total: 0, expectedScore: 0, expectPerfect: false},
		{name: "correct clamped to total", correct: 9, total: 5, expectedScore: 1.0, expectPerfect: true},
		{name: "negative correct clamped to zero", correct: -3, total: 5, expectedScore: 0, expectPerfect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ApplySessionComplete(Zero(), "networking", tt.correct, tt.total)
			dp := s.DomainProgress["networking"]
			if dp.BestScore != tt.expectedScore {
				t.Errorf("expected score %f, got %f", tt.expectedScore, dp.BestScore)
			}
			if tt.expectPerfect != (s.PerfectDomains == 1) {
				t.Errorf("perfect domain mismatch: %d", s.PerfectDomains)
			}
		})
	}
}

func TestMerge_TakesPerFieldMaximum(t *testing.T) {
	local := Zero()
	local.TotalAnswered = 40
	local.TotalCorrect = 30
	local.MaxStreak = 8
	local.XP = 350
	local.DomainProgress["security"] = domain.DomainProgress{Completed: 3, BestScore: 0.9}
	local.UnlockedAchievements = []string{"first_answer", "streak_5"}

	remote := Zero()
	remote.TotalAnswered = 55
	remote.TotalCorrect = 20
	remote.MaxStreak = 4
	remote.XP = 200
	remote.TotalSessions = 7
	remote.DomainProgress["security"] = domain.DomainProgress{Completed: 5, BestScore: 0.6}
	remote.DomainProgress["storage"] = domain.DomainProgress{Completed: 1, BestScore: 1.0}
	remote.UnlockedAchievements = []string{"first_answer", "perfect_domain"}

	merged := Merge(local, remote)

	if merged.TotalAnswered != 55 {
		t.Errorf("expected total answered 55, got %d", merged.TotalAnswered)
	}
	if merged.TotalCorrect != 30 {
		t.Errorf("expected total correct 30, got %d", merged.TotalCorrect)
	}
	if merged.MaxStreak != 8 {
		t.Errorf("expected max streak 8, got %d", merged.MaxStreak)
	}
	if merged.XP != 350 {
		t.Errorf("expected XP 350, got %d", merged.XP)
	}
	if merged.Level != 4 {
		t.Errorf("expected level recomputed to 4, got %d", merged.Level)
	}
	if merged.TotalSessions != 7 {
		t.Errorf("expected total sessions 7, got %d", merged.TotalSessions)
	}

	sec := merged.DomainProgress["security"]
	if sec.Completed != 5 || sec.BestScore != 0.9 {
		t.Errorf("expected security 5/0.9, got %d/%f", sec.Completed, sec.BestScore)
	}
	sto := merged.DomainProgress["storage"]
	if sto.Completed != 1 || sto.BestScore != 1.0 {
		t.Errorf("expected storage 1/1.0, got %d/%f", sto.Completed, sto.BestScore)
	}

	want := map[string]bool{"first_answer": true, "streak_5": true, "perfect_domain": true}
	if len(merged.UnlockedAchievements) != len(want) {
		t.Fatalf("expected %d achievements, got %v", len(want), merged.UnlockedAchievements)
	}
	for _, id := range merged.UnlockedAchievements {
		if !want[id] {
			t.Errorf("unexpected achievement %q", id)
		}
	}
}

func TestTransitionsArePure(t *testing.T) {
	original := Zero()
	original.DomainProgress["security"] = domain.DomainProgress{Completed: 1, BestScore: 0.5}
	original.UnlockedAchievements = []string{"first_answer"}

	_ = ApplyCorrectAnswer(original, 1.0)
	_ = ApplyIncorrectAnswer(original)
	_ = ApplySessionComplete(original, "security", 5, 5)
	_ = Merge(original, Zero())

	if original.TotalAnswered != 0 || original.XP != 0 {
		t.Error("input stats were mutated")
	}
	if original.DomainProgress["security"].Completed != 1 {
		t.Error("input domain progress was mutated")
	}
	if len(original.UnlockedAchievements) != 1 {
		t.Error("input achievements were mutated")
	}
}
