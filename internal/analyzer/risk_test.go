package analyzer

import (
	"testing"
	"time"

	"github.com/ewagner/stackline/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

func hoursAgo(h int) models.LastCompletion {
	return models.CompletedAt(now.Add(-time.Duration(h) * time.Hour))
}

// eventsOnDays builds one completion per given day offset relative to now.
func eventsOnDays(offsets ...int) []models.CompletionEvent {
	var events []models.CompletionEvent
	for _, off := range offsets {
		events = append(events, models.CompletionEvent{Timestamp: now.AddDate(0, 0, off)})
	}
	return events
}

func TestLongStreakUnderPressure(t *testing.T) {
	tests := []struct {
		name      string
		habit     models.Habit
		wantLevel models.RiskLevel
	}{
		{
			name: "streak 10 with 21 stale hours fires at medium",
			habit: models.Habit{
				ID: "h1", Name: "Run", CurrentStreak: 10, LongestStreak: 10,
				LastCompleted: hoursAgo(21),
			},
			wantLevel: models.RiskMedium,
		},
		{
			name: "streak 14 with 21 stale hours fires at high",
			habit: models.Habit{
				ID: "h2", Name: "Read", CurrentStreak: 14, LongestStreak: 14,
				LastCompleted: hoursAgo(21),
			},
			wantLevel: models.RiskHigh,
		},
		{
			name: "long streak never completed counts as at risk",
			habit: models.Habit{
				ID: "h3", Name: "Journal", CurrentStreak: 8, LongestStreak: 8,
				LastCompleted: models.Never(),
			},
			wantLevel: models.RiskMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := DetectRisks([]models.Habit{tt.habit}, now)
			if len(reports) != 1 {
				t.Fatalf("expected 1 report, got %d", len(reports))
			}
			if reports[0].Reason != models.ReasonLongStreakPressure {
				t.Errorf("expected long-streak reason, got %s", reports[0].Reason)
			}
			if reports[0].Level != tt.wantLevel {
				t.Errorf("expected level %s, got %s", tt.wantLevel, reports[0].Level)
			}
		})
	}
}

func TestLongStreakClaimsHabitEvenWhenHealthy(t *testing.T) {
	// Streak 10, completed 5 hours ago, but a terrible weekly rate with
	// plenty of history. The long-streak rule claims this habit and its
	// sub-condition fails, so the declining-rate rule must never see it.
	h := models.Habit{
		ID: "h1", Name: "Run", CurrentStreak: 10, LongestStreak: 10,
		TotalCompletions: 20,
		LastCompleted:    hoursAgo(5),
		Events:           eventsOnDays(0), // 1/7 weekly rate
	}

	reports := DetectRisks([]models.Habit{h}, now)
	if len(reports) != 0 {
		t.Fatalf("expected no reports, got %d (%+v)", len(reports), reports)
	}
}

func TestMissedRecently(t *testing.T) {
	h := models.Habit{
		ID: "h1", Name: "Meditate", CurrentStreak: 0, LongestStreak: 5,
		LastCompleted: models.CompletedAt(now.AddDate(0, 0, -3)),
	}

	reports := DetectRisks([]models.Habit{h}, now)
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	if reports[0].Reason != models.ReasonMissedRecently {
		t.Errorf("expected missed-recently reason, got %s", reports[0].Reason)
	}
	if reports[0].Level != models.RiskLow {
		t.Errorf("expected low level, got %s", reports[0].Level)
	}
}

func TestMissedRecentlyNeedsZeroStreak(t *testing.T) {
	h := models.Habit{
		ID: "h1", Name: "Meditate", CurrentStreak: 2, LongestStreak: 5,
		LastCompleted: models.CompletedAt(now.AddDate(0, 0, -3)),
	}

	if reports := DetectRisks([]models.Habit{h}, now); len(reports) != 0 {
		t.Fatalf("expected no reports, got %+v", reports)
	}
}

func TestDecliningRate(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  int // report count
	}{
		{"enough history flags", 8, 1},
		{"brand-new habit guarded", 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{
				ID: "h1", Name: "Floss", CurrentStreak: 1, LongestStreak: 3,
				TotalCompletions: tt.total,
				LastCompleted:    hoursAgo(10),
				Events:           eventsOnDays(0, -3), // 2/7 < 0.5
			}

			reports := DetectRisks([]models.Habit{h}, now)
			if len(reports) != tt.want {
				t.Fatalf("expected %d reports, got %d", tt.want, len(reports))
			}
			if tt.want == 1 {
				if reports[0].Reason != models.ReasonDecliningRate {
					t.Errorf("expected declining-rate reason, got %s", reports[0].Reason)
				}
				if reports[0].Level != models.RiskMedium {
					t.Errorf("expected medium level, got %s", reports[0].Level)
				}
			}
		})
	}
}

func TestAtMostOneReportPerHabit(t *testing.T) {
	habits := []models.Habit{
		{ID: "a", Name: "A", CurrentStreak: 14, LongestStreak: 14, LastCompleted: hoursAgo(22)},
		{ID: "b", Name: "B", CurrentStreak: 0, LongestStreak: 2, LastCompleted: models.CompletedAt(now.AddDate(0, 0, -4))},
		{ID: "c", Name: "C", CurrentStreak: 1, LongestStreak: 1, LastCompleted: hoursAgo(3)},
	}

	reports := DetectRisks(habits, now)
	seen := make(map[string]int)
	for _, r := range reports {
		seen[r.HabitID]++
	}
	for id, n := range seen {
		if n > 1 {
			t.Errorf("habit %s reported %d times", id, n)
		}
	}
	if len(reports) != 2 {
		t.Errorf("expected reports for a and b only, got %+v", reports)
	}
}
