package analyzer

import (
	"fmt"
	"time"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/ledger"
	"github.com/ewagner/stackline/internal/models"
)

// DetectRisks classifies each habit as at-risk or not. Rules are checked in
// a fixed precedence order and the first match wins, so a habit appears at
// most once in the output. A habit can carry a long streak and a low weekly
// rate at the same time; the long-streak signal is the more actionable one
// and is checked first.
func DetectRisks(habits []models.Habit, now time.Time) []models.RiskReport {
	var reports []models.RiskReport

	for _, h := range habits {
		if report, ok := classify(h, now); ok {
			reports = append(reports, report)
		}
	}

	return reports
}

func classify(h models.Habit, now time.Time) (models.RiskReport, bool) {
	// Rule 1: long streak under pressure. A habit with a long streak is
	// claimed by this rule even when its at-risk sub-condition fails, so a
	// healthy long streak with a low weekly rate is not flagged by rule 3.
	if h.CurrentStreak >= constants.LongStreakThreshold {
		if !streakAtRisk(h, now) {
			return models.RiskReport{}, false
		}
		level := models.RiskMedium
		if h.CurrentStreak >= constants.HighSeverityStreak {
			level = models.RiskHigh
		}
		return models.RiskReport{
			HabitID:         h.ID,
			HabitName:       h.Name,
			Level:           level,
			Reason:          models.ReasonLongStreakPressure,
			SuggestedAction: fmt.Sprintf("Complete %q soon to protect your %d-day streak", h.Name, h.CurrentStreak),
		}, true
	}

	// Rule 2: missed recently
	if last, ok := h.LastCompleted.Time(); ok && h.CurrentStreak == 0 {
		if calendarDaysBetween(last, now) >= constants.MissedRecentlyDays {
			return models.RiskReport{
				HabitID:         h.ID,
				HabitName:       h.Name,
				Level:           models.RiskLow,
				Reason:          models.ReasonMissedRecently,
				SuggestedAction: fmt.Sprintf("Get back to %q with a small first step", h.Name),
			}, true
		}
	}

	// Rule 3: declining completion rate
	if h.TotalCompletions > constants.DecliningRateMinTotal &&
		ledger.WeeklyCompletionRate(h.Events, now) < constants.DecliningRateThreshold {
		return models.RiskReport{
			HabitID:         h.ID,
			HabitName:       h.Name,
			Level:           models.RiskMedium,
			Reason:          models.ReasonDecliningRate,
			SuggestedAction: fmt.Sprintf("%q slipped below half of its usual week; try pairing it with its anchor", h.Name),
		}, true
	}

	return models.RiskReport{}, false
}

// streakAtRisk reports whether a streak is close to breaking: the habit has
// a meaningful streak and either was never completed or has gone 20+ hours
// since the last completion.
func streakAtRisk(h models.Habit, now time.Time) bool {
	if h.CurrentStreak < constants.StreakAtRiskMinStreak {
		return false
	}
	hours, ok := h.LastCompleted.HoursSince(now)
	if !ok {
		return true
	}
	return hours >= constants.StreakAtRiskHours
}

func calendarDaysBetween(earlier, later time.Time) int {
	e := time.Date(earlier.Year(), earlier.Month(), earlier.Day(), 0, 0, 0, 0, earlier.Location())
	l := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, later.Location())
	if l.Before(e) {
		return 0
	}
	return int(l.Sub(e).Hours() / 24)
}
