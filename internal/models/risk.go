package models

// RiskLevel grades how urgently a streak needs attention
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskReason tags why a habit was classified at risk
type RiskReason string

const (
	ReasonLongStreakPressure RiskReason = "long_streak_under_pressure"
	ReasonMissedRecently     RiskReason = "missed_recently"
	ReasonDecliningRate      RiskReason = "declining_rate"
	ReasonNeverOnWeekday     RiskReason = "never_on_weekday"
)

// RiskReport pairs a habit with a risk classification. At most one report
// exists per habit per detection pass.
type RiskReport struct {
	HabitID         string     `json:"habit_id"`
	HabitName       string     `json:"habit_name"`
	Level           RiskLevel  `json:"level"`
	Reason          RiskReason `json:"reason"`
	SuggestedAction string     `json:"suggested_action"`
}
