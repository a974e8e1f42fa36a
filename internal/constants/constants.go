package constants

const (
	AppName           = "stackline"
	DefaultConfigPath = "~/.config/stackline/stackline.db"
	Version           = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Reminder bucketing
	BucketMinutes    = 30
	ReminderIDPrefix = "stackline-reminder-"

	// Suggestion engine limits
	MaxSuggestions       = 10
	PeakHourMinEvents    = 6 // strictly more than 5 completions in one hour
	PeakWindowExpiryDays = 7

	// Risk thresholds
	LongStreakThreshold    = 7
	HighSeverityStreak     = 14
	StreakAtRiskMinStreak  = 3
	StreakAtRiskHours      = 20
	MissedRecentlyDays     = 2
	DecliningRateThreshold = 0.5
	DecliningRateMinTotal  = 7

	// Stack analysis thresholds
	ReorderMinRate     = 0.8
	ScheduleReviewRate = 0.3

	// Notifier constants
	NotifierLockfileName   = "stackline-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.ewagner.stackline"
)
