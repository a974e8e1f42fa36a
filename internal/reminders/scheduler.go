package reminders

import (
	"fmt"
	"sort"

	"github.com/ewagner/stackline/internal/constants"
	"github.com/ewagner/stackline/internal/logger"
	"github.com/ewagner/stackline/internal/models"
)

// Request is one composed notification, fired as a repeating daily alert at
// Hour:Minute. The ID is derived from the bucket time so rescheduling with
// the same bucket times is idempotent on the delivery side.
type Request struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
}

// Delivery is the platform notification boundary. Implementations own only
// firing at the scheduled time; all grouping and content decisions happen
// here.
type Delivery interface {
	CancelAll() error
	Submit(Request) error
}

// Scheduler rebuilds the full set of scheduled reminders from the current
// stack list. Every sync clears everything and reschedules from scratch;
// there is no incremental path.
type Scheduler struct {
	delivery   Delivery
	authorized func() bool
}

// NewScheduler creates a Scheduler. A nil authorized func means always
// authorized.
func NewScheduler(d Delivery, authorized func() bool) *Scheduler {
	if authorized == nil {
		authorized = func() bool { return true }
	}
	return &Scheduler{delivery: d, authorized: authorized}
}

// Sync replaces all pending reminders with one request per bucket. Pending
// requests are cleared even when notifications are unauthorized, so
// reminders disappear the moment permission is revoked. One bucket's
// submission failure never blocks the others.
func (s *Scheduler) Sync(stacks []models.HabitStack) error {
	if err := s.delivery.CancelAll(); err != nil {
		logger.Warn("Failed to clear pending reminders", "error", err)
	}

	if !s.authorized() {
		logger.Debug("Notifications not authorized, skipping reminder scheduling")
		return nil
	}

	var firstErr error
	for _, req := range Plan(stacks) {
		if err := s.delivery.Submit(req); err != nil {
			logger.Warn("Failed to schedule reminder", "id", req.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Clear cancels all pending reminders without rescheduling.
func (s *Scheduler) Clear() error {
	return s.delivery.CancelAll()
}

// Plan groups stacks into 30-minute buckets and composes one request per
// bucket, ordered by bucket time. Stacks with an unparseable reminder time
// are dropped from the pass.
func Plan(stacks []models.HabitStack) []Request {
	type bucket struct {
		hour, minute int
		stacks       []models.HabitStack
	}

	buckets := make(map[int]*bucket)
	for _, stack := range stacks {
		hour, minute, err := stack.ReminderHourMinute()
		if err != nil {
			logger.Warn("Skipping stack with malformed reminder time", "stack", stack.Name, "error", err)
			continue
		}
		minute = (minute / constants.BucketMinutes) * constants.BucketMinutes
		key := hour*60 + minute
		b, ok := buckets[key]
		if !ok {
			b = &bucket{hour: hour, minute: minute}
			buckets[key] = b
		}
		b.stacks = append(b.stacks, stack)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var requests []Request
	for _, k := range keys {
		b := buckets[k]
		title, body := compose(b.stacks)
		requests = append(requests, Request{
			ID:     fmt.Sprintf("%s%02d%02d", constants.ReminderIDPrefix, b.hour, b.minute),
			Title:  title,
			Body:   body,
			Hour:   b.hour,
			Minute: b.minute,
		})
	}
	return requests
}

func compose(stacks []models.HabitStack) (title, body string) {
	total := 0
	for _, s := range stacks {
		total += len(s.Habits)
	}

	switch len(stacks) {
	case 1:
		s := stacks[0]
		title = s.Name
		if anchor := s.Anchor(); anchor != nil {
			body = fmt.Sprintf("%s ready, starting with %q", habitCount(total), anchor.Name)
		} else {
			body = fmt.Sprintf("%s ready", habitCount(total))
		}
	case 2:
		title = "Stack time"
		body = fmt.Sprintf("%s and %s: %s ready", stacks[0].Name, stacks[1].Name, habitCount(total))
	default:
		title = "Stack time"
		body = fmt.Sprintf("%s and %d other stacks: %s ready", stacks[0].Name, len(stacks)-1, habitCount(total))
	}
	return title, body
}

func habitCount(n int) string {
	if n == 1 {
		return "1 habit"
	}
	return fmt.Sprintf("%d habits", n)
}
