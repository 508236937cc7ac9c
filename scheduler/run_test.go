package scheduler

import (
	"testing"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/stretchr/testify/require"
)

func mustWeekdays(t *testing.T, names []string) map[time.Weekday]bool {
	t.Helper()
	days, err := config.ParseWeekdays(names)
	require.NoError(t, err)
	return days
}

func TestNextTriggerSameDay(t *testing.T) {
	// Monday 2026-08-10, 08:00, daily trigger at 09:00.
	from := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	next := NextTrigger(from, config.Clock{Hour: 9, Minute: 0}, everyDay)
	require.Equal(t, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerRollsToTomorrow(t *testing.T) {
	from := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	next := NextTrigger(from, config.Clock{Hour: 9, Minute: 0}, everyDay)
	require.Equal(t, time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerExactInstantRolls(t *testing.T) {
	// A trigger never fires twice for the same instant.
	from := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	next := NextTrigger(from, config.Clock{Hour: 9, Minute: 0}, everyDay)
	require.Equal(t, time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerSkipsDisallowedWeekdays(t *testing.T) {
	days := mustWeekdays(t, []string{"Monday", "Wednesday", "Friday"})

	// Monday after 15:00 rolls past Tuesday to Wednesday.
	from := time.Date(2026, 8, 10, 16, 0, 0, 0, time.UTC)
	next := NextTrigger(from, config.Clock{Hour: 15, Minute: 0}, days)
	require.Equal(t, time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC), next)
	require.Equal(t, time.Wednesday, next.Weekday())

	// Saturday rolls across the weekend to Monday.
	from = time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	next = NextTrigger(from, config.Clock{Hour: 15, Minute: 0}, days)
	require.Equal(t, time.Date(2026, 8, 17, 15, 0, 0, 0, time.UTC), next)
	require.Equal(t, time.Monday, next.Weekday())
}

func TestNextTriggerEmptyDaysRunsDaily(t *testing.T) {
	from := time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC)
	next := NextTrigger(from, config.Clock{Hour: 9, Minute: 0}, nil)
	require.Equal(t, time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC), next)
}

func TestNextTriggerAnswerDayFollowsQuestionDay(t *testing.T) {
	questionDays := mustWeekdays(t, []string{"Monday", "Wednesday", "Friday"})
	answerDays := mustWeekdays(t, []string{"Tuesday", "Thursday", "Saturday"})
	clock := config.Clock{Hour: 15, Minute: 0}

	from := time.Date(2026, 8, 9, 12, 0, 0, 0, time.UTC) // Sunday
	question := NextTrigger(from, clock, questionDays)
	answer := NextTrigger(question, clock, answerDays)

	require.Equal(t, time.Monday, question.Weekday())
	require.Equal(t, time.Tuesday, answer.Weekday())
	require.Equal(t, 24*time.Hour, answer.Sub(question))
}
