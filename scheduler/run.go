package scheduler

import (
	"context"
	"time"

	"github.com/castelle/tipcast/config"
	"golang.org/x/sync/errgroup"
)

var everyDay = map[time.Weekday]bool{
	time.Sunday:    true,
	time.Monday:    true,
	time.Tuesday:   true,
	time.Wednesday: true,
	time.Thursday:  true,
	time.Friday:    true,
	time.Saturday:  true,
}

// Run drives the three calendar triggers until the context is canceled.
// Trigger failures are logged and swallowed; only context cancellation ends
// the loops. An in-flight publish finishes (or hits its timeout) before Run
// returns, because each trigger handler runs to completion.
func (s *Scheduler) Run(ctx context.Context) error {
	tipClock, err := config.ParseClock(s.cfg.Schedule.TipTime)
	if err != nil {
		return err
	}
	mcqClock, err := config.ParseClock(s.cfg.Schedule.MCQTime)
	if err != nil {
		return err
	}
	questionDays, err := config.ParseWeekdays(s.cfg.Schedule.MCQQuestionDays)
	if err != nil {
		return err
	}
	answerDays, err := config.ParseWeekdays(s.cfg.Schedule.MCQAnswerDays)
	if err != nil {
		return err
	}

	s.logger.Printf("Starting scheduler: tips daily at %s, MCQ questions %v at %s, answers %v",
		s.cfg.Schedule.TipTime, s.cfg.Schedule.MCQQuestionDays, s.cfg.Schedule.MCQTime, s.cfg.Schedule.MCQAnswerDays)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.runTrigger(ctx, "tip", tipClock, everyDay, s.PostTip)
	})
	g.Go(func() error {
		return s.runTrigger(ctx, "mcq question", mcqClock, questionDays, s.PostMCQ)
	})
	g.Go(func() error {
		return s.runTrigger(ctx, "mcq answer", mcqClock, answerDays, s.PostMCQAnswer)
	})

	return g.Wait()
}

func (s *Scheduler) runTrigger(ctx context.Context, name string, clock config.Clock, days map[time.Weekday]bool, fn func(context.Context) error) error {
	for {
		next := NextTrigger(s.now(), clock, days)
		s.logger.Printf("Next %s trigger at %s", name, next.Format(time.RFC1123))

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		s.logger.Printf("Running scheduled %s job", name)
		if err := fn(ctx); err != nil {
			// Already logged and notified by the handler; the next
			// occurrence proceeds independently.
			s.logger.Printf("Scheduled %s job failed: %v", name, err)
		}
	}
}

// NextTrigger returns the first instant strictly after from that falls on
// an allowed weekday at the given wall-clock time. An empty weekday set is
// treated as every day.
func NextTrigger(from time.Time, clock config.Clock, days map[time.Weekday]bool) time.Time {
	if len(days) == 0 {
		days = everyDay
	}
	candidate := time.Date(from.Year(), from.Month(), from.Day(), clock.Hour, clock.Minute, 0, 0, from.Location())
	if !candidate.After(from) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	for !days[candidate.Weekday()] {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}
