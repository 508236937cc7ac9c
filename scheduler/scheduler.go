// Package scheduler drives the calendar-triggered posting flows: the daily
// tip, the question-day MCQ publish and the answer-day follow-up comment.
// All collaborators are injected; there is no package-level state.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/db/models"
	dbservice "github.com/castelle/tipcast/db/service"
	"github.com/castelle/tipcast/format"
	"github.com/castelle/tipcast/publisher"
	"github.com/castelle/tipcast/selector"
)

// Notifier is the operator-alert surface the scheduler reports into.
type Notifier interface {
	NotifyPublishFailed(kind, detail string)
	NotifyAuthExpired(platform string)
	NotifyContentExhausted()
}

// Scheduler owns the select → publish → record flow for every content type.
// Per-type mutexes serialize manual re-triggers against the calendar loops;
// the tip and MCQ partitions stay independent.
type Scheduler struct {
	store    *content.Store
	ledger   *dbservice.LedgerService
	pub      publisher.Publisher
	notifier Notifier
	cfg      *config.Config
	logger   *log.Logger
	now      func() time.Time

	tipMu sync.Mutex
	mcqMu sync.Mutex
}

func NewScheduler(store *content.Store, ledger *dbservice.LedgerService, pub publisher.Publisher, notifier Notifier, cfg *config.Config, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(os.Stdout, "scheduler: ", log.LstdFlags)
	}
	return &Scheduler{
		store:    store,
		ledger:   ledger,
		pub:      pub,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// SetNowFunc overrides the clock, used by tests.
func (s *Scheduler) SetNowFunc(now func() time.Time) {
	s.now = now
}

// TipCategoryFor alternates tip categories by day of month: even days are
// JavaScript, odd days are React.
func TipCategoryFor(t time.Time) string {
	if t.Day()%2 == 0 {
		return content.CategoryJavaScript
	}
	return content.CategoryReact
}

// PostTip runs one tip cycle: select an unposted tip for today's category,
// publish it, and commit the outcome to the ledger. A failed publish leaves
// the tip out of the rotation set so the next trigger can pick it again.
func (s *Scheduler) PostTip(ctx context.Context) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	category := TipCategoryFor(s.now())
	pool := s.store.Tips(category)
	if len(pool) == 0 {
		return fmt.Errorf("no tips loaded for category %s", category)
	}

	posted, err := s.ledger.PostedTipTexts(category)
	if err != nil {
		return err
	}

	tip, reset := selector.NextTip(pool, posted)
	if reset {
		s.logger.Printf("Tip rotation for %s complete, resetting cycle", category)
		if err := s.ledger.ResetTipRotation(category); err != nil {
			return err
		}
	}

	body := format.Tip(tip)
	record, err := s.ledger.RecordTipPost(models.TipTypeTip, category, body, "")
	if err != nil {
		return err
	}

	postCtx, cancel := context.WithTimeout(ctx, publisher.PublishTimeout)
	defer cancel()

	if _, err := s.pub.PostText(postCtx, body); err != nil {
		s.reportPublishError("tip", err)
		if markErr := s.ledger.MarkTipFailed(record.ID); markErr != nil {
			s.logger.Printf("Ledger update after failed tip publish also failed: %v", markErr)
		}
		return err
	}

	s.logger.Printf("Successfully posted %s tip", category)
	if err := s.ledger.MarkTipPublished(record.ID); err != nil {
		// The post is live but the ledger missed the commit; flag the gap
		// so an operator can reconcile by hand.
		s.logger.Printf("RECONCILIATION GAP: tip %s published remotely but ledger update failed: %v", record.ID, err)
		return err
	}
	if err := s.ledger.RecordTipPosted(tip); err != nil {
		s.logger.Printf("RECONCILIATION GAP: tip %s published but rotation set update failed: %v", record.ID, err)
		return err
	}
	return nil
}

// PostCustom publishes operator-supplied content outside the rotation: a
// plain text post, or an image post when imagePath is set.
func (s *Scheduler) PostCustom(ctx context.Context, category, body, imagePath string) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	postType := models.TipTypeCustom
	if imagePath != "" {
		postType = models.TipTypeImage
	}

	record, err := s.ledger.RecordTipPost(postType, category, body, imagePath)
	if err != nil {
		return err
	}

	postCtx, cancel := context.WithTimeout(ctx, publisher.PublishTimeout)
	defer cancel()

	if imagePath != "" {
		_, err = s.pub.PostImage(postCtx, body, imagePath)
	} else {
		_, err = s.pub.PostText(postCtx, body)
	}
	if err != nil {
		s.reportPublishError(postType, err)
		if markErr := s.ledger.MarkTipFailed(record.ID); markErr != nil {
			s.logger.Printf("Ledger update after failed %s publish also failed: %v", postType, markErr)
		}
		return err
	}

	s.logger.Printf("Successfully posted %s post", postType)
	if err := s.ledger.MarkTipPublished(record.ID); err != nil {
		s.logger.Printf("RECONCILIATION GAP: %s post %s published remotely but ledger update failed: %v", postType, record.ID, err)
		return err
	}
	return nil
}

// PostMCQ runs one question cycle: select an unposted question, create its
// ledger record, publish it and store the platform post id for the answer
// follow-up. An exhausted pool is logged and skipped, never auto-reset.
func (s *Scheduler) PostMCQ(ctx context.Context) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	postedIDs, err := s.ledger.PostedMCQIDs(s.cfg.Options.ConsumeOnFailure)
	if err != nil {
		return err
	}

	mcq, err := selector.NextMCQ(s.store.MCQs(), postedIDs)
	if errors.Is(err, selector.ErrNoContent) {
		s.logger.Printf("No unposted MCQs available, skipping this cycle")
		s.notifier.NotifyContentExhausted()
		return nil
	}
	if err != nil {
		return err
	}

	record, err := s.ledger.RecordMCQPosted(mcq)
	if err != nil {
		return err
	}

	postCtx, cancel := context.WithTimeout(ctx, publisher.PublishTimeout)
	defer cancel()

	postID, err := s.pub.PostText(postCtx, format.MCQ(mcq))
	if err != nil {
		s.reportPublishError("mcq", err)
		if markErr := s.ledger.MarkMCQFailed(record.ID); markErr != nil {
			s.logger.Printf("Ledger update after failed MCQ publish also failed: %v", markErr)
		}
		return err
	}

	s.logger.Printf("Successfully posted MCQ #%d", mcq.ID)
	if err := s.ledger.MarkMCQPublished(record.ID, postID); err != nil {
		s.logger.Printf("RECONCILIATION GAP: MCQ post %d published remotely as %s but ledger update failed: %v", record.ID, postID, err)
		return err
	}
	return nil
}

// PostMCQAnswer posts the answer of the most recent published, unanswered
// question as a comment on the original post. A no-op when nothing is
// answerable.
func (s *Scheduler) PostMCQAnswer(ctx context.Context) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	record, err := s.ledger.FindAnswerableMCQ()
	if err != nil {
		return err
	}
	if record == nil {
		s.logger.Printf("No MCQ posts found needing answers")
		return nil
	}

	mcq, ok := s.store.MCQByID(record.ContentID)
	if !ok {
		return fmt.Errorf("mcq %d referenced by post %d not found in library", record.ContentID, record.ID)
	}

	postCtx, cancel := context.WithTimeout(ctx, publisher.PublishTimeout)
	defer cancel()

	if _, err := s.pub.PostReply(postCtx, *record.LinkedInPostID, format.MCQAnswer(mcq)); err != nil {
		// The record stays answerable, so the next answer day retries it.
		s.reportPublishError("mcq answer", err)
		return err
	}

	s.logger.Printf("Successfully posted answer for MCQ #%d", mcq.ID)
	if err := s.ledger.MarkAnswerPosted(record.ID); err != nil {
		s.logger.Printf("RECONCILIATION GAP: answer for MCQ post %d published but ledger update failed: %v", record.ID, err)
		return err
	}
	return nil
}

func (s *Scheduler) reportPublishError(kind string, err error) {
	if errors.Is(err, publisher.ErrAuthExpired) {
		s.logger.Printf("Auth expired while publishing %s: %v", kind, err)
		s.notifier.NotifyAuthExpired("LinkedIn")
		return
	}
	s.logger.Printf("Failed to publish %s: %v", kind, err)
	s.notifier.NotifyPublishFailed(kind, err.Error())
}

// Stats summarizes the content pools and ledger for the stats command.
type Stats struct {
	JSTipsTotal     int
	ReactTipsTotal  int
	JSTipsPosted    int
	ReactTipsPosted int
	MCQsTotal       int
	MCQsUnposted    int
	Ledger          dbservice.Stats
}

func (s *Scheduler) Stats() (Stats, error) {
	stats := Stats{
		JSTipsTotal:    len(s.store.Tips(content.CategoryJavaScript)),
		ReactTipsTotal: len(s.store.Tips(content.CategoryReact)),
		MCQsTotal:      len(s.store.MCQs()),
	}

	jsPosted, err := s.ledger.PostedTipTexts(content.CategoryJavaScript)
	if err != nil {
		return stats, err
	}
	stats.JSTipsPosted = len(jsPosted)

	reactPosted, err := s.ledger.PostedTipTexts(content.CategoryReact)
	if err != nil {
		return stats, err
	}
	stats.ReactTipsPosted = len(reactPosted)

	postedIDs, err := s.ledger.PostedMCQIDs(s.cfg.Options.ConsumeOnFailure)
	if err != nil {
		return stats, err
	}
	for _, mcq := range s.store.MCQs() {
		if !postedIDs[mcq.ID] {
			stats.MCQsUnposted++
		}
	}

	ledgerStats, err := s.ledger.LedgerStats()
	if err != nil {
		return stats, err
	}
	stats.Ledger = ledgerStats
	return stats, nil
}
