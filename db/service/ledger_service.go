package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/db/models"
	"github.com/castelle/tipcast/db/repository"
	"github.com/castelle/tipcast/format"
	"github.com/google/uuid"
)

// ErrLedgerWrite marks persistence failures. A publish may have already
// succeeded remotely when this is returned, so callers log it as a
// reconciliation gap rather than a clean failure.
var ErrLedgerWrite = errors.New("ledger write failed")

// LedgerService owns every mutation of the posting ledger. The tip and MCQ
// partitions are guarded independently so their triggers can run
// concurrently without conflict.
type LedgerService struct {
	tipPosts   repository.TipPostRepository
	mcqPosts   repository.MCQPostRepository
	postedTips repository.PostedTipRepository

	tipMu sync.Mutex
	mcqMu sync.Mutex

	now func() time.Time
}

// NewLedgerService creates a ledger service on top of the repositories.
func NewLedgerService(tipPosts repository.TipPostRepository, mcqPosts repository.MCQPostRepository, postedTips repository.PostedTipRepository) *LedgerService {
	return &LedgerService{
		tipPosts:   tipPosts,
		mcqPosts:   mcqPosts,
		postedTips: postedTips,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock, used by tests.
func (s *LedgerService) SetNowFunc(now func() time.Time) {
	s.now = now
}

// PostedTipTexts returns the tip texts consumed in the current rotation
// cycle for a category.
func (s *LedgerService) PostedTipTexts(category string) (map[string]bool, error) {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	texts, err := s.postedTips.Texts(category)
	if err != nil {
		return nil, fmt.Errorf("loading posted tips for %s: %w", category, err)
	}
	posted := make(map[string]bool, len(texts))
	for _, text := range texts {
		posted[text] = true
	}
	return posted, nil
}

// RecordTipPosted marks a tip as consumed in the current rotation cycle.
func (s *LedgerService) RecordTipPosted(tip content.Tip) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	if err := s.postedTips.Add(tip.Category, tip.Text); err != nil {
		return fmt.Errorf("%w: recording posted tip: %v", ErrLedgerWrite, err)
	}
	return nil
}

// ResetTipRotation clears the cycle for a category so every tip becomes
// eligible again.
func (s *LedgerService) ResetTipRotation(category string) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	if err := s.postedTips.Reset(category); err != nil {
		return fmt.Errorf("%w: resetting tip rotation for %s: %v", ErrLedgerWrite, category, err)
	}
	return nil
}

// RecordTipPost creates a pending history record for a tip, image or custom
// post and returns it.
func (s *LedgerService) RecordTipPost(postType, category, body, imageURL string) (*models.TipPost, error) {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	post := &models.TipPost{
		ID:       uuid.NewString(),
		Type:     postType,
		Category: category,
		Content:  body,
		Date:     s.now(),
		Status:   models.StatusPending,
		ImageURL: imageURL,
	}
	if err := s.tipPosts.Create(post); err != nil {
		return nil, fmt.Errorf("%w: creating tip post record: %v", ErrLedgerWrite, err)
	}
	return post, nil
}

// MarkTipPublished transitions a tip record to published.
func (s *LedgerService) MarkTipPublished(id string) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	if err := s.tipPosts.UpdateStatus(id, models.StatusPublished); err != nil {
		return fmt.Errorf("%w: marking tip post %s published: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// MarkTipFailed transitions a tip record to failed. The tip is not added to
// the rotation set, so the next trigger can pick it again.
func (s *LedgerService) MarkTipFailed(id string) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	if err := s.tipPosts.UpdateStatus(id, models.StatusFailed); err != nil {
		return fmt.Errorf("%w: marking tip post %s failed: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// RecordMCQPosted creates a pending history record for a question with the
// next sequential id. Once a record exists the question counts as posted for
// selection purposes, regardless of how the publish attempt ends (unless the
// scheduler is configured otherwise).
func (s *LedgerService) RecordMCQPosted(mcq content.MCQ) (*models.MCQPost, error) {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	nextID, err := s.mcqPosts.NextID()
	if err != nil {
		return nil, fmt.Errorf("%w: assigning mcq post id: %v", ErrLedgerWrite, err)
	}

	post := &models.MCQPost{
		ID:          nextID,
		ContentID:   mcq.ID,
		Content:     format.MCQRecordContent(mcq),
		Answer:      mcq.CorrectAnswer,
		Explanation: mcq.Explanation,
		Category:    mcq.Category,
		Difficulty:  mcq.Difficulty,
		Date:        s.now(),
		Status:      models.StatusPending,
	}
	if err := s.mcqPosts.Create(post); err != nil {
		return nil, fmt.Errorf("%w: creating mcq post record: %v", ErrLedgerWrite, err)
	}
	return post, nil
}

// PostedMCQIDs returns the set of question ids that already carry a ledger
// record. With consumeOnFailure false, failed attempts do not count and the
// question becomes eligible again.
func (s *LedgerService) PostedMCQIDs(consumeOnFailure bool) (map[int]bool, error) {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	var statuses []string
	if !consumeOnFailure {
		statuses = []string{models.StatusPending, models.StatusPublished}
	}

	ids, err := s.mcqPosts.PostedContentIDs(statuses)
	if err != nil {
		return nil, fmt.Errorf("loading posted mcq ids: %w", err)
	}
	posted := make(map[int]bool, len(ids))
	for _, id := range ids {
		posted[id] = true
	}
	return posted, nil
}

// MarkMCQPublished transitions a question record to published and stores the
// platform post id the answer follow-up will reply to.
func (s *LedgerService) MarkMCQPublished(id int, platformPostID string) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	if err := s.mcqPosts.MarkPublished(id, platformPostID); err != nil {
		return fmt.Errorf("%w: marking mcq post %d published: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// MarkMCQFailed transitions a question record to failed.
func (s *LedgerService) MarkMCQFailed(id int) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	if err := s.mcqPosts.MarkFailed(id); err != nil {
		return fmt.Errorf("%w: marking mcq post %d failed: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// FindAnswerableMCQ returns the most recently dated record whose question
// was published but whose answer has not been posted, or nil when none.
func (s *LedgerService) FindAnswerableMCQ() (*models.MCQPost, error) {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	post, err := s.mcqPosts.FindAnswerable()
	if err != nil {
		return nil, fmt.Errorf("finding answerable mcq: %w", err)
	}
	return post, nil
}

// MarkAnswerPosted records that the answer comment went out.
func (s *LedgerService) MarkAnswerPosted(id int) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	if err := s.mcqPosts.MarkAnswerPosted(id, s.now()); err != nil {
		return fmt.Errorf("%w: marking mcq post %d answered: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// DeleteTipPost removes a tip history record by explicit operator action.
func (s *LedgerService) DeleteTipPost(id string) error {
	s.tipMu.Lock()
	defer s.tipMu.Unlock()

	if err := s.tipPosts.Delete(id); err != nil {
		return fmt.Errorf("%w: deleting tip post %s: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// DeleteMCQPost removes an MCQ history record by explicit operator action.
func (s *LedgerService) DeleteMCQPost(id int) error {
	s.mcqMu.Lock()
	defer s.mcqMu.Unlock()

	if err := s.mcqPosts.Delete(id); err != nil {
		return fmt.Errorf("%w: deleting mcq post %d: %v", ErrLedgerWrite, id, err)
	}
	return nil
}

// PostRecord is the union view over both history partitions. Type
// discriminates which pointer is set.
type PostRecord struct {
	Type string // "tip", "image", "custom" or "mcq"
	Tip  *models.TipPost
	MCQ  *models.MCQPost
}

// AllPosts returns the full post history across both partitions, newest
// first.
func (s *LedgerService) AllPosts() ([]PostRecord, error) {
	tips, err := s.tipPosts.All()
	if err != nil {
		return nil, fmt.Errorf("loading tip history: %w", err)
	}
	mcqs, err := s.mcqPosts.All()
	if err != nil {
		return nil, fmt.Errorf("loading mcq history: %w", err)
	}

	records := make([]PostRecord, 0, len(tips)+len(mcqs))
	for i := range tips {
		records = append(records, PostRecord{Type: tips[i].Type, Tip: &tips[i]})
	}
	for i := range mcqs {
		records = append(records, PostRecord{Type: "mcq", MCQ: &mcqs[i]})
	}

	sort.Slice(records, func(i, j int) bool {
		return recordDate(records[i]).After(recordDate(records[j]))
	})
	return records, nil
}

func recordDate(r PostRecord) time.Time {
	if r.MCQ != nil {
		return r.MCQ.Date
	}
	return r.Tip.Date
}

// Stats summarizes the ledger for the stats command.
type Stats struct {
	TipsPublished int64
	TipsFailed    int64
	MCQsPublished int64
	MCQsFailed    int64
	MCQsPending   int64
}

// LedgerStats counts records per partition and status.
func (s *LedgerService) LedgerStats() (Stats, error) {
	var stats Stats
	var err error

	if stats.TipsPublished, err = s.tipPosts.CountByStatus(models.StatusPublished); err != nil {
		return stats, err
	}
	if stats.TipsFailed, err = s.tipPosts.CountByStatus(models.StatusFailed); err != nil {
		return stats, err
	}
	if stats.MCQsPublished, err = s.mcqPosts.CountByStatus(models.StatusPublished); err != nil {
		return stats, err
	}
	if stats.MCQsFailed, err = s.mcqPosts.CountByStatus(models.StatusFailed); err != nil {
		return stats, err
	}
	if stats.MCQsPending, err = s.mcqPosts.CountByStatus(models.StatusPending); err != nil {
		return stats, err
	}
	return stats, nil
}
