package scheduler

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/castelle/tipcast/config"
	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/db"
	"github.com/castelle/tipcast/db/models"
	"github.com/castelle/tipcast/db/repository"
	dbservice "github.com/castelle/tipcast/db/service"
	"github.com/castelle/tipcast/publisher"
	"github.com/stretchr/testify/require"
)

type reply struct {
	parent string
	body   string
}

type fakePublisher struct {
	mu       sync.Mutex
	textErr  error
	replyErr error
	texts    []string
	images   []string
	replies  []reply
	nextID   int
}

func (f *fakePublisher) PostText(ctx context.Context, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textErr != nil {
		return "", f.textErr
	}
	f.nextID++
	f.texts = append(f.texts, body)
	return fmt.Sprintf("urn:li:share:%d", f.nextID), nil
}

func (f *fakePublisher) PostImage(ctx context.Context, body, imagePath string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.textErr != nil {
		return "", f.textErr
	}
	f.nextID++
	f.images = append(f.images, imagePath)
	return fmt.Sprintf("urn:li:share:%d", f.nextID), nil
}

func (f *fakePublisher) PostReply(ctx context.Context, parentPostID, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replyErr != nil {
		return "", f.replyErr
	}
	f.nextID++
	f.replies = append(f.replies, reply{parent: parentPostID, body: body})
	return fmt.Sprintf("urn:li:comment:%d", f.nextID), nil
}

type fakeNotifier struct {
	publishFailed    int
	authExpired      int
	contentExhausted int
}

func (f *fakeNotifier) NotifyPublishFailed(kind, detail string) { f.publishFailed++ }
func (f *fakeNotifier) NotifyAuthExpired(platform string)       { f.authExpired++ }
func (f *fakeNotifier) NotifyContentExhausted()                 { f.contentExhausted++ }

type fixture struct {
	sched    *Scheduler
	store    *content.Store
	ledger   *dbservice.LedgerService
	pub      *fakePublisher
	notifier *fakeNotifier
	cfg      *config.Config
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := content.NewStore(t.TempDir())
	require.NoError(t, err)

	database, err := db.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	ledger := dbservice.NewLedgerService(
		repository.NewTipPostRepository(database.DB),
		repository.NewMCQPostRepository(database.DB),
		repository.NewPostedTipRepository(database.DB),
	)

	cfg := config.CreateDefaultConfig()
	cfg.Options.ConsumeOnFailure = true

	pub := &fakePublisher{}
	notifier := &fakeNotifier{}

	f := &fixture{
		store:    store,
		ledger:   ledger,
		pub:      pub,
		notifier: notifier,
		cfg:      cfg,
		// An even day of month, so tips come from the javascript pool.
		now: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
	}
	f.sched = NewScheduler(store, ledger, pub, notifier, cfg, nil)
	f.sched.SetNowFunc(func() time.Time { return f.now })
	ledger.SetNowFunc(func() time.Time { return f.now })
	return f
}

func TestTipCategoryFor(t *testing.T) {
	even := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	odd := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)
	require.Equal(t, content.CategoryJavaScript, TipCategoryFor(even))
	require.Equal(t, content.CategoryReact, TipCategoryFor(odd))
}

func TestPostTipPublishesAndConsumes(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostTip(context.Background()))

	require.Len(t, f.pub.texts, 1)
	require.Contains(t, f.pub.texts[0], "Daily JavaScript Tip")

	posted, err := f.ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.Len(t, posted, 1)

	records, err := f.ledger.AllPosts()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.StatusPublished, records[0].Tip.Status)
}

func TestPostTipFailureDoesNotConsume(t *testing.T) {
	f := newFixture(t)
	f.pub.textErr = publisher.ErrPublishFailed

	require.Error(t, f.sched.PostTip(context.Background()))

	// The record reflects the failure, but the tip stays eligible.
	records, err := f.ledger.AllPosts()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.StatusFailed, records[0].Tip.Status)

	posted, err := f.ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.Empty(t, posted, "a failed tip publish must not consume rotation state")
	require.Equal(t, 1, f.notifier.publishFailed)

	// The next trigger retries cleanly.
	f.pub.textErr = nil
	require.NoError(t, f.sched.PostTip(context.Background()))

	posted, err = f.ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.Len(t, posted, 1)
}

func TestPostTipAuthExpiredNotifies(t *testing.T) {
	f := newFixture(t)
	f.pub.textErr = publisher.ErrAuthExpired

	require.Error(t, f.sched.PostTip(context.Background()))
	require.Equal(t, 1, f.notifier.authExpired)
	require.Zero(t, f.notifier.publishFailed)
}

func TestPostTipRotationReset(t *testing.T) {
	f := newFixture(t)

	pool := f.store.Tips(content.CategoryJavaScript)
	for _, tip := range pool {
		require.NoError(t, f.ledger.RecordTipPosted(tip))
	}

	require.NoError(t, f.sched.PostTip(context.Background()))

	posted, err := f.ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.Len(t, posted, 1, "exhausted rotation resets before recording the new tip")
}

func TestPostTipNoRepeatAcrossFullCycle(t *testing.T) {
	f := newFixture(t)

	pool := f.store.Tips(content.CategoryJavaScript)
	for range pool {
		require.NoError(t, f.sched.PostTip(context.Background()))
	}

	require.Len(t, f.pub.texts, len(pool))
	seen := map[string]bool{}
	for _, body := range f.pub.texts {
		require.False(t, seen[body], "tip repeated within one rotation cycle")
		seen[body] = true
	}
}

func TestPostMCQTwoPhase(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostMCQ(context.Background()))
	require.Len(t, f.pub.texts, 1)
	require.Contains(t, f.pub.texts[0], "#DailyCodingQuiz")

	// Next day, the answer trigger replies to the stored post id.
	f.now = f.now.AddDate(0, 0, 1)
	require.NoError(t, f.sched.PostMCQAnswer(context.Background()))
	require.Len(t, f.pub.replies, 1)
	require.Equal(t, "urn:li:share:1", f.pub.replies[0].parent)
	require.Contains(t, f.pub.replies[0].body, "The correct answer is")

	// A second answer trigger finds nothing to do.
	f.now = f.now.AddDate(0, 0, 2)
	require.NoError(t, f.sched.PostMCQAnswer(context.Background()))
	require.Len(t, f.pub.replies, 1)
}

func TestPostMCQAnswerNoopWhenNothingAnswerable(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostMCQAnswer(context.Background()))
	require.Empty(t, f.pub.replies)
}

func TestPostMCQAnswerRetriesAfterFailure(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostMCQ(context.Background()))

	f.pub.replyErr = publisher.ErrPublishFailed
	require.Error(t, f.sched.PostMCQAnswer(context.Background()))
	require.Equal(t, 1, f.notifier.publishFailed)

	// The record stayed answerable, so the next answer day picks it up.
	f.pub.replyErr = nil
	require.NoError(t, f.sched.PostMCQAnswer(context.Background()))
	require.Len(t, f.pub.replies, 1)
}

func TestPostMCQFailureConsumesQuestion(t *testing.T) {
	f := newFixture(t)
	f.pub.textErr = publisher.ErrPublishFailed

	require.Error(t, f.sched.PostMCQ(context.Background()))

	posted, err := f.ledger.PostedMCQIDs(f.cfg.Options.ConsumeOnFailure)
	require.NoError(t, err)
	require.Len(t, posted, 1, "with consume_on_failure a failed publish still consumes the question")
}

func TestPostMCQFailureReeligibleWithFlagOff(t *testing.T) {
	f := newFixture(t)
	f.cfg.Options.ConsumeOnFailure = false
	f.pub.textErr = publisher.ErrPublishFailed

	require.Error(t, f.sched.PostMCQ(context.Background()))

	posted, err := f.ledger.PostedMCQIDs(f.cfg.Options.ConsumeOnFailure)
	require.NoError(t, err)
	require.Empty(t, posted, "with the flag off a failed publish leaves the question eligible")
}

func TestPostMCQExhaustionSkipsCycle(t *testing.T) {
	f := newFixture(t)

	total := len(f.store.MCQs())
	for i := 0; i < total; i++ {
		require.NoError(t, f.sched.PostMCQ(context.Background()))
	}
	require.Len(t, f.pub.texts, total)

	// One more trigger: nothing left, logged and skipped without error.
	require.NoError(t, f.sched.PostMCQ(context.Background()))
	require.Len(t, f.pub.texts, total)
	require.Equal(t, 1, f.notifier.contentExhausted)
}

func TestPostCustomWithImage(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostCustom(context.Background(), content.CategoryReact, "look at this", "/tmp/pic.png"))
	require.Len(t, f.pub.images, 1)

	records, err := f.ledger.AllPosts()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.TipTypeImage, records[0].Type)
	require.Equal(t, "/tmp/pic.png", records[0].Tip.ImageURL)
}

func TestStats(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.sched.PostTip(context.Background()))
	require.NoError(t, f.sched.PostMCQ(context.Background()))

	stats, err := f.sched.Stats()
	require.NoError(t, err)
	require.Equal(t, len(f.store.Tips(content.CategoryJavaScript)), stats.JSTipsTotal)
	require.Equal(t, 1, stats.JSTipsPosted)
	require.Equal(t, 0, stats.ReactTipsPosted)
	require.Equal(t, len(f.store.MCQs()), stats.MCQsTotal)
	require.Equal(t, len(f.store.MCQs())-1, stats.MCQsUnposted)
	require.EqualValues(t, 1, stats.Ledger.TipsPublished)
	require.EqualValues(t, 1, stats.Ledger.MCQsPublished)
}
