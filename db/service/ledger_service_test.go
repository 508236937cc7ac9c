package service

import (
	"testing"
	"time"

	"github.com/castelle/tipcast/content"
	"github.com/castelle/tipcast/db"
	"github.com/castelle/tipcast/db/models"
	"github.com/castelle/tipcast/db/repository"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *LedgerService {
	t.Helper()

	database, err := db.NewMemoryDatabase()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewLedgerService(
		repository.NewTipPostRepository(database.DB),
		repository.NewMCQPostRepository(database.DB),
		repository.NewPostedTipRepository(database.DB),
	)
}

func sampleMCQ(id int) content.MCQ {
	return content.MCQ{
		ID:            id,
		Question:      "What does typeof null return?",
		Options:       []string{"null", "object"},
		CorrectAnswer: "object",
		Explanation:   "Language quirk.",
		Category:      content.CategoryJavaScript,
		Difficulty:    content.DifficultyEasy,
	}
}

func TestRecordMCQPostedAssignsSequentialIDs(t *testing.T) {
	ledger := newTestLedger(t)

	var lastID int
	for i := 1; i <= 5; i++ {
		record, err := ledger.RecordMCQPosted(sampleMCQ(100 + i))
		require.NoError(t, err)
		require.Greater(t, record.ID, lastID, "ids must be strictly increasing")
		lastID = record.ID
	}
	require.Equal(t, 5, lastID)
}

func TestRecordMCQPostedInitialState(t *testing.T) {
	ledger := newTestLedger(t)

	record, err := ledger.RecordMCQPosted(sampleMCQ(42))
	require.NoError(t, err)

	require.Equal(t, models.StatusPending, record.Status)
	require.Nil(t, record.LinkedInPostID)
	require.False(t, record.AnswerPosted)
	require.Equal(t, 42, record.ContentID)
	require.Contains(t, record.Content, "A. null")
	require.Equal(t, "object", record.Answer)
}

func TestTwoPhaseAnswerFlow(t *testing.T) {
	ledger := newTestLedger(t)

	record, err := ledger.RecordMCQPosted(sampleMCQ(1))
	require.NoError(t, err)

	// Nothing is answerable while the question post id is unknown.
	answerable, err := ledger.FindAnswerableMCQ()
	require.NoError(t, err)
	require.Nil(t, answerable)

	require.NoError(t, ledger.MarkMCQPublished(record.ID, "urn:li:share:123"))

	answerable, err = ledger.FindAnswerableMCQ()
	require.NoError(t, err)
	require.NotNil(t, answerable)
	require.Equal(t, record.ID, answerable.ID)
	require.NotNil(t, answerable.LinkedInPostID)
	require.Equal(t, "urn:li:share:123", *answerable.LinkedInPostID)

	require.NoError(t, ledger.MarkAnswerPosted(record.ID))

	answerable, err = ledger.FindAnswerableMCQ()
	require.NoError(t, err)
	require.Nil(t, answerable, "an answered record is no longer answerable")
}

func TestFindAnswerableMCQSkipsFailedAndPrefersLatest(t *testing.T) {
	ledger := newTestLedger(t)

	now := time.Date(2026, 8, 3, 15, 0, 0, 0, time.UTC)
	ledger.SetNowFunc(func() time.Time { return now })

	failed, err := ledger.RecordMCQPosted(sampleMCQ(1))
	require.NoError(t, err)
	require.NoError(t, ledger.MarkMCQFailed(failed.ID))

	now = now.AddDate(0, 0, 2)
	older, err := ledger.RecordMCQPosted(sampleMCQ(2))
	require.NoError(t, err)
	require.NoError(t, ledger.MarkMCQPublished(older.ID, "urn:li:share:older"))

	now = now.AddDate(0, 0, 2)
	newer, err := ledger.RecordMCQPosted(sampleMCQ(3))
	require.NoError(t, err)
	require.NoError(t, ledger.MarkMCQPublished(newer.ID, "urn:li:share:newer"))

	answerable, err := ledger.FindAnswerableMCQ()
	require.NoError(t, err)
	require.NotNil(t, answerable)
	require.Equal(t, newer.ID, answerable.ID, "latest published record wins")
}

func TestPostedMCQIDsCountsFailedByDefault(t *testing.T) {
	ledger := newTestLedger(t)

	record, err := ledger.RecordMCQPosted(sampleMCQ(7))
	require.NoError(t, err)
	require.NoError(t, ledger.MarkMCQFailed(record.ID))

	// Historical behavior: a failed publish still consumes the question.
	posted, err := ledger.PostedMCQIDs(true)
	require.NoError(t, err)
	require.True(t, posted[7])

	// Corrected behavior behind the flag: failed records do not consume.
	posted, err = ledger.PostedMCQIDs(false)
	require.NoError(t, err)
	require.False(t, posted[7])
}

func TestPostedMCQIDsPendingAlwaysCounts(t *testing.T) {
	ledger := newTestLedger(t)

	_, err := ledger.RecordMCQPosted(sampleMCQ(9))
	require.NoError(t, err)

	posted, err := ledger.PostedMCQIDs(false)
	require.NoError(t, err)
	require.True(t, posted[9], "an in-flight record must consume its question")
}

func TestTipRotationSet(t *testing.T) {
	ledger := newTestLedger(t)

	tipA := content.Tip{Text: "tipA", Category: content.CategoryJavaScript}
	tipB := content.Tip{Text: "tipB", Category: content.CategoryReact}

	require.NoError(t, ledger.RecordTipPosted(tipA))
	require.NoError(t, ledger.RecordTipPosted(tipB))

	jsPosted, err := ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.True(t, jsPosted["tipA"])
	require.False(t, jsPosted["tipB"], "categories keep separate rotation sets")

	require.NoError(t, ledger.ResetTipRotation(content.CategoryJavaScript))

	jsPosted, err = ledger.PostedTipTexts(content.CategoryJavaScript)
	require.NoError(t, err)
	require.Empty(t, jsPosted)

	reactPosted, err := ledger.PostedTipTexts(content.CategoryReact)
	require.NoError(t, err)
	require.True(t, reactPosted["tipB"], "resetting one category leaves the other alone")
}

func TestTipPostLifecycle(t *testing.T) {
	ledger := newTestLedger(t)

	record, err := ledger.RecordTipPost(models.TipTypeTip, content.CategoryJavaScript, "body", "")
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, models.StatusPending, record.Status)

	require.NoError(t, ledger.MarkTipFailed(record.ID))
	require.NoError(t, ledger.MarkTipPublished(record.ID))

	records, err := ledger.AllPosts()
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, models.TipTypeTip, records[0].Type)
	require.Equal(t, models.StatusPublished, records[0].Tip.Status)
}

func TestMarkUnknownRecordFails(t *testing.T) {
	ledger := newTestLedger(t)

	require.ErrorIs(t, ledger.MarkTipPublished("no-such-id"), ErrLedgerWrite)
	require.ErrorIs(t, ledger.MarkMCQPublished(99, "urn"), ErrLedgerWrite)
	require.ErrorIs(t, ledger.MarkAnswerPosted(99), ErrLedgerWrite)
}

func TestAllPostsMergesNewestFirst(t *testing.T) {
	ledger := newTestLedger(t)

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	ledger.SetNowFunc(func() time.Time { return now })

	_, err := ledger.RecordTipPost(models.TipTypeTip, content.CategoryJavaScript, "old tip", "")
	require.NoError(t, err)

	now = now.AddDate(0, 0, 1)
	_, err = ledger.RecordMCQPosted(sampleMCQ(1))
	require.NoError(t, err)

	now = now.AddDate(0, 0, 1)
	_, err = ledger.RecordTipPost(models.TipTypeCustom, content.CategoryReact, "new tip", "")
	require.NoError(t, err)

	records, err := ledger.AllPosts()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, models.TipTypeCustom, records[0].Type)
	require.Equal(t, "mcq", records[1].Type)
	require.Equal(t, models.TipTypeTip, records[2].Type)
}

func TestDeletePosts(t *testing.T) {
	ledger := newTestLedger(t)

	tipRecord, err := ledger.RecordTipPost(models.TipTypeTip, content.CategoryJavaScript, "body", "")
	require.NoError(t, err)
	mcqRecord, err := ledger.RecordMCQPosted(sampleMCQ(1))
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteTipPost(tipRecord.ID))
	require.NoError(t, ledger.DeleteMCQPost(mcqRecord.ID))

	records, err := ledger.AllPosts()
	require.NoError(t, err)
	require.Empty(t, records)

	require.ErrorIs(t, ledger.DeleteTipPost(tipRecord.ID), ErrLedgerWrite)
}

func TestLedgerStats(t *testing.T) {
	ledger := newTestLedger(t)

	tipRecord, err := ledger.RecordTipPost(models.TipTypeTip, content.CategoryJavaScript, "body", "")
	require.NoError(t, err)
	require.NoError(t, ledger.MarkTipPublished(tipRecord.ID))

	mcqRecord, err := ledger.RecordMCQPosted(sampleMCQ(1))
	require.NoError(t, err)
	require.NoError(t, ledger.MarkMCQFailed(mcqRecord.ID))

	_, err = ledger.RecordMCQPosted(sampleMCQ(2))
	require.NoError(t, err)

	stats, err := ledger.LedgerStats()
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.TipsPublished)
	require.EqualValues(t, 0, stats.TipsFailed)
	require.EqualValues(t, 1, stats.MCQsFailed)
	require.EqualValues(t, 1, stats.MCQsPending)
}
