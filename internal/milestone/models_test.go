package milestone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appeal/pkg/domain"
	dErrors "appeal/pkg/domain-errors"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newRow(t *testing.T) *Progress {
	t.Helper()
	return NewPending(domain.NewChildID(), domain.NewDefinitionID(), testNow)
}

// completionInvariant asserts completionDate is set iff status is COMPLETED.
func completionInvariant(t *testing.T, p *Progress) {
	t.Helper()
	if p.Status == StatusCompleted {
		require.NotNil(t, p.CompletionDate, "COMPLETED row must carry a completion date")
	} else {
		require.Nil(t, p.CompletionDate, "non-COMPLETED row must not carry a completion date")
	}
}

func TestStateMachine(t *testing.T) {
	t.Run("happy path pending to completed", func(t *testing.T) {
		row := newRow(t)
		assert.Equal(t, StatusPending, row.Status)
		completionInvariant(t, row)

		require.NoError(t, row.SubmitEvidence("evidence/clip-1.mp4", testNow))
		assert.Equal(t, StatusSubmitted, row.Status)
		completionInvariant(t, row)

		require.NoError(t, row.MarkAIReviewed(testNow))
		assert.Equal(t, StatusAIReviewed, row.Status)
		completionInvariant(t, row)

		require.NoError(t, row.ReviewByHuman(true, testNow))
		assert.Equal(t, StatusCompleted, row.Status)
		completionInvariant(t, row)
		assert.True(t, row.CompletionDate.Equal(testNow))
	})

	t.Run("ai review requires submitted", func(t *testing.T) {
		row := newRow(t)
		err := row.MarkAIReviewed(testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		assert.Equal(t, StatusPending, row.Status, "failed transition must leave the row unchanged")
		completionInvariant(t, row)
	})

	t.Run("human review requires a row under review", func(t *testing.T) {
		row := newRow(t)
		err := row.ReviewByHuman(true, testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
		completionInvariant(t, row)
	})

	t.Run("human review approves from either review stage", func(t *testing.T) {
		submitted := newRow(t)
		require.NoError(t, submitted.SubmitEvidence("e1", testNow))
		require.NoError(t, submitted.ReviewByHuman(true, testNow))
		assert.Equal(t, StatusCompleted, submitted.Status)

		aiReviewed := newRow(t)
		require.NoError(t, aiReviewed.SubmitEvidence("e1", testNow))
		require.NoError(t, aiReviewed.MarkAIReviewed(testNow))
		require.NoError(t, aiReviewed.ReviewByHuman(true, testNow))
		assert.Equal(t, StatusCompleted, aiReviewed.Status)
	})

	t.Run("rejection keeps the evidence reference", func(t *testing.T) {
		row := newRow(t)
		require.NoError(t, row.SubmitEvidence("evidence/first-try.mp4", testNow))
		require.NoError(t, row.ReviewByHuman(false, testNow))

		assert.Equal(t, StatusRejected, row.Status)
		assert.Equal(t, "evidence/first-try.mp4", row.EvidenceRef)
		completionInvariant(t, row)
	})

	t.Run("resubmission after rejection re-enters submitted", func(t *testing.T) {
		row := newRow(t)
		defID := row.DefinitionID
		require.NoError(t, row.SubmitEvidence("first", testNow))
		require.NoError(t, row.ReviewByHuman(false, testNow))

		require.NoError(t, row.SubmitEvidence("second", testNow))
		assert.Equal(t, StatusSubmitted, row.Status)
		assert.Equal(t, "second", row.EvidenceRef)
		assert.Equal(t, defID, row.DefinitionID, "definition linkage must not change")
		completionInvariant(t, row)
	})

	t.Run("resubmission after completion clears the completion date", func(t *testing.T) {
		row := newRow(t)
		require.NoError(t, row.SubmitEvidence("first", testNow))
		require.NoError(t, row.ReviewByHuman(true, testNow))
		require.NotNil(t, row.CompletionDate)

		require.NoError(t, row.SubmitEvidence("replacement", testNow))
		assert.Equal(t, StatusSubmitted, row.Status)
		completionInvariant(t, row)
	})

	t.Run("submit without evidence reference fails", func(t *testing.T) {
		row := newRow(t)
		err := row.SubmitEvidence("", testNow)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Equal(t, StatusPending, row.Status)
	})
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name        string
		status      Status
		ageMonths   int
		expectedAge int
		want        DisplayState
	}{
		{"completed is won", StatusCompleted, 0, 12, DisplayWon},
		{"submitted is review", StatusSubmitted, 0, 12, DisplayReview},
		{"ai reviewed is review", StatusAIReviewed, 0, 12, DisplayReview},
		{"rejected is active regardless of age", StatusRejected, 0, 12, DisplayActive},
		{"pending and due is active", StatusPending, 12, 12, DisplayActive},
		{"pending and past due is active", StatusPending, 18, 12, DisplayActive},
		{"pending before due is locked", StatusPending, 11, 12, DisplayLocked},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Progress{Status: tc.status}
			if tc.status == StatusCompleted {
				d := testNow
				p.CompletionDate = &d
			}
			assert.Equal(t, tc.want, p.Display(tc.ageMonths, tc.expectedAge))
		})
	}
}
