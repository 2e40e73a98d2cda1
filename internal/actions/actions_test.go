package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appeal/internal/actions"
	"appeal/internal/i18n"
	"appeal/pkg/domain"
)

func TestPlanEmitsOnePromptPerActiveMilestone(t *testing.T) {
	labels, err := i18n.NewStatic().Labels(context.Background(), i18n.LocaleEnglish)
	require.NoError(t, err)

	active := []actions.Milestone{
		{ProgressID: domain.NewProgressID(), Title: "Crawling", Description: "Moves on hands and knees"},
		{ProgressID: domain.NewProgressID(), Title: "Pincer Grasp", Description: "Picks up small objects"},
		{ProgressID: domain.NewProgressID(), Title: "First Steps", Description: "Walks a few steps alone"},
	}

	plan := actions.Plan("Zara", active, labels)

	require.Len(t, plan, 3)
	for i, action := range plan {
		assert.Equal(t, actions.TypeVideo, action.Type)
		assert.Equal(t, active[i].ProgressID, action.MilestoneID)
		assert.Contains(t, action.Title, active[i].Title)
		assert.Contains(t, action.Description, "Zara")
		assert.Equal(t, labels.StartRecording, action.ActionLabel)
	}

	// The prompt question quotes the milestone description, lowercased.
	assert.Contains(t, plan[0].Description, "Is Zara moves on hands and knees?")
}

func TestPlanFallbackWhenNothingActive(t *testing.T) {
	labels, err := i18n.NewStatic().Labels(context.Background(), i18n.LocaleEnglish)
	require.NoError(t, err)

	plan := actions.Plan("Arun", nil, labels)

	require.Len(t, plan, 1)
	assert.Equal(t, actions.TypeGeneric, plan[0].Type)
	assert.Equal(t, labels.AllCaughtUp, plan[0].Title)
	assert.Contains(t, plan[0].Description, "Arun")
	assert.True(t, plan[0].MilestoneID.IsNil())
}
