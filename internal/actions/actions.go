// Package actions plans the caregiver's pending-action list: one video
// prompt per milestone currently in the ACTIVE display state.
package actions

import (
	"fmt"
	"strings"

	"appeal/internal/i18n"
	"appeal/pkg/domain"
)

// Type discriminates prompt kinds.
type Type string

const (
	TypeVideo   Type = "video"
	TypeGeneric Type = "generic"
)

// Action is one caregiver prompt.
type Action struct {
	Type        Type
	Title       string
	Description string
	ActionLabel string
	// MilestoneID is set for video prompts only.
	MilestoneID domain.ProgressID
}

// Milestone is the ACTIVE-subset view the planner reads, already in
// catalog order.
type Milestone struct {
	ProgressID  domain.ProgressID
	Title       string
	Description string
}

// Plan emits one prompt per active milestone, or a single all-caught-up
// fallback when nothing needs attention. It never truncates: every
// active milestone gets its own prompt.
func Plan(childName string, active []Milestone, labels i18n.Labels) []Action {
	if len(active) == 0 {
		return []Action{{
			Type:        TypeGeneric,
			Title:       labels.AllCaughtUp,
			Description: fmt.Sprintf(labels.AllCaughtUpDesc, childName),
			ActionLabel: labels.ViewHistory,
		}}
	}

	out := make([]Action, 0, len(active))
	for _, m := range active {
		out = append(out, Action{
			Type:        TypeVideo,
			Title:       fmt.Sprintf(labels.VerifyTitle, m.Title),
			Description: fmt.Sprintf(labels.VerifyDesc, childName, strings.ToLower(m.Description)),
			ActionLabel: labels.StartRecording,
			MilestoneID: m.ProgressID,
		})
	}
	return out
}
