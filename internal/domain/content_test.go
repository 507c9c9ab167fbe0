package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allStatuses := []ContentStatus{StatusDraft, StatusInReview, StatusApproved, StatusPublished, StatusArchived}

	cases := []struct {
		action WorkflowAction
		legal  map[ContentStatus]bool
	}{
		{ActionSubmitReview, map[ContentStatus]bool{StatusDraft: true}},
		{ActionApprove, map[ContentStatus]bool{StatusInReview: true}},
		{ActionPublish, map[ContentStatus]bool{StatusDraft: true, StatusApproved: true}},
		{ActionReject, map[ContentStatus]bool{StatusDraft: true, StatusInReview: true, StatusApproved: true, StatusPublished: true}},
		{ActionArchive, map[ContentStatus]bool{StatusDraft: true, StatusInReview: true, StatusApproved: true, StatusPublished: true}},
	}

	for _, tc := range cases {
		for _, from := range allStatuses {
			got := CanTransition(from, tc.action)
			assert.Equal(t, tc.legal[from], got, "%s from %s", tc.action, from)
		}
	}
}

func TestArchivedIsTerminal(t *testing.T) {
	for _, action := range []WorkflowAction{ActionSubmitReview, ActionApprove, ActionPublish, ActionReject, ActionArchive} {
		assert.False(t, CanTransition(StatusArchived, action), "archived must not allow %s", action)
	}
}

func TestTransitionTarget(t *testing.T) {
	assert.Equal(t, StatusInReview, TransitionTarget(ActionSubmitReview))
	assert.Equal(t, StatusApproved, TransitionTarget(ActionApprove))
	assert.Equal(t, StatusPublished, TransitionTarget(ActionPublish))
	assert.Equal(t, StatusDraft, TransitionTarget(ActionReject))
	assert.Equal(t, StatusArchived, TransitionTarget(ActionArchive))
}

func TestActorAtLeast(t *testing.T) {
	anon := Anonymous()
	assert.True(t, anon.IsAnonymous())
	assert.False(t, anon.AtLeast(RoleStudent))

	contributor := Actor{UserID: "u1", Level: RoleContributor}
	assert.True(t, contributor.AtLeast(RoleStudent))
	assert.True(t, contributor.AtLeast(RoleContributor))
	assert.False(t, contributor.AtLeast(RoleManager))

	admin := Actor{UserID: "a1", Level: RoleAdmin}
	assert.True(t, admin.AtLeast(RoleManager))
}
