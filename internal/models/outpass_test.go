package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutpassCanBeEdited(t *testing.T) {
	for _, status := range []OutpassStatus{
		StatusPending, StatusApproved, StatusRejected, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	} {
		o := Outpass{Status: status}
		assert.Equal(t, status == StatusPending, o.CanBeEdited(), "status %s", status)
	}
}

func TestOutpassCanBeCancelled(t *testing.T) {
	cancellable := map[OutpassStatus]bool{
		StatusPending:  true,
		StatusApproved: true,
	}
	for _, status := range []OutpassStatus{
		StatusPending, StatusApproved, StatusRejected, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	} {
		o := Outpass{Status: status}
		assert.Equal(t, cancellable[status], o.CanBeCancelled(), "status %s", status)
	}
}

func TestOutpassStatusValid(t *testing.T) {
	for _, status := range []OutpassStatus{
		StatusPending, StatusApproved, StatusRejected, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	} {
		assert.True(t, status.Valid(), "status %s", status)
	}
	assert.False(t, OutpassStatus("FINISHED").Valid())
	assert.False(t, OutpassStatus("").Valid())
}

func TestOutpassStatusTerminal(t *testing.T) {
	terminal := map[OutpassStatus]bool{
		StatusRejected:  true,
		StatusCompleted: true,
		StatusCancelled: true,
		StatusExpired:   true,
	}
	for _, status := range []OutpassStatus{
		StatusPending, StatusApproved, StatusRejected, StatusActive,
		StatusCompleted, StatusCancelled, StatusExpired,
	} {
		assert.Equal(t, terminal[status], status.Terminal(), "status %s", status)
	}
}
