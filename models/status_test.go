package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("paid").Valid())
	assert.False(t, StatusAll.Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestPermissiveLifecycleAcceptsAnyKnownStatus(t *testing.T) {
	l := Lifecycle{}
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			assert.True(t, l.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, l.CanTransition(StatusPending, "paid"))
}

func TestStrictLifecycle(t *testing.T) {
	l := Lifecycle{Strict: true}

	legal := [][2]OrderStatus{
		{StatusPending, StatusPreparing},
		{StatusPreparing, StatusReady},
		{StatusReady, StatusCompleted},
		{StatusPending, StatusCancelled},
		{StatusPreparing, StatusCancelled},
		{StatusReady, StatusCancelled},
		{StatusCompleted, StatusCompleted},
	}
	for _, tr := range legal {
		assert.NoError(t, l.Check(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	illegal := [][2]OrderStatus{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusReady},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusPreparing},
		{StatusReady, StatusPreparing},
	}
	for _, tr := range illegal {
		err := l.Check(tr[0], tr[1])
		var te *TransitionError
		assert.True(t, errors.As(err, &te), "%s -> %s", tr[0], tr[1])
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
}

func TestCheckRejectsUnknownStatus(t *testing.T) {
	err := Lifecycle{}.Check(StatusPending, "paid")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "status", ve.Field)
}

func TestTerminalStatusesHaveNoSuccessors(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.Empty(t, NextStatuses(StatusCompleted))
	assert.Empty(t, NextStatuses(StatusCancelled))
	assert.Equal(t, []OrderStatus{StatusPreparing, StatusCancelled}, NextStatuses(StatusPending))
}

func TestCancelAllowedFromEveryOpenStatus(t *testing.T) {
	strict := Lifecycle{Strict: true}
	for _, s := range []OrderStatus{StatusPending, StatusPreparing, StatusReady} {
		assert.True(t, strict.CanTransition(s, StatusCancelled), s)
	}
	assert.False(t, strict.CanTransition(StatusCompleted, StatusCancelled))
	assert.Equal(t, []OrderStatus{StatusCompleted, StatusCancelled}, NextStatuses(StatusReady))
	assert.Empty(t, NextStatuses("paid"))
}

func TestPresent(t *testing.T) {
	assert.Equal(t, "Ready to serve", Present(StatusReady).Label)
	assert.Equal(t, "x-circle", Present(StatusCancelled).Icon)
	assert.Equal(t, "weird", Present("weird").Label)
}
