package main

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redsync/redsync/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLock struct {
	lockErr  error
	locked   bool
	released bool
}

func (l *fakeLock) LockContext(ctx context.Context) error {
	if l.lockErr != nil {
		return l.lockErr
	}
	l.locked = true
	return nil
}

func (l *fakeLock) UnlockContext(ctx context.Context) (bool, error) {
	l.released = true
	return true, nil
}

type fakeSweeper struct {
	calls  int
	purged int
	err    error
}

func (s *fakeSweeper) Sweep(ctx context.Context, batch int) (int, error) {
	s.calls++
	return s.purged, s.err
}

func TestLockedSweep(t *testing.T) {
	lock := &fakeLock{}
	sweeper := &fakeSweeper{purged: 3}

	n, err := lockedSweep(context.Background(), lock, sweeper, 100)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, lock.locked)
	assert.True(t, lock.released)
}

func TestLockedSweepSkipsWhenLockHeld(t *testing.T) {
	for _, lockErr := range []error{redsync.ErrFailed, &redsync.ErrTaken{Nodes: []int{0}}} {
		sweeper := &fakeSweeper{}
		n, err := lockedSweep(context.Background(), &fakeLock{lockErr: lockErr}, sweeper, 100)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, sweeper.calls)
	}
}

func TestLockedSweepReleasesOnError(t *testing.T) {
	lock := &fakeLock{}
	boom := errors.New("boom")

	_, err := lockedSweep(context.Background(), lock, &fakeSweeper{err: boom}, 100)
	assert.ErrorIs(t, err, boom)
	assert.True(t, lock.released)
}

func TestLockedSweepLockError(t *testing.T) {
	boom := errors.New("redis down")
	sweeper := &fakeSweeper{}
	_, err := lockedSweep(context.Background(), &fakeLock{lockErr: boom}, sweeper, 100)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, sweeper.calls)
}
