package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounterStore struct {
	mu     sync.Mutex
	ids    []uuid.UUID
	counts map[uuid.UUID]int64
	err    error
}

func (s *fakeCounterStore) AllIDs() ([]uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

func (s *fakeCounterStore) SetLikesCount(id uuid.UUID, count int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[uuid.UUID]int64)
	}
	s.counts[id] = count
	return nil
}

type fakeLikeCounter struct {
	counts map[uuid.UUID]int64
	err    error
}

func (c *fakeLikeCounter) CountForPost(blogPostID uuid.UUID) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	return c.counts[blogPostID], nil
}

func TestRecountLikes(t *testing.T) {
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	store := &fakeCounterStore{ids: []uuid.UUID{first, second, third}}
	counter := &fakeLikeCounter{counts: map[uuid.UUID]int64{first: 3, third: 12}}

	processed, err := RecountLikes(context.Background(), store, counter)

	require.NoError(t, err)
	assert.Equal(t, 3, processed)
	assert.Equal(t, int64(3), store.counts[first])
	assert.Equal(t, int64(0), store.counts[second])
	assert.Equal(t, int64(12), store.counts[third])
}

func TestRecountLikesEmptyStore(t *testing.T) {
	processed, err := RecountLikes(context.Background(), &fakeCounterStore{}, &fakeLikeCounter{})

	require.NoError(t, err)
	assert.Zero(t, processed)
}

func TestRecountLikesPropagatesErrors(t *testing.T) {
	listErr := errors.New("listing failed")
	_, err := RecountLikes(context.Background(), &fakeCounterStore{err: listErr}, &fakeLikeCounter{})
	assert.ErrorIs(t, err, listErr)

	countErr := errors.New("counting failed")
	store := &fakeCounterStore{ids: []uuid.UUID{uuid.New()}}
	_, err = RecountLikes(context.Background(), store, &fakeLikeCounter{err: countErr})
	assert.ErrorIs(t, err, countErr)
}

func TestRecountLikesHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ids := make([]uuid.UUID, 50)
	for i := range ids {
		ids[i] = uuid.New()
	}

	_, err := RecountLikes(ctx, &fakeCounterStore{ids: ids}, &fakeLikeCounter{})
	assert.ErrorIs(t, err, context.Canceled)
}
