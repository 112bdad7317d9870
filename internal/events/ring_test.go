package events

import (
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/higher-steaks/hs-leaderboard/internal/domain"
	"github.com/higher-steaks/hs-leaderboard/internal/mocks"
)

func newTestBroadcaster(t *testing.T, capacity int) *Broadcaster {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()

	return NewBroadcaster(capacity, clock)
}

func TestPublishAndLatest(t *testing.T) {
	b := newTestBroadcaster(t, 10)

	_, ok := b.Latest()
	assert.False(t, ok)

	event := b.Publish(domain.EventTypeUnlock, domain.EventData{LockupID: 7})
	assert.NotEmpty(t, event.ID)

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, event.ID, latest.ID)
	assert.Equal(t, uint64(7), latest.Data.LockupID)
}

func TestRingEvictsOldest(t *testing.T) {
	b := newTestBroadcaster(t, 3)

	for i := 1; i <= 5; i++ {
		b.Publish(domain.EventTypeUnlock, domain.EventData{LockupID: uint64(i)})
	}

	recent := b.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, uint64(3), recent[0].Data.LockupID)
	assert.Equal(t, uint64(5), recent[2].Data.LockupID)
}

func TestUniqueMonotonicIDs(t *testing.T) {
	b := newTestBroadcaster(t, 100)

	var previous string
	for i := 0; i < 50; i++ {
		event := b.Publish(domain.EventTypeTransfer, domain.EventData{LockupID: uint64(i)})
		if previous != "" {
			assert.Greater(t, event.ID, previous)
		}
		previous = event.ID
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	b := newTestBroadcaster(t, 10)

	ch, cancel := b.Subscribe()
	defer cancel()

	published := b.Publish(domain.EventTypeUnlock, domain.EventData{LockupID: 1})

	select {
	case received := <-ch:
		assert.Equal(t, published.ID, received.ID)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	b := newTestBroadcaster(t, 200)

	_, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overflow the subscriber buffer without anyone draining it
		for i := 0; i < subscriberBuffer*4; i++ {
			b.Publish(domain.EventTypeUnlock, domain.EventData{LockupID: uint64(i)})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	b := newTestBroadcaster(t, 10)

	ch, cancel := b.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic
	assert.NotPanics(t, func() {
		b.Publish(domain.EventTypeUnlock, domain.EventData{LockupID: 1})
	})
}

func TestRecentBounded(t *testing.T) {
	b := newTestBroadcaster(t, 10)
	for i := 0; i < 4; i++ {
		b.Publish(domain.EventTypeTransfer, domain.EventData{LockupID: uint64(i)})
	}

	assert.Len(t, b.Recent(2), 2)
	assert.Len(t, b.Recent(100), 4)

	ids := make(map[string]bool)
	for _, event := range b.Recent(0) {
		require.False(t, ids[event.ID], fmt.Sprintf("duplicate id %s", event.ID))
		ids[event.ID] = true
	}
}
