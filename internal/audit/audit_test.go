package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)

	before := time.Now()
	require.NoError(t, publisher.Emit(context.Background(), Event{
		UserID: "user-1",
		Actor:  "user-1",
		Action: ActionSubmissionScored,
		Detail: "trust score 61.50",
	}))

	events, err := publisher.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.Before(before))
	assert.Equal(t, ActionSubmissionScored, events[0].Action)
}

func TestPublisherKeepsExplicitTimestamp(t *testing.T) {
	publisher := NewPublisher(NewInMemoryStore())

	stamp := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, publisher.Emit(context.Background(), Event{
		Timestamp: stamp,
		UserID:    "user-1",
		Action:    ActionAdjustmentApplied,
	}))

	events, err := publisher.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stamp, events[0].Timestamp)
}

func TestInMemoryStoreFiltersByUser(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{UserID: "user-1", Action: ActionSubmissionScored}))
	require.NoError(t, store.Append(ctx, Event{UserID: "user-2", Action: ActionSubmissionScored}))
	require.NoError(t, store.Append(ctx, Event{UserID: "user-1", Action: ActionAdjustmentApplied}))

	events, err := store.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ActionAdjustmentApplied, events[1].Action)

	events, err = store.ListByUser(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, events)
}
