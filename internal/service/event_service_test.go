package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"tv-keuzehulp-be/internal/pkg/logger"
	"tv-keuzehulp-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *recordingForwarder) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *recordingForwarder) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.EventType()
	}
	return out
}

func TestEventServiceForwardsEmittedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	fwd := &recordingForwarder{}
	svc := NewEventService(pubSub, "keuzehulp_events", fwd, logger.NewNopLogger(), logger.NewNopLogger())
	require.NoError(t, svc.Consume(ctx))

	svc.Emit(ctx, events.TypeSessionReset, map[string]interface{}{"session_id": "s1"})
	svc.Emit(ctx, events.TypeChatRelayed, nil)

	assert.Eventually(t, func() bool { return len(fwd.types()) == 2 }, time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{events.TypeSessionReset, events.TypeChatRelayed}, fwd.types())
}

func TestEventServiceWithoutSubscriberDoesNotBlock(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	svc := NewEventService(pubSub, "keuzehulp_events", nil, logger.NewNopLogger(), logger.NewNopLogger())
	svc.Emit(context.Background(), events.TypeLoginFailed, nil)
}
