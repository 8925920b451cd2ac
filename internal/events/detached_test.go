package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingPublisher struct {
	started chan struct{}
	ctxErr  chan error
}

func (b *blockingPublisher) Publish(ctx context.Context, _ Event) error {
	close(b.started)
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		b.ctxErr <- errors.New("no deadline")
		return nil
	}
	<-ctx.Done()
	b.ctxErr <- ctx.Err()
	return ctx.Err()
}

func TestDetached_ReturnsBeforeSlowBroker(t *testing.T) {
	slow := &blockingPublisher{started: make(chan struct{}), ctxErr: make(chan error, 1)}
	d := NewDetached(slow, 50*time.Millisecond)

	reqCtx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	require.NoError(t, d.Publish(reqCtx, Event{Type: TypeBookingConfirmed, Key: "room-1"}))
	assert.Less(t, time.Since(start), 40*time.Millisecond)

	// the request finishing must not abort the publish
	cancel()
	<-slow.started
	d.Wait()
	assert.ErrorIs(t, <-slow.ctxErr, context.DeadlineExceeded)
}

func TestDetached_DefaultTimeout(t *testing.T) {
	d := NewDetached(Nop{}, 0)
	assert.Equal(t, DefaultPublishTimeout, d.timeout)
	require.NoError(t, d.Publish(context.Background(), Event{Type: TypeOrderPlaced}))
	d.Wait()
}
