package events

import (
	"context"
	"log"
	"sync"
	"time"
)

const DefaultPublishTimeout = 5 * time.Second

// Detached hands events to next in the background so a slow or absent broker
// never holds up the HTTP response. Each publish gets its own deadline and
// survives cancellation of the request context.
type Detached struct {
	next    Publisher
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDetached(next Publisher, timeout time.Duration) *Detached {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &Detached{next: next, timeout: timeout}
}

// Publish always returns nil; failures are logged by the goroutine.
func (d *Detached) Publish(ctx context.Context, e Event) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		if err := d.next.Publish(ctx, e); err != nil {
			log.Printf("event_publish_detached type=%s key=%s error=%q", e.Type, e.Key, err.Error())
		}
	}()
	return nil
}

// Wait blocks until in-flight publishes finish. Call it before closing the
// underlying writer.
func (d *Detached) Wait() {
	d.wg.Wait()
}
