package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubEvent implements Event for testing
type stubEvent struct {
	typeStr   string
	data      interface{}
	timestamp time.Time
	source    string
}

func (e *stubEvent) Type() string         { return e.typeStr }
func (e *stubEvent) Data() interface{}    { return e.data }
func (e *stubEvent) Timestamp() time.Time { return e.timestamp }
func (e *stubEvent) Source() string       { return e.source }

func TestEventBus_SubscribePublish(t *testing.T) {
	bus := NewEventBus(nil)
	var called bool
	bus.Subscribe(EventTypeDataChanged, func(ctx context.Context, event Event) error {
		called = true
		assert.Equal(t, EventTypeDataChanged, event.Type())
		assert.Equal(t, "products", event.Data())
		return nil
	})
	err := bus.Publish(context.Background(), NewBasicEventWithSource(EventTypeDataChanged, "products", "repository"))
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus(nil)
	err := bus.Publish(context.Background(), &stubEvent{typeStr: "nobody", timestamp: time.Now()})
	assert.NoError(t, err)
}

func TestEventBus_RetriesFailingHandler(t *testing.T) {
	bus := NewEventBusWithConfig(nil, BusConfig{MaxRetries: 2, RetryDelay: time.Millisecond})
	attempts := 0
	bus.Subscribe("flaky", func(ctx context.Context, event Event) error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	})
	err := bus.Publish(context.Background(), &stubEvent{typeStr: "flaky", timestamp: time.Now()})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestEventBus_ExhaustedRetriesReturnError(t *testing.T) {
	bus := NewEventBusWithConfig(nil, BusConfig{MaxRetries: 1, RetryDelay: time.Millisecond})
	bus.Subscribe("broken", func(ctx context.Context, event Event) error {
		return errors.New("permanent")
	})
	err := bus.Publish(context.Background(), &stubEvent{typeStr: "broken", timestamp: time.Now()})
	assert.Error(t, err)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(nil)
	bus.Subscribe("ev", func(ctx context.Context, event Event) error { return nil })
	assert.Equal(t, 1, bus.GetSubscriberCount("ev"))
	bus.Unsubscribe("ev")
	assert.Equal(t, 0, bus.GetSubscriberCount("ev"))
}

func TestEventBus_PublishAndForget(t *testing.T) {
	bus := NewEventBus(nil)
	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe(EventTypeDataChanged, func(ctx context.Context, event Event) error {
		wg.Done()
		return nil
	})
	bus.PublishAndForget(context.Background(), NewBasicEvent(EventTypeDataChanged, "orders"))
	wait := make(chan struct{})
	go func() {
		wg.Wait()
		close(wait)
	}()
	select {
	case <-wait:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for PublishAndForget")
	}
}
