package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelEvent_NotifyReachesAllListeners(t *testing.T) {
	event := NewChannelEvent[int]()

	ch1 := make(chan int, 10)
	ch2 := make(chan int, 10)
	unregister1 := event.Listen(ch1)
	unregister2 := event.Listen(ch2)
	require.Equal(t, 2, event.ListenerCount())

	event.Notify(42)
	event.Notify(100)

	assert.Equal(t, 42, <-ch1)
	assert.Equal(t, 100, <-ch1)
	assert.Equal(t, 42, <-ch2)
	assert.Equal(t, 100, <-ch2)

	unregister1()
	unregister2()
	assert.Equal(t, 0, event.ListenerCount())
}

func TestChannelEvent_UnregisteredListenerStopsReceiving(t *testing.T) {
	event := NewChannelEvent[string]()

	ch := make(chan string, 10)
	unregister := event.Listen(ch)
	event.Notify("before")
	unregister()
	event.Notify("after")

	assert.Equal(t, "before", <-ch)
	select {
	case v := <-ch:
		t.Errorf("unexpected value after unregister: %q", v)
	default:
	}
}

func TestChannelEvent_FullChannelIsSkipped(t *testing.T) {
	event := NewChannelEvent[string]()

	ch := make(chan string, 1)
	unregister := event.Listen(ch)
	defer unregister()

	event.Notify("first")
	event.Notify("dropped")

	assert.Equal(t, 1, len(ch))
	assert.Equal(t, "first", <-ch)

	event.Notify("third")
	assert.Equal(t, "third", <-ch)
}

func TestChannelEvent_NilChannelPanics(t *testing.T) {
	event := NewChannelEvent[int]()
	assert.Panics(t, func() { event.Listen(nil) })
}

func TestChannelEvent_ConcurrentNotify(t *testing.T) {
	event := NewChannelEvent[int]()

	ch := make(chan int, 100)
	unregister := event.Listen(ch)
	defer unregister()

	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		go func(v int) {
			defer wg.Done()
			event.Notify(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, len(ch))
}
