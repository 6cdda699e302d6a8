package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitReachesEveryHandler(t *testing.T) {
	Reset()
	defer Reset()

	got := make(chan interface{}, 2)
	On("test.event", func(data interface{}) { got <- data })
	On("test.event", func(data interface{}) { got <- data })

	Emit("test.event", "payload")

	for i := 0; i < 2; i++ {
		select {
		case data := <-got:
			assert.Equal(t, "payload", data)
		case <-time.After(time.Second):
			t.Fatal("handler never ran")
		}
	}
}

func TestEmitWithoutHandlers(t *testing.T) {
	Reset()
	defer Reset()

	// Must be a no-op, not a panic.
	Emit("nobody.listens", 42)
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	Reset()
	defer Reset()

	got := make(chan struct{}, 1)
	On("test.panic", func(interface{}) { panic("boom") })
	On("test.panic", func(interface{}) { got <- struct{}{} })

	Emit("test.panic", nil)

	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("sibling handler never ran")
	}
}
