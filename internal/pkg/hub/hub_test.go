package hub

import (
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestHubPush(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every connection of the recipient", func(t *testing.T) {
		t.Parallel()
		h := NewHub()
		a := NewClient(7, nil)
		b := NewClient(7, nil)
		other := NewClient(8, nil)
		h.Register(a)
		h.Register(b)
		h.Register(other)

		if err := h.Push(7, "actualizar_contador", map[string]int64{"total": 3}); err != nil {
			t.Fatalf("Push() error = %v", err)
		}

		for _, c := range []*Client{a, b} {
			var evt Event
			if err := json.Unmarshal(receive(t, c), &evt); err != nil {
				t.Fatalf("invalid payload: %v", err)
			}
			if evt.Event != "actualizar_contador" {
				t.Errorf("event = %q", evt.Event)
			}
		}

		select {
		case msg := <-other.send:
			t.Errorf("unrelated recipient received %s", msg)
		default:
		}
	})

	t.Run("no connections is a no-op", func(t *testing.T) {
		t.Parallel()
		h := NewHub()
		if err := h.Push(42, "nueva_notificacion", nil); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
	})

	t.Run("slow client is dropped, others keep receiving", func(t *testing.T) {
		t.Parallel()
		h := NewHub()
		slow := NewClient(9, nil)
		healthy := NewClient(9, nil)
		h.Register(slow)
		h.Register(healthy)

		// Fill the slow client's buffer so the next push overflows it.
		for i := 0; i < cap(slow.send); i++ {
			slow.send <- []byte("x")
		}

		if err := h.Push(9, "nueva_notificacion", map[string]string{"mensaje": "hola"}); err != nil {
			t.Fatalf("Push() error = %v", err)
		}

		if got := h.CountConnections(9); got != 1 {
			t.Errorf("CountConnections = %d, want 1 after dropping slow client", got)
		}
		receive(t, healthy)
	})

	t.Run("unregister removes the connection", func(t *testing.T) {
		t.Parallel()
		h := NewHub()
		c := NewClient(5, nil)
		h.Register(c)
		h.Unregister(c)

		if got := h.CountConnections(5); got != 0 {
			t.Errorf("CountConnections = %d, want 0", got)
		}
		if err := h.Push(5, "nueva_notificacion", nil); err != nil {
			t.Fatalf("Push() after unregister error = %v", err)
		}
	})

	t.Run("double unregister is safe", func(t *testing.T) {
		t.Parallel()
		h := NewHub()
		c := NewClient(6, nil)
		h.Register(c)
		h.Unregister(c)
		h.Unregister(c)
	})
}

// TestConcurrentPushUnregister hammers one recipient from several
// goroutines so the race detector can catch any unsynchronized
// send/close pair between Push and Unregister.
func TestConcurrentPushUnregister(t *testing.T) {
	t.Parallel()

	h := NewHub()
	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				c := NewClient(1, nil)
				h.Register(c)
				_ = h.Push(1, "nueva_notificacion", map[string]string{"mensaje": "hola"})
				h.Unregister(c)
			}
		}()
	}
	wg.Wait()

	if got := h.CountConnections(1); got != 0 {
		t.Errorf("CountConnections = %d, want 0 after all unregistered", got)
	}
}

func TestEnqueueAfterCloseIsRejected(t *testing.T) {
	t.Parallel()

	c := NewClient(3, nil)
	c.Close()
	if c.enqueue([]byte("x")) {
		t.Error("enqueue on a closed client should report false")
	}
	c.Close() // second close must stay a no-op
}

func TestEventEnvelope(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(Event{Event: "actualizar_contador", Data: map[string]int64{"total": 0}})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"event":"actualizar_contador","data":{"total":0}}`
	if string(payload) != want {
		t.Errorf("envelope = %s, want %s", payload, want)
	}
}
