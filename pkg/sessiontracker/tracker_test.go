package sessiontracker

import (
	"sync"
	"testing"
)

func TestTracker(t *testing.T) {
	t.Run("start and finish", func(t *testing.T) {
		tracker := NewTracker()

		session := tracker.Start("req-1")
		if session.ID == "" {
			t.Error("session should get an id")
		}
		if tracker.ActiveCount() != 1 {
			t.Errorf("unexpected active count: %d", tracker.ActiveCount())
		}

		finished, _, ok := tracker.Finish("req-1")
		if !ok {
			t.Fatal("should finish known session")
		}
		if finished.ID != session.ID {
			t.Errorf("unexpected session: %v", finished)
		}
		if tracker.ActiveCount() != 0 {
			t.Errorf("unexpected active count: %d", tracker.ActiveCount())
		}
	})

	t.Run("finish unknown key", func(t *testing.T) {
		tracker := NewTracker()
		_, _, ok := tracker.Finish("nope")
		if ok {
			t.Error("finishing unknown key should report false")
		}
	})

	t.Run("restart replaces session", func(t *testing.T) {
		tracker := NewTracker()
		first := tracker.Start("req-1")
		second := tracker.Start("req-1")
		if first.ID == second.ID {
			t.Error("restarted session should get a new id")
		}
		if tracker.ActiveCount() != 1 {
			t.Errorf("unexpected active count: %d", tracker.ActiveCount())
		}
	})

	t.Run("concurrent use", func(t *testing.T) {
		tracker := NewTracker()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				key := string(rune('a' + n%26))
				tracker.Start(key)
				tracker.Finish(key)
			}(i)
		}
		wg.Wait()
	})
}
