package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mark-assistant-go/internal/models"
)

func TestGetOrCreate(t *testing.T) {
	s := NewStore()

	sess := s.GetOrCreate("u1")
	if sess.UserID != "u1" {
		t.Fatalf("UserID = %q, want %q", sess.UserID, "u1")
	}
	if sess.JarvisMode {
		t.Fatal("new session should start with jarvis mode off")
	}
	if len(sess.Conversation) != 0 {
		t.Fatalf("new session conversation length = %d, want 0", len(sess.Conversation))
	}

	if again := s.GetOrCreate("u1"); again != sess {
		t.Fatal("GetOrCreate should return the same session instance")
	}
	if s.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", s.Count())
	}
}

func TestSetModeIdempotent(t *testing.T) {
	s := NewStore()

	s.SetMode("u1", true)
	s.SetMode("u1", true)
	if !s.Mode("u1") {
		t.Fatal("mode should be on after two enables")
	}

	s.SetMode("u1", false)
	s.SetMode("u1", false)
	if s.Mode("u1") {
		t.Fatal("mode should be off after two disables")
	}
}

func TestModeUnknownUser(t *testing.T) {
	s := NewStore()
	if s.Mode("ghost") {
		t.Fatal("unknown user should default to mode off")
	}
	if s.Count() != 0 {
		t.Fatal("Mode() should not create a session")
	}
}

func TestAppendTurnOrder(t *testing.T) {
	s := NewStore()
	s.AppendTurn("u1", "merhaba", "selam")

	got := s.RecentContext("u1", 6)
	if len(got) != 2 {
		t.Fatalf("context length = %d, want 2", len(got))
	}
	if got[0].Role != models.RoleUser || got[0].Content != "merhaba" {
		t.Errorf("first record = %+v, want user/merhaba", got[0])
	}
	if got[1].Role != models.RoleAssistant || got[1].Content != "selam" {
		t.Errorf("second record = %+v, want assistant/selam", got[1])
	}
}

func TestRecentContextWindow(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		s.AppendTurn("u1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	if s.Len("u1") != 10 {
		t.Fatalf("stored records = %d, want 10", s.Len("u1"))
	}

	got := s.RecentContext("u1", 6)
	if len(got) != 6 {
		t.Fatalf("context length = %d, want 6", len(got))
	}
	// Last 3 exchanges in chronological order
	want := []string{"q2", "a2", "q3", "a3", "q4", "a4"}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("record %d = %q, want %q", i, got[i].Content, w)
		}
	}
}

func TestRecentContextCopy(t *testing.T) {
	s := NewStore()
	s.AppendTurn("u1", "q", "a")

	got := s.RecentContext("u1", 6)
	got[0].Content = "mutated"

	if fresh := s.RecentContext("u1", 6); fresh[0].Content != "q" {
		t.Fatal("RecentContext should return a copy, not the backing slice")
	}
}

func TestConcurrentUsers(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", n)
			for j := 0; j < 10; j++ {
				s.AppendTurn(id, "q", "a")
				s.RecentContext(id, 6)
				s.SetMode(id, j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	if s.Count() != 20 {
		t.Fatalf("Count() = %d, want 20", s.Count())
	}
	for i := 0; i < 20; i++ {
		if got := s.Len(fmt.Sprintf("u%d", i)); got != 20 {
			t.Fatalf("user u%d stored records = %d, want 20", i, got)
		}
	}
}
