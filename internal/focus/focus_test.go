package focus

import (
	"testing"
	"time"

	"github.com/GeneticxCln/Axiom-sub000/internal/geom"
	"github.com/GeneticxCln/Axiom-sub000/internal/ids"
)

// TestAltTabCycle matches spec.md §8 scenario 3's shape: focus A, B, C
// in order, begin Alt-Tab, cycle, commit, and check the resulting
// recency order.
func TestAltTabCycle(t *testing.T) {
	s, err := New(32)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := ids.WindowID(1), ids.WindowID(2), ids.WindowID(3)
	s.Focus(a)
	s.Focus(b)
	s.Focus(c)

	if got, _ := s.MostRecent(); got != c {
		t.Fatalf("MostRecent = %v, want %v", got, c)
	}

	session := s.BeginAltTab()
	if cur, ok := session.Current(); !ok || cur != b {
		t.Fatalf("first Alt-Tab step = %v, want %v", cur, b)
	}
	next, _ := session.Next()
	if next != a {
		t.Fatalf("second Alt-Tab step = %v, want %v", next, a)
	}
	s.CommitAltTab(session)

	if got, _ := s.MostRecent(); got != a {
		t.Fatalf("after commit, MostRecent = %v, want %v", got, a)
	}
}

func TestAltTabCancelLeavesFocusUnchanged(t *testing.T) {
	s, _ := New(32)
	a, b := ids.WindowID(1), ids.WindowID(2)
	s.Focus(a)
	s.Focus(b)

	session := s.BeginAltTab()
	session.Next()
	session.Next()
	// Cancel: simply discard the session without calling CommitAltTab.
	_ = session

	if got, _ := s.MostRecent(); got != b {
		t.Fatalf("MostRecent after cancel = %v, want %v (unchanged)", got, b)
	}
}

func TestUrgencyExpires(t *testing.T) {
	s, _ := New(8)
	s.SetUrgentTimeout(10 * time.Millisecond)
	w := ids.WindowID(5)
	start := time.Unix(0, 0)
	s.MarkUrgent(w, start)

	if !s.IsUrgent(w) {
		t.Fatal("expected window to be urgent immediately after marking")
	}
	if s.UrgentCount() != 1 {
		t.Fatalf("UrgentCount = %d, want 1", s.UrgentCount())
	}
	if expired := s.ExpireUrgent(start.Add(5 * time.Millisecond)); len(expired) != 0 {
		t.Fatalf("expired too early: %v", expired)
	}
	expired := s.ExpireUrgent(start.Add(11 * time.Millisecond))
	if len(expired) != 1 || expired[0] != w {
		t.Fatalf("expired = %v, want [%v]", expired, w)
	}
	if s.IsUrgent(w) {
		t.Fatal("expected urgency cleared after expiry")
	}
}

func TestNearestDirectional(t *testing.T) {
	from := geom.Rect{X: 500, Y: 500, W: 200, H: 200}
	right := ids.WindowID(1)
	below := ids.WindowID(2)
	far := ids.WindowID(3)
	candidates := map[ids.WindowID]geom.Rect{
		right: {X: 800, Y: 500, W: 200, H: 200},
		below: {X: 500, Y: 900, W: 200, H: 200},
		far:   {X: 2000, Y: 500, W: 200, H: 200},
	}
	got, ok := Nearest(from, candidates, DirRight)
	if !ok || got != right {
		t.Fatalf("Nearest(right) = %v, %v; want %v", got, ok, right)
	}
	got, ok = Nearest(from, candidates, DirDown)
	if !ok || got != below {
		t.Fatalf("Nearest(down) = %v, %v; want %v", got, ok, below)
	}
}
