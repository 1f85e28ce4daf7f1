package host

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"golang.org/x/net/html"
)

func TestLoopRunsInDueOrder(t *testing.T) {
	l := NewLoop()
	var order []string
	l.Schedule(30*time.Millisecond, func() { order = append(order, "c") })
	l.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	l.Schedule(10*time.Millisecond, func() { order = append(order, "b") })

	if n := l.RunUntilIdle(0); n != 3 {
		t.Fatalf("RunUntilIdle ran %d tasks, want 3", n)
	}
	if got := string(order[0] + order[1] + order[2]); got != "abc" {
		t.Errorf("order = %q, want abc", got)
	}
	if l.Now() != 30*time.Millisecond {
		t.Errorf("Now = %v, want 30ms", l.Now())
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop()
	ran := false
	h := l.Schedule(100*time.Millisecond, func() { ran = true })
	l.Cancel(h)
	l.Cancel(h)
	l.Cancel(Handle(999))
	l.Advance(time.Second)
	if ran {
		t.Error("cancelled task ran")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending = %d, want 0", l.Pending())
	}
}

func TestLoopAdvanceRunsNestedTasks(t *testing.T) {
	l := NewLoop()
	count := 0
	l.Schedule(10*time.Millisecond, func() {
		count++
		l.Schedule(10*time.Millisecond, func() { count++ })
		l.Schedule(time.Second, func() { count++ })
	})
	l.Advance(50 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if l.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", l.Pending())
	}
	if l.Now() != 50*time.Millisecond {
		t.Errorf("Now = %v, want 50ms", l.Now())
	}
}

func TestLoopRunUntilIdleLimit(t *testing.T) {
	l := NewLoop()
	var again func()
	again = func() { l.Schedule(time.Millisecond, again) }
	l.Schedule(0, again)
	if n := l.RunUntilIdle(5); n != 5 {
		t.Errorf("RunUntilIdle(5) = %d", n)
	}
}

func TestMemoryClipboard(t *testing.T) {
	c := &MemoryClipboard{}
	if c.Last() != "" {
		t.Error("empty clipboard should return empty text")
	}
	_ = c.WriteText("one")
	_ = c.WriteText("two")
	if c.Last() != "two" || len(c.Writes) != 2 {
		t.Errorf("unexpected writes %v", c.Writes)
	}

	c.Err = ErrClipboardUnavailable
	if err := c.WriteText("three"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("WriteText error = %v", err)
	}
}

func TestWriterClipboard(t *testing.T) {
	var buf bytes.Buffer
	if err := (WriterClipboard{W: &buf}).WriteText("Hello World"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "Hello World\n" {
		t.Errorf("buffer = %q", buf.String())
	}
	if err := (WriterClipboard{}).WriteText("x"); !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("nil writer error = %v", err)
	}
}

func TestStaticLayout(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "segment"}
	s := &StaticLayout{ScrollY: 40}
	s.Place(n, Rect{Left: 10, Top: 20, Width: 100, Height: 30})

	r := s.ClientRect(n)
	if r.Right() != 110 || r.Bottom() != 50 {
		t.Errorf("rect = %+v", r)
	}
	if got := s.ClientRect(&html.Node{}); got != (Rect{}) {
		t.Errorf("unknown node rect = %+v", got)
	}
	if x, y := s.Scroll(); x != 0 || y != 40 {
		t.Errorf("Scroll = %v,%v", x, y)
	}
}
