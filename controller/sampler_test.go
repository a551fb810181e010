package controller

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

func TestSamplerHeldDirectionRespectsDebounce(t *testing.T) {
	m := &Metrics{}
	s := NewSampler(80*time.Millisecond, true, m)
	board := &fakeBoard{}
	board.held[BtnUp] = true

	var sentAt []time.Time
	for i := 0; i < 50; i++ {
		now := t0.Add(time.Duration(i) * 20 * time.Millisecond)
		for _, ev := range s.Sample(now, board) {
			if ev != MoveEvent(DirUp) {
				t.Fatalf("unexpected event %+v", ev)
			}
			sentAt = append(sentAt, now)
		}
	}

	if len(sentAt) < 2 {
		t.Fatalf("expected repeated sends while held, got %d", len(sentAt))
	}
	for i := 1; i < len(sentAt); i++ {
		if gap := sentAt[i].Sub(sentAt[i-1]); gap < 80*time.Millisecond {
			t.Fatalf("sends %d and %d only %s apart", i-1, i, gap)
		}
	}
	if m.Debounced == 0 {
		t.Fatal("expected suppressed repeats to be counted")
	}
}

func TestSamplerFirstPressSendsImmediately(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	board := &fakeBoard{}
	board.held[BtnRight] = true

	events := s.Sample(t0, board)
	if len(events) != 1 || events[0] != MoveEvent(DirRight) {
		t.Fatalf("expected one RIGHT move, got %+v", events)
	}
}

func TestSamplerDirectionsDebounceIndependently(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	board := &fakeBoard{}
	board.held[BtnUp] = true
	if got := s.Sample(t0, board); len(got) != 1 {
		t.Fatalf("expected UP, got %+v", got)
	}

	board.held[BtnLeft] = true
	got := s.Sample(t0.Add(10*time.Millisecond), board)
	if len(got) != 1 || got[0] != MoveEvent(DirLeft) {
		t.Fatalf("expected only LEFT while UP is debounced, got %+v", got)
	}
}

func TestSamplerEventOrder(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	board := &fakeBoard{gesture: DirDown}
	for _, b := range []Button{BtnUp, BtnDown, BtnLeft, BtnRight} {
		board.held[b] = true
	}
	board.down[BtnBomb] = true

	got := s.Sample(t0, board)
	want := []InputEvent{
		MoveEvent(DirUp), MoveEvent(DirDown), MoveEvent(DirLeft), MoveEvent(DirRight),
		BombEvent(), MoveEvent(DirDown),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSamplerBombOncePerPress(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	board := &fakeBoard{}

	bombs := 0
	count := func(events []InputEvent) {
		for _, ev := range events {
			if ev.Action == ActionBomb {
				bombs++
			}
		}
	}

	// 按下的一帧有边沿，之后按住只有电平
	board.held[BtnBomb] = true
	board.down[BtnBomb] = true
	count(s.Sample(t0, board))
	board.down[BtnBomb] = false
	for i := 1; i < 20; i++ {
		count(s.Sample(t0.Add(time.Duration(i)*20*time.Millisecond), board))
	}
	if bombs != 1 {
		t.Fatalf("expected one bomb for one press, got %d", bombs)
	}

	// 松开后再按一次
	board.held[BtnBomb] = false
	count(s.Sample(t0.Add(500*time.Millisecond), board))
	board.held[BtnBomb] = true
	board.down[BtnBomb] = true
	count(s.Sample(t0.Add(520*time.Millisecond), board))
	if bombs != 2 {
		t.Fatalf("expected second press to bomb, got %d", bombs)
	}
}

func TestSamplerBombPressInsideDebounceIsDropped(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	board := &fakeBoard{}
	board.down[BtnBomb] = true

	if got := s.Sample(t0, board); len(got) != 1 {
		t.Fatalf("expected bomb, got %+v", got)
	}
	if got := s.Sample(t0.Add(40*time.Millisecond), board); len(got) != 0 {
		t.Fatalf("expected press within debounce to be dropped, got %+v", got)
	}
	if got := s.Sample(t0.Add(120*time.Millisecond), board); len(got) != 1 {
		t.Fatalf("expected bomb after debounce, got %+v", got)
	}
}

func TestSamplerGestureSkipsDebounce(t *testing.T) {
	m := &Metrics{}
	s := NewSampler(80*time.Millisecond, true, m)
	board := &fakeBoard{}

	for i := 0; i < 3; i++ {
		board.gesture = DirUp
		got := s.Sample(t0.Add(time.Duration(i)*time.Millisecond), board)
		if len(got) != 1 || got[0] != MoveEvent(DirUp) {
			t.Fatalf("gesture %d: expected UP, got %+v", i, got)
		}
	}
	if m.Gestures != 3 {
		t.Fatalf("expected 3 gestures counted, got %d", m.Gestures)
	}
}

func TestSamplerGesturesDisabled(t *testing.T) {
	s := NewSampler(80*time.Millisecond, false, nil)
	board := &fakeBoard{gesture: DirLeft}
	if got := s.Sample(t0, board); len(got) != 0 {
		t.Fatalf("expected no events with gestures off, got %+v", got)
	}
}

func TestSamplerSetDebounce(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	s.SetDebounce(200 * time.Millisecond)
	board := &fakeBoard{}
	board.held[BtnDown] = true

	s.Sample(t0, board)
	if got := s.Sample(t0.Add(100*time.Millisecond), board); len(got) != 0 {
		t.Fatalf("expected debounce of 200ms, got %+v", got)
	}
	if got := s.Sample(t0.Add(200*time.Millisecond), board); len(got) != 1 {
		t.Fatalf("expected send at 200ms, got %+v", got)
	}
}

func TestSamplerSetDebounceIgnoresNonPositive(t *testing.T) {
	s := NewSampler(80*time.Millisecond, true, nil)
	s.SetDebounce(0)
	s.SetDebounce(-time.Hour)
	if s.Debounce() != 80*time.Millisecond {
		t.Fatalf("expected 80ms debounce to be kept, got %s", s.Debounce())
	}
}
