package controller

import (
	"sync/atomic"
	"time"
)

// 方向键按住时重复发送（类似键盘连发），受去抖间隔限制
var directionButtons = [...]struct {
	btn Button
	dir Direction
}{
	{BtnUp, DirUp},
	{BtnDown, DirDown},
	{BtnLeft, DirLeft},
	{BtnRight, DirRight},
}

// Sampler 读取面板状态并做逐键去抖
type Sampler struct {
	debounce atomic.Int64 // ns，可通过 /admin/config 热更新
	gestures atomic.Bool

	lastMove [5]time.Time // 按 Direction 索引
	lastBomb time.Time

	metrics *Metrics
}

// NewSampler 创建采样器
func NewSampler(debounce time.Duration, gestures bool, m *Metrics) *Sampler {
	if m == nil {
		m = &Metrics{}
	}
	s := &Sampler{metrics: m}
	s.debounce.Store(int64(debounce))
	s.gestures.Store(gestures)
	return s
}

func (s *Sampler) Debounce() time.Duration { return time.Duration(s.debounce.Load()) }
// SetDebounce 非正值被忽略
func (s *Sampler) SetDebounce(d time.Duration) {
	if d <= 0 {
		return
	}
	s.debounce.Store(int64(d))
}

func (s *Sampler) GesturesEnabled() bool { return s.gestures.Load() }
func (s *Sampler) SetGestures(on bool) { s.gestures.Store(on) }

// Sample 读取一帧，返回本帧应发送的输入（顺序：上、下、左、右、炸弹、手势）
// 调用方负责在此之前调用 board.Update()
func (s *Sampler) Sample(now time.Time, board Board) []InputEvent {
	var out []InputEvent
	for _, db := range directionButtons {
		if !board.Touching(db.btn) {
			continue
		}
		if !s.elapsed(now, s.lastMove[db.dir]) {
			s.metrics.IncDebounced()
			continue
		}
		out = append(out, MoveEvent(db.dir))
		s.lastMove[db.dir] = now
	}

	if board.TouchDown(BtnBomb) {
		if s.elapsed(now, s.lastBomb) {
			out = append(out, BombEvent())
			s.lastBomb = now
		} else {
			s.metrics.IncDebounced()
		}
	}

	// 手势作为备用输入：不做去抖
	if s.GesturesEnabled() {
		if dir, ok := board.Gesture(); ok && dir != DirNone {
			out = append(out, MoveEvent(dir))
			s.metrics.IncGestures()
		}
	}
	return out
}

func (s *Sampler) elapsed(now, last time.Time) bool {
	return last.IsZero() || now.Sub(last) >= s.Debounce()
}
