package controller

import (
	"sync/atomic"
)

// Metrics 记录控制器运行期的关键指标（用于监控与调试）
type Metrics struct {
	Loops        int64 // 循环次数（仅 READY 状态）
	LinkAttempts int64 // 链路关联尝试次数
	JoinAttempts int64 // join 次数
	InputsSent   int64 // 发送成功的输入数
	InputsFailed int64 // 发送失败（网络错误或非 2xx）的输入数
	Debounced    int64 // 因去抖被抑制的输入数
	Gestures     int64 // 手势触发的输入数
	TotalSendNs  int64 // 发送累计耗时（纳秒）
}

func (m *Metrics) IncLoops() { atomic.AddInt64(&m.Loops, 1) }
func (m *Metrics) IncLinkAttempts() { atomic.AddInt64(&m.LinkAttempts, 1) }
func (m *Metrics) IncJoinAttempts() { atomic.AddInt64(&m.JoinAttempts, 1) }
func (m *Metrics) IncDebounced() { atomic.AddInt64(&m.Debounced, 1) }
func (m *Metrics) IncGestures() { atomic.AddInt64(&m.Gestures, 1) }

// AddSend 记录一次发送结果与耗时
func (m *Metrics) AddSend(ns int64, ok bool) {
	if ok {
		atomic.AddInt64(&m.InputsSent, 1)
	} else {
		atomic.AddInt64(&m.InputsFailed, 1)
	}
	atomic.AddInt64(&m.TotalSendNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	sent := atomic.LoadInt64(&m.InputsSent)
	failed := atomic.LoadInt64(&m.InputsFailed)
	total := atomic.LoadInt64(&m.TotalSendNs)
	var avgMs float64
	if n := sent + failed; n > 0 {
		avgMs = float64(total) / float64(n) / 1e6
	}
	return map[string]any{
		"loops":         atomic.LoadInt64(&m.Loops),
		"link_attempts": atomic.LoadInt64(&m.LinkAttempts),
		"join_attempts": atomic.LoadInt64(&m.JoinAttempts),
		"inputs_sent":   sent,
		"inputs_failed": failed,
		"debounced":     atomic.LoadInt64(&m.Debounced),
		"gestures":      atomic.LoadInt64(&m.Gestures),
		"avg_send_ms":   avgMs,
	}
}
