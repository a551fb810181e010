package controller

import (
	"context"
	"time"
)

// InputSender 发送输入的下游（GameClient 实现）
type InputSender interface {
	SendInput(ctx context.Context, req InputRequest) error
}

// Forwarder 尽力而为地转发输入：失败不重试、不排队，仅记录日志与指标
type Forwarder struct {
	pin     string
	sender  InputSender
	metrics *Metrics
}

func NewForwarder(pin string, sender InputSender, m *Metrics) *Forwarder {
	if m == nil {
		m = &Metrics{}
	}
	return &Forwarder{pin: pin, sender: sender, metrics: m}
}

// Forward 没有 playerId 时直接返回，不发出任何请求
func (f *Forwarder) Forward(ctx context.Context, playerID string, ev InputEvent) {
	if playerID == "" {
		return
	}
	req := NewInputRequest(f.pin, playerID, ev)
	start := time.Now()
	err := f.sender.SendInput(ctx, req)
	f.metrics.AddSend(time.Since(start).Nanoseconds(), err == nil)
	if err != nil {
		Log.Debugf("input dropped: action=%s direction=%s err=%v", req.Action, req.Direction, err)
	}
}
