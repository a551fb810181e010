package controller

import (
	"context"
	"time"
)

// Run 主循环：READY 时每 LoopInterval 采样一次，否则每 IdleInterval 空转一次
// 发送是同步的，慢请求会推迟下一帧
func (c *Controller) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		wait := c.cfg.IdleInterval
		if c.Step(ctx) {
			wait = c.cfg.LoopInterval
		}
		timer.Reset(wait)
	}
}
