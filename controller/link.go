package controller

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// LinkStatus 网络链路状态
type LinkStatus int

const (
	LinkIdle LinkStatus = iota
	LinkConnecting
	LinkConnected
	LinkFailed
)

func (s LinkStatus) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkConnecting:
		return "connecting"
	case LinkConnected:
		return "connected"
	case LinkFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Link 网络接入（无线关联）抽象
type Link interface {
	Begin(ssid, pass string)
	Status(ctx context.Context) LinkStatus
	LocalAddr() string
}

// LinkError 关联次数用尽
type LinkError struct {
	Attempts int
	Last     LinkStatus
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link not connected after %d attempts (status=%s)", e.Attempts, e.Last)
}

// Associate 开始关联并轮询，最多 cfg.LinkAttempts 次，每次间隔 cfg.LinkRetryDelay
func Associate(ctx context.Context, link Link, cfg Config, m *Metrics) error {
	Log.Infof("[WIFI] Connecting to %s...", cfg.WifiSSID)
	link.Begin(cfg.WifiSSID, cfg.WifiPass)

	timer := time.NewTimer(cfg.LinkRetryDelay)
	defer timer.Stop()

	status := link.Status(ctx)
	for w := 0; status != LinkConnected && w < cfg.LinkAttempts; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		timer.Reset(cfg.LinkRetryDelay)
		w++
		m.IncLinkAttempts()
		status = link.Status(ctx)
		Log.Infof("[WIFI] Attempt %d/%d, status=%s", w, cfg.LinkAttempts, status)
	}
	if status != LinkConnected {
		Log.Errorf("[WIFI] FAILED - not connected, final status=%s", status)
		return &LinkError{Attempts: cfg.LinkAttempts, Last: status}
	}
	Log.Infof("[WIFI] Connected, local=%s", link.LocalAddr())
	return nil
}

// DialLink 桌面环境下的链路：能与游戏服务端建立 TCP 连接即视为已关联
type DialLink struct {
	addr    string
	timeout time.Duration

	mu     sync.Mutex
	begun  bool
	local  string
	status LinkStatus
}

// NewDialLink 以 host:port 为探测目标
func NewDialLink(addr string, timeout time.Duration) *DialLink {
	return &DialLink{addr: addr, timeout: timeout}
}

func (l *DialLink) Begin(ssid, pass string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.begun = true
	l.status = LinkConnecting
}

func (l *DialLink) Status(ctx context.Context) LinkStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.begun {
		return LinkIdle
	}
	if l.status == LinkConnected {
		return l.status
	}
	d := net.Dialer{Timeout: l.timeout}
	conn, err := d.DialContext(ctx, "tcp", l.addr)
	if err != nil {
		Log.Debugf("[WIFI] probe %s: %v", l.addr, err)
		l.status = LinkConnecting
		return l.status
	}
	l.local = conn.LocalAddr().String()
	_ = conn.Close()
	l.status = LinkConnected
	return l.status
}

func (l *DialLink) LocalAddr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.local
}
