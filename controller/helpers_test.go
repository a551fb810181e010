package controller

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"
)

// testConfig 指向 httptest 服务端的配置，时间间隔缩短以加快测试
func testConfig(t *testing.T, serverURL string) Config {
	t.Helper()
	cfg := Config{
		WifiSSID:       "test",
		ServerHost:     "127.0.0.1",
		ServerPort:     1,
		GamePin:        "1234",
		PlayerName:     "Arduino",
		HTTPTimeout:    2 * time.Second,
		Debounce:       80 * time.Millisecond,
		LinkAttempts:   3,
		LinkRetryDelay: time.Millisecond,
		LoopInterval:   time.Millisecond,
		IdleInterval:   time.Millisecond,
		Gestures:       true,
	}
	if serverURL != "" {
		u, err := url.Parse(serverURL)
		if err != nil {
			t.Fatalf("parse url: %v", err)
		}
		host, port, err := net.SplitHostPort(u.Host)
		if err != nil {
			t.Fatalf("split host: %v", err)
		}
		cfg.ServerHost = host
		cfg.ServerPort, _ = strconv.Atoi(port)
	}
	return cfg
}

// fakeBoard 可编程的面板；Update 不做任何事，状态由测试直接设置
type fakeBoard struct {
	held    [NumButtons]bool
	down    [NumButtons]bool
	gesture Direction
	updates int
}

func (b *fakeBoard) Update() { b.updates++ }
func (b *fakeBoard) Touching(btn Button) bool { return b.held[btn] }
func (b *fakeBoard) TouchDown(btn Button) bool { return b.down[btn] }
func (b *fakeBoard) Gesture() (Direction, bool) {
	g := b.gesture
	b.gesture = DirNone
	return g, g != DirNone
}

// fakeLink 在第 connectAfter 次查询状态时变为已连接；-1 表示永不连接
type fakeLink struct {
	connectAfter int
	calls        int
	begun        bool
}

func (l *fakeLink) Begin(ssid, pass string) { l.begun = true }
func (l *fakeLink) Status(ctx context.Context) LinkStatus {
	l.calls++
	if l.connectAfter >= 0 && l.calls > l.connectAfter {
		return LinkConnected
	}
	return LinkConnecting
}
func (l *fakeLink) LocalAddr() string { return "10.0.0.2" }

// recordingDisplay 记录所有渲染过的帧
type recordingDisplay struct {
	mu     sync.Mutex
	frames []Frame
}

func (d *recordingDisplay) Render(f Frame) {
	d.mu.Lock()
	d.frames = append(d.frames, f)
	d.mu.Unlock()
}

func (d *recordingDisplay) texts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.frames))
	for _, f := range d.frames {
		out = append(out, f.Text())
	}
	return out
}

// fakeAPI 记录 join 与输入请求
type fakeAPI struct {
	mu        sync.Mutex
	joinResp  JoinResponse
	joinErr   error
	joinCalls int
	sendErr   error
	sent      []InputRequest
}

func (a *fakeAPI) Join(ctx context.Context, pin, name string) (JoinResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.joinCalls++
	return a.joinResp, a.joinErr
}

func (a *fakeAPI) SendInput(ctx context.Context, req InputRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sent = append(a.sent, req)
	return a.sendErr
}

func (a *fakeAPI) requests() []InputRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]InputRequest(nil), a.sent...)
}
