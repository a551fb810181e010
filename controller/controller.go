package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State 控制器生命周期
// CONNECTING → HALTED / CONNECTING → JOINING → HALTED / CONNECTING → JOINING → READY
type State int

const (
	StateConnecting State = iota
	StateJoining
	StateReady
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateJoining:
		return "JOINING"
	case StateReady:
		return "READY"
	case StateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// 固定的状态屏文字
const (
	MsgConnecting = "Connecting WiFi..."
	MsgLinkError  = "WiFi error"
	MsgLinkHint   = "Check SSID/password"
	MsgJoining    = "Joining game..."
	MsgJoinError  = "Join error!"
	MsgJoinHint   = "Check PIN + server"
	MsgReady      = "Ready! Play!"
)

// GameAPI 控制器使用的服务端接口
type GameAPI interface {
	Join(ctx context.Context, pin, name string) (JoinResponse, error)
	InputSender
}

// Session join 成功后由服务端分配；只设置一次
type Session struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name,omitempty"`
}

// Status /status 输出
type Status struct {
	State    string `json:"state"`
	PlayerID string `json:"playerId,omitempty"`
	Name     string `json:"name,omitempty"`
	Pin      string `json:"pin"`
}

// Controller 持有会话、去抖时间戳与所有外设；由主循环单线程驱动
type Controller struct {
	cfg     Config
	link    Link
	api     GameAPI
	board   Board
	display Display

	sampler   *Sampler
	forwarder *Forwarder
	metrics   *Metrics
	clock     func() time.Time

	mu      sync.RWMutex
	state   State
	session Session
}

// Deps 外部依赖
type Deps struct {
	Link    Link
	API     GameAPI
	Board   Board
	Display Display
	Metrics *Metrics
	Clock   func() time.Time
}

// New 创建控制器（初始状态 CONNECTING）
func New(cfg Config, deps Deps) *Controller {
	m := deps.Metrics
	if m == nil {
		m = &Metrics{}
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	display := deps.Display
	if display == nil {
		display = LogDisplay{}
	}
	return &Controller{
		cfg:       cfg,
		link:      deps.Link,
		api:       deps.API,
		board:     deps.Board,
		display:   display,
		sampler:   NewSampler(cfg.Debounce, cfg.Gestures, m),
		forwarder: NewForwarder(cfg.GamePin, deps.API, m),
		metrics:   m,
		clock:     clock,
		state:     StateConnecting,
	}
}

func (c *Controller) Sampler() *Sampler { return c.sampler }
func (c *Controller) Metrics() *Metrics { return c.metrics }

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// PlayerID 为空表示尚未认证
func (c *Controller) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.PlayerID
}

// Snapshot 当前状态只读副本
func (c *Controller) Snapshot() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		State:    c.state.String(),
		PlayerID: c.session.PlayerID,
		Name:     c.session.Name,
		Pin:      c.cfg.GamePin,
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Setup 一次性启动流程：关联链路 → join；失败进入 HALTED 并返回终止错误
func (c *Controller) Setup(ctx context.Context) error {
	if s := c.State(); s != StateConnecting {
		return fmt.Errorf("setup: controller already %s", s)
	}

	ShowStatus(c.display, MsgConnecting, ColorYellow)
	if err := Associate(ctx, c.link, c.cfg, c.metrics); err != nil {
		c.setState(StateHalted)
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			ShowStatus2(c.display, MsgLinkError, MsgLinkHint, ColorRed)
		}
		return err
	}

	c.setState(StateJoining)
	ShowStatus2(c.display, MsgJoining, "PIN: "+c.cfg.GamePin, ColorYellow)
	Log.Infof("[JOIN] joining game pin=%s name=%s", c.cfg.GamePin, c.cfg.PlayerName)

	c.metrics.IncJoinAttempts()
	resp, err := c.api.Join(ctx, c.cfg.GamePin, c.cfg.PlayerName)
	if err != nil {
		c.setState(StateHalted)
		ShowStatus2(c.display, MsgJoinError, MsgJoinHint, ColorRed)
		Log.Errorf("[SETUP] join failed, controller stopped: %v", err)
		return err
	}

	c.mu.Lock()
	c.session = Session{PlayerID: resp.PlayerID, Name: resp.Name}
	c.state = StateReady
	c.mu.Unlock()

	ShowStatus(c.display, MsgReady, ColorGreen)
	Log.Infof("[SETUP] ready, playerId=%s name=%s", resp.PlayerID, resp.Name)
	return nil
}

// Step 一次循环体；返回 false 表示未认证，本帧什么也没做
func (c *Controller) Step(ctx context.Context) bool {
	playerID := c.PlayerID()
	if playerID == "" {
		return false
	}

	c.board.Update()
	for _, ev := range c.sampler.Sample(c.clock(), c.board) {
		c.forwarder.Forward(ctx, playerID, ev)
	}
	c.metrics.IncLoops()
	return true
}
