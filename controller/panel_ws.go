package controller

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// PanelMessage 浏览器面板发来的消息（WebSocket 文本消息）
// 示例：{"type":"touch","button":0,"down":true} / {"type":"gesture","command":"up"}
type PanelMessage struct {
	Type    string `json:"type"`
	Button  int    `json:"button"`
	Down    bool   `json:"down"`
	Command string `json:"command,omitempty"`
}

// panelFrame 下发给浏览器的屏幕内容
type panelFrame struct {
	Type  string `json:"type"`
	Frame Frame  `json:"frame"`
}

// PanelConn 负责发送（写）数据到浏览器的轻量包装
type PanelConn struct {
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func NewPanelConn(ws *websocket.Conn) *PanelConn {
	return &PanelConn{
		ws:   ws,
		send: make(chan []byte, 16),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *PanelConn) Enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

// Close 关闭发送队列，写协程随之退出并关闭底层连接
func (c *PanelConn) Close() {
	c.once.Do(func() { close(c.send) })
}

func (c *PanelConn) writePump() {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump 读取浏览器的触摸/手势事件并写入面板
func (c *PanelConn) readPump(p *Panel) {
	defer c.ws.Close()
	defer p.detach(c)
	c.ws.SetReadLimit(4 << 10)
	c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(60 * time.Second)); return nil })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		var pm PanelMessage
		if err := json.Unmarshal(payload, &pm); err != nil {
			continue
		}
		switch strings.ToLower(pm.Type) {
		case "touch":
			p.SetTouch(Button(pm.Button), pm.Down)
		case "gesture":
			if dir := ParseDirection(pm.Command); dir != DirNone {
				p.PushGesture(dir)
			}
		}
	}
}

// Panel 浏览器中的虚拟控制面板：既是 Board（触摸键 + 手势），也是 Display（状态屏）
type Panel struct {
	mu       sync.Mutex
	touch    touchState
	gestures []Direction // 待读取的手势，每帧最多读一个
	gesture  Direction   // 本帧读到的手势

	clients map[*PanelConn]struct{}
	last    []byte // 最近一帧，新连接立即收到
}

const maxPendingGestures = 8

func NewPanel() *Panel {
	return &Panel{clients: make(map[*PanelConn]struct{})}
}

// SetTouch 记录原始按键电平（由网络协程调用）
func (p *Panel) SetTouch(b Button, down bool) {
	p.mu.Lock()
	p.touch.set(b, down)
	p.mu.Unlock()
}

// PushGesture 缓存一个手势，队列满时丢弃
func (p *Panel) PushGesture(d Direction) {
	p.mu.Lock()
	if len(p.gestures) < maxPendingGestures {
		p.gestures = append(p.gestures, d)
	}
	p.mu.Unlock()
}

// Update 锁定本帧状态
func (p *Panel) Update() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch.update()
	p.gesture = DirNone
	if len(p.gestures) > 0 {
		p.gesture = p.gestures[0]
		p.gestures = p.gestures[1:]
	}
}

func (p *Panel) Touching(b Button) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.touch.touching(b)
}

func (p *Panel) TouchDown(b Button) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.touch.touchDown(b)
}

func (p *Panel) Gesture() (Direction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gesture, p.gesture != DirNone
}

// Render 广播屏幕内容到所有已连接的浏览器
func (p *Panel) Render(f Frame) {
	b, err := json.Marshal(panelFrame{Type: "display", Frame: f})
	if err != nil {
		Log.Warnf("panel: encode frame: %v", err)
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = b
	for c := range p.clients {
		c.Enqueue(b)
	}
}

// Clients 当前连接数
func (p *Panel) Clients() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

func (p *Panel) attach(c *PanelConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clients[c] = struct{}{}
	if p.last != nil {
		c.Enqueue(p.last)
	}
}

// detach 连接断开时移除，并松开该连接可能按住的键
func (p *Panel) detach(c *PanelConn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.clients[c]; !ok {
		return
	}
	delete(p.clients, c)
	c.Close()
	if len(p.clients) == 0 {
		for b := Button(0); b < NumButtons; b++ {
			p.touch.set(b, false)
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 本地面板：允许所有来源
		return true
	},
}

// HandleWS WebSocket 接入：/ws
func (p *Panel) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("panel upgrade error: %v", err)
		return
	}
	c := NewPanelConn(ws)
	p.attach(c)
	Log.Infof("panel connected: %s", r.RemoteAddr)

	go c.writePump()
	go c.readPump(p)
}
