package controller

import "strings"

// Direction 移动方向
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String 返回协议中使用的方向标签
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return ""
	}
}

// ParseDirection 不区分大小写；未知方向返回 DirNone
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	default:
		return DirNone
	}
}

// Action 输入动作标签
type Action string

const (
	ActionMove Action = "move"
	ActionBomb Action = "bomb"
)

// InputEvent 一次待发送的输入，仅在发送期间存在
type InputEvent struct {
	Action    Action
	Direction Direction
}

func MoveEvent(d Direction) InputEvent { return InputEvent{Action: ActionMove, Direction: d} }
func BombEvent() InputEvent { return InputEvent{Action: ActionBomb} }

// JoinRequest POST /api/controller/join 请求体
// 示例：{"pin":"1234","name":"Arduino"}
type JoinRequest struct {
	Pin  string `json:"pin"`
	Name string `json:"name"`
}

// JoinResponse 服务端响应；成功时携带 playerId，失败时携带 error
type JoinResponse struct {
	OK       bool   `json:"ok,omitempty"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name,omitempty"`
	Error    string `json:"error,omitempty"`
}

// InputRequest POST /api/controller/input 请求体
// 示例：{"pin":"1234","playerId":"p-42","action":"move","direction":"UP"}
type InputRequest struct {
	Pin       string `json:"pin"`
	PlayerID  string `json:"playerId"`
	Action    Action `json:"action"`
	Direction string `json:"direction,omitempty"`
}

// NewInputRequest 组装请求体；bomb 不带 direction
func NewInputRequest(pin, playerID string, ev InputEvent) InputRequest {
	req := InputRequest{Pin: pin, PlayerID: playerID, Action: ev.Action}
	if ev.Action == ActionMove {
		req.Direction = ev.Direction.String()
	}
	return req
}
