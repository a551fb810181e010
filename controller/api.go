package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const (
	JoinPath  = "/api/controller/join"
	InputPath = "/api/controller/input"
)

// join 响应体上限 64KiB
const maxResponseBody = 64 << 10

// ErrResponseTooLarge join 响应体超过 maxResponseBody
var ErrResponseTooLarge = errors.New("join response too large")

// ErrMissingPlayerID 状态码为 200 但响应中没有可用的 playerId
var ErrMissingPlayerID = errors.New("join response has no playerId")

// JoinError join 返回非 200
type JoinError struct {
	Status  int
	Message string // 服务端 error 字段，可能为空
}

func (e *JoinError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("join failed: status=%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("join failed: status=%d", e.Status)
}

// GameClient 游戏服务端的 HTTP/JSON 客户端
type GameClient struct {
	baseURL string
	join    *http.Client // 带超时，防止 join 永久等待
	input   *http.Client // 默认无超时，慢服务端会拖慢输入循环
}

// NewGameClient 按配置创建客户端
func NewGameClient(cfg Config) *GameClient {
	return &GameClient{
		baseURL: cfg.BaseURL(),
		join:    &http.Client{Timeout: cfg.HTTPTimeout},
		input:   &http.Client{Timeout: cfg.InputTimeout},
	}
}

// BaseURL 返回服务端地址
func (c *GameClient) BaseURL() string { return c.baseURL }

// Join 单次握手，成功返回带 playerId 的响应；不重试
func (c *GameClient) Join(ctx context.Context, pin, name string) (JoinResponse, error) {
	body, err := json.Marshal(JoinRequest{Pin: pin, Name: name})
	if err != nil {
		return JoinResponse{}, fmt.Errorf("encode join: %w", err)
	}
	Log.Infof("[JOIN] POST %s%s body=%s", c.baseURL, JoinPath, body)

	start := time.Now()
	status, raw, err := c.post(ctx, c.join, JoinPath, body, true)
	if err != nil {
		return JoinResponse{}, fmt.Errorf("join request: %w", err)
	}
	Log.Infof("[JOIN] status=%d took=%s body=%s", status, time.Since(start).Round(time.Millisecond), raw)

	var resp JoinResponse
	decodeErr := json.Unmarshal(raw, &resp)
	if status != http.StatusOK {
		return JoinResponse{}, &JoinError{Status: status, Message: resp.Error}
	}
	if decodeErr != nil || resp.PlayerID == "" {
		return JoinResponse{}, ErrMissingPlayerID
	}
	return resp, nil
}

// SendInput 发送一次输入；响应体丢弃，非 2xx 视为错误
func (c *GameClient) SendInput(ctx context.Context, req InputRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode input: %w", err)
	}
	status, _, err := c.post(ctx, c.input, InputPath, body, false)
	if err != nil {
		return fmt.Errorf("input request: %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("input request: status=%d", status)
	}
	return nil
}

func (c *GameClient) post(ctx context.Context, hc *http.Client, path string, body []byte, keepBody bool) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	if !keepBody {
		_, _ = io.Copy(io.Discard, res.Body)
		return res.StatusCode, nil, nil
	}
	// 多读一个字节用于判断是否超出上限
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody+1))
	if err != nil {
		return res.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) > maxResponseBody {
		return res.StatusCode, nil, ErrResponseTooLarge
	}
	return res.StatusCode, raw, nil
}
