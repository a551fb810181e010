package controller

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// 去抖上限 1 小时，避免换算成 Duration 时溢出
const maxDebounceMs = int(time.Hour / time.Millisecond)

// HandleAdminConfig 运行时读取与更新采样配置
// GET /admin/config  返回当前配置
// POST /admin/config 以 JSON 载荷更新部分字段
func HandleAdminConfig(c *Controller) http.HandlerFunc {
	type cfg struct {
		DebounceMs *int  `json:"debounceMs,omitempty"`
		Gestures   *bool `json:"gestures,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s := c.Sampler()
		switch r.Method {
		case http.MethodGet:
			ms := int(s.Debounce() / time.Millisecond)
			on := s.GesturesEnabled()
			writeJSON(w, http.StatusOK, cfg{DebounceMs: &ms, Gestures: &on})
		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			if body.DebounceMs != nil && (*body.DebounceMs <= 0 || *body.DebounceMs > maxDebounceMs) {
				http.Error(w, "debounceMs must be in (0, 3600000]", http.StatusBadRequest)
				return
			}
			if body.DebounceMs != nil {
				s.SetDebounce(time.Duration(*body.DebounceMs) * time.Millisecond)
			}
			if body.Gestures != nil {
				s.SetGestures(*body.Gestures)
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			Log.Infof("config updated: debounce=%s gestures=%t", s.Debounce(), s.GesturesEnabled())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics 输出运行指标
// GET /metrics
func HandleMetrics(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := c.Snapshot()
		writeJSON(w, http.StatusOK, map[string]any{
			"state":   st.State,
			"metrics": c.Metrics().Snapshot(),
		})
	}
}

// HandleStatus 输出生命周期状态与会话
// GET /status
func HandleStatus(c *Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Snapshot())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
