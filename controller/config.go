package controller

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config 控制器配置；默认值与固件常量一致，可用环境变量覆盖
type Config struct {
	WifiSSID string `env:"WIFI_SSID" envDefault:"NETGEAR25"`
	WifiPass string `env:"WIFI_PASS"`

	ServerHost string `env:"SERVER_HOST" envDefault:"bomberman.mercantec.tech"`
	ServerPort int    `env:"SERVER_PORT"` // 0 表示按 UseHTTPS 选择 80/443
	UseHTTPS   bool   `env:"USE_HTTPS" envDefault:"false"`

	GamePin    string `env:"GAME_PIN" envDefault:"1234"`
	PlayerName string `env:"PLAYER_NAME" envDefault:"Arduino"`

	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"` // 仅用于 join
	InputTimeout time.Duration `env:"INPUT_TIMEOUT" envDefault:"0s"` // 0 = 不覆盖客户端默认
	Debounce     time.Duration `env:"DEBOUNCE" envDefault:"80ms"`

	LinkAttempts   int           `env:"LINK_ATTEMPTS" envDefault:"20"`
	LinkRetryDelay time.Duration `env:"LINK_RETRY_DELAY" envDefault:"500ms"`

	LoopInterval time.Duration `env:"LOOP_INTERVAL" envDefault:"20ms"`
	IdleInterval time.Duration `env:"IDLE_INTERVAL" envDefault:"1s"`

	Gestures bool `env:"GESTURES" envDefault:"true"`
}

// LoadConfig 从环境变量读取配置并校验
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查必填字段与时间间隔
func (c Config) Validate() error {
	switch {
	case c.ServerHost == "":
		return errors.New("config: SERVER_HOST is required")
	case c.GamePin == "":
		return errors.New("config: GAME_PIN is required")
	case c.ServerPort < 0 || c.ServerPort > 65535:
		return fmt.Errorf("config: SERVER_PORT out of range: %d", c.ServerPort)
	case c.Debounce <= 0:
		return fmt.Errorf("config: DEBOUNCE must be positive, got %s", c.Debounce)
	case c.LinkAttempts <= 0:
		return fmt.Errorf("config: LINK_ATTEMPTS must be positive, got %d", c.LinkAttempts)
	case c.LinkRetryDelay <= 0 || c.LoopInterval <= 0 || c.IdleInterval <= 0:
		return errors.New("config: LINK_RETRY_DELAY, LOOP_INTERVAL and IDLE_INTERVAL must be positive")
	case c.HTTPTimeout < 0 || c.InputTimeout < 0:
		return errors.New("config: timeouts must not be negative")
	}
	return nil
}

// Port 返回实际端口
func (c Config) Port() int {
	if c.ServerPort != 0 {
		return c.ServerPort
	}
	if c.UseHTTPS {
		return 443
	}
	return 80
}

// Addr host:port 形式
func (c Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.Port()))
}

// BaseURL 例如 http://bomberman.mercantec.tech:80
func (c Config) BaseURL() string {
	scheme := "http"
	if c.UseHTTPS {
		scheme = "https"
	}
	return scheme + "://" + c.Addr()
}
