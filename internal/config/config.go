package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/client"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

// Config 聚合整个组件的配置项。
type Config struct {
	Chat   ChatConfig
	Server ServerConfig
	Log    LogConfig
}

// ChatConfig 描述问答端点与挂件行为。
type ChatConfig struct {
	Endpoint    string        `env:"CHAT_ENDPOINT" envDefault:"http://127.0.0.1:5000/chat"`
	Timeout     time.Duration `env:"CHAT_TIMEOUT" envDefault:"0s"`
	ResolveMode string        `env:"CHAT_RESOLVE_MODE" envDefault:"last"`
}

// ServerConfig 描述挂件页面宿主服务配置。
type ServerConfig struct {
	Port      string `env:"PORT" envDefault:"8080"`
	AssetsDir string `env:"WIDGET_ASSETS_DIR" envDefault:"web/static"`
	Addr      string
}

// LogConfig 描述日志输出。
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize 校验并补全配置，命令行参数覆盖后需要再次调用。
func (c *Config) Normalize() error {
	c.Chat.Endpoint = strings.TrimSpace(c.Chat.Endpoint)
	if c.Chat.Endpoint == "" {
		c.Chat.Endpoint = client.DefaultEndpoint
	}

	if c.Chat.Timeout < 0 {
		return fmt.Errorf("invalid CHAT_TIMEOUT value %q: must not be negative", c.Chat.Timeout)
	}

	mode, ok := widget.ParseResolveMode(strings.ToLower(strings.TrimSpace(c.Chat.ResolveMode)))
	if !ok {
		return fmt.Errorf("invalid CHAT_RESOLVE_MODE value %q: want %q or %q", c.Chat.ResolveMode, widget.ResolveByID, widget.ResolveLast)
	}
	c.Chat.ResolveMode = string(mode)

	addr, err := listenAddr(c.Server.Port)
	if err != nil {
		return err
	}
	c.Server.Addr = addr

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
		c.Log.Format = strings.ToLower(c.Log.Format)
	default:
		return fmt.Errorf("invalid LOG_FORMAT value %q", c.Log.Format)
	}
	return nil
}

// Resolve 返回解析后的答案定位方式。
func (c ChatConfig) Resolve() widget.ResolveMode {
	return widget.ResolveMode(c.ResolveMode)
}

// listenAddr 解析服务器监听地址。
func listenAddr(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}
