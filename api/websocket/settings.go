package websocket

import (
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/config"
)

// WebSocketSettings resolves timing and buffer knobs from config with safe
// fallbacks for anything unset.
type WebSocketSettings struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	MaxMessageSize int64
	ClientBuffer   int
	MaxConnections int
}

func NewWebSocketSettings(cfg *config.WebSocketConfig) *WebSocketSettings {
	s := &WebSocketSettings{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		MaxMessageSize: 512,
		ClientBuffer:   256,
		MaxConnections: 1000,
	}

	if cfg != nil {
		if cfg.WriteTimeout > 0 {
			s.WriteWait = cfg.WriteTimeout
		}
		if cfg.PongTimeout > 0 {
			s.PongWait = cfg.PongTimeout
		}
		if cfg.MaxMessageSize > 0 {
			s.MaxMessageSize = cfg.MaxMessageSize
		}
		if cfg.ClientBuffer > 0 {
			s.ClientBuffer = cfg.ClientBuffer
		}
		if cfg.MaxConnections > 0 {
			s.MaxConnections = cfg.MaxConnections
		}
	}

	s.PingPeriod = (s.PongWait * 9) / 10
	if cfg != nil && cfg.PingInterval > 0 {
		s.PingPeriod = cfg.PingInterval
	}

	return s
}
