package completion

import (
	"fmt"
	"log/slog"

	"github.com/rshoplabs/shopbot/internal/config"
)

// New builds the configured completion client.
func New(log *slog.Logger, cfg config.CompletionConfig) (Client, error) {
	timeout := cfg.TimeoutDuration()
	switch cfg.Client {
	case "openai":
		return NewOpenAIClient(log, cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil
	case "anthropic":
		return NewAnthropicClient(log, cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil
	default:
		return nil, fmt.Errorf("unknown completion client %q", cfg.Client)
	}
}
