package ai

import (
	"context"
	"fmt"

	"github.com/myrecovery365/sobrio/backend/internal/config"
)

// New constructs the completer for the configured provider.
func New(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg)
	case config.ProviderArk:
		return NewArkCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
