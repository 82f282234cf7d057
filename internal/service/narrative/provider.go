package narrative

import (
	"context"
	"fmt"
)

// SelectProvider builds the named provider. It returns nil, meaning "template
// only", for the template provider or when no credential is configured.
func SelectProvider(ctx context.Context, name string, cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	switch name {
	case "openai":
		return NewOpenAI(cfg), nil
	case "gemini":
		g, err := NewGemini(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return g, nil
	case SourceTemplate, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", name)
	}
}
