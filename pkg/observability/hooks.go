package observability

import (
	"log/slog"

	"github.com/aretw0/typeguard/pkg/validate"
)

// Chain combines hooks; each event is delivered to every non-nil callback in order.
func Chain(hooks ...validate.Hooks) validate.Hooks {
	var onValidate []func(*validate.ValidationEvent)
	var onFallback []func(*validate.FallbackEvent)
	for _, h := range hooks {
		if h.OnValidate != nil {
			onValidate = append(onValidate, h.OnValidate)
		}
		if h.OnFallback != nil {
			onFallback = append(onFallback, h.OnFallback)
		}
	}

	var out validate.Hooks
	if len(onValidate) > 0 {
		out.OnValidate = func(e *validate.ValidationEvent) {
			for _, fn := range onValidate {
				fn(e)
			}
		}
	}
	if len(onFallback) > 0 {
		out.OnFallback = func(e *validate.FallbackEvent) {
			for _, fn := range onFallback {
				fn(e)
			}
		}
	}
	return out
}

// LogHooks returns hooks that write one info record per validation and a
// warning per base fallback.
func LogHooks(logger *slog.Logger) validate.Hooks {
	return validate.Hooks{
		OnValidate: func(e *validate.ValidationEvent) {
			logger.Info("validation",
				"mode", e.Mode,
				"errors", len(e.Errors),
				"stripped", e.Stripped,
				"fallbacks", e.Fallbacks,
				"duration", e.Duration,
			)
		},
		OnFallback: func(e *validate.FallbackEvent) {
			logger.Warn("base fallback",
				"path", e.Path,
				"type", e.Type,
			)
		},
	}
}
