package validate

import (
	"log/slog"
	"time"

	"github.com/aretw0/typeguard/internal/logging"
	"github.com/aretw0/typeguard/pkg/schema"
)

// Options configures a Validator. The zero value validates without coercion.
type Options struct {
	// Coerce enables conversion of leaves into their declared type.
	Coerce bool
	// Base substitutes the type's base value when conversion is impossible.
	// Only meaningful together with Coerce.
	Base bool
	// MaxDepth bounds object nesting. Zero selects schema.DefaultMaxDepth.
	MaxDepth int
	Logger   *slog.Logger
	Hooks    Hooks
}

// Option defines a functional option for configuring the Validator.
type Option func(*Options)

// WithCoercion enables coercion of leaves into their declared type.
func WithCoercion() Option {
	return func(o *Options) {
		o.Coerce = true
	}
}

// WithBase enables the base-value fallback for failed coercions.
func WithBase() Option {
	return func(o *Options) {
		o.Base = true
	}
}

// WithMaxDepth bounds definition nesting.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(o *Options) {
		o.Hooks = hooks
	}
}

// Mode tells which validation mode a definition selected.
type Mode string

const (
	ModeScalar     Mode = "scalar"
	ModeStructured Mode = "structured"
)

// ValidationEvent describes one finished validation.
type ValidationEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Mode      Mode          `json:"mode"`
	Duration  time.Duration `json:"duration"`
	Errors    []*FieldError `json:"errors,omitempty"`
	Stripped  int           `json:"stripped"`
	Fallbacks int           `json:"fallbacks"`
}

// FallbackEvent describes a leaf replaced by its type's base value.
type FallbackEvent struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Value any    `json:"value,omitempty"`
}

// Hooks defines callbacks for validator observability.
type Hooks struct {
	OnValidate func(*ValidationEvent)
	OnFallback func(*FallbackEvent)
}

func (o *Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return schema.DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}
