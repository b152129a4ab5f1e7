package codec

import (
	"fmt"

	"github.com/arloliu/pbwire/errs"
	"github.com/arloliu/pbwire/internal/options"
)

// defaultMaxDepth bounds nested-message recursion so a crafted or corrupt
// stream of self-referential length-delimited fields can't blow the Go
// call stack. A 32-deep budget comfortably covers realistic schemas; the
// 33rd nested message trips ErrDepthExceeded.
const defaultMaxDepth = 32

// ParseConfig holds the knobs a Parse call runs under. Build one with
// NewParseConfig and the With* options below.
type ParseConfig struct {
	strict       bool
	parseUnknown bool
	maxDepth     int
}

// ParseOption configures a ParseConfig using a generic functional-options
// pattern (internal/options.Option[T]) rather than a struct literal with
// exported fields, so new knobs can be added without breaking callers.
type ParseOption = options.Option[*ParseConfig]

// WithStrict controls what happens when a field number isn't present in
// the schema table being parsed against. When strict is true, an unknown
// field number is a parse error (ErrUnexpectedField). When false (the
// default), unknown fields are skipped, matching normal protobuf
// forward-compatible parsing.
func WithStrict(strict bool) ParseOption {
	return options.NoError[*ParseConfig](func(c *ParseConfig) { c.strict = strict })
}

// WithParseUnknown controls whether skipped unknown fields are preserved
// for round-tripping (true, the default) or silently discarded (false).
// It has no effect when WithStrict(true) is also set, since strict mode
// never reaches the skip path.
func WithParseUnknown(parse bool) ParseOption {
	return options.NoError[*ParseConfig](func(c *ParseConfig) { c.parseUnknown = parse })
}

// WithMaxDepth overrides the nested-message recursion budget. depth must
// be positive.
func WithMaxDepth(depth int) ParseOption {
	return options.New[*ParseConfig](func(c *ParseConfig) error {
		if depth <= 0 {
			return fmt.Errorf("%w: max depth %d must be positive", errs.ErrInvalidArgument, depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// NewParseConfig builds a ParseConfig from opts, applied in order over a
// default configuration (lenient, unknown fields preserved, depth 32).
func NewParseConfig(opts ...ParseOption) (*ParseConfig, error) {
	cfg := &ParseConfig{parseUnknown: true, maxDepth: defaultMaxDepth}
	if err := options.Apply[*ParseConfig](cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Strict reports whether unknown fields are rejected.
func (c *ParseConfig) Strict() bool { return c.strict }

// ParseUnknown reports whether unknown fields are preserved rather than
// discarded.
func (c *ParseConfig) ParseUnknown() bool { return c.parseUnknown }

// MaxDepth returns the nested-message recursion budget.
func (c *ParseConfig) MaxDepth() int { return c.maxDepth }

// CheckDepth returns ErrDepthExceeded if depth has gone past cfg's budget.
// Callers increment depth by one on entry to each nested message and call
// this before doing any work at the new level.
func CheckDepth(cfg *ParseConfig, depth int) error {
	if depth > cfg.maxDepth {
		return fmt.Errorf("%w: nesting depth %d exceeds budget %d", errs.ErrDepthExceeded, depth, cfg.maxDepth)
	}

	return nil
}
