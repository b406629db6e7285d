package project

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hardeen-go/geomgraph/pkg/predicate"
	"github.com/hardeen-go/geomgraph/pkg/rng"
)

// Option configures a Project at construction, following the teacher's
// functional-options pattern (pkg/config.go's Option[K,V]/config[K,V]),
// generalized to this domain's ambient knobs (SPEC_FULL.md §10).
type Option func(*config)

type config struct {
	logger    *zap.Logger
	metrics   *prometheus.Registry
	rngSource rng.Source
	predicate predicate.Evaluator
}

func defaultConfig() config {
	return config{
		logger:    zap.NewNop(),
		rngSource: rng.NewUnseeded(),
	}
}

// WithLogger attaches structured logging to every graph (root and every
// subgraph) the project constructs. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics registers Prometheus collectors on reg for every graph the
// project constructs. A nil registry leaves metrics as a no-op, same as
// dag.WithMetrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.metrics = reg }
}

// WithRandomSource overrides the default math/rand/v2-backed rng.Source
// every randomness-consuming processor type draws from (§9's redesign
// point). Hosts inject a seeded Source for reproducible evaluation (§8
// property 8).
func WithRandomSource(src rng.Source) Option {
	return func(c *config) { c.rngSource = src }
}

// WithPredicateEvaluator supplies the expression evaluator GroupPoints
// delegates to (§4.7, §9, §11). Omitting this option leaves GroupPoints a
// well-defined no-op.
func WithPredicateEvaluator(eval predicate.Evaluator) Option {
	return func(c *config) { c.predicate = eval }
}

// errNilRandomSource guards against a host passing WithRandomSource(nil),
// which would otherwise silently panic the first time a processor drew from
// it — caught here at construction instead, matching the teacher's
// applyOptions validating capBytes/ttl/shards up front rather than failing
// deep inside a shard on first use.
var errNilRandomSource = errors.New("project: WithRandomSource requires a non-nil rng.Source")

func applyOptions(cfg *config, opts []Option) error {
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rngSource == nil {
		return errNilRandomSource
	}
	return nil
}
