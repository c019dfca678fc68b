// Package pipeline drives a validation run: it reads client lines into a
// registry until the sentinel, freezes the registry, then checks transaction
// lines until input ends. The first failure ends the run.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pixcheck/internal/domain"
	"pixcheck/internal/platform/logger"
	"pixcheck/internal/platform/metrics"
	"pixcheck/internal/registry"
	"pixcheck/internal/rejection"
	"pixcheck/internal/transaction"
	"pixcheck/pkg/platform/privacy"
	"pixcheck/pkg/runcontext"
)

// Result is the outcome of one run. Valid is the only user-visible part.
type Result struct {
	Valid        bool
	Err          error // first failure, nil when Valid
	Clients      int
	Transactions int
	Lines        int
}

// Decide is the success rule: a run is valid iff no check failed and the
// source reached a clean end of input during the transaction phase.
func Decide(valid, exhausted bool) bool {
	return valid && exhausted
}

// FormatVerdict renders the boolean the way the stream's consumers expect.
func FormatVerdict(valid bool) string {
	if valid {
		return "True"
	}
	return "False"
}

// Controller runs validations. It holds configuration only; every run builds
// its own registry, so runs never share state.
type Controller struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	policy   registry.Policy
	sentinel string
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithMetrics records counters for every run on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

func WithPolicy(p registry.Policy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

func WithSentinel(sentinel string) Option {
	return func(c *Controller) {
		c.sentinel = sentinel
	}
}

// New creates a controller with the default policy and sentinel.
func New(opts ...Option) *Controller {
	c := &Controller{
		policy:   registry.DefaultPolicy,
		sentinel: domain.DefaultSentinel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Discard()
	}
	return c
}

// run carries the state of a single validation.
type run struct {
	*Controller
	ctx    context.Context
	log    *slog.Logger
	src    LineSource
	reg    *registry.Registry
	result Result
}

// Run validates every line from src and reports the verdict. A cancelled
// context ends the run as invalid.
func (c *Controller) Run(ctx context.Context, src LineSource) Result {
	start := time.Now()
	runID := uuid.NewString()
	ctx = runcontext.WithStartedAt(runcontext.WithRunID(ctx, runID), start)

	r := &run{
		Controller: c,
		ctx:        ctx,
		log:        c.logger.With("run_id", runcontext.RunID(ctx)),
		src:        src,
		reg:        registry.New(registry.WithPolicy(c.policy)),
	}

	valid, exhausted := r.execute()
	r.result.Valid = Decide(valid, exhausted)
	if c.metrics != nil {
		c.metrics.ObserveRun(start)
	}
	r.log.DebugContext(ctx, "run finished",
		"valid", r.result.Valid,
		"clients", r.result.Clients,
		"transactions", r.result.Transactions,
		"lines", r.result.Lines,
		"elapsed", time.Since(runcontext.StartedAt(ctx)),
	)
	return r.result
}

// execute returns (valid, exhausted) for Decide.
func (r *run) execute() (bool, bool) {
	if !r.registerClients() {
		return false, false
	}
	r.reg.Freeze()
	r.logRegistry()

	validator, err := transaction.NewValidator(r.reg)
	if err != nil {
		return r.fail(err), false
	}
	for {
		line, ok := r.nextLine()
		if !ok {
			if err := r.src.Err(); err != nil {
				return r.fail(sourceError(err)), false
			}
			return true, true
		}
		if err := r.ctx.Err(); err != nil {
			return r.fail(err), false
		}
		if err := validator.ValidateLine(line); err != nil {
			return r.fail(err), false
		}
		r.result.Transactions++
		r.count(metrics.PhaseTransaction)
	}
}

// registerClients consumes lines up to and including the sentinel.
func (r *run) registerClients() bool {
	for {
		line, ok := r.nextLine()
		if !ok {
			if err := r.src.Err(); err != nil {
				return r.fail(sourceError(err))
			}
			return r.fail(rejection.New(rejection.CategoryTruncated, "sentinel", "",
				"input ended before the registration sentinel"))
		}
		if err := r.ctx.Err(); err != nil {
			return r.fail(err)
		}
		if line == r.sentinel {
			return true
		}

		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			return r.fail(rejection.New(rejection.CategoryFormat, "identifier", "", "empty client line"))
		}
		client, err := r.reg.Register(tokens[0], tokens[1:])
		if err != nil {
			return r.fail(err)
		}
		r.result.Clients++
		r.count(metrics.PhaseRegistration)
		if r.metrics != nil {
			r.metrics.IncrementKeyRegistered(domain.KeyIdentifier.String())
			for _, k := range client.Keys {
				r.metrics.IncrementKeyRegistered(k.Kind.String())
			}
		}
	}
}

// logRegistry dumps the frozen client ranges at debug level.
func (r *run) logRegistry() {
	if !r.log.Enabled(r.ctx, slog.LevelDebug) {
		return
	}
	for _, c := range r.reg.Clients() {
		r.log.DebugContext(r.ctx, "client registered",
			"identifier", privacy.MaskToken(c.Identifier),
			"kind", c.Kind.String(),
			"keys", len(c.Keys),
			"start", c.Start,
			"end", c.End,
		)
	}
}

func (r *run) nextLine() (string, bool) {
	line, ok := r.src.Next()
	if !ok {
		return "", false
	}
	r.result.Lines++
	return strings.TrimRight(line, "\r"), true
}

func (r *run) count(phase string) {
	if r.metrics != nil {
		r.metrics.IncrementRecord(phase)
	}
}

// fail records the first failure and always returns false.
func (r *run) fail(err error) bool {
	var rej *rejection.Error
	if errors.As(err, &rej) {
		err = rej.AtLine(r.result.Lines)
	}
	r.result.Err = err

	category := rejection.GetCategory(err)
	if r.metrics != nil {
		r.metrics.IncrementRejection(string(category))
	}

	attrs := []any{"category", category, "line", r.result.Lines, "error", err}
	if rej != nil {
		attrs = append(attrs, "field", rej.Field, "value", rej.Value)
	}
	r.log.InfoContext(r.ctx, "record stream rejected", attrs...)
	return false
}

func sourceError(err error) error {
	return &rejection.Error{
		Category:   rejection.CategorySource,
		Field:      "input",
		Message:    "reading input",
		Underlying: err,
	}
}
