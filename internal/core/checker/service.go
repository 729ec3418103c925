// Package checker runs a compiled rule set over a batch of records.
package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abes-esr/qualimarc/internal/rules"
	"github.com/abes-esr/qualimarc/internal/telemetry"
	"github.com/abes-esr/qualimarc/internal/types"
)

// ErrBatchTooLarge indicates a batch above Options.MaxBatchSize.
var ErrBatchTooLarge = errors.New("batch exceeds maximum size")

// Options configures a Service.
type Options struct {
	Workers      int
	MaxBatchSize int
	// Priority restricts evaluation to rules of that priority.
	// PriorityUnspecified evaluates every rule.
	Priority rules.Priority
}

// Service evaluates records against one rule set.
// Thin orchestration layer over rules.Engine; safe for concurrent use.
type Service struct {
	engine  *rules.Engine
	opts    Options
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

// NewService creates a checker. A nil logger disables logging and nil
// metrics disables collection.
func NewService(compiled []*rules.CompoundRule, opts Options, logger *zap.Logger, metrics *telemetry.Metrics) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	selected := SelectRules(compiled, opts.Priority)
	if metrics != nil {
		metrics.SetRulesLoaded(len(selected))
	}
	return &Service{
		engine:  rules.NewEngine(selected),
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// SelectRules keeps the rules of priority p, in order.
// PriorityUnspecified keeps every rule.
func SelectRules(compiled []*rules.CompoundRule, p rules.Priority) []*rules.CompoundRule {
	if p == rules.PriorityUnspecified {
		return compiled
	}
	var out []*rules.CompoundRule
	for _, r := range compiled {
		if r.Priority == p {
			out = append(out, r)
		}
	}
	return out
}

// Check evaluates every record and builds the report.
// Results keep input order. Cancellation stops scheduling new records and
// returns ctx.Err().
func (s *Service) Check(ctx context.Context, records []types.Record) (*Report, error) {
	// Reject batches exceeding max size
	if s.opts.MaxBatchSize > 0 && len(records) > s.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d records, maximum %d", ErrBatchTooLarge, len(records), s.opts.MaxBatchSize)
	}

	runID := types.NewRunID()
	logger := s.logger.With(zap.String("run_id", string(runID)))
	logger.Info("batch check started",
		zap.Int("records", len(records)),
		zap.Int("rules", len(s.engine.Rules())),
		zap.Int("workers", s.opts.Workers),
	)
	start := time.Now()

	results := make([]RecordResult, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.checkRecord(logger, &records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport(runID, results)
	logger.Info("batch check finished",
		zap.Int("analysed", report.Analysed),
		zap.Int("failing", report.Failing),
		zap.Int("ok", report.OK),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report, nil
}

// checkRecord evaluates one record.
func (s *Service) checkRecord(logger *zap.Logger, rec *types.Record) RecordResult {
	start := time.Now()
	failures := rules.Failures(s.engine.Check(rec))
	elapsed := time.Since(start)

	result := RecordResult{
		PPN:    rec.PPN,
		Family: rec.Family,
		Title:  rec.Title,
		Author: rec.Author,
		ISBN:   rec.ISBN,
	}
	var failed map[int]string
	if len(failures) > 0 {
		failed = make(map[int]string, len(failures))
	}
	for _, v := range failures {
		result.Failures = append(result.Failures, newFailure(v))
		failed[v.RuleID] = v.Priority.String()
		logger.Debug("rule failed",
			zap.String("ppn", rec.PPN),
			zap.Int("rule_id", v.RuleID),
			zap.String("priority", v.Priority.String()),
		)
	}

	if s.metrics != nil {
		s.metrics.ObserveRecord(elapsed, failed)
	}
	return result
}
