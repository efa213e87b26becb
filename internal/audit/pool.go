// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package audit

import (
	"context"
	"sync"

	"policy-audit/internal/compare"
	"policy-audit/internal/reason"
	"policy-audit/internal/rules"
)

// checkJob is one rule/record pair to evaluate.
type checkJob struct {
	index  int
	rule   rules.ExtractedRule
	record NamedRecord
}

// checkResult carries both layers' findings for one pair. index preserves
// submission order so violation IDs stay deterministic regardless of
// worker scheduling.
type checkResult struct {
	index      int
	rule       rules.ExtractedRule
	record     NamedRecord
	comparison compare.Result
	verdict    reason.Verdict
}

// checkPool fans the rule×record product out over a fixed set of
// workers. The comparator and engine are pure, so workers share them
// without locking.
type checkPool struct {
	workers    int
	comparator *compare.Comparator
	engine     *reason.Engine

	jobs    chan checkJob
	results chan checkResult
	wg      sync.WaitGroup
}

func newCheckPool(workers int, comparator *compare.Comparator, engine *reason.Engine) *checkPool {
	if workers < 1 {
		workers = 1
	}
	return &checkPool{
		workers:    workers,
		comparator: comparator,
		engine:     engine,
		jobs:       make(chan checkJob, workers*2),
		results:    make(chan checkResult, workers*2),
	}
}

// start launches the workers and closes the results channel once all
// jobs are drained.
func (p *checkPool) start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}

// submit queues one job unless the context is already gone.
func (p *checkPool) submit(ctx context.Context, job checkJob) {
	select {
	case p.jobs <- job:
	case <-ctx.Done():
	}
}

func (p *checkPool) close() {
	close(p.jobs)
}

func (p *checkPool) worker(ctx context.Context) {
	defer p.wg.Done()
	for job := range p.jobs {
		result := checkResult{
			index:      job.index,
			rule:       job.rule,
			record:     job.record,
			comparison: p.comparator.Compare(job.rule, job.record.Record),
			verdict:    p.engine.Evaluate(job.rule, job.record.Record),
		}
		select {
		case p.results <- result:
		case <-ctx.Done():
			return
		}
	}
}
