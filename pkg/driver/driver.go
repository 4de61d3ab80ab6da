// Package driver runs the multi-restart attempt pool of spec.md §4.7 (C7):
// N independent seeded attempts of (C4 solve -> C9 rebalance -> C5
// validate -> C6 score), executed with bounded concurrency and a shared
// deadline, picking the best outcome. Grounded on the teacher's
// IslandOptimizer/ParallelOptimizer (pkg/scheduler/optimizer/parallel.go):
// workers communicate only by returning typed results through a join, no
// shared mutable state, cancellation by deadline polling.
package driver

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/engine/solver"
	"github.com/paiban/rotaengine/pkg/errors"
	"github.com/paiban/rotaengine/pkg/logger"
	"github.com/paiban/rotaengine/pkg/model"
	"github.com/paiban/rotaengine/pkg/rebalance"
	"github.com/paiban/rotaengine/pkg/scorer"
	"github.com/paiban/rotaengine/pkg/validator"
)

// Config controls the multi-restart pool.
type Config struct {
	Tries             int
	BaseSeed          uint64
	TimeLimit         time.Duration // per-attempt CP time budget
	PostRebalanceSteps uint32
	Solver            solver.Config
}

// Attempt is one completed (or failed) restart.
type Attempt struct {
	Seed        uint64
	Schedule    *model.Schedule
	Diagnostics validator.Diagnostics
	Score       float64
	Err         error
}

// Outcome is the driver's final selection.
type Outcome struct {
	Best     *Attempt
	Attempts []Attempt
}

// Run launches min(tries, cpu_count) concurrent attempts and returns the
// lowest-score success, or a typed error if every attempt failed (spec.md
// §4.7, §7 propagation policy: error only when *all* attempts failed).
func Run(ctx context.Context, team *model.Team, horizon model.Horizon, staffing *model.StaffingPlan, edo *model.EdoPlan, opts constraint.Options, cfg Config) (Outcome, error) {
	if cfg.Tries < 1 {
		cfg.Tries = 1
	}

	degree := cfg.Tries
	if cpu := runtime.NumCPU(); degree > cpu {
		degree = cpu
	}

	sem := make(chan struct{}, degree)
	results := make([]Attempt, cfg.Tries)
	var wg sync.WaitGroup
	log := logger.NewSolverLogger()

	for i := 0; i < cfg.Tries; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			seed := cfg.BaseSeed + uint64(i)
			attemptCtx, cancel := context.WithTimeout(ctx, cfg.TimeLimit+10*time.Second)
			defer cancel()

			results[i] = runAttempt(attemptCtx, team, horizon, staffing, edo, opts, seed, cfg)
		}(i)
	}
	wg.Wait()

	best, bestErr := selectBest(results)
	if best == nil {
		return Outcome{Attempts: results}, bestErr
	}

	log.DriverSelected(best.Seed, cfg.Tries, best.Score)
	return Outcome{Best: best, Attempts: results}, nil
}

func runAttempt(ctx context.Context, team *model.Team, horizon model.Horizon, staffing *model.StaffingPlan, edo *model.EdoPlan, opts constraint.Options, seed uint64, cfg Config) Attempt {
	solverCfg := cfg.Solver
	if solverCfg.MaxTime == 0 {
		solverCfg = solver.DefaultConfig()
	}
	solverCfg.MaxTime = cfg.TimeLimit

	result, err := solver.Solve(ctx, team, horizon, staffing, edo, opts, seed, solverCfg)
	if err != nil {
		if ctx.Err() != nil {
			return Attempt{Seed: seed, Err: errors.New(errors.CodeTimeout, "attempt exceeded its time budget").WithCause(err)}
		}
		return Attempt{Seed: seed, Err: errors.SolverError(err.Error())}
	}

	schedule := result.Schedule
	if cfg.PostRebalanceSteps > 0 {
		schedule = rebalance.Rebalance(team, horizon, opts, schedule, staffing, edo, cfg.PostRebalanceSteps)
	}

	diagnostics := validator.Validate(team, horizon, opts, schedule, staffing, edo)
	score := scorer.Score(diagnostics)

	return Attempt{Seed: seed, Schedule: schedule, Diagnostics: diagnostics, Score: score}
}

// selectBest picks the lowest-score successful attempt, tie-broken by
// fewer vacant slots then lower seed (spec.md §4.7). If every attempt
// failed it returns nil and an aggregated error.
func selectBest(attempts []Attempt) (*Attempt, error) {
	var best *Attempt
	for i := range attempts {
		a := &attempts[i]
		if a.Err != nil {
			continue
		}
		if best == nil || better(*a, *best) {
			best = a
		}
	}
	if best != nil {
		return best, nil
	}
	return nil, aggregateErrors(attempts)
}

func better(a, b Attempt) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.Diagnostics.VacantSlots != b.Diagnostics.VacantSlots {
		return a.Diagnostics.VacantSlots < b.Diagnostics.VacantSlots
	}
	return a.Seed < b.Seed
}

// aggregateErrors classifies the failure mix per spec.md §7: all
// InputError, all Infeasible, or mixed.
func aggregateErrors(attempts []Attempt) error {
	codes := make(map[errors.Code]int)
	for _, a := range attempts {
		codes[errors.GetCode(a.Err)]++
	}
	if len(codes) == 1 {
		for code := range codes {
			return errors.New(code, "every solve attempt failed")
		}
	}
	return errors.New(errors.CodeSolverError, "every solve attempt failed with mixed causes")
}
