// Package solver builds and repairs a single weekday schedule for one
// seed — the Pair CP model of spec.md §4.4 (C4). No CP/ILP solver library
// exists anywhere in the retrieved corpus, so the "solve" step is a
// constructive greedy assignment followed by simulated-annealing/tabu
// local-search repair, grounded on the teacher's optimizer package
// (pkg/scheduler/optimizer/local_search.go, neighbors.go) and generalized
// from per-employee shift reassignment to the pair-slot domain.
package solver

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/logger"
	"github.com/paiban/rotaengine/pkg/model"
)

// Config controls the construction + repair pass for one attempt.
type Config struct {
	MaxIterations    int
	MaxTime          time.Duration
	InitialTemp      float64
	CoolingRate      float64
	TabuSize         int
	NeighborhoodSize int
	StopOnPlateau    bool
	PlateauThreshold int
}

// DefaultConfig mirrors the teacher's DefaultOptConfig, retuned for the
// smaller move space of a single-team weekday schedule.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    2000,
		MaxTime:          30 * time.Second,
		InitialTemp:      50.0,
		CoolingRate:      0.995,
		TabuSize:         64,
		NeighborhoodSize: 24,
		StopOnPlateau:    true,
		PlateauThreshold: 200,
	}
}

// Result is one attempt's output: a candidate schedule plus the objective
// value the solver converged to (not yet the scorer's §4.6 score).
type Result struct {
	Schedule  *model.Schedule
	Objective float64
	Seed      uint64
}

// Solve runs one seeded attempt: greedy construction (CanAssign-gated)
// followed by SA/tabu repair, bounded by ctx's deadline and cfg.MaxTime.
func Solve(ctx context.Context, team *model.Team, horizon model.Horizon, staffing *model.StaffingPlan, edo *model.EdoPlan, opts constraint.Options, seed uint64, cfg Config) (Result, error) {
	rng := rand.New(rand.NewSource(int64(seed)))
	log := logger.NewSolverLogger()
	log.StartAttempt(seed, team.Len(), horizon.Weeks)
	start := time.Now()

	schedule := construct(team, horizon, staffing, edo, opts, rng)
	cctx := constraint.NewContext(team, horizon, opts, schedule)

	best := schedule.Clone()
	bestObjective := cctx.Evaluate(staffing, edo).Objective()

	current := schedule
	currentObjective := bestObjective
	temperature := cfg.InitialTemp
	tabu := newTabuList(cfg.TabuSize)
	noImprovement := 0

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			log.AttemptComplete(seed, time.Since(start), bestObjective)
			return Result{Schedule: best, Objective: bestObjective, Seed: seed}, ctx.Err()
		default:
		}
		if time.Since(start) > cfg.MaxTime {
			break
		}

		move, ok := randomMove(current, team, horizon, staffing, edo, opts, rng)
		if !ok {
			noImprovement++
			if cfg.StopOnPlateau && noImprovement >= cfg.PlateauThreshold {
				break
			}
			continue
		}

		candidate := apply(current, move)
		cctx.Reindex(candidate)
		candidateObjective := cctx.Evaluate(staffing, edo).Objective()

		accept := false
		delta := candidateObjective - currentObjective
		if delta < 0 {
			accept = true
		} else if !tabu.contains(move.key()) {
			if rng.Float64() < boltzmann(delta, temperature) {
				accept = true
			}
		}

		if accept {
			current = candidate
			currentObjective = candidateObjective
			tabu.add(move.key())

			if currentObjective < bestObjective {
				best = current.Clone()
				bestObjective = currentObjective
				noImprovement = 0
			} else {
				noImprovement++
			}
		} else {
			cctx.Reindex(current)
			noImprovement++
		}

		if cfg.StopOnPlateau && noImprovement >= cfg.PlateauThreshold {
			break
		}
		temperature *= cfg.CoolingRate
	}

	log.AttemptComplete(seed, time.Since(start), bestObjective)
	return Result{Schedule: best, Objective: bestObjective, Seed: seed}, nil
}

func boltzmann(delta, temperature float64) float64 {
	if delta <= 0 {
		return 1.0
	}
	if temperature <= 0 {
		return 0.0
	}
	return math.Exp(-delta / temperature)
}
