// rosterctl drives one solve end-to-end from the command line: read a
// team CSV, run the engine, write a schedule CSV, and map the outcome
// onto the exit statuses of spec.md §6.4.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/paiban/rotaengine/internal/config"
	"github.com/paiban/rotaengine/pkg/boundary"
	"github.com/paiban/rotaengine/pkg/engine"
	"github.com/paiban/rotaengine/pkg/engine/constraint"
	"github.com/paiban/rotaengine/pkg/logger"
	"github.com/paiban/rotaengine/pkg/model"
	"github.com/paiban/rotaengine/pkg/store"
)

// Build information, injected via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes, spec.md §6.4. exitGeneric covers the "error" status §6.1
// allows but §6.4 never assigns a code to (every attempt aborted on a
// SolverError rather than proving infeasibility or timing out;
// Cancelled is classified as a timeout); rosterctl folds it into the
// input-error code rather than inventing a sixth status.
const (
	exitOK          = 0
	exitSoftRelaxed = 2
	exitInfeasible  = 3
	exitTimeout     = 4
	exitInputError  = 5
	exitGeneric     = exitInputError
)

// flags bound to a solveCmd invocation.
type flags struct {
	teamPath            string
	outPath             string
	weeks               int
	tries               int
	seed                uint64
	timeoutSeconds      int
	restAfterNight      bool
	edoEnabled          bool
	edoFixedDay         string
	fairnessCohorts     string
	nightFairness       string
	nightFairnessMode   string
	eveningFairness     string
	interTeamNightShare string
	maxNightsSequence   uint32
	postRebalanceSteps  uint32
	imposeTargets       bool
	solveWeekend        bool
	persist             bool
	logLevel            string
}

func main() {
	exitCode := exitOK
	root := newRootCmd(&exitCode)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rosterctl: %v\n", err)
		if exitCode == exitOK {
			exitCode = exitGeneric
		}
	}
	os.Exit(exitCode)
}

func newRootCmd(exitCode *int) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:     "rosterctl",
		Short:   "Solve and manage cyclic operating-theatre rotation schedules",
		Version: fmt.Sprintf("%s (build %s, commit %s)", Version, BuildTime, GitCommit),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := solve(cmd.Context(), f)
			*exitCode = code
			return err
		},
	}

	fs := root.Flags()
	fs.StringVar(&f.teamPath, "team", "", "path to the team CSV (spec.md §6.2)")
	fs.StringVar(&f.outPath, "out", "", "path to write the solved schedule CSV (default: stdout)")
	fs.IntVar(&f.weeks, "weeks", 4, "horizon length in weeks (1..24)")
	fs.IntVar(&f.tries, "tries", 8, "number of restart attempts")
	fs.Uint64Var(&f.seed, "seed", 0, "base seed (0 draws from process entropy)")
	fs.IntVar(&f.timeoutSeconds, "timeout", 30, "time budget per restart attempt in seconds")
	fs.BoolVar(&f.restAfterNight, "rest-after-night", true, "require a rest day after a night shift (H3)")
	fs.BoolVar(&f.edoEnabled, "edo", false, "enable EDO day planning (C3)")
	fs.StringVar(&f.edoFixedDay, "edo-fixed-day", "", "global EDO fixed day override: Mon..Fri")
	fs.StringVar(&f.fairnessCohorts, "fairness-cohorts", "none", "fairness cohort mode: none|by_workdays|by_team")
	fs.StringVar(&f.nightFairness, "night-fairness", "off", "night spread scope: off|global|cohort")
	fs.StringVar(&f.nightFairnessMode, "night-fairness-mode", "count", "night spread mode: count|rate")
	fs.StringVar(&f.eveningFairness, "evening-fairness", "off", "evening spread scope: off|global|cohort")
	fs.StringVar(&f.interTeamNightShare, "inter-team-night-share", "off", "cross-team night share term: off|proportional|global")
	fs.Uint32Var(&f.maxNightsSequence, "max-nights-sequence", 0, "max consecutive night shifts per person (0 = unbounded)")
	fs.Uint32Var(&f.postRebalanceSteps, "post-rebalance-steps", 50, "post-solve rebalance swap budget (0 disables)")
	fs.BoolVar(&f.imposeTargets, "impose-targets", false, "elevate staffing deficits from soft to hard")
	fs.BoolVar(&f.solveWeekend, "weekend", false, "also run the independent weekend solver (C8)")
	fs.BoolVar(&f.persist, "persist", false, "save the result to the result store (requires DB_* env vars)")
	fs.StringVar(&f.logLevel, "log-level", "info", "log level: debug|info|warn|error")

	root.SilenceUsage = true
	return root
}

func solve(parentCtx context.Context, f *flags) (int, error) {
	logger.Init(logger.Config{Level: f.logLevel, Format: "console", Output: "stderr"})
	log := logger.Get()

	if f.teamPath == "" {
		return exitInputError, fmt.Errorf("--team is required")
	}

	cfg, err := buildSolveConfig(f)
	if err != nil {
		return exitInputError, err
	}

	teamFile, err := os.Open(f.teamPath)
	if err != nil {
		return exitInputError, fmt.Errorf("opening team CSV: %w", err)
	}
	defer teamFile.Close()

	team, err := boundary.ReadTeam(teamFile)
	if err != nil {
		return exitInputError, fmt.Errorf("reading team CSV: %w", err)
	}

	ctx, cancel := signalContext(parentCtx)
	defer cancel()

	log.Info().Str("team_file", f.teamPath).Int("people", len(team.People())).Int("weeks", f.weeks).Msg("starting solve")

	result, err := engine.Solve(ctx, team, cfg)
	if err != nil {
		return exitCodeForStatus(result.Status), err
	}

	if result.Schedule != nil {
		if err := writeSchedule(f.outPath, result.Schedule); err != nil {
			return exitGeneric, fmt.Errorf("writing schedule: %w", err)
		}
	}

	if f.persist && result.Schedule != nil {
		if err := persistResult(ctx, result); err != nil {
			return exitGeneric, fmt.Errorf("persisting result: %w", err)
		}
	}

	log.Info().
		Str("status", result.Status.String()).
		Float64("score", result.Score).
		Uint64("seed_used", result.SeedUsed).
		Uint32("vacant_slots", result.Diagnostics.VacantSlots).
		Msg("solve complete")

	return exitCodeForStatus(result.Status), nil
}

func buildSolveConfig(f *flags) (engine.SolveConfig, error) {
	fairnessCohortsVal, err := parseCohortMode(f.fairnessCohorts)
	if err != nil {
		return engine.SolveConfig{}, err
	}
	nightScope, err := parseFairnessScope("night-fairness", f.nightFairness)
	if err != nil {
		return engine.SolveConfig{}, err
	}
	eveningScope, err := parseFairnessScope("evening-fairness", f.eveningFairness)
	if err != nil {
		return engine.SolveConfig{}, err
	}
	nightMode, err := parseFairnessMode(f.nightFairnessMode)
	if err != nil {
		return engine.SolveConfig{}, err
	}
	interTeamMode, err := parseInterTeamShareMode(f.interTeamNightShare)
	if err != nil {
		return engine.SolveConfig{}, err
	}
	var fixedDay *model.Weekday
	if f.edoFixedDay != "" {
		day, err := parseWeekday(f.edoFixedDay)
		if err != nil {
			return engine.SolveConfig{}, err
		}
		fixedDay = &day
	}

	return engine.SolveConfig{
		Weeks:               f.weeks,
		Tries:               f.tries,
		Seed:                f.seed,
		TimeLimitSeconds:    f.timeoutSeconds,
		RestAfterNight:      f.restAfterNight,
		EdoEnabled:          f.edoEnabled,
		EdoFixedDayGlobal:   fixedDay,
		FairnessCohorts:     fairnessCohortsVal,
		NightFairness:       nightScope,
		NightFairnessMode:   nightMode,
		EveningFairness:     eveningScope,
		InterTeamNightShare: interTeamMode,
		MaxNightsSequence:   f.maxNightsSequence,
		PostRebalanceSteps:  f.postRebalanceSteps,
		ImposeTargets:       f.imposeTargets,
		SolveWeekend:        f.solveWeekend,
	}, nil
}

func writeSchedule(outPath string, schedule *model.Schedule) error {
	if outPath == "" {
		return boundary.WriteSchedule(os.Stdout, schedule)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return boundary.WriteSchedule(f, schedule)
}

// persistResult loads DB_* configuration from the environment and saves
// the result to the schedule_runs table. Kept behind --persist since the
// engine itself never requires a database (C11 is opt-in).
func persistResult(ctx context.Context, result engine.SolveResult) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}

	id, err := store.SaveRun(ctx, db, result.Schedule, result.Diagnostics, result.Score)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	logger.Get().Info().Str("run_id", id.String()).Msg("persisted schedule run")
	return nil
}

func exitCodeForStatus(status engine.Status) int {
	switch status {
	case engine.StatusOptimal:
		return exitOK
	case engine.StatusFeasible:
		return exitSoftRelaxed
	case engine.StatusInfeasible:
		return exitInfeasible
	case engine.StatusTimeout:
		return exitTimeout
	default:
		return exitGeneric
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func parseCohortMode(s string) (model.CohortMode, error) {
	switch s {
	case "none", "":
		return model.CohortNone, nil
	case "by_workdays":
		return model.CohortByWorkdays, nil
	case "by_team":
		return model.CohortByTeam, nil
	default:
		return 0, fmt.Errorf("invalid --fairness-cohorts %q", s)
	}
}

func parseFairnessScope(flagName, s string) (constraint.FairnessScope, error) {
	switch s {
	case "off", "":
		return constraint.FairnessOff, nil
	case "global":
		return constraint.FairnessGlobal, nil
	case "cohort":
		return constraint.FairnessCohort, nil
	default:
		return 0, fmt.Errorf("invalid --%s %q", flagName, s)
	}
}

func parseFairnessMode(s string) (constraint.FairnessMode, error) {
	switch s {
	case "count", "":
		return constraint.FairnessByCount, nil
	case "rate":
		return constraint.FairnessByRate, nil
	default:
		return 0, fmt.Errorf("invalid --night-fairness-mode %q", s)
	}
}

func parseInterTeamShareMode(s string) (constraint.InterTeamShareMode, error) {
	switch s {
	case "off", "":
		return constraint.InterTeamShareOff, nil
	case "proportional":
		return constraint.InterTeamShareProportional, nil
	case "global":
		return constraint.InterTeamShareGlobal, nil
	default:
		return 0, fmt.Errorf("invalid --inter-team-night-share %q", s)
	}
}

func parseWeekday(s string) (model.Weekday, error) {
	for _, d := range model.Weekdays {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid --edo-fixed-day %q (want Mon..Fri)", s)
}
