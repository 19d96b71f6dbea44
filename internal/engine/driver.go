package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MetricsRecorder receives solver telemetry. Implementations must be
// nil-safe; the driver never checks before calling. enginemetrics.Recorder
// satisfies this interface without either package importing the other.
type MetricsRecorder interface {
	Attempt(time.Duration)
	Placements(int)
	Backtracks(int)
	DeadEnds(int)
	BestObjective(float64)
	FirstFeasible(time.Duration)
}

// Solve is the sole external entrypoint (§6 of spec.md): it validates
// the problem, then runs one or more restart attempts — seed, repair,
// compact, then polish with the configured metaheuristic — keeping the
// best schedule found within the time budget.
func Solve(problem Problem, options Options, metrics MetricsRecorder) (Result, error) {
	options = options.WithDefaults()
	if metrics == nil {
		metrics = noopMetrics{}
	}

	if err := ValidateProblem(&problem); err != nil {
		return Result{}, err
	}
	if err := ValidateOptions(&options); err != nil {
		return Result{}, err
	}

	idx := newDomainIndex(&problem)
	if err := preflight(idx, &problem, options.SchoolHours); err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	startedAt := time.Now()
	deadline := startedAt.Add(time.Duration(options.TimeLimitSeconds) * time.Second)

	rng := seedRNG(options)
	weights := objectiveWeights{
		globalMaxConsec: options.MaxConsecPerSubject,
		teacherSpread:   options.TeacherSpreadWeight,
		teacherEdge:     options.TeacherEdgeWeight,
	}

	stats := Stats{RunID: runID, StartedAt: startedAt.Unix()}
	hardest := make(map[string]int)
	seenNotes := make(map[string]struct{})
	addNote := func(n string) {
		if n == "" {
			return
		}
		if _, ok := seenNotes[n]; ok {
			return
		}
		seenNotes[n] = struct{}{}
		stats.Notes = append(stats.Notes, n)
	}
	repairCfg := defaultRepairConfig(options.AllowBlockRelaxation)

	var bestSchedule *Schedule
	var bestObjective float64
	var bestUnresolved = -1

	for attempt := 1; ; attempt++ {
		attemptStart := time.Now()
		if attempt > 1 && attemptStart.After(deadline) {
			stats.TimedOut = true
			break
		}

		g := newGrids(idx, options.SchoolHours)
		g.reset(problem.Duties)
		v := newValidator(idx, g, options.SchoolHours, options.MaxConsecPerSubject)

		fixed, expandNotes := expandFixedAssignments(idx, options.SchoolHours, problem.FixedAssignments)
		for _, n := range expandNotes {
			addNote(n)
		}

		consumed, failNote, ok := placeFixedAssignments(idx, g, v, fixed)
		if !ok {
			// Attempt-level infeasibility (§4.15): note it and move on
			// to the next restart attempt instead of aborting the
			// whole solve with a Go error.
			addNote(failNote)
			stats.Attempts++
			metrics.Attempt(time.Since(attemptStart))
			if !options.UseRestarts || options.DisableUseRestarts {
				break
			}
			continue
		}

		units := buildUnits(idx, consumed)
		rng.Shuffle(len(units), func(i, j int) { units[i], units[j] = units[j], units[i] })
		seeded := seed(idx, g, v, units, options.SeedRatio)

		rstats := newRepairStats()
		unresolved := repair(idx, g, v, rng, seeded.remaining, repairCfg, rstats)

		compact(idx, g, v)

		deadlineFn := func() bool { return time.Now().After(deadline) }
		switch options.Strategy {
		case StrategyTabu:
			tabuSearch(idx, g, v, rng, weights, options.TabuTenure, options.TabuIterations, deadlineFn)
		case StrategySA:
			simulatedAnnealing(idx, g, v, rng, weights, options.SAInitialTemp, options.SACooling, options.SAIterations, deadlineFn)
		case StrategyALNS:
			if !options.DisableLNS {
				adaptiveLNS(idx, g, v, rng, weights, repairCfg, options.ALNSIterations, deadlineFn, rstats)
			}
		case StrategyVNS:
			if !options.DisableLNS {
				variableNeighborhoodSearch(idx, g, v, rng, weights, options.VNSIterations, deadlineFn)
			}
		}

		// §4.14 step 5: optional post-metaheuristic LNS hops, sizes 20
		// and 25, run for every strategy unless disabled.
		if !options.DisableLNS {
			runLNSHop(idx, g, v, rng, weights, 20, repairCfg, rstats)
			runLNSHop(idx, g, v, rng, weights, 25, repairCfg, rstats)
		}

		stats.Attempts++
		stats.Placements += rstats.placements
		stats.Backtracks += rstats.backtracks
		stats.MRVDeadEnds += rstats.mrvDeadEnds
		for k, n := range rstats.hardestLessons {
			hardest[k] += n
		}
		stats.InvalidReasons.add(v.reasons)

		objective := score(idx, g, weights)
		metrics.Attempt(time.Since(attemptStart))
		metrics.Placements(rstats.placements)
		metrics.Backtracks(rstats.backtracks)
		metrics.DeadEnds(rstats.mrvDeadEnds)

		if len(unresolved) == 0 && stats.FirstSolutionAt == nil {
			now := time.Now()
			elapsed := now.Sub(startedAt)
			stats.FirstSolutionAt = int64Ptr(now.Unix())
			stats.FirstSolutionSeconds = elapsed.Seconds()
			metrics.FirstFeasible(elapsed)
		}

		better := bestUnresolved == -1 ||
			len(unresolved) < bestUnresolved ||
			(len(unresolved) == bestUnresolved && objective < bestObjective)
		if better {
			bestUnresolved = len(unresolved)
			bestObjective = objective
			bestSchedule = g.toSchedule()
			metrics.BestObjective(objective)
		}

		if options.StopAtFirstSolution && len(unresolved) == 0 {
			break
		}
		if !options.UseRestarts || options.DisableUseRestarts {
			break
		}
	}

	endedAt := time.Now()
	stats.EndedAt = endedAt.Unix()
	stats.ElapsedSeconds = endedAt.Sub(startedAt).Seconds()
	stats.BestObjective = bestObjective
	for key, failures := range hardest {
		stats.HardestLessons = append(stats.HardestLessons, HardestLessonStat{Key: key, Failures: failures})
	}
	sort.Slice(stats.HardestLessons, func(i, j int) bool {
		if stats.HardestLessons[i].Failures != stats.HardestLessons[j].Failures {
			return stats.HardestLessons[i].Failures > stats.HardestLessons[j].Failures
		}
		return stats.HardestLessons[i].Key < stats.HardestLessons[j].Key
	})
	if len(stats.HardestLessons) > 8 {
		stats.HardestLessons = stats.HardestLessons[:8]
	}

	return Result{Schedule: bestSchedule, Stats: stats}, nil
}

// noopMetrics is used when the caller doesn't wire a recorder.
type noopMetrics struct{}

func (noopMetrics) Attempt(time.Duration)       {}
func (noopMetrics) Placements(int)              {}
func (noopMetrics) Backtracks(int)              {}
func (noopMetrics) DeadEnds(int)                {}
func (noopMetrics) BestObjective(float64)       {}
func (noopMetrics) FirstFeasible(time.Duration) {}

func seedRNG(options Options) *lcg {
	if options.RandomSeed != nil {
		return newLCG(*options.RandomSeed)
	}
	return newUnseededLCG()
}

func int64Ptr(v int64) *int64 { return &v }

// toSchedule snapshots the current grids into an immutable Schedule for
// Result output.
func (g *grids) toSchedule() *Schedule {
	classrooms := make(map[string][][]*Assignment, len(g.schedule))
	for cid, grid := range g.schedule {
		classrooms[cid] = cloneAssignmentGrid(grid)
	}
	return &Schedule{Hours: g.hours, Classrooms: classrooms}
}
