package engine

const maxHours = 16

// grids holds every mutable occupancy structure the solver mutates
// during an attempt: the per-classroom schedule, teacher/location
// occupancy bitmaps, the fixed-assignment mask, and daily lesson
// telemetry counters (§3, §4.2 of spec.md).
type grids struct {
	idx   *domainIndex
	hours int

	schedule          map[string][][]*Assignment
	teacherOccupied   map[string][][]bool
	locationOccupied  map[string][][]bool
	fixedMask         map[string][][]bool
	dailyLessonCounts map[string]*[5]int
}

// newGrids allocates zeroed grids sized by H = max daily hours across
// both levels, capped at maxHours, defaulting to 8.
func newGrids(idx *domainIndex, schoolHours SchoolHours) *grids {
	h := schoolHours.MaxDaily()
	if h <= 0 {
		h = 8
	}
	if h > maxHours {
		h = maxHours
	}

	g := &grids{
		idx:               idx,
		hours:             h,
		schedule:          make(map[string][][]*Assignment, len(idx.classroomOrder)),
		teacherOccupied:   make(map[string][][]bool, len(idx.teacherOrder)),
		locationOccupied:  make(map[string][][]bool, len(idx.locationOrder)),
		fixedMask:         make(map[string][][]bool, len(idx.classroomOrder)),
		dailyLessonCounts: make(map[string]*[5]int, len(idx.classroomOrder)),
	}
	for _, cid := range idx.classroomOrder {
		g.schedule[cid] = newAssignmentGrid(h)
		g.fixedMask[cid] = newBoolGrid(h)
		g.dailyLessonCounts[cid] = &[5]int{}
	}
	for _, tid := range idx.teacherOrder {
		g.teacherOccupied[tid] = newBoolGrid(h)
	}
	for _, lid := range idx.locationOrder {
		g.locationOccupied[lid] = newBoolGrid(h)
	}
	return g
}

func newAssignmentGrid(hours int) [][]*Assignment {
	grid := make([][]*Assignment, 5)
	for d := range grid {
		grid[d] = make([]*Assignment, hours)
	}
	return grid
}

func newBoolGrid(hours int) [][]bool {
	grid := make([][]bool, 5)
	for d := range grid {
		grid[d] = make([]bool, hours)
	}
	return grid
}

// reset clears every grid back to empty, then applies duties so that
// teacherOccupied reflects non-teaching obligations before any lesson is
// placed. Duties never occupy a classroom cell.
func (g *grids) reset(duties []Duty) {
	for _, cid := range g.idx.classroomOrder {
		g.schedule[cid] = newAssignmentGrid(g.hours)
		g.fixedMask[cid] = newBoolGrid(g.hours)
		g.dailyLessonCounts[cid] = &[5]int{}
	}
	for _, tid := range g.idx.teacherOrder {
		g.teacherOccupied[tid] = newBoolGrid(g.hours)
	}
	for _, lid := range g.idx.locationOrder {
		g.locationOccupied[lid] = newBoolGrid(g.hours)
	}
	for _, duty := range duties {
		if duty.Day < 0 || duty.Day >= 5 || duty.Hour < 0 || duty.Hour >= g.hours {
			continue
		}
		if occ, ok := g.teacherOccupied[duty.TeacherID]; ok {
			occ[duty.Day][duty.Hour] = true
		}
	}
}

func (g *grids) cell(classroomID string, day, hour int) *Assignment {
	return g.schedule[classroomID][day][hour]
}

func (g *grids) isFixed(classroomID string, day, hour int) bool {
	return g.fixedMask[classroomID][day][hour]
}

// snapshot is a deep copy of every grid, used by the metaheuristics and
// the outer driver to remember the best-so-far state and to roll back a
// rejected move cheaply relative to re-solving.
type snapshot struct {
	schedule          map[string][][]*Assignment
	teacherOccupied   map[string][][]bool
	locationOccupied  map[string][][]bool
	fixedMask         map[string][][]bool
	dailyLessonCounts map[string][5]int
}

func (g *grids) snapshot() *snapshot {
	s := &snapshot{
		schedule:          make(map[string][][]*Assignment, len(g.schedule)),
		teacherOccupied:   make(map[string][][]bool, len(g.teacherOccupied)),
		locationOccupied:  make(map[string][][]bool, len(g.locationOccupied)),
		fixedMask:         make(map[string][][]bool, len(g.fixedMask)),
		dailyLessonCounts: make(map[string][5]int, len(g.dailyLessonCounts)),
	}
	for cid, grid := range g.schedule {
		s.schedule[cid] = cloneAssignmentGrid(grid)
	}
	for tid, grid := range g.teacherOccupied {
		s.teacherOccupied[tid] = cloneBoolGrid(grid)
	}
	for lid, grid := range g.locationOccupied {
		s.locationOccupied[lid] = cloneBoolGrid(grid)
	}
	for cid, grid := range g.fixedMask {
		s.fixedMask[cid] = cloneBoolGrid(grid)
	}
	for cid, counts := range g.dailyLessonCounts {
		s.dailyLessonCounts[cid] = *counts
	}
	return s
}

// restore overwrites g's grids with a previously captured snapshot.
func (g *grids) restore(s *snapshot) {
	for cid, grid := range s.schedule {
		g.schedule[cid] = cloneAssignmentGrid(grid)
	}
	for tid, grid := range s.teacherOccupied {
		g.teacherOccupied[tid] = cloneBoolGrid(grid)
	}
	for lid, grid := range s.locationOccupied {
		g.locationOccupied[lid] = cloneBoolGrid(grid)
	}
	for cid, grid := range s.fixedMask {
		g.fixedMask[cid] = cloneBoolGrid(grid)
	}
	for cid, counts := range s.dailyLessonCounts {
		c := counts
		g.dailyLessonCounts[cid] = &c
	}
}

func cloneAssignmentGrid(grid [][]*Assignment) [][]*Assignment {
	out := make([][]*Assignment, len(grid))
	for d, row := range grid {
		out[d] = append([]*Assignment(nil), row...)
	}
	return out
}

func cloneBoolGrid(grid [][]bool) [][]bool {
	out := make([][]bool, len(grid))
	for d, row := range grid {
		out[d] = append([]bool(nil), row...)
	}
	return out
}
