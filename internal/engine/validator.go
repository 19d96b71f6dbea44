package engine

// reasonBucket names the six hard-constraint failure counters of §4.4.
type reasonBucket int

const (
	reasonLevelMismatch reasonBucket = iota
	reasonAvailability
	reasonClassBusy
	reasonTeacherBusy
	reasonLocationBusy
	reasonBlockBoundary
)

func (g *grids) record(reasons *InvalidReasons, r reasonBucket) {
	switch r {
	case reasonLevelMismatch:
		reasons.LevelMismatch++
	case reasonAvailability:
		reasons.Availability++
	case reasonClassBusy:
		reasons.ClassBusy++
	case reasonTeacherBusy:
		reasons.TeacherBusy++
	case reasonLocationBusy:
		reasons.LocationBusy++
	case reasonBlockBoundary:
		reasons.BlockBoundary++
	}
}

// runLimit resolves the maximum allowed contiguous same-subject run for
// a subject on a given classroom level, per §4.4 of spec.md.
func runLimit(subject *Subject, classroom *Classroom, globalMaxConsec int) int {
	if subject.MaxConsec != nil {
		return *subject.MaxConsec
	}
	if subject.TripleBlockHours >= 3 {
		return 3
	}
	if subject.PairedBlockHours >= 2 {
		if globalMaxConsec > 2 {
			return globalMaxConsec
		}
		return 2
	}
	if classroom.Level == LevelLower {
		return 2
	}
	return 3
}

// validator runs the §4.4 hard-constraint checks against the current
// grids.
type validator struct {
	idx             *domainIndex
	grids           *grids
	schoolHours     SchoolHours
	globalMaxConsec int
	reasons         InvalidReasons
}

func newValidator(idx *domainIndex, g *grids, schoolHours SchoolHours, globalMaxConsec int) *validator {
	return &validator{idx: idx, grids: g, schoolHours: schoolHours, globalMaxConsec: globalMaxConsec}
}

// isValid reports whether placing subject for teachers in classroom at
// day/hour across span hours satisfies every hard constraint.
func (v *validator) isValid(classroom *Classroom, subject *Subject, teachers []string, day, hour, span int) bool {
	dailyLimit := v.schoolHours.DailyLimit(classroom.Level, day)
	start, end := classroom.Window(dailyLimit)
	if hour < start || hour+span > end {
		v.record(&v.reasons, reasonBlockBoundary)
		return false
	}

	if len(teachers) == 0 {
		v.record(&v.reasons, reasonLevelMismatch)
		return false
	}
	for _, tid := range teachers {
		t := v.idx.teacherByID[tid]
		if t == nil || !t.EligibleFor(classroom.Level) {
			v.record(&v.reasons, reasonLevelMismatch)
			return false
		}
	}

	classGrid := v.grids.schedule[classroom.ID]
	fixedGrid := v.grids.fixedMask[classroom.ID]
	for h := hour; h < hour+span; h++ {
		if classGrid[day][h] != nil || fixedGrid[day][h] {
			v.record(&v.reasons, reasonClassBusy)
			return false
		}
	}

	for _, tid := range teachers {
		t := v.idx.teacherByID[tid]
		occ := v.grids.teacherOccupied[tid]
		for h := hour; h < hour+span; h++ {
			if !t.Available(day, h) {
				v.record(&v.reasons, reasonAvailability)
				return false
			}
			if occ[day][h] {
				v.record(&v.reasons, reasonTeacherBusy)
				return false
			}
		}
	}

	if subject.LocationID != "" {
		locOcc := v.grids.locationOccupied[subject.LocationID]
		if locOcc == nil {
			v.record(&v.reasons, reasonLocationBusy)
			return false
		}
		for h := hour; h < hour+span; h++ {
			if locOcc[day][h] {
				v.record(&v.reasons, reasonLocationBusy)
				return false
			}
		}
	}

	limit := runLimit(subject, classroom, v.globalMaxConsec)
	left := v.sameSubjectRun(classGrid, subject.ID, day, hour-1, -1, start)
	right := v.sameSubjectRun(classGrid, subject.ID, day, hour+span, 1, end)
	if left+span+right > limit {
		v.record(&v.reasons, reasonBlockBoundary)
		return false
	}

	return true
}

// sameSubjectRun counts consecutive cells from `from`, stepping by
// `step`, that hold an Assignment for the given subject. `edge` bounds
// the walk: stepping left it is the lowest hour counted, stepping right
// it is the first hour not counted.
func (v *validator) sameSubjectRun(classGrid [][]*Assignment, subjectID string, day, from, step, edge int) int {
	count := 0
	for h := from; ; h += step {
		if step > 0 && h >= edge {
			break
		}
		if step < 0 && h < edge {
			break
		}
		a := classGrid[day][h]
		if a == nil || a.SubjectID != subjectID {
			break
		}
		count++
	}
	return count
}
