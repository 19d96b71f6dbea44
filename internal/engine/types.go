// Package engine implements the weekly timetable constraint-satisfaction
// and local-search solver: it assigns class/day/hour lesson hours to
// teachers and optional locations, honoring hard scheduling constraints
// and optimizing soft quality metrics.
package engine

import "encoding/json"

// Level is a classroom/teacher eligibility tier.
type Level string

const (
	LevelLower Level = "lower"
	LevelUpper Level = "upper"
)

// SessionMode restricts which half (or all) of the daily window a
// classroom may be scheduled in.
type SessionMode string

const (
	SessionFull      SessionMode = "full"
	SessionMorning   SessionMode = "morning"
	SessionAfternoon SessionMode = "afternoon"
)

// Teacher is a schedulable staff member.
type Teacher struct {
	ID              string   `json:"id" validate:"required"`
	Name            string   `json:"name"`
	Branches        []string `json:"branches"`
	Availability    [5][]bool `json:"availability" validate:"required,len=5"`
	LowerSecondary  bool     `json:"lowerSecondary"`
	UpperSecondary  bool     `json:"upperSecondary"`
}

// EligibleFor reports whether the teacher's level flags match a classroom.
func (t *Teacher) EligibleFor(level Level) bool {
	if level == LevelLower {
		return t.LowerSecondary
	}
	return t.UpperSecondary
}

// Available reports whether the teacher can work day/hour.
func (t *Teacher) Available(day, hour int) bool {
	if day < 0 || day >= 5 {
		return false
	}
	row := t.Availability[day]
	if hour < 0 || hour >= len(row) {
		return false
	}
	return row[hour]
}

// Classroom is a group of students taught together.
type Classroom struct {
	ID                string      `json:"id" validate:"required"`
	Name              string      `json:"name"`
	Level             Level       `json:"level" validate:"required,oneof=lower upper"`
	Group             string      `json:"group"`
	HomeroomTeacherID string      `json:"homeroomTeacherId,omitempty"`
	SessionMode       SessionMode `json:"sessionMode" validate:"required,oneof=full morning afternoon"`
}

// Window returns the [start,end) hour range this classroom may be
// scheduled in on any day, given that day's hour count.
func (c *Classroom) Window(dailyLimit int) (start, end int) {
	switch c.SessionMode {
	case SessionMorning:
		return 0, dailyLimit / 2
	case SessionAfternoon:
		return dailyLimit / 2, dailyLimit
	default:
		return 0, dailyLimit
	}
}

// Location is a physical or virtual room a lesson may require.
type Location struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// Subject is a weekly curriculum item taught to one or more classrooms.
type Subject struct {
	ID                string                       `json:"id" validate:"required"`
	Name              string                       `json:"name"`
	WeeklyHours       int                          `json:"weeklyHours" validate:"min=0"`
	PairedBlockHours  int                          `json:"pairedBlockHours" validate:"min=0"`
	TripleBlockHours  int                          `json:"tripleBlockHours" validate:"min=0"`
	MaxConsec         *int                         `json:"maxConsec,omitempty"`
	LocationID        string                       `json:"locationId,omitempty"`
	RequiredTeachers  int                          `json:"requiredTeachers" validate:"omitempty,min=1"`
	ClassroomIDs      []string                     `json:"classroomIds"`
	PinnedTeacherIDs  map[string]TeacherIDSet      `json:"pinnedTeacherIds,omitempty"`
}

// TeacherIDSet decodes either the current array-of-ids wire shape or a
// legacy single scalar teacherId, normalizing both to a slice (§9 of
// spec.md: "an implementation must treat these equivalently on input but
// emit only the array form"). It always marshals back out as a JSON
// array.
type TeacherIDSet []string

// UnmarshalJSON accepts a JSON string, a JSON array of strings, or null.
func (t *TeacherIDSet) UnmarshalJSON(data []byte) error {
	trimmed := trimJSONSpace(data)
	if string(trimmed) == "null" {
		*t = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var scalar string
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return err
		}
		*t = TeacherIDSet{scalar}
		return nil
	}
	var list []string
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return err
	}
	*t = TeacherIDSet(list)
	return nil
}

func trimJSONSpace(data []byte) []byte {
	start, end := 0, len(data)
	for start < end && isJSONSpace(data[start]) {
		start++
	}
	for end > start && isJSONSpace(data[end-1]) {
		end--
	}
	return data[start:end]
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// RequiredTeacherCount returns the effective required-teacher count.
func (s *Subject) RequiredTeacherCount() int {
	if s.RequiredTeachers <= 0 {
		return 1
	}
	return s.RequiredTeachers
}

// FixedAssignment pins a subject into one classroom/day/hour before the
// unit generator runs. Hour == -1 means "every hour of the classroom's
// session window that day" (see the Open Question resolution in
// DESIGN.md).
type FixedAssignment struct {
	ClassroomID string `json:"classroomId" validate:"required"`
	SubjectID   string `json:"subjectId" validate:"required"`
	Day         int    `json:"day" validate:"min=0,max=4"`
	Hour        int    `json:"hour" validate:"min=-1"`
}

// LessonGroup is a multi-classroom lesson (e.g. an elective) taught to
// several classrooms at the same time by distinct teachers.
type LessonGroup struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name"`
	SubjectID    string   `json:"subjectId" validate:"required"`
	ClassroomIDs []string `json:"classroomIds" validate:"required,min=2"`
	WeeklyHours  int      `json:"weeklyHours" validate:"min=0"`
	IsBlock      bool     `json:"isBlock"`
}

// Duty is a non-teaching obligation that still occupies a teacher.
type Duty struct {
	ID        string `json:"id"`
	TeacherID string `json:"teacherId" validate:"required"`
	Name      string `json:"name"`
	Day       int    `json:"day" validate:"min=0,max=4"`
	Hour      int    `json:"hour" validate:"min=0"`
}

// SchoolHours gives the daily hour count (0..4 = Mon..Fri) per level.
type SchoolHours struct {
	Lower [5]int `json:"lower"`
	Upper [5]int `json:"upper"`
}

// MaxDaily returns the largest configured daily hour count, used to size
// the occupancy grids.
func (h SchoolHours) MaxDaily() int {
	max := 0
	for _, v := range h.Lower {
		if v > max {
			max = v
		}
	}
	for _, v := range h.Upper {
		if v > max {
			max = v
		}
	}
	return max
}

// DailyLimit returns the hour count for a level on a given day.
func (h SchoolHours) DailyLimit(level Level, day int) int {
	if day < 0 || day >= 5 {
		return 0
	}
	if level == LevelLower {
		return h.Lower[day]
	}
	return h.Upper[day]
}

// Assignment is a scheduled lesson occupying one or more contiguous
// cells. Multi-hour blocks share the SAME Assignment pointer across
// consecutive cells; span detection relies on that identity equality
// (see §9 of spec.md).
type Assignment struct {
	SubjectID   string   `json:"subjectId"`
	TeacherIDs  []string `json:"teacherIds"`
	ClassroomID string   `json:"classroomId"`
	LocationID  string   `json:"locationId,omitempty"`
}

// Problem bundles every input entity for a single solve.
type Problem struct {
	Teachers         []Teacher         `json:"teachers" validate:"required,dive"`
	Classrooms       []Classroom       `json:"classrooms" validate:"required,dive"`
	Locations        []Location        `json:"locations" validate:"dive"`
	Subjects         []Subject         `json:"subjects" validate:"required,dive"`
	FixedAssignments []FixedAssignment `json:"fixedAssignments" validate:"dive"`
	LessonGroups     []LessonGroup     `json:"lessonGroups" validate:"dive"`
	Duties           []Duty            `json:"duties" validate:"dive"`
}

// Strategy selects which metaheuristic polishes a feasible seed.
type Strategy string

const (
	StrategyRepair Strategy = "repair"
	StrategyTabu   Strategy = "tabu"
	StrategySA     Strategy = "sa"
	StrategyALNS   Strategy = "alns"
	StrategyVNS    Strategy = "vns"
)

// Options governs a single Solve invocation. Zero-value Options are
// filled in with defaults by WithDefaults.
type Options struct {
	SchoolHours          SchoolHours `json:"schoolHours"`
	TimeLimitSeconds     int         `json:"timeLimitSeconds" validate:"omitempty,min=1"`
	Strategy             Strategy    `json:"strategy" validate:"omitempty,oneof=repair tabu sa alns vns"`
	MaxConsecPerSubject  int         `json:"maxConsecPerSubject"`
	TabuTenure           int         `json:"tabuTenure"`
	TabuIterations       int         `json:"tabuIterations"`
	SeedRatio            float64     `json:"seedRatio" validate:"omitempty,gt=0,lte=0.5"`
	UseRestarts          bool        `json:"useRestarts"`
	DisableUseRestarts   bool        `json:"-"`
	RandomSeed           *uint64     `json:"randomSeed,omitempty"`
	DisableLNS           bool        `json:"disableLNS"`
	StopAtFirstSolution  bool        `json:"stopAtFirstSolution"`
	AllowBlockRelaxation bool        `json:"allowBlockRelaxation"`
	TeacherSpreadWeight  float64     `json:"teacherSpreadWeight"`
	TeacherEdgeWeight    float64     `json:"teacherEdgeWeight"`
	SAInitialTemp        float64     `json:"saInitialTemp"`
	SACooling            float64     `json:"saCooling"`
	SAIterations         int         `json:"saIterations"`
	ALNSIterations       int         `json:"alnsIterations"`
	VNSIterations        int         `json:"vnsIterations"`
}

// WithDefaults returns a copy of o with every unset field replaced by its
// spec-mandated default.
func (o Options) WithDefaults() Options {
	if o.SchoolHours.MaxDaily() == 0 {
		o.SchoolHours = SchoolHours{Lower: [5]int{8, 8, 8, 8, 8}, Upper: [5]int{8, 8, 8, 8, 8}}
	}
	if o.TimeLimitSeconds <= 0 {
		o.TimeLimitSeconds = 60
	}
	if o.Strategy == "" {
		o.Strategy = StrategyRepair
	}
	if o.MaxConsecPerSubject <= 0 {
		o.MaxConsecPerSubject = 3
	}
	if o.TabuTenure <= 0 {
		o.TabuTenure = 25
	}
	if o.TabuIterations <= 0 {
		o.TabuIterations = 800
	}
	if o.SeedRatio <= 0 {
		o.SeedRatio = 0.15
	}
	if o.SAInitialTemp <= 0 {
		o.SAInitialTemp = 1.0
	}
	if o.SACooling <= 0 {
		o.SACooling = 0.995
	}
	if o.SAIterations <= 0 {
		o.SAIterations = 3000
	}
	if o.ALNSIterations <= 0 {
		o.ALNSIterations = 300
	}
	if o.VNSIterations <= 0 {
		o.VNSIterations = 300
	}
	if o.TeacherSpreadWeight == 0 {
		o.TeacherSpreadWeight = 1
	}
	if o.TeacherEdgeWeight == 0 {
		o.TeacherEdgeWeight = 1
	}
	return o
}

// Schedule is the per-classroom day x hour matrix of assignments.
type Schedule struct {
	Hours      int                        `json:"hours"`
	Classrooms map[string][][]*Assignment `json:"classrooms"`
}

// MarshalJSON renders a Schedule with a deterministic classroom key order
// handled by the default map encoder (Go sorts map[string] keys on
// encode), so no custom ordering logic is needed here.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	type alias Schedule
	return json.Marshal((*alias)(s))
}

// InvalidReasons is the fixed §4.4 reason-bucket histogram.
type InvalidReasons struct {
	LevelMismatch int `json:"levelMismatch"`
	Availability  int `json:"availability"`
	ClassBusy     int `json:"classBusy"`
	TeacherBusy   int `json:"teacherBusy"`
	LocationBusy  int `json:"locationBusy"`
	BlockBoundary int `json:"blockBoundary"`
}

// add accumulates another attempt's bucket counts, matching how
// Placements/Backtracks/MRVDeadEnds/hardestLessons sum across attempts.
func (r *InvalidReasons) add(other InvalidReasons) {
	r.LevelMismatch += other.LevelMismatch
	r.Availability += other.Availability
	r.ClassBusy += other.ClassBusy
	r.TeacherBusy += other.TeacherBusy
	r.LocationBusy += other.LocationBusy
	r.BlockBoundary += other.BlockBoundary
}

// HardestLessonStat names a unit key and how many times it failed to
// place across the solve.
type HardestLessonStat struct {
	Key      string `json:"key"`
	Failures int     `json:"failures"`
}

// Stats carries the diagnostics §6 of spec.md requires, plus the
// additive RunID correlation id (§4 of SPEC_FULL.md).
type Stats struct {
	RunID                string              `json:"runId"`
	StartedAt            int64               `json:"startedAt"`
	EndedAt              int64               `json:"endedAt"`
	ElapsedSeconds        float64             `json:"elapsedSeconds"`
	FirstSolutionAt       *int64              `json:"firstSolutionAt,omitempty"`
	FirstSolutionSeconds  float64             `json:"firstSolutionSeconds"`
	TimedOut             bool                `json:"timedOut"`
	Attempts             int                 `json:"attempts"`
	Placements           int                 `json:"placements"`
	Backtracks           int                 `json:"backtracks"`
	InvalidReasons       InvalidReasons      `json:"invalidReasons"`
	HardestLessons       []HardestLessonStat `json:"hardestLessons"`
	MRVDeadEnds          int                 `json:"mrvDeadEnds"`
	Notes                []string            `json:"notes"`
	BestObjective        float64             `json:"bestObjective"`
}

// Result is the sole output of Solve.
type Result struct {
	Schedule *Schedule `json:"schedule"`
	Stats    Stats     `json:"stats"`
}
