package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func basePreflightProblem() *Problem {
	return &Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"matematik"}, UpperSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{{ID: "c1", Level: LevelUpper, SessionMode: SessionFull}},
		Subjects: []Subject{
			{ID: "math", Name: "matematik", WeeklyHours: 4, ClassroomIDs: []string{"c1"}},
		},
	}
}

func TestPreflightPassesOnWellFormedProblem(t *testing.T) {
	p := basePreflightProblem()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.NoError(t, preflight(idx, p, hours))
}

func TestPreflightRejectsEmptyLocationID(t *testing.T) {
	p := basePreflightProblem()
	p.Locations = []Location{{ID: ""}}
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}

func TestPreflightRejectsUnknownClassroomReference(t *testing.T) {
	p := basePreflightProblem()
	p.Subjects[0].ClassroomIDs = []string{"does-not-exist"}
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}

func TestPreflightRejectsSubjectWithNoTeacherCombination(t *testing.T) {
	p := basePreflightProblem()
	p.Teachers = nil
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}

func TestPreflightRejectsCapacityOverflow(t *testing.T) {
	p := basePreflightProblem()
	p.Subjects[0].WeeklyHours = 999
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}

func TestPreflightRejectsLessonGroupUnknownSubject(t *testing.T) {
	p := basePreflightProblem()
	p.LessonGroups = []LessonGroup{{ID: "g1", SubjectID: "missing", ClassroomIDs: []string{"c1"}}}
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}

func TestPreflightRejectsDutyUnknownTeacher(t *testing.T) {
	p := basePreflightProblem()
	p.Duties = []Duty{{ID: "d1", TeacherID: "missing", Day: 0, Hour: 0}}
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	require.Error(t, preflight(idx, p, hours))
}
