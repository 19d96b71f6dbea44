package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidRejectsLevelMismatch(t *testing.T) {
	p := testProblemTwoClassrooms()
	p.Teachers[0].UpperSecondary = false
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)

	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]
	require.False(t, v.isValid(classroom, subject, []string{"t1"}, 0, 0, 1))
	require.Equal(t, 1, v.reasons.LevelMismatch)
}

func TestIsValidRejectsTeacherUnavailable(t *testing.T) {
	p := testProblemTwoClassrooms()
	p.Teachers[0].Availability[0][0] = false
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)

	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]
	require.False(t, v.isValid(classroom, subject, []string{"t1"}, 0, 0, 1))
	require.Equal(t, 1, v.reasons.Availability)
}

func TestIsValidRejectsClassBusy(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 0, 1)
	require.False(t, v.isValid(classroom, subject, []string{"t2"}, 0, 0, 1))
	require.Equal(t, 1, v.reasons.ClassBusy)
}

func TestIsValidEnforcesRunLimit(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 0, 1)
	place(g, classroom, subject, []string{"t1"}, 0, 1, 1)
	place(g, classroom, subject, []string{"t1"}, 0, 2, 1)

	// upper secondary default run limit is 3; a fourth consecutive hour
	// of the same subject must be rejected.
	require.False(t, v.isValid(classroom, subject, []string{"t1"}, 0, 3, 1))
	require.Equal(t, 1, v.reasons.BlockBoundary)
}

func TestRunLimitResolutionOrder(t *testing.T) {
	lower := &Classroom{Level: LevelLower}
	upper := &Classroom{Level: LevelUpper}

	explicit := 5
	s := &Subject{MaxConsec: &explicit}
	require.Equal(t, 5, runLimit(s, lower, 3))

	s = &Subject{TripleBlockHours: 3}
	require.Equal(t, 3, runLimit(s, lower, 3))

	s = &Subject{PairedBlockHours: 2}
	require.Equal(t, 3, runLimit(s, lower, 3))
	require.Equal(t, 2, runLimit(s, lower, 1))

	s = &Subject{}
	require.Equal(t, 2, runLimit(s, lower, 0))
	require.Equal(t, 3, runLimit(s, upper, 0))
}
