package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testProblemTwoClassrooms() *Problem {
	return &Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"matematik"}, UpperSecondary: true, LowerSecondary: true, Availability: fullAvailability()},
			{ID: "t2", Branches: []string{"ingilizce"}, UpperSecondary: true, LowerSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{
			{ID: "c1", Level: LevelUpper, SessionMode: SessionFull},
			{ID: "c2", Level: LevelUpper, SessionMode: SessionFull},
		},
		Subjects: []Subject{
			{ID: "math", Name: "matematik", WeeklyHours: 4, ClassroomIDs: []string{"c1", "c2"}},
		},
	}
}

func fullAvailability() [5][]bool {
	var a [5][]bool
	for d := 0; d < 5; d++ {
		a[d] = make([]bool, 8)
		for h := range a[d] {
			a[d][h] = true
		}
	}
	return a
}

func TestPlaceAndRemoveRoundTrip(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	a := place(g, classroom, subject, []string{"t1"}, 0, 2, 2)
	require.Same(t, a, g.cell("c1", 0, 2))
	require.Same(t, a, g.cell("c1", 0, 3))
	require.True(t, g.teacherOccupied["t1"][0][2])
	require.True(t, g.teacherOccupied["t1"][0][3])

	remove(g, "c1", a, 0, 2, 2)
	require.Nil(t, g.cell("c1", 0, 2))
	require.Nil(t, g.cell("c1", 0, 3))
	require.False(t, g.teacherOccupied["t1"][0][2])
}

func TestPlaceOnOccupiedCellPanics(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 0, 1)
	require.Panics(t, func() {
		place(g, classroom, subject, []string{"t2"}, 0, 0, 1)
	})
}

func TestSnapshotRestoreIsolatesMutation(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 0, 1)
	snap := g.snapshot()

	place(g, classroom, subject, []string{"t2"}, 0, 1, 1)
	require.NotNil(t, g.cell("c1", 0, 1))

	g.restore(snap)
	require.Nil(t, g.cell("c1", 0, 1))
	require.NotNil(t, g.cell("c1", 0, 0))
}

func TestFindSpanDetectsSharedPointerBlock(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 1, 3, 3)
	classGrid := g.schedule["c1"]

	start, span := findSpan(classGrid, 1, 4, 0, g.hours)
	require.Equal(t, 3, start)
	require.Equal(t, 3, span)
}
