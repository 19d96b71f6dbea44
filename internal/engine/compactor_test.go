package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactShiftsLessonsLeft(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 5, 1)

	compact(idx, g, v)

	require.NotNil(t, g.cell("c1", 0, 0))
	require.Nil(t, g.cell("c1", 0, 5))
}

func TestCompactNeverMovesFixedCells(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 3, 1)
	markFixed(g, "c1", 0, 3, 1)

	compact(idx, g, v)

	require.NotNil(t, g.cell("c1", 0, 3))
}

func TestCompactIsIdempotent(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 5, 1)
	place(g, classroom, subject, []string{"t2"}, 2, 6, 2)

	compact(idx, g, v)
	first := g.snapshot()
	compact(idx, g, v)
	second := g.snapshot()

	require.Equal(t, first.schedule["c1"], second.schedule["c1"])
}
