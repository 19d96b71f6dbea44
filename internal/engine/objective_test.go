package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGapsInRowCountsOnlyInteriorGaps(t *testing.T) {
	row := make([]*Assignment, 8)
	a := &Assignment{}
	row[1] = a
	row[5] = a
	require.Equal(t, 3, gapsInRow(row, 8)) // hours 2,3,4 are interior gaps
}

func TestGapsInRowEmptyRowIsZero(t *testing.T) {
	row := make([]*Assignment, 8)
	require.Equal(t, 0, gapsInRow(row, 8))
}

func TestOverConsecutiveOverage(t *testing.T) {
	classroom := &Classroom{Level: LevelUpper}
	idx := &domainIndex{subjectByID: map[string]*Subject{"math": {ID: "math"}}}
	row := make([]*Assignment, 8)
	a := &Assignment{SubjectID: "math"}
	for h := 0; h < 4; h++ {
		row[h] = a
	}
	// default upper-level run limit is 3, so a 4-hour run overages by 1.
	overage := overConsecutiveOverage(row, 8, idx, classroom, 3)
	require.Equal(t, 1.0, overage)
}

func TestScoreIsZeroForEmptySchedule(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	w := objectiveWeights{globalMaxConsec: 3, teacherSpread: 1, teacherEdge: 1}
	require.Equal(t, 0.0, score(idx, g, w))
}

func TestScorePenalizesGaps(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	w := objectiveWeights{globalMaxConsec: 3, teacherSpread: 1, teacherEdge: 1}
	classroom := idx.classroomByID["c1"]
	subject := idx.subjectByID["math"]

	place(g, classroom, subject, []string{"t1"}, 0, 0, 1)
	place(g, classroom, subject, []string{"t1"}, 0, 3, 1)

	require.Greater(t, score(idx, g, w), 0.0)
}
