package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandFixedAssignmentsExpandsWholeDay(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}

	fixed := []FixedAssignment{{ClassroomID: "c1", SubjectID: "math", Day: 0, Hour: -1}}
	expanded, notes := expandFixedAssignments(idx, hours, fixed)

	require.Len(t, expanded, 8)
	for h, fa := range expanded {
		require.Equal(t, h, fa.Hour)
	}
	require.Len(t, notes, 1)
}

func TestExpandFixedAssignmentsLeavesExplicitHourAlone(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}

	fixed := []FixedAssignment{{ClassroomID: "c1", SubjectID: "math", Day: 0, Hour: 2}}
	expanded, notes := expandFixedAssignments(idx, hours, fixed)

	require.Equal(t, fixed, expanded)
	require.Empty(t, notes)
}

func TestPlaceFixedAssignmentsMarksCellsFixed(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)

	fixed := []FixedAssignment{{ClassroomID: "c1", SubjectID: "math", Day: 0, Hour: 0}}
	consumed, note, ok := placeFixedAssignments(idx, g, v, fixed)

	require.True(t, ok)
	require.Empty(t, note)
	require.Equal(t, 1, consumed[[2]string{"math", "c1"}])
	require.True(t, g.isFixed("c1", 0, 0))
	require.NotNil(t, g.cell("c1", 0, 0))
}

func TestPlaceFixedAssignmentsRejectsUnknownClassroom(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)

	fixed := []FixedAssignment{{ClassroomID: "missing", SubjectID: "math", Day: 0, Hour: 0}}
	_, note, ok := placeFixedAssignments(idx, g, v, fixed)
	require.False(t, ok)
	require.NotEmpty(t, note)
}

func TestPlaceFixedAssignmentsRejectsOutOfWindowHour(t *testing.T) {
	p := testProblemTwoClassrooms()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)

	fixed := []FixedAssignment{{ClassroomID: "c1", SubjectID: "math", Day: 0, Hour: 20}}
	_, note, ok := placeFixedAssignments(idx, g, v, fixed)
	require.False(t, ok)
	require.NotEmpty(t, note)
}
