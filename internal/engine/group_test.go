package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func groupProblem() *Problem {
	return &Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"sanat"}, UpperSecondary: true, Availability: fullAvailability()},
			{ID: "t2", Branches: []string{"sanat"}, UpperSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{
			{ID: "9a", Level: LevelUpper, SessionMode: SessionFull},
			{ID: "9b", Level: LevelUpper, SessionMode: SessionFull},
		},
		Subjects: []Subject{{ID: "art", Name: "sanat", ClassroomIDs: []string{}}},
		LessonGroups: []LessonGroup{
			{ID: "elective-art", SubjectID: "art", ClassroomIDs: []string{"9a", "9b"}, WeeklyHours: 2, IsBlock: true},
		},
	}
}

func TestMatchGroupTeachersAssignsDistinctTeachers(t *testing.T) {
	p := groupProblem()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	group := &idx.problem.LessonGroups[0]
	subject := idx.subjectByID["art"]

	matched := matchGroupTeachers(idx, g, group, subject, 0, 0, 1)
	require.Len(t, matched, 2)
	require.NotEqual(t, matched["9a"], matched["9b"])
}

func TestMatchGroupTeachersFailsWhenOnlyOneTeacherEligible(t *testing.T) {
	p := groupProblem()
	p.Teachers = p.Teachers[:1] // only t1 is eligible for both classrooms
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	group := &idx.problem.LessonGroups[0]
	subject := idx.subjectByID["art"]

	require.Nil(t, matchGroupTeachers(idx, g, group, subject, 0, 0, 1))
}

func TestCandidateGroupSlotsRespectsWindowIntersection(t *testing.T) {
	p := groupProblem()
	p.Classrooms[1].SessionMode = SessionAfternoon
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	v := newValidator(idx, g, hours, 3)
	group := &idx.problem.LessonGroups[0]

	slots := candidateGroupSlots(idx, g, v, group, 1)
	// 9a is full-day [0,8) and 9b afternoon-only, so the intersection is
	// 9b's own window.
	intersectionStart, intersectionEnd := idx.classroomByID["9b"].Window(8)
	for _, s := range slots {
		require.GreaterOrEqual(t, s.Hour, intersectionStart)
		require.Less(t, s.Hour, intersectionEnd)
	}
}

func TestPlaceGroupPlacesEveryMemberAtSameSlot(t *testing.T) {
	p := groupProblem()
	idx := newDomainIndex(p)
	hours := SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}}
	g := newGrids(idx, hours)
	group := &idx.problem.LessonGroups[0]
	subject := idx.subjectByID["art"]

	slot := groupSlot{Day: 0, Hour: 0, Teacher: map[string]string{"9a": "t1", "9b": "t2"}}
	placed := placeGroup(g, idx, group, subject, slot, 1)

	require.Len(t, placed, 2)
	require.NotNil(t, g.cell("9a", 0, 0))
	require.NotNil(t, g.cell("9b", 0, 0))
}
