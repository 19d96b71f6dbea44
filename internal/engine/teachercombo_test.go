package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeacherCombinationsHonorsPins(t *testing.T) {
	p := &Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"matematik"}, UpperSecondary: true, Availability: fullAvailability()},
			{ID: "t2", Branches: []string{"matematik"}, UpperSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{{ID: "c1", Level: LevelUpper}},
		Subjects: []Subject{{
			ID: "math", Name: "matematik", RequiredTeachers: 1,
			PinnedTeacherIDs: map[string]TeacherIDSet{"c1": {"t2"}},
			ClassroomIDs:     []string{"c1"},
		}},
	}
	idx := newDomainIndex(p)
	subject := idx.subjectByID["math"]
	classroom := idx.classroomByID["c1"]

	combos := teacherCombinations(idx, subject, classroom)
	require.Len(t, combos, 1)
	require.Equal(t, []string{"t2"}, combos[0])
}

func TestTeacherCombinationsReturnsNilWhenInsufficientCandidates(t *testing.T) {
	p := &Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"matematik"}, UpperSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{{ID: "c1", Level: LevelUpper}},
		Subjects: []Subject{{
			ID: "math", Name: "matematik", RequiredTeachers: 2, ClassroomIDs: []string{"c1"},
		}},
	}
	idx := newDomainIndex(p)
	subject := idx.subjectByID["math"]
	classroom := idx.classroomByID["c1"]

	require.Nil(t, teacherCombinations(idx, subject, classroom))
}

func TestNormalizeBranchExpandsAbbreviations(t *testing.T) {
	require.Equal(t, "ingilizce", normalizeBranch("Ing"))
	require.Equal(t, "matematik", normalizeBranch("mat"))
	require.Equal(t, "turkce", normalizeBranch("Türkçe"))
}
