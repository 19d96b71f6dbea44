package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func simpleFeasibleProblem() Problem {
	return Problem{
		Teachers: []Teacher{
			{ID: "t1", Name: "Ayse", Branches: []string{"matematik"}, UpperSecondary: true, LowerSecondary: true, Availability: fullAvailability()},
			{ID: "t2", Name: "Mehmet", Branches: []string{"ingilizce"}, UpperSecondary: true, LowerSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{
			{ID: "9a", Level: LevelUpper, SessionMode: SessionFull},
		},
		Subjects: []Subject{
			{ID: "math", Name: "matematik", WeeklyHours: 4, ClassroomIDs: []string{"9a"}},
			{ID: "eng", Name: "ingilizce", WeeklyHours: 3, ClassroomIDs: []string{"9a"}},
		},
	}
}

func fewOptions(seed uint64) Options {
	s := seed
	return Options{
		SchoolHours:      SchoolHours{Upper: [5]int{8, 8, 8, 8, 8}, Lower: [5]int{8, 8, 8, 8, 8}},
		TimeLimitSeconds: 5,
		Strategy:         StrategyRepair,
		RandomSeed:       &s,
	}
}

func TestSolveProducesFeasibleScheduleForSimpleProblem(t *testing.T) {
	problem := simpleFeasibleProblem()
	result, err := Solve(problem, fewOptions(1), nil)
	require.NoError(t, err)
	require.NotNil(t, result.Schedule)

	count := 0
	for _, row := range result.Schedule.Classrooms["9a"] {
		for _, a := range row {
			if a != nil {
				count++
			}
		}
	}
	require.Equal(t, 7, count)
}

func TestSolveIsDeterministicForFixedSeed(t *testing.T) {
	problem := simpleFeasibleProblem()
	r1, err := Solve(problem, fewOptions(12345), nil)
	require.NoError(t, err)
	r2, err := Solve(problem, fewOptions(12345), nil)
	require.NoError(t, err)

	j1, _ := json.Marshal(r1.Schedule)
	j2, _ := json.Marshal(r2.Schedule)
	require.JSONEq(t, string(j1), string(j2))
}

func TestSolveRejectsUnknownClassroomReference(t *testing.T) {
	problem := simpleFeasibleProblem()
	problem.Subjects[0].ClassroomIDs = []string{"does-not-exist"}
	_, err := Solve(problem, fewOptions(1), nil)
	require.Error(t, err)
}

func TestSolveRejectsCapacityOverflow(t *testing.T) {
	problem := simpleFeasibleProblem()
	problem.Subjects[0].WeeklyHours = 999
	_, err := Solve(problem, fewOptions(1), nil)
	require.Error(t, err)
}

func TestSolveHonorsFixedAssignment(t *testing.T) {
	problem := simpleFeasibleProblem()
	problem.FixedAssignments = []FixedAssignment{
		{ClassroomID: "9a", SubjectID: "math", Day: 0, Hour: 0},
	}
	result, err := Solve(problem, fewOptions(1), nil)
	require.NoError(t, err)
	a := result.Schedule.Classrooms["9a"][0][0]
	require.NotNil(t, a)
	require.Equal(t, "math", a.SubjectID)
}

func TestSolveWithLessonGroupPlacesAllMembersSimultaneously(t *testing.T) {
	problem := Problem{
		Teachers: []Teacher{
			{ID: "t1", Branches: []string{"sanat"}, UpperSecondary: true, Availability: fullAvailability()},
			{ID: "t2", Branches: []string{"sanat"}, UpperSecondary: true, Availability: fullAvailability()},
		},
		Classrooms: []Classroom{
			{ID: "9a", Level: LevelUpper, SessionMode: SessionFull},
			{ID: "9b", Level: LevelUpper, SessionMode: SessionFull},
		},
		Subjects: []Subject{
			{ID: "art", Name: "sanat", ClassroomIDs: []string{}},
		},
		LessonGroups: []LessonGroup{
			{ID: "elective-art", SubjectID: "art", ClassroomIDs: []string{"9a", "9b"}, WeeklyHours: 2, IsBlock: true},
		},
	}
	result, err := Solve(problem, fewOptions(1), nil)
	require.NoError(t, err)

	found := false
	for day := 0; day < 5; day++ {
		for h := 0; h < 8; h++ {
			a := result.Schedule.Classrooms["9a"][day][h]
			b := result.Schedule.Classrooms["9b"][day][h]
			if a != nil && b != nil {
				found = true
			}
		}
	}
	require.True(t, found, "expected both group members to share at least one placed hour")
}
