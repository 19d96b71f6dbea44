package engine

import (
	"fmt"

	apperrors "github.com/noah-isme/timetable-core/pkg/errors"
)

// preflight runs the static checks of §4.1 before any placement is
// attempted: every location needs a non-empty id; the classrooms and
// locations that subjects reference, the subjects and classrooms that
// lesson groups reference, and the teachers that duties reference must
// exist; every subject/classroom pair must have at least one teacher
// combination; and no classroom's weekly window can be smaller than the
// summed weekly hours of the subjects assigned to it. Fixed-assignment
// references are not checked here; placeFixedAssignments reports them.
// Every violation found is accumulated into one consolidated InputError
// (§7) instead of returning on the first.
func preflight(idx *domainIndex, p *Problem, schoolHours SchoolHours) error {
	var issues []InputIssue
	demand := make(map[string]int)
	overCapacity := make(map[string]bool)

	for _, l := range p.Locations {
		if l.ID == "" {
			issues = append(issues, InputIssue{Reason: "invalid location", Detail: "location has an empty id"})
		}
	}

	for si := range p.Subjects {
		subject := &p.Subjects[si]
		if subject.LocationID != "" && idx.locationByID[subject.LocationID] == nil {
			issues = append(issues, InputIssue{Reason: "unknown location reference", Detail: fmt.Sprintf("subject %q references location %q", subject.ID, subject.LocationID)})
		}
		for _, cid := range subject.ClassroomIDs {
			classroom := idx.classroomByID[cid]
			if classroom == nil {
				issues = append(issues, InputIssue{Reason: "unknown classroom reference", Detail: fmt.Sprintf("subject %q references classroom %q", subject.ID, cid)})
				continue
			}
			if teacherCombinations(idx, subject, classroom) == nil {
				issues = append(issues, InputIssue{Reason: "no teacher combination available", Detail: fmt.Sprintf("subject %q has no valid teacher combination for classroom %q", subject.ID, cid)})
			}

			weeklyCapacity := 0
			for day := 0; day < 5; day++ {
				dailyLimit := schoolHours.DailyLimit(classroom.Level, day)
				start, end := classroom.Window(dailyLimit)
				if end > start {
					weeklyCapacity += end - start
				}
			}
			demand[cid] += subject.WeeklyHours
			if demand[cid] > weeklyCapacity && !overCapacity[cid] {
				overCapacity[cid] = true
				issues = append(issues, InputIssue{Reason: "classroom capacity exceeded", Detail: fmt.Sprintf("classroom %q needs at least %d hours but only has %d available this week", cid, demand[cid], weeklyCapacity)})
			}
		}
	}

	for gi := range p.LessonGroups {
		group := &p.LessonGroups[gi]
		if idx.subjectByID[group.SubjectID] == nil {
			issues = append(issues, InputIssue{Reason: "unknown subject reference", Detail: fmt.Sprintf("lesson group %q references subject %q", group.ID, group.SubjectID)})
		}
		for _, cid := range group.ClassroomIDs {
			if idx.classroomByID[cid] == nil {
				issues = append(issues, InputIssue{Reason: "unknown classroom reference", Detail: fmt.Sprintf("lesson group %q references classroom %q", group.ID, cid)})
			}
		}
	}

	for _, duty := range p.Duties {
		if idx.teacherByID[duty.TeacherID] == nil {
			issues = append(issues, InputIssue{Reason: "unknown teacher reference", Detail: fmt.Sprintf("duty %q references teacher %q", duty.ID, duty.TeacherID)})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return apperrors.Wrap(newInputError(issues), apperrors.ErrUnknownRef.Code, "problem failed pre-flight validation")
}
