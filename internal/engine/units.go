package engine

import "fmt"

// unit is an indivisible placement obligation: one single hour, one
// 2-hour block, one 3-hour block, or one group-lesson unit (§4.3,
// GLOSSARY of spec.md).
type unit struct {
	SubjectID   string
	ClassroomID string // empty for group units
	GroupID     string // empty for ordinary (non-group) units
	Span        int
	Key         string
	seq         int // disambiguates otherwise-identical keys for stats
}

func (u unit) isGroup() bool { return u.GroupID != "" }

// buildUnits decomposes weekly demand into atomic placement units
// (§4.3). fixedConsumed gives, per subject/classroom pair, how many
// hours were already consumed by pre-placed fixed assignments.
func buildUnits(idx *domainIndex, fixedConsumed map[[2]string]int) []unit {
	var units []unit
	seq := 0
	next := func() int { seq++; return seq }

	for si := range idx.problem.Subjects {
		subject := &idx.problem.Subjects[si]
		for _, classroomID := range subject.ClassroomIDs {
			classroom := idx.classroomByID[classroomID]
			if classroom == nil {
				continue
			}
			remaining := subject.WeeklyHours - fixedConsumed[[2]string{subject.ID, classroomID}]
			if remaining < 0 {
				remaining = 0
			}
			tripleBudget := subject.TripleBlockHours / 3
			doubleBudget := subject.PairedBlockHours / 2

			for remaining >= 3 && tripleBudget > 0 {
				units = append(units, unit{
					SubjectID: subject.ID, ClassroomID: classroomID, Span: 3,
					Key: fmt.Sprintf("%s/%s/3", subject.ID, classroomID), seq: next(),
				})
				remaining -= 3
				tripleBudget--
			}
			for remaining >= 2 && doubleBudget > 0 {
				units = append(units, unit{
					SubjectID: subject.ID, ClassroomID: classroomID, Span: 2,
					Key: fmt.Sprintf("%s/%s/2", subject.ID, classroomID), seq: next(),
				})
				remaining -= 2
				doubleBudget--
			}
			for remaining > 0 {
				units = append(units, unit{
					SubjectID: subject.ID, ClassroomID: classroomID, Span: 1,
					Key: fmt.Sprintf("%s/%s/1", subject.ID, classroomID), seq: next(),
				})
				remaining--
			}
		}
	}

	for gi := range idx.problem.LessonGroups {
		group := &idx.problem.LessonGroups[gi]
		hours := group.WeeklyHours
		if group.IsBlock {
			blocks := hours / 2
			for i := 0; i < blocks; i++ {
				units = append(units, unit{
					SubjectID: group.SubjectID, GroupID: group.ID, Span: 2,
					Key: fmt.Sprintf("group/%s/2", group.ID), seq: next(),
				})
			}
			if hours%2 == 1 {
				units = append(units, unit{
					SubjectID: group.SubjectID, GroupID: group.ID, Span: 1,
					Key: fmt.Sprintf("group/%s/1", group.ID), seq: next(),
				})
			}
		} else {
			for i := 0; i < hours; i++ {
				units = append(units, unit{
					SubjectID: group.SubjectID, GroupID: group.ID, Span: 1,
					Key: fmt.Sprintf("group/%s/1", group.ID), seq: next(),
				})
			}
		}
	}

	return units
}
