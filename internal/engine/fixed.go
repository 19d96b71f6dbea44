package engine

import "fmt"

// expandFixedAssignments expands any whole-day fixed entry (Hour == -1)
// into one per-hour entry covering the classroom's session window for
// that day. See DESIGN.md's Open Question log: spec.md §9 flags this as
// unresolved and leaves it to the product owner rather than a source to
// mine, so every expansion is also surfaced as a note the caller can
// forward.
func expandFixedAssignments(idx *domainIndex, schoolHours SchoolHours, fixed []FixedAssignment) ([]FixedAssignment, []string) {
	var out []FixedAssignment
	var notes []string
	for _, fa := range fixed {
		if fa.Hour != -1 {
			out = append(out, fa)
			continue
		}
		classroom := idx.classroomByID[fa.ClassroomID]
		if classroom == nil {
			out = append(out, fa)
			continue
		}
		dailyLimit := schoolHours.DailyLimit(classroom.Level, fa.Day)
		start, end := classroom.Window(dailyLimit)
		for h := start; h < end; h++ {
			out = append(out, FixedAssignment{ClassroomID: fa.ClassroomID, SubjectID: fa.SubjectID, Day: fa.Day, Hour: h})
		}
		notes = append(notes, fmt.Sprintf("whole-day fixed assignment %s/%s day %d expanded to hours [%d,%d)", fa.SubjectID, fa.ClassroomID, fa.Day, start, end))
	}
	return out, notes
}

// placeFixedAssignments places every fixed assignment as a span-1 unit
// before unit generation runs (§4.7). It returns, per subject/classroom
// pair, how many hours were consumed (feeding buildUnits). A placement
// failure is attempt-level infeasibility (§4.15), not an input
// violation: it never returns a Go error, only a human-readable note
// and ok=false so the driver can abandon the attempt and retry.
func placeFixedAssignments(idx *domainIndex, g *grids, v *validator, fixed []FixedAssignment) (consumed map[[2]string]int, note string, ok bool) {
	consumed = make(map[[2]string]int)
	for _, fa := range fixed {
		classroom := idx.classroomByID[fa.ClassroomID]
		if classroom == nil {
			return nil, fmt.Sprintf("fixed assignment references unknown classroom %q", fa.ClassroomID), false
		}
		subject := idx.subjectByID[fa.SubjectID]
		if subject == nil {
			return nil, fmt.Sprintf("fixed assignment references unknown subject %q", fa.SubjectID), false
		}

		dailyLimit := v.schoolHours.DailyLimit(classroom.Level, fa.Day)
		start, end := classroom.Window(dailyLimit)
		if fa.Hour < start || fa.Hour >= end {
			return nil, fmt.Sprintf("fixed assignment %s/%s day %d hour %d is outside the session window", fa.SubjectID, fa.ClassroomID, fa.Day, fa.Hour), false
		}

		combos := teacherCombinations(idx, subject, classroom)
		placed := false
		for _, combo := range combos {
			if v.isValid(classroom, subject, combo, fa.Day, fa.Hour, 1) {
				place(g, classroom, subject, combo, fa.Day, fa.Hour, 1)
				markFixed(g, classroom.ID, fa.Day, fa.Hour, 1)
				consumed[[2]string{fa.SubjectID, fa.ClassroomID}]++
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Sprintf("fixed assignment %s/%s day %d hour %d could not be placed", fa.SubjectID, fa.ClassroomID, fa.Day, fa.Hour), false
		}
	}
	return consumed, "", true
}
