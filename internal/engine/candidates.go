package engine

// candidate is one valid (day, hour, teachers) placement for a
// non-group unit.
type candidate struct {
	Day      int
	Hour     int
	Teachers []string
}

// enumerateCandidates walks every teacher combination x day x hour in
// the classroom's window, testing isValid and collecting every
// candidate that passes (§4.4's "Enumeration"). It is also the MRV
// metric: len(enumerateCandidates(...)) is countValidPlacementsApprox.
func enumerateCandidates(idx *domainIndex, g *grids, v *validator, u unit) []candidate {
	classroom := idx.classroomByID[u.ClassroomID]
	subject := idx.subjectByID[u.SubjectID]
	if classroom == nil || subject == nil {
		return nil
	}
	combos := teacherCombinations(idx, subject, classroom)
	if len(combos) == 0 {
		return nil
	}

	var out []candidate
	for day := 0; day < 5; day++ {
		dailyLimit := v.schoolHours.DailyLimit(classroom.Level, day)
		start, end := classroom.Window(dailyLimit)
		for hour := start; hour+u.Span <= end; hour++ {
			for _, combo := range combos {
				if v.isValid(classroom, subject, combo, day, hour, u.Span) {
					out = append(out, candidate{Day: day, Hour: hour, Teachers: combo})
				}
			}
		}
	}
	return out
}

// countCandidates returns the MRV metric for a unit: the number of
// valid placements (or group slots) currently available.
func countCandidates(idx *domainIndex, g *grids, v *validator, u unit) int {
	if u.isGroup() {
		group := idx.groupByID[u.GroupID]
		if group == nil {
			return 0
		}
		return len(candidateGroupSlots(idx, g, v, group, u.Span))
	}
	return len(enumerateCandidates(idx, g, v, u))
}
