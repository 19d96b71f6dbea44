package engine

import "sort"

const maxTeacherCombinations = 40

// teacherCandidates returns classroom-level-eligible teacher ids matched
// to a subject via its name against the raw and normalized branch
// indexes (§4.1, §4.5 of spec.md), excluding any id already in exclude.
func teacherCandidates(idx *domainIndex, subject *Subject, classroom *Classroom, exclude map[string]bool) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(ids []string) {
		for _, id := range ids {
			if seen[id] || exclude[id] {
				continue
			}
			t := idx.teacherByID[id]
			if t == nil || !t.EligibleFor(classroom.Level) {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	add(idx.teachersByBranch(subject.Name))
	add(idx.teachersByNormalizedBranch(subject.Name))
	sort.Strings(out)
	return out
}

// teacherCombinations builds up to maxTeacherCombinations deduplicated,
// unordered R-sized teacher combinations for subject/classroom, where R
// is the subject's required teacher count. Pinned teachers for the
// classroom are mandatory members of every combination. Returns nil if
// no full combination is possible (§4.5).
func teacherCombinations(idx *domainIndex, subject *Subject, classroom *Classroom) [][]string {
	required := subject.RequiredTeacherCount()

	var pins []string
	if subject.PinnedTeacherIDs != nil {
		pins = append(pins, []string(subject.PinnedTeacherIDs[classroom.ID])...)
	}
	sort.Strings(pins)

	if len(pins) >= required {
		combo := append([]string(nil), pins[:required]...)
		return [][]string{combo}
	}

	exclude := make(map[string]bool, len(pins))
	for _, p := range pins {
		exclude[p] = true
	}
	candidates := teacherCandidates(idx, subject, classroom, exclude)

	need := required - len(pins)
	if len(candidates) < need {
		return nil
	}

	var combos [][]string
	seen := make(map[string]bool)
	var choose func(start int, current []string)
	choose = func(start int, current []string) {
		if len(combos) >= maxTeacherCombinations {
			return
		}
		if len(current) == need {
			full := append(append([]string(nil), pins...), current...)
			sort.Strings(full)
			key := combinationKey(full)
			if !seen[key] {
				seen[key] = true
				combos = append(combos, full)
			}
			return
		}
		remainingNeeded := need - len(current)
		for i := start; i < len(candidates); i++ {
			if len(candidates)-i < remainingNeeded {
				break
			}
			choose(i+1, append(current, candidates[i]))
			if len(combos) >= maxTeacherCombinations {
				return
			}
		}
	}
	choose(0, nil)
	if len(combos) == 0 {
		return nil
	}
	return combos
}

func combinationKey(ids []string) string {
	key := ""
	for _, id := range ids {
		key += id + "\x00"
	}
	return key
}
