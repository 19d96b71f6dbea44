package engine

import "strings"

// branchSynonyms maps an abbreviated or alternate branch token to its
// canonical normalized form. Carried over from the Turkish school-branch
// vocabulary of the distilled source (see SPEC_FULL.md §4).
var branchSynonyms = map[string]string{
	"ing": "ingilizce",
	"mat": "matematik",
	"fen": "fenbilimleri",
	"tur": "turkce",
	"bil": "bilgisayar",
}

var diacriticReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i",
	"İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

// normalizeBranch lowercases, strips diacritics, drops digits and any
// non-letter rune, then expands known abbreviations.
func normalizeBranch(raw string) string {
	cleaned := diacriticReplacer.Replace(raw)
	cleaned = strings.ToLower(cleaned)
	var b strings.Builder
	for _, r := range cleaned {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	token := b.String()
	if expanded, ok := branchSynonyms[token]; ok {
		return expanded
	}
	return token
}

// domainIndex holds immutable id->record lookups and teacher branch
// indexes, built once per solve from the read-only Problem.
type domainIndex struct {
	problem *Problem

	teacherByID   map[string]*Teacher
	classroomByID map[string]*Classroom
	locationByID  map[string]*Location
	subjectByID   map[string]*Subject
	groupByID     map[string]*LessonGroup

	teacherIndex   map[string]int
	classroomIndex map[string]int
	locationIndex  map[string]int

	teacherOrder   []string
	classroomOrder []string
	locationOrder  []string

	branchIndex           map[string][]string
	normalizedBranchIndex map[string][]string
}

func newDomainIndex(p *Problem) *domainIndex {
	idx := &domainIndex{
		problem:               p,
		teacherByID:           make(map[string]*Teacher, len(p.Teachers)),
		classroomByID:         make(map[string]*Classroom, len(p.Classrooms)),
		locationByID:          make(map[string]*Location, len(p.Locations)),
		subjectByID:           make(map[string]*Subject, len(p.Subjects)),
		groupByID:             make(map[string]*LessonGroup, len(p.LessonGroups)),
		teacherIndex:          make(map[string]int, len(p.Teachers)),
		classroomIndex:        make(map[string]int, len(p.Classrooms)),
		locationIndex:         make(map[string]int, len(p.Locations)),
		branchIndex:           make(map[string][]string),
		normalizedBranchIndex: make(map[string][]string),
	}

	for i := range p.Teachers {
		t := &p.Teachers[i]
		idx.teacherByID[t.ID] = t
		idx.teacherIndex[t.ID] = i
		idx.teacherOrder = append(idx.teacherOrder, t.ID)
		for _, branch := range t.Branches {
			raw := strings.ToLower(strings.TrimSpace(branch))
			if raw != "" {
				idx.branchIndex[raw] = append(idx.branchIndex[raw], t.ID)
			}
			norm := normalizeBranch(branch)
			if norm != "" {
				idx.normalizedBranchIndex[norm] = append(idx.normalizedBranchIndex[norm], t.ID)
			}
		}
	}
	for i := range p.Classrooms {
		c := &p.Classrooms[i]
		idx.classroomByID[c.ID] = c
		idx.classroomIndex[c.ID] = i
		idx.classroomOrder = append(idx.classroomOrder, c.ID)
	}
	for i := range p.Locations {
		l := &p.Locations[i]
		idx.locationByID[l.ID] = l
		idx.locationIndex[l.ID] = i
		idx.locationOrder = append(idx.locationOrder, l.ID)
	}
	for i := range p.Subjects {
		idx.subjectByID[p.Subjects[i].ID] = &p.Subjects[i]
	}
	for i := range p.LessonGroups {
		idx.groupByID[p.LessonGroups[i].ID] = &p.LessonGroups[i]
	}
	return idx
}

func (idx *domainIndex) teachersByBranch(branch string) []string {
	raw := strings.ToLower(strings.TrimSpace(branch))
	return idx.branchIndex[raw]
}

func (idx *domainIndex) teachersByNormalizedBranch(branch string) []string {
	return idx.normalizedBranchIndex[normalizeBranch(branch)]
}
