package engine

// objectiveWeights carries the configurable soft-constraint weights of
// §4.12. Lower total score is better.
type objectiveWeights struct {
	globalMaxConsec int
	teacherSpread   float64
	teacherEdge     float64
}

// score computes the full §4.12 objective over every classroom/day and
// every teacher/day.
func score(idx *domainIndex, g *grids, w objectiveWeights) float64 {
	total := 0.0

	for _, cid := range idx.classroomOrder {
		classroom := idx.classroomByID[cid]
		classGrid := g.schedule[cid]
		for day := 0; day < 5; day++ {
			row := classGrid[day]
			total += 5 * float64(gapsInRow(row, g.hours))
			total += 20 * overConsecutiveOverage(row, g.hours, idx, classroom, w.globalMaxConsec)
		}
	}

	for day := 0; day < 5; day++ {
		total += w.teacherSpread * teacherSpreadForDay(idx, g, day)
		total += w.teacherEdge * teacherEdgeForDay(idx, g, day)
	}

	return total
}

func gapsInRow(row []*Assignment, hours int) int {
	first, last := -1, -1
	for h := 0; h < hours; h++ {
		if row[h] != nil {
			if first == -1 {
				first = h
			}
			last = h
		}
	}
	if first == -1 {
		return 0
	}
	gaps := 0
	for h := first; h <= last; h++ {
		if row[h] == nil {
			gaps++
		}
	}
	return gaps
}

func overConsecutiveOverage(row []*Assignment, hours int, idx *domainIndex, classroom *Classroom, globalMaxConsec int) float64 {
	total := 0.0
	h := 0
	for h < hours {
		a := row[h]
		if a == nil {
			h++
			continue
		}
		start := h
		for h < hours && row[h] == a {
			h++
		}
		runLen := h - start
		subject := idx.subjectByID[a.SubjectID]
		limit := 3
		if subject != nil && classroom != nil {
			limit = runLimit(subject, classroom, globalMaxConsec)
		}
		if runLen > limit {
			total += float64(runLen - limit)
		}
	}
	return total
}

func teacherSpreadForDay(idx *domainIndex, g *grids, day int) float64 {
	total := 0.0
	for _, tid := range idx.teacherOrder {
		occ := g.teacherOccupied[tid][day]
		first, last, count := -1, -1, 0
		for h, busy := range occ {
			if busy {
				if first == -1 {
					first = h
				}
				last = h
				count++
			}
		}
		if first == -1 {
			continue
		}
		span := last - first + 1
		if diff := span - count; diff > 0 {
			total += float64(diff)
		}
	}
	return total
}

func teacherEdgeForDay(idx *domainIndex, g *grids, day int) float64 {
	total := 0.0
	for _, tid := range idx.teacherOrder {
		occ := g.teacherOccupied[tid][day]
		if len(occ) == 0 {
			continue
		}
		if occ[0] {
			total += 0.5
		}
		if occ[len(occ)-1] {
			total += 0.5
		}
		for h, busy := range occ {
			if !busy {
				continue
			}
			leftFree := h == 0 || !occ[h-1]
			rightFree := h == len(occ)-1 || !occ[h+1]
			if leftFree && rightFree {
				total += 0.75
			}
		}
	}
	return total
}
