package voronoi

type reorderCriterion int

const (
	// byVertex chains the edges of one site through shared Voronoi vertices.
	byVertex reorderCriterion = iota
	// bySite chains hull edges through shared sites.
	bySite
)

// edgeReorderer turns an unordered edge set into one chain.
// orientations[i] tells which end of edges[i] connects to the previous edge.
type edgeReorderer struct {
	edges        []edgeID
	orientations []side
}

func newEdgeReorderer(a *arena, orig []edgeID, criterion reorderCriterion) *edgeReorderer {
	r := &edgeReorderer{}
	if len(orig) > 0 {
		r.reorder(a, orig, criterion)
	}
	return r
}

// endpoint identifies an edge end. Absent vertices get a unique negative key
// so an unbounded end never matches anything.
func endpoint(a *arena, e edgeID, s side, criterion reorderCriterion, absent *int) int {
	ed := a.edge(e)
	if criterion == bySite {
		return int(ed.site(s))
	}
	v := ed.vertex(s)
	if v == noVertex {
		*absent--
		return *absent
	}
	return int(v)
}

func (r *edgeReorderer) reorder(a *arena, orig []edgeID, criterion reorderCriterion) {
	n := len(orig)
	done := make([]bool, n)
	absent := 0

	// цепочку собираем в двух направлениях от первого ребра
	var head, tail []edgeID
	var headSides, tailSides []side

	tail = append(tail, orig[0])
	tailSides = append(tailSides, sideLeft)
	firstPoint := endpoint(a, orig[0], sideLeft, criterion, &absent)
	lastPoint := endpoint(a, orig[0], sideRight, criterion, &absent)
	done[0] = true
	nDone := 1

	for nDone < n {
		progress := false
		for i := 1; i < n; i++ {
			if done[i] {
				continue
			}
			e := orig[i]
			leftPoint := endpoint(a, e, sideLeft, criterion, &absent)
			rightPoint := endpoint(a, e, sideRight, criterion, &absent)
			switch {
			case leftPoint == lastPoint:
				lastPoint = rightPoint
				tail = append(tail, e)
				tailSides = append(tailSides, sideLeft)
			case rightPoint == firstPoint:
				firstPoint = leftPoint
				head = append(head, e)
				headSides = append(headSides, sideLeft)
			case leftPoint == firstPoint:
				firstPoint = rightPoint
				head = append(head, e)
				headSides = append(headSides, sideRight)
			case rightPoint == lastPoint:
				lastPoint = leftPoint
				tail = append(tail, e)
				tailSides = append(tailSides, sideRight)
			default:
				continue
			}
			done[i] = true
			nDone++
			progress = true
		}
		if !progress {
			// не замыкается в одну цепочку
			return
		}
	}

	r.edges = make([]edgeID, 0, n)
	r.orientations = make([]side, 0, n)
	for i := len(head) - 1; i >= 0; i-- {
		r.edges = append(r.edges, head[i])
		r.orientations = append(r.orientations, headSides[i])
	}
	r.edges = append(r.edges, tail...)
	r.orientations = append(r.orientations, tailSides...)
}
