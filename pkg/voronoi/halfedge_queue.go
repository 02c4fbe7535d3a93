package voronoi

// halfedgeQueue is the circle event queue: buckets by ystar, each a list sorted by
// (ystar, vertex x) behind a dummy head.
type halfedgeQueue struct {
	arena *arena

	hash      []halfedgeID
	count     int
	minBucket int
	hashsize  int

	ymin   float64
	deltay float64
}

func newHalfedgeQueue(a *arena, ymin, deltay float64, sqrtNSites int) *halfedgeQueue {
	q := &halfedgeQueue{
		arena:    a,
		ymin:     ymin,
		deltay:   deltay,
		hashsize: 4 * sqrtNSites,
	}
	q.hash = make([]halfedgeID, q.hashsize)
	for i := range q.hash {
		q.hash[i] = a.newDummyHalfedge()
	}
	return q
}

func (q *halfedgeQueue) insert(h halfedgeID) {
	a := q.arena
	he := a.he(h)
	b := q.bucket(he)
	if b < q.minBucket {
		q.minBucket = b
	}

	previous := q.hash[b]
	next := a.he(previous).nextInQueue
	for next != nilHalfedge {
		n := a.he(next)
		if he.ystar < n.ystar || (he.ystar == n.ystar && he.vertex.X <= n.vertex.X) {
			break
		}
		previous = next
		next = n.nextInQueue
	}
	he.nextInQueue = a.he(previous).nextInQueue
	a.he(previous).nextInQueue = h
	q.count++
}

// remove cancels a pending circle event. Halfedges without a vertex are not queued.
func (q *halfedgeQueue) remove(h halfedgeID) {
	a := q.arena
	he := a.he(h)
	if !he.hasVertex {
		return
	}
	previous := q.hash[q.bucket(he)]
	for a.he(previous).nextInQueue != h {
		previous = a.he(previous).nextInQueue
		if previous == nilHalfedge {
			panic("voronoi: halfedge is not in its queue bucket")
		}
	}
	a.he(previous).nextInQueue = he.nextInQueue
	q.count--
	he.hasVertex = false
	he.nextInQueue = nilHalfedge
}

func (q *halfedgeQueue) bucket(he *halfedge) int {
	if q.deltay <= 0 {
		return 0
	}
	b := int((he.ystar - q.ymin) / q.deltay * float64(q.hashsize))
	if b < 0 {
		b = 0
	}
	if b >= q.hashsize {
		b = q.hashsize - 1
	}
	return b
}

func (q *halfedgeQueue) isEmpty(bucket int) bool {
	return q.arena.he(q.hash[bucket]).nextInQueue == nilHalfedge
}

// adjustMinBucket moves minBucket forward to the first bucket holding a real halfedge.
func (q *halfedgeQueue) adjustMinBucket() {
	for q.minBucket < q.hashsize-1 && q.isEmpty(q.minBucket) {
		q.minBucket++
	}
}

func (q *halfedgeQueue) empty() bool {
	return q.count == 0
}

// min returns the coordinates of the smallest event in V*: (vertex x, ystar).
func (q *halfedgeQueue) min() Point {
	if q.count == 0 {
		panic("voronoi: min of an empty halfedge queue")
	}
	q.adjustMinBucket()
	h := q.arena.he(q.arena.he(q.hash[q.minBucket]).nextInQueue)
	return Point{h.vertex.X, h.ystar}
}

// extractMin removes and returns the smallest event.
func (q *halfedgeQueue) extractMin() halfedgeID {
	if q.count == 0 {
		panic("voronoi: extractMin of an empty halfedge queue")
	}
	q.adjustMinBucket()
	a := q.arena
	head := a.he(q.hash[q.minBucket])
	answer := head.nextInQueue
	head.nextInQueue = a.he(answer).nextInQueue
	q.count--
	a.he(answer).nextInQueue = nilHalfedge
	return answer
}
