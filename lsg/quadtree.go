package lsg

import (
	"fmt"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
)

// quadtree indexes feature positions by their bounding boxes.
type quadtree struct {
	count  int
	Bounds gps.Rect

	root     *node
	capacity int
	maxDepth int
}

type entry struct {
	bounds gps.Rect
	data   int
}

type node struct {
	bounds   gps.Rect
	quads    [4]*node
	entries  []entry
	capacity int
	depth    int
}

func newQuadTree(bounds gps.Rect) *quadtree {
	return &quadtree{Bounds: bounds, capacity: 20, maxDepth: 10}
}

func (qt *quadtree) InsertRect(r gps.Rect, o int) error {
	if !qt.Bounds.FullyContains(r) {
		return fmt.Errorf("rect %v not in bounds %v", r, qt.Bounds)
	}
	if qt.root == nil {
		qt.root = newNode(r, qt.capacity, qt.maxDepth)
	} else if !qt.root.FullyContains(r) {
		qt.root = qt.root.grow(r)
	}
	qt.root.add(r, o)
	qt.count++
	return nil
}

// Find returns the data of all rects containing p, in insertion order per node.
func (qt *quadtree) Find(p gps.Point) (result []int) {
	if qt.root == nil {
		return
	}
	qt.root.find(p, func(o int) {
		result = append(result, o)
	})
	return
}

func (qt *quadtree) Len() int {
	return qt.count
}

func newNode(bounds gps.Rect, capacity int, depth int) *node {
	return &node{bounds: bounds, capacity: capacity, depth: depth}
}

func (n *node) FullyContains(r gps.Rect) bool {
	return n.bounds.FullyContains(r)
}

func (n *node) add(r gps.Rect, o int) {
	e := entry{r, o}
	if n.quads[0] == nil {
		// Not subdivided yet
		if len(n.entries) < n.capacity || n.depth == 0 {
			n.entries = append(n.entries, e)
			return
		}
		n.split()
	}
	quad := n.choose(r)
	switch quad {
	case -1:
		n.entries = append(n.entries, e)
	default:
		n.quads[quad].add(r, o)
	}
}

func (n *node) split() {
	hw, hh := n.bounds.HalfSize()
	n.quads[0] = newNode(gps.RectFrom(n.bounds[0], n.bounds[1], n.bounds[0]+hw, n.bounds[1]+hh), n.capacity, n.depth-1)
	n.quads[1] = newNode(gps.RectFrom(n.bounds[0], n.bounds[1]+hh, n.bounds[0]+hw, n.bounds[3]), n.capacity, n.depth-1)
	n.quads[2] = newNode(gps.RectFrom(n.bounds[0]+hw, n.bounds[1], n.bounds[2], n.bounds[1]+hh), n.capacity, n.depth-1)
	n.quads[3] = newNode(gps.RectFrom(n.bounds[0]+hw, n.bounds[1]+hh, n.bounds[2], n.bounds[3]), n.capacity, n.depth-1)
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		quad := n.choose(e.bounds)
		switch quad {
		case -1:
			// Does not fit in any quadrant
			n.entries = append(n.entries, e)
		default:
			n.quads[quad].add(e.bounds, e.data)
		}
	}
}

func (n *node) grow(r gps.Rect) *node {
	root := n
	for !root.FullyContains(r) {
		var xmin, ymin float64
		dx0, dx1 := root.bounds.X0()-r.X0(), r.X1()-root.bounds.X1()
		var previousIndex int
		if dx0 > dx1 {
			xmin = root.bounds.X0() - root.bounds.W()
			previousIndex += 2
		} else {
			xmin = root.bounds.X0()
		}
		dy0, dy1 := root.bounds.Y0()-r.Y0(), r.Y1()-root.bounds.Y1()
		if dy0 > dy1 {
			ymin = root.bounds.Y0() - root.bounds.H()
			previousIndex++
		} else {
			ymin = root.bounds.Y0()
		}
		newRoot := newNode(gps.RectPointSize(xmin, ymin, root.bounds.W()*2, root.bounds.H()*2), n.capacity, root.depth+1)
		for i := 0; i < 4; i++ {
			if i == previousIndex {
				newRoot.quads[i] = root
			} else {
				dx := float64(i/2) * root.bounds.W()
				dy := float64(i%2) * root.bounds.H()
				r := gps.RectPointSize(xmin+dx, ymin+dy, root.bounds.W(), root.bounds.H())
				newRoot.quads[i] = newNode(r, n.capacity, root.depth)
			}
		}
		root = newRoot
	}
	return root
}

func (n *node) choose(r gps.Rect) int {
	for i := 0; i < 4; i++ {
		if n.quads[i].bounds.FullyContains(r) {
			return i
		}
	}
	return -1
}

func (n *node) find(p gps.Point, f func(int)) {
	if !p.In(n.bounds) {
		return
	}
	for _, e := range n.entries {
		if p.Within(e.bounds) {
			f(e.data)
		}
	}
	if n.quads[0] != nil {
		quad := 0
		// Points on the center line belong to the upper quadrants
		dx, dy := p.X()-(n.bounds[0]+n.bounds.W()/2), p.Y()-(n.bounds[1]+n.bounds.H()/2)
		if dx >= 0 {
			quad += 2
		}
		if dy >= 0 {
			quad++
		}
		n.quads[quad].find(p, f)
	}
}
