package monitor

import (
	"cmp"
	"log"
	"slices"

	"github.com/limaJavier/hstt/pkg/cost"
	"github.com/samber/lo"
)

// GroupMonitor aggregates child monitors. Its cost is the sum of its children's costs and
// its defects are exactly the children with non-zero cost
type GroupMonitor struct {
	tree *Tree
	id   ID
}

func (tree *Tree) NewGroup(label string) *GroupMonitor {
	id := tree.alloc(KindGroup)
	group := &GroupMonitor{tree: tree, id: id}
	n := tree.node(id)
	n.attached = true
	n.label = label
	tree.bind(id, group)
	return group
}

func (group *GroupMonitor) ID() ID          { return group.id }
func (group *GroupMonitor) Kind() Kind      { return KindGroup }
func (group *GroupMonitor) Tree() *Tree     { return group.tree }
func (group *GroupMonitor) Attached() bool  { return true }
func (group *GroupMonitor) Label() string   { return group.tree.node(group.id).label }
func (group *GroupMonitor) Cost() cost.Cost { return group.tree.node(group.id).cost }

// AttachToSoln attaches every detached descendant
func (group *GroupMonitor) AttachToSoln() {
	for _, child := range group.Children() {
		child.AttachCheck()
	}
}

func (group *GroupMonitor) AttachCheck() {
	group.AttachToSoln()
}

// DetachFromSoln detaches every attached descendant
func (group *GroupMonitor) DetachFromSoln() {
	for _, child := range group.Children() {
		if child.Attached() {
			child.DetachFromSoln()
		}
	}
}

func (group *GroupMonitor) Flush() {
	for _, child := range group.Children() {
		child.Flush()
	}
}

func (group *GroupMonitor) ChildCount() int {
	return len(group.tree.node(group.id).children)
}

func (group *GroupMonitor) Child(i int) Monitor {
	return group.tree.node(group.tree.node(group.id).children[i]).monitor
}

func (group *GroupMonitor) Children() []Monitor {
	return lo.Map(group.tree.node(group.id).children, func(id ID, _ int) Monitor { return group.tree.node(id).monitor })
}

func (group *GroupMonitor) DefectCount() int {
	return len(group.tree.node(group.id).defects)
}

func (group *GroupMonitor) Defect(i int) Monitor {
	return group.tree.node(group.tree.node(group.id).defects[i]).monitor
}

func (group *GroupMonitor) Defects() []Monitor {
	return lo.Map(group.tree.node(group.id).defects, func(id ID, _ int) Monitor { return group.tree.node(id).monitor })
}

// AddChild moves monitor under this group
func (group *GroupMonitor) AddChild(monitor Monitor) {
	tree := group.tree
	id := monitor.ID()
	tree.owned(monitor)

	// A freshly built or freshly moved monitor may still hold staged deviations
	monitor.Flush()

	//** Reject cycles
	for ancestor := group.id; ancestor.Valid(); ancestor = tree.node(ancestor).parent {
		if ancestor == id {
			log.Panicf("adding monitor %v to group %v would create a cycle", id, group.id)
		}
	}

	//** Unlink from the current parent
	if parent := tree.node(id).parent; parent.Valid() {
		tree.node(parent).monitor.(*GroupMonitor).DeleteChild(monitor)
	}

	//** Link
	n, g := tree.node(id), tree.node(group.id)
	n.parent = group.id
	n.indexInParent = len(g.children)
	g.children = append(g.children, id)

	if !n.cost.IsZero() {
		tree.addDefect(g, id, n)
		tree.changeCost(group.id, g.cost.Add(n.cost))
	}
}

func (group *GroupMonitor) DeleteChild(monitor Monitor) {
	tree := group.tree
	id := monitor.ID()
	n, g := tree.owned(monitor), tree.node(group.id)
	if n.parent != group.id {
		log.Panicf("monitor %v is not a child of group %v", id, group.id)
	}

	if !n.cost.IsZero() {
		tree.removeDefect(g, n)
	}

	i, last := n.indexInParent, len(g.children)-1
	lastId := g.children[last]
	g.children[i] = lastId
	tree.node(lastId).indexInParent = i
	g.children = g.children[:last]
	n.parent = Nil
	n.indexInParent = -1

	if !n.cost.IsZero() {
		tree.changeCost(group.id, g.cost.Sub(n.cost))
	}
}

// DefectSort orders the defects by decreasing cost, older monitors first on ties
func (group *GroupMonitor) DefectSort() {
	tree := group.tree
	g := tree.node(group.id)
	slices.SortFunc(g.defects, func(a, b ID) int {
		nodeA, nodeB := tree.node(a), tree.node(b)
		if comparison := nodeB.cost.Compare(nodeA.cost); comparison != 0 {
			return comparison
		}
		return cmp.Compare(nodeA.seq, nodeB.seq)
	})
	for i, id := range g.defects {
		tree.node(id).defectIndex = i
	}
}

// CostByType sums the cost of every descendant monitor of the given kind and counts them
func (group *GroupMonitor) CostByType(kind Kind) (total cost.Cost, count int) {
	tree := group.tree
	for _, id := range tree.node(group.id).children {
		n := tree.node(id)
		if n.kind == KindGroup {
			childCost, childCount := n.monitor.(*GroupMonitor).CostByType(kind)
			total, count = total.Add(childCost), count+childCount
		} else if n.kind == kind {
			total, count = total.Add(n.cost), count+1
		}
	}
	return total, count
}

func (group *GroupMonitor) BeginTrace(trace *Trace) {
	if trace.open {
		log.Panicf("trace is already open")
	}
	trace.tree = group.tree
	trace.group = group.id
	trace.entries = trace.entries[:0]
	trace.open = true

	g := group.tree.node(group.id)
	g.traces = append(g.traces, trace)
	group.tree.openTraces++
}

func (group *GroupMonitor) EndTrace(trace *Trace) {
	g := group.tree.node(group.id)
	i := slices.Index(g.traces, trace)
	if i < 0 {
		log.Panicf("trace is not open on group %v", group.id)
	}
	g.traces = slices.Delete(g.traces, i, i+1)
	group.tree.openTraces--
	trace.open = false
}

func (group *GroupMonitor) clone(ctx *CopyContext) Monitor {
	return Copy(ctx, group, func(dst, src *GroupMonitor) {
		dst.tree = src.tree.Clone(ctx)
		dst.id = src.id
	})
}
