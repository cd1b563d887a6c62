package monitor

import (
	"fmt"
	"log"
	"slices"

	"github.com/limaJavier/hstt/pkg/cost"
)

// ID is a generation-checked handle into a Tree's arena
type ID struct {
	index int32
	gen   uint32
}

var Nil = ID{index: -1}

func (id ID) Valid() bool {
	return id.index >= 0
}

func (id ID) String() string {
	if !id.Valid() {
		return "nil"
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// Monitor is a cost-bearing observer of one aspect of a solution
type Monitor interface {
	ID() ID
	Kind() Kind
	Cost() cost.Cost
	Attached() bool
	AttachToSoln()
	DetachFromSoln()
	// Attaches the monitor unless it is already attached
	AttachCheck()
	// Publishes staged deviation changes into the monitor's cost
	Flush()

	clone(ctx *CopyContext) Monitor
}

// ConstraintMonitor is a leaf monitor watching one constraint instance
type ConstraintMonitor interface {
	Monitor
	Constraint() *Constraint
	DeviationCount() int
	Deviation(i int) int
	DeviationDescription(i int) string
}

type node struct {
	gen      uint32
	live     bool
	kind     Kind
	seq      uint64 // Creation index, used to break ties deterministically
	attached bool
	cost     cost.Cost

	parent        ID
	indexInParent int
	defectIndex   int // Position in the parent's defects, -1 if cost is zero or there is no parent

	// Groups only
	label    string
	children []ID
	defects  []ID
	traces   []*Trace

	monitor Monitor
}

// Tree is the arena owning every monitor of one solution
type Tree struct {
	nodes      []node
	free       []int32
	seq        uint64
	openTraces int
}

func NewTree() *Tree {
	return &Tree{}
}

func (tree *Tree) alloc(kind Kind) ID {
	var index int32
	if len(tree.free) > 0 {
		index = tree.free[len(tree.free)-1]
		tree.free = tree.free[:len(tree.free)-1]
	} else {
		index = int32(len(tree.nodes))
		tree.nodes = append(tree.nodes, node{})
	}

	n := &tree.nodes[index]
	gen := n.gen + 1
	*n = node{
		gen:           gen,
		live:          true,
		kind:          kind,
		seq:           tree.seq,
		parent:        Nil,
		indexInParent: -1,
		defectIndex:   -1,
	}
	tree.seq++
	return ID{index: index, gen: gen}
}

func (tree *Tree) bind(id ID, monitor Monitor) {
	tree.node(id).monitor = monitor
}

func (tree *Tree) node(id ID) *node {
	if id.index < 0 || int(id.index) >= len(tree.nodes) {
		log.Panicf("monitor handle %v is out of range", id)
	}
	n := &tree.nodes[id.index]
	if !n.live || n.gen != id.gen {
		log.Panicf("monitor handle %v is stale", id)
	}
	return n
}

// Monitor resolves a handle
func (tree *Tree) Monitor(id ID) Monitor {
	return tree.node(id).monitor
}

// Len is the number of live monitors
func (tree *Tree) Len() int {
	return len(tree.nodes) - len(tree.free)
}

// Parent returns the group holding the monitor, or nil
func (tree *Tree) Parent(monitor Monitor) *GroupMonitor {
	n := tree.owned(monitor)
	if !n.parent.Valid() {
		return nil
	}
	return tree.node(n.parent).monitor.(*GroupMonitor)
}

// DefectIndex is the monitor's position in its parent's defects, -1 when it is not a defect
func (tree *Tree) DefectIndex(monitor Monitor) int {
	return tree.owned(monitor).defectIndex
}

func (tree *Tree) owned(monitor Monitor) *node {
	n := tree.node(monitor.ID())
	if n.monitor != monitor {
		log.Panicf("monitor %v does not belong to this tree", monitor.ID())
	}
	return n
}

// changeCost stores a monitor's new cost, keeps the parent's defects in step and
// propagates the difference up to the root
func (tree *Tree) changeCost(id ID, newCost cost.Cost) {
	n := tree.node(id)
	oldCost := n.cost
	if oldCost == newCost {
		return
	}
	if !n.attached && !newCost.IsZero() {
		log.Panicf("monitor %v is detached and cannot carry cost %v", id, newCost)
	}

	if tree.openTraces > 0 {
		tree.record(id, oldCost)
	}
	n.cost = newCost

	if !n.parent.Valid() {
		return
	}
	parent := tree.node(n.parent)
	if oldCost.IsZero() {
		tree.addDefect(parent, id, n)
	} else if newCost.IsZero() {
		tree.removeDefect(parent, n)
	}
	tree.changeCost(n.parent, parent.cost.Sub(oldCost).Add(newCost))
}

// Every open trace on an ancestor of id sees the old cost
func (tree *Tree) record(id ID, oldCost cost.Cost) {
	for ancestor := tree.node(id).parent; ancestor.Valid(); ancestor = tree.node(ancestor).parent {
		for _, trace := range tree.node(ancestor).traces {
			trace.entries = append(trace.entries, TraceEntry{Monitor: id, OldCost: oldCost})
		}
	}
}

func (tree *Tree) addDefect(parent *node, id ID, n *node) {
	n.defectIndex = len(parent.defects)
	parent.defects = append(parent.defects, id)
}

func (tree *Tree) removeDefect(parent *node, n *node) {
	i, last := n.defectIndex, len(parent.defects)-1
	lastId := parent.defects[last]
	parent.defects[i] = lastId
	tree.node(lastId).defectIndex = i
	parent.defects = parent.defects[:last]
	n.defectIndex = -1
}

// Unregister destroys a detached monitor that has no parent. Its handle becomes stale
func (tree *Tree) Unregister(monitor Monitor) {
	n := tree.owned(monitor)
	if n.parent.Valid() {
		log.Panicf("monitor %v must be removed from its parent before being unregistered", monitor.ID())
	}
	if n.kind == KindGroup {
		if len(n.children) > 0 {
			log.Panicf("group monitor %v still has %d children", monitor.ID(), len(n.children))
		}
	} else if n.attached {
		log.Panicf("monitor %v must be detached before being unregistered", monitor.ID())
	}

	index := monitor.ID().index
	*n = node{gen: n.gen}
	tree.free = append(tree.free, index)
}

// Clone duplicates the whole arena. Handles keep their meaning in the clone
func (tree *Tree) Clone(ctx *CopyContext) *Tree {
	return Copy(ctx, tree, func(dst, src *Tree) { cloneTree(ctx, dst, src) })
}

func cloneTree(ctx *CopyContext, dst, src *Tree) {
	if src.openTraces > 0 {
		log.Panicf("cannot clone a monitor tree with %d open traces", src.openTraces)
	}
	dst.seq = src.seq
	dst.free = slices.Clone(src.free)
	dst.nodes = make([]node, len(src.nodes))
	for i, n := range src.nodes {
		n.children = slices.Clone(n.children)
		n.defects = slices.Clone(n.defects)
		n.traces = nil
		dst.nodes[i] = n
	}
	for i := range dst.nodes {
		if src.nodes[i].monitor != nil {
			dst.nodes[i].monitor = src.nodes[i].monitor.clone(ctx)
		}
	}
}
