package monitor

import "github.com/limaJavier/hstt/pkg/cost"

type TraceEntry struct {
	Monitor ID
	OldCost cost.Cost
}

// Trace records the cost every monitor of a group's subtree had before it changed,
// between BeginTrace and EndTrace
type Trace struct {
	tree    *Tree
	group   ID
	entries []TraceEntry
	open    bool
}

func NewTrace() *Trace {
	return &Trace{group: Nil}
}

func (trace *Trace) Open() bool { return trace.open }

func (trace *Trace) Len() int { return len(trace.entries) }

func (trace *Trace) Entry(i int) TraceEntry { return trace.entries[i] }

func (trace *Trace) Entries() []TraceEntry { return trace.entries }

// OldCost is the cost the monitor had when the trace first saw it change
func (trace *Trace) OldCost(id ID) (cost.Cost, bool) {
	for _, entry := range trace.entries {
		if entry.Monitor == id {
			return entry.OldCost, true
		}
	}
	return cost.Zero, false
}

// Monitors lists each traced monitor once, in order of first change
func (trace *Trace) Monitors() []ID {
	seen := make(map[ID]bool, len(trace.entries))
	ids := make([]ID, 0, len(trace.entries))
	for _, entry := range trace.entries {
		if !seen[entry.Monitor] {
			seen[entry.Monitor] = true
			ids = append(ids, entry.Monitor)
		}
	}
	return ids
}

// Worsened lists the traced leaf monitors whose current cost exceeds their pre-trace cost
func (trace *Trace) Worsened() []Monitor {
	worsened := make([]Monitor, 0)
	for _, id := range trace.Monitors() {
		n := trace.tree.node(id)
		if n.kind == KindGroup {
			continue
		}
		if oldCost, _ := trace.OldCost(id); oldCost.Less(n.cost) {
			worsened = append(worsened, n.monitor)
		}
	}
	return worsened
}
