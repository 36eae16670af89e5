package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fabricdb/arch"
)

// Activity is a hook that counts the binding transitions of an
// architecture. Attach it with AcceptHook before placement starts.
type Activity struct {
	counts map[*sim.HookPos]int
}

// NewActivity creates an Activity with every count at zero.
func NewActivity() *Activity {
	return &Activity{counts: make(map[*sim.HookPos]int)}
}

// Func counts one transition.
func (t *Activity) Func(ctx sim.HookCtx) {
	t.counts[ctx.Pos]++
}

// Count returns how many times the position was reached.
func (t *Activity) Count(pos *sim.HookPos) int {
	return t.counts[pos]
}

// Table lays out the counts, one row per resource kind.
func (t *Activity) Table() table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Binding Activity")
	tw.AppendHeader(table.Row{"Resource", "Bound", "Unbound"})

	tw.AppendRow(table.Row{"Bels",
		t.counts[arch.HookPosBelBound], t.counts[arch.HookPosBelUnbound]})
	tw.AppendRow(table.Row{"Wires",
		t.counts[arch.HookPosWireBound], t.counts[arch.HookPosWireUnbound]})
	tw.AppendRow(table.Row{"Pips",
		t.counts[arch.HookPosPipBound], t.counts[arch.HookPosPipUnbound]})

	return tw
}
