// Package report renders the utilization and the bindings of an
// architecture as tables for humans.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/netlist"
)

// TypeUsage counts the bels of one type and how many of them are bound.
type TypeUsage struct {
	Type  string
	Total int
	Used  int
}

// Summary is a snapshot of how much of the fabric is in use.
type Summary struct {
	Chip   string
	Family string
	GridX  int
	GridY  int

	Wires      int
	BoundWires int
	Pips       int
	BoundPips  int
	Bels       int
	BoundBels  int

	BelTypes []TypeUsage
}

// Collect takes a snapshot of the architecture.
func Collect(a *arch.Arch) Summary {
	s := Summary{
		Chip:   a.ChipName(),
		Family: a.Family(),
		GridX:  a.GridDimX(),
		GridY:  a.GridDimY(),
	}

	for _, w := range a.Wires() {
		s.Wires++
		if !a.CheckWireAvail(w) {
			s.BoundWires++
		}
	}

	for _, p := range a.Pips() {
		s.Pips++
		if !a.CheckPipAvail(p) {
			s.BoundPips++
		}
	}

	byType := make(map[string]*TypeUsage)
	for _, b := range a.Bels() {
		typ := a.Str(a.BelType(b))

		u, ok := byType[typ]
		if !ok {
			u = &TypeUsage{Type: typ}
			byType[typ] = u
		}

		s.Bels++
		u.Total++

		if !a.CheckBelAvail(b) {
			s.BoundBels++
			u.Used++
		}
	}

	for _, u := range byType {
		s.BelTypes = append(s.BelTypes, *u)
	}
	sort.Slice(s.BelTypes, func(i, j int) bool {
		return s.BelTypes[i].Type < s.BelTypes[j].Type
	})

	return s
}

func percent(used, total int) string {
	if total == 0 {
		return "-"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(used)/float64(total))
}

// Table lays out the summary, one row per resource kind and bel type.
func (s Summary) Table() table.Writer {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Utilization of %s (%s, %dx%d)",
		s.Chip, s.Family, s.GridX, s.GridY))
	t.AppendHeader(table.Row{"Resource", "Used", "Total", "Usage"})

	t.AppendRow(table.Row{"Wires", s.BoundWires, s.Wires, percent(s.BoundWires, s.Wires)})
	t.AppendRow(table.Row{"Pips", s.BoundPips, s.Pips, percent(s.BoundPips, s.Pips)})
	t.AppendRow(table.Row{"Bels", s.BoundBels, s.Bels, percent(s.BoundBels, s.Bels)})

	if len(s.BelTypes) > 0 {
		t.AppendSeparator()
	}

	for _, u := range s.BelTypes {
		t.AppendRow(table.Row{"  " + u.Type, u.Used, u.Total, percent(u.Used, u.Total)})
	}

	return t
}

func portRefString(nl *netlist.Netlist, ref netlist.PortRef) string {
	if !ref.Cell.Valid() {
		return "-"
	}

	return nl.CellName(ref.Cell) + "." + nl.Symbols().Str(ref.Port)
}

// NetTable lists every net with its driver, its sinks and the routing it
// owns.
func NetTable(a *arch.Arch) table.Writer {
	nl := a.Netlist()

	t := table.NewWriter()
	t.SetTitle("Nets")
	t.AppendHeader(table.Row{"Net", "Driver", "Users", "Wires", "Pips"})

	for _, id := range nl.Nets() {
		n := nl.Net(id)

		pips := 0
		for _, pm := range n.Wires {
			if pm.Pip.Valid() {
				pips++
			}
		}

		t.AppendRow(table.Row{
			nl.NetName(id),
			portRefString(nl, n.Driver),
			len(n.Users),
			len(n.Wires),
			pips,
		})
	}

	return t
}

// CellTable lists every cell with the bel it is placed on.
func CellTable(a *arch.Arch) table.Writer {
	nl := a.Netlist()

	t := table.NewWriter()
	t.SetTitle("Cells")
	t.AppendHeader(table.Row{"Cell", "Type", "Bel", "Location", "Strength"})

	for _, id := range nl.Cells() {
		c := nl.Cell(id)

		bel, loc := "-", "-"
		if c.Bel.Valid() {
			bel = a.Str(a.BelName(c.Bel))
			loc = a.BelLocation(c.Bel).String()
		}

		t.AppendRow(table.Row{
			nl.CellName(id),
			a.Str(c.Type),
			bel,
			loc,
			c.BelStrength,
		})
	}

	return t
}

// Write renders the utilization table, followed by the cell and net tables
// when the netlist is not empty.
func Write(w io.Writer, a *arch.Arch) {
	fmt.Fprintln(w, Collect(a).Table().Render())

	nl := a.Netlist()
	if len(nl.Cells()) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, CellTable(a).Render())
	}

	if len(nl.Nets()) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, NetTable(a).Render())
	}
}
