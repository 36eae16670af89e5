package report_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/report"
)

var _ = Describe("Report", func() {
	var a *arch.Arch

	BeforeEach(func() {
		db := chipdb.NewBuilder(arch.DefaultFamily, 1, 2).
			AddBel(0, 0, "LUT0").
			AddBel(0, 0, "LUT1").
			AddBel(0, 1, "IOBA",
				chipdb.Port{Wire: "PI0", Name: "I"},
				chipdb.Port{Wire: "PO0", Name: "O"},
				chipdb.Port{Wire: "POE0", Name: "OE"}).
			AddPip(0, 0, "F0", "A1").
			Build()

		a = arch.MustNew(db)
	})

	It("should count free and bound resources", func() {
		nl := a.Netlist()
		cell := nl.AddCell("lut", "SLICE")
		net := nl.AddNet("n")
		pip := a.PipByName(a.ID("R1C1_F0_A1"))

		a.BindBel(a.BelByName(a.ID("R1C1_SLICE0")), cell, fabric.StrengthStrong)
		a.BindPip(pip, net, fabric.StrengthStrong)

		s := report.Collect(a)

		Expect(s.Bels).To(Equal(3))
		Expect(s.BoundBels).To(Equal(1))
		Expect(s.Pips).To(Equal(1))
		Expect(s.BoundPips).To(Equal(1))
		Expect(s.BoundWires).To(Equal(1))
		Expect(s.Wires).To(Equal(len(a.Wires())))
		Expect(s.BelTypes).To(Equal([]report.TypeUsage{
			{Type: "IOB", Total: 1, Used: 0},
			{Type: "SLICE", Total: 2, Used: 1},
		}))
	})

	It("should render the utilization table", func() {
		out := report.Collect(a).Table().Render()

		Expect(out).To(ContainSubstring("Utilization of GW1N-9"))
		Expect(out).To(ContainSubstring("SLICE"))
		Expect(out).To(ContainSubstring("0.0%"))
	})

	It("should only list cells and nets when there are some", func() {
		var buf bytes.Buffer
		report.Write(&buf, a)
		Expect(buf.String()).NotTo(ContainSubstring("Nets"))

		nl := a.Netlist()
		cell := nl.AddCell("lut", "SLICE")
		net := nl.AddNet("lut_f")
		nl.Connect(cell, "F", fabric.PortOut, net)
		a.BindBel(a.BelByName(a.ID("R1C1_SLICE1")), cell, fabric.StrengthWeak)

		buf.Reset()
		report.Write(&buf, a)

		out := buf.String()
		Expect(out).To(ContainSubstring("Nets"))
		Expect(out).To(ContainSubstring("lut.F"))
		Expect(out).To(ContainSubstring("R1C1_SLICE1"))
		Expect(out).To(ContainSubstring("weak"))
	})

	It("should count binding activity through hooks", func() {
		activity := report.NewActivity()
		a.AcceptHook(activity)

		nl := a.Netlist()
		cell := nl.AddCell("pad", "IOB")
		bel := a.BelByName(a.ID("R1C2_IOBA"))
		net := nl.AddNet("n")
		pip := a.PipByName(a.ID("R1C1_F0_A1"))

		a.BindBel(bel, cell, fabric.StrengthStrong)
		a.UnbindBel(bel)
		a.BindPip(pip, net, fabric.StrengthStrong)

		Expect(activity.Count(arch.HookPosBelBound)).To(Equal(1))
		Expect(activity.Count(arch.HookPosBelUnbound)).To(Equal(1))
		Expect(activity.Count(arch.HookPosPipBound)).To(Equal(1))
		Expect(activity.Count(arch.HookPosWireBound)).To(Equal(1))
		Expect(activity.Table().Render()).To(ContainSubstring("Binding Activity"))
	})
})
