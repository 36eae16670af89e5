package store_test

import (
	"context"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/chipdb"
	"github.com/sarchlab/fabricdb/fabric"
	"github.com/sarchlab/fabricdb/store"
)

var _ = Describe("SQLiteStore", func() {
	var (
		ctx  context.Context
		a    *arch.Arch
		s    *store.SQLiteStore
		path string
	)

	BeforeEach(func() {
		ctx = context.Background()

		db := chipdb.NewBuilder(arch.DefaultFamily, 1, 1).
			AddBel(0, 0, "LUT6").
			AddPip(0, 0, "F6", "A7").
			AddPip(0, 0, "F6", "B7").
			Build()
		a = arch.MustNew(db)

		path = filepath.Join(GinkgoT().TempDir(), "fabric.db")

		var err error
		s, err = store.Open(path)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(s.Close)
	})

	It("should export every resource of the graph", func() {
		Expect(s.SaveGraph(ctx, a)).To(Succeed())

		c, err := s.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Wires).To(Equal(len(a.Wires())))
		Expect(c.Pips).To(Equal(2))
		Expect(c.Bels).To(Equal(1))
		Expect(c.BelPins).To(Equal(len(a.BelPins(a.Bels()[0]))))
		Expect(c.WireBindings).To(BeZero())

		down, err := s.Downhill(ctx, "R1C1_F6")
		Expect(err).NotTo(HaveOccurred())
		Expect(down).To(Equal([]string{"R1C1_A7", "R1C1_B7"}))
	})

	It("should replace the previous snapshot", func() {
		Expect(s.SaveGraph(ctx, a)).To(Succeed())
		Expect(s.SaveGraph(ctx, a)).To(Succeed())

		c, err := s.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Pips).To(Equal(2))
	})

	It("should export the current bindings", func() {
		nl := a.Netlist()
		cell := nl.AddCell("lut", "SLICE")
		net := nl.AddNet("lut_f")
		bel := a.Bels()[0]
		pip := a.PipByName(a.ID("R1C1_F6_A7"))

		a.BindBel(bel, cell, fabric.StrengthStrong)
		a.BindWire(a.PipSrcWire(pip), net, fabric.StrengthStrong)
		a.BindPip(pip, net, fabric.StrengthWeak)

		Expect(s.SaveGraph(ctx, a)).To(Succeed())
		Expect(s.SaveBindings(ctx, a)).To(Succeed())

		c, err := s.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.WireBindings).To(Equal(2))
		Expect(c.BelBindings).To(Equal(1))

		Expect(s.NetOf(ctx, "R1C1_A7")).To(Equal("lut_f"))
		Expect(s.NetOf(ctx, "R1C1_B7")).To(BeEmpty())

		a.UnbindPip(pip)
		Expect(s.SaveBindings(ctx, a)).To(Succeed())

		c, err = s.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.WireBindings).To(Equal(1))
	})

	It("should reopen an existing export", func() {
		Expect(s.SaveGraph(ctx, a)).To(Succeed())
		Expect(s.Close()).To(Succeed())

		again, err := store.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer again.Close()

		c, err := again.Counts(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Bels).To(Equal(1))
	})
})
