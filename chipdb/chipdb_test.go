package chipdb_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fabricdb/chipdb"
)

const smallFabric = `
family: GW1N-1
rows: 2
cols: 2
tiles:
  - row: 0
    col: 0
    pips:
      - {src: N121, dst: A0}
      - {src: F0, dst: S101}
    clock_pips:
      - {src: GB00, dst: CLK0}
    bels:
      - type: LUT4
      - type: IOBA
        ports:
          - {wire: A0, name: I}
          - {wire: F0, name: O}
          - {wire: B0, name: OE}
    aliases:
      - {src: E110, dst: S100}
aliases:
  - dst: {row: 1, col: 0, wire: N121}
    src: {row: 1, col: 1, wire: W111}
`

func sampleDatabase() *chipdb.Database {
	return chipdb.NewBuilder("GW1N-1", 2, 2).
		WithDevice("GW1N-1-QFN48").
		AddPip(0, 0, "N121", "A0").
		AddClockPip(0, 0, "GB00", "CLK0").
		AddBel(0, 0, "LUT4").
		AddBel(0, 1, "IOBA",
			chipdb.Port{Wire: "A0", Name: "I"},
			chipdb.Port{Wire: "F0", Name: "O"},
			chipdb.Port{Wire: "B0", Name: "OE"}).
		AddAlias(1, 1, "E110", "S100").
		AddGlobalAlias(1, 0, "N121", 1, 1, "W111").
		Build()
}

var _ = Describe("Builder", func() {
	It("should share string indexes", func() {
		b := chipdb.NewBuilder("GW1N-1", 1, 1)

		Expect(b.ID("A0")).To(Equal(b.ID("A0")))
		Expect(b.ID("A0")).NotTo(Equal(b.ID("B0")))
	})

	It("should place records in their tiles", func() {
		db := sampleDatabase()

		Expect(db.Grid).To(HaveLen(4))
		Expect(db.Tile(0, 0).Pips).To(HaveLen(1))
		Expect(db.Tile(0, 0).ClockPips).To(HaveLen(1))
		Expect(db.Tile(0, 1).Bels).To(HaveLen(1))
		Expect(db.Tile(1, 1).Aliases).To(HaveLen(1))
		Expect(db.Validate()).To(Succeed())
	})

	It("should look up bel ports by name", func() {
		db := sampleDatabase()
		bel := db.Tile(0, 1).Bels[0]

		wire, ok := bel.Port(indexOf(db, "O"))

		Expect(ok).To(BeTrue())
		Expect(db.Str(wire)).To(Equal("F0"))

		_, ok = bel.Port(indexOf(db, "CLK0"))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Validate", func() {
	It("should reject a grid of the wrong size", func() {
		db := sampleDatabase()
		db.Grid = db.Grid[:3]

		Expect(db.Validate()).To(MatchError(ContainSubstring("grid has 3 tiles")))
	})

	It("should reject unknown string indexes", func() {
		db := sampleDatabase()
		db.Tile(1, 0).Pips = []chipdb.Pair{{Src: 0, Dst: 999}}

		Expect(db.Validate()).To(MatchError(ContainSubstring("tile R2C1")))
	})

	It("should reject global aliases outside the grid", func() {
		db := sampleDatabase()
		db.Aliases[0].SrcRow = 7

		Expect(db.Validate()).To(MatchError(ContainSubstring("outside the grid")))
	})
})

var _ = Describe("Binary encoding", func() {
	It("should read back what it writes", func() {
		db := sampleDatabase()
		buf := new(bytes.Buffer)

		Expect(chipdb.Write(buf, db)).To(Succeed())
		got, err := chipdb.Read(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(got.Family).To(Equal("GW1N-1"))
		Expect(got.Device).To(Equal("GW1N-1-QFN48"))
		Expect(got.Strings).To(Equal(db.Strings))
		Expect(got.Aliases).To(Equal(db.Aliases))
		Expect(got.Tile(0, 1).Bels).To(Equal(db.Tile(0, 1).Bels))
		Expect(got.Tile(0, 0).ClockPips).To(Equal(db.Tile(0, 0).ClockPips))
	})

	It("should reject a bad magic", func() {
		_, err := chipdb.Read(strings.NewReader("NOPE and some more bytes"))

		Expect(err).To(MatchError(ContainSubstring("bad magic")))
	})

	It("should reject a truncated file", func() {
		buf := new(bytes.Buffer)
		Expect(chipdb.Write(buf, sampleDatabase())).To(Succeed())

		_, err := chipdb.Read(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))

		Expect(err).To(HaveOccurred())
	})

	// prefix writes the fixed head of a binary file up to the string table.
	prefix := func(rows, cols uint32, counts ...uint32) *bytes.Buffer {
		buf := new(bytes.Buffer)
		buf.WriteString("FDBC")
		for _, v := range append([]uint32{chipdb.Version, 0, 0, rows, cols}, counts...) {
			Expect(binary.Write(buf, binary.LittleEndian, v)).To(Succeed())
		}

		return buf
	}

	It("should reject a tile count that does not match the grid", func() {
		buf := prefix(1, 1, 0, 1<<26)

		_, err := chipdb.Read(buf)

		Expect(err).To(MatchError(ContainSubstring("grid is 1x1")))
	})

	It("should reject an oversized grid before reading tiles", func() {
		buf := prefix(1<<20, 1<<20, 0, 1<<26)

		_, err := chipdb.Read(buf)

		Expect(err).To(MatchError(ContainSubstring("tiles")))
	})

	It("should fail on huge counts that the stream does not back", func() {
		for _, buf := range []*bytes.Buffer{
			prefix(1, 1, 1<<26-1),
			prefix(1, 1, 1, 1<<26-1),
			prefix(1, 1, 0, 1, 1<<26-1),
			prefix(1, 1, 0, 1, 0, 0, 1<<26-1),
		} {
			_, err := chipdb.Read(buf)

			Expect(err).To(MatchError(ContainSubstring("read chip description")))
		}
	})

	It("should reject a length beyond the limit", func() {
		buf := prefix(1, 1, 1<<26+1)

		_, err := chipdb.Read(buf)

		Expect(err).To(MatchError(ContainSubstring("out of range")))
	})

	It("should reject another version", func() {
		db := sampleDatabase()
		db.Version = chipdb.Version + 1
		buf := new(bytes.Buffer)
		Expect(chipdb.Write(buf, db)).To(Succeed())

		_, err := chipdb.Read(buf)

		Expect(err).To(MatchError(ContainSubstring("version")))
	})
})

var _ = Describe("YAML encoding", func() {
	It("should decode a hand-written fabric", func() {
		db, err := chipdb.DecodeYAML(strings.NewReader(smallFabric))

		Expect(err).NotTo(HaveOccurred())
		Expect(db.Family).To(Equal("GW1N-1"))
		Expect(db.Device).To(Equal("GW1N-1"))
		Expect(db.Tile(0, 0).Pips).To(HaveLen(2))
		Expect(db.Tile(0, 0).Bels).To(HaveLen(2))
		Expect(db.Tile(0, 0).Bels[1].Ports).To(HaveLen(3))
		Expect(db.Tile(1, 1).Pips).To(BeEmpty())
		Expect(db.Aliases).To(HaveLen(1))
		Expect(db.Str(db.Aliases[0].SrcID)).To(Equal("W111"))
	})

	It("should reject unknown fields", func() {
		_, err := chipdb.DecodeYAML(strings.NewReader("family: X\nrows: 1\ncols: 1\nbogus: 1\n"))

		Expect(err).To(HaveOccurred())
	})

	It("should reject tiles outside the grid", func() {
		src := "family: X\nrows: 1\ncols: 1\ntiles:\n  - {row: 3, col: 0}\n"

		_, err := chipdb.DecodeYAML(strings.NewReader(src))

		Expect(err).To(MatchError(ContainSubstring("outside")))
	})

	It("should keep the content through encode and decode", func() {
		db := sampleDatabase()
		buf := new(bytes.Buffer)

		Expect(chipdb.EncodeYAML(buf, db)).To(Succeed())
		got, err := chipdb.DecodeYAML(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(got.Device).To(Equal(db.Device))
		Expect(got.Tile(0, 1).Bels[0].Ports).To(HaveLen(3))
		Expect(got.Str(got.Tile(1, 1).Aliases[0].Dst)).To(Equal("S100"))
	})
})

var _ = Describe("Load", func() {
	It("should pick the codec from the extension", func() {
		dir := GinkgoT().TempDir()
		yamlPath := filepath.Join(dir, "fabric.yaml")
		binPath := filepath.Join(dir, "fabric.bin")

		Expect(os.WriteFile(yamlPath, []byte(smallFabric), 0o644)).To(Succeed())
		Expect(chipdb.WriteFile(binPath, sampleDatabase())).To(Succeed())

		fromYAML, err := chipdb.Load(yamlPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromYAML.Rows).To(Equal(2))

		fromBin, err := chipdb.Load(binPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(fromBin.Device).To(Equal("GW1N-1-QFN48"))
	})

	It("should report missing files", func() {
		_, err := chipdb.Load(filepath.Join(GinkgoT().TempDir(), "none.bin"))

		Expect(err).To(HaveOccurred())
	})
})

func indexOf(db *chipdb.Database, s string) int32 {
	for i, str := range db.Strings {
		if str == s {
			return int32(i)
		}
	}

	return chipdb.NoID
}
