package chipdb

// Port binds a tile-local wire to a bel port name.
type Port struct {
	Wire string
	Name string
}

// Builder assembles a Database from plain strings. It is used by the YAML
// codec and to create small synthetic fabrics.
type Builder struct {
	db      *Database
	strings map[string]int32
}

// NewBuilder creates a builder for an empty rows x cols fabric.
func NewBuilder(family string, rows, cols int) *Builder {
	return &Builder{
		db: &Database{
			Version: Version,
			Family:  family,
			Device:  family,
			Rows:    rows,
			Cols:    cols,
			Grid:    make([]Tile, rows*cols),
		},
		strings: make(map[string]int32),
	}
}

// WithDevice sets the device name.
func (b *Builder) WithDevice(device string) *Builder {
	b.db.Device = device
	return b
}

// ID returns the string index of s, adding it to the string table if needed.
func (b *Builder) ID(s string) int32 {
	if id, ok := b.strings[s]; ok {
		return id
	}

	id := int32(len(b.db.Strings))
	b.db.Strings = append(b.db.Strings, s)
	b.strings[s] = id

	return id
}

// AddPip declares a pip from src to dst in the tile.
func (b *Builder) AddPip(row, col int, src, dst string) *Builder {
	t := b.db.Tile(row, col)
	t.Pips = append(t.Pips, Pair{Src: b.ID(src), Dst: b.ID(dst)})

	return b
}

// AddClockPip declares a pip from src to dst on the clock network.
func (b *Builder) AddClockPip(row, col int, src, dst string) *Builder {
	t := b.db.Tile(row, col)
	t.ClockPips = append(t.ClockPips, Pair{Src: b.ID(src), Dst: b.ID(dst)})

	return b
}

// AddBel declares a bel of the given type tag in the tile.
func (b *Builder) AddBel(row, col int, typ string, ports ...Port) *Builder {
	bel := Bel{Type: b.ID(typ)}
	for _, p := range ports {
		bel.Ports = append(bel.Ports, Pair{Src: b.ID(p.Wire), Dst: b.ID(p.Name)})
	}

	t := b.db.Tile(row, col)
	t.Bels = append(t.Bels, bel)

	return b
}

// AddAlias makes the tile's wire dst an alias of its wire src.
func (b *Builder) AddAlias(row, col int, src, dst string) *Builder {
	t := b.db.Tile(row, col)
	t.Aliases = append(t.Aliases, Pair{Src: b.ID(src), Dst: b.ID(dst)})

	return b
}

// AddGlobalAlias makes the wire dst of tile (dstRow, dstCol) an alias of the
// wire src of tile (srcRow, srcCol).
func (b *Builder) AddGlobalAlias(
	dstRow, dstCol int, dst string,
	srcRow, srcCol int, src string,
) *Builder {
	b.db.Aliases = append(b.db.Aliases, GlobalAlias{
		DstRow: int32(dstRow),
		DstCol: int32(dstCol),
		DstID:  b.ID(dst),
		SrcRow: int32(srcRow),
		SrcCol: int32(srcCol),
		SrcID:  b.ID(src),
	})

	return b
}

// Build returns the assembled Database. The builder must not be used
// afterwards.
func (b *Builder) Build() *Database {
	db := b.db
	b.db = nil

	return db
}
