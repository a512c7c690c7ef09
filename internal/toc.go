package internal

// TOC (=table of content) lists all resources of a generated artifact pair.
// The order of entries in the TOC reflects the order of array definitions in the output.
type TOC []Entry

// Entry represents a single embedded resource.
type Entry struct {
	Name string // Symbol name of the byte array
	Path string // Source file
}

// SizeSymbol returns the name of the size constant emitted next to the array.
func (e Entry) SizeSymbol() string {
	return SizeSymbol(e.Name)
}

// SizeSymbol returns the name of the size constant belonging to the given array.
func SizeSymbol(name string) string {
	return name + "_size"
}

// Collision describes two entries that emit the same C symbol.
type Collision struct {
	Symbol string
	First  Entry
	Second Entry
}

// Collisions returns every pair of entries that would emit the same symbol.
// Both the array name and the size constant of each entry are considered,
// so a resource called "a_size" collides with the size constant of "a".
func (t TOC) Collisions() []Collision {
	owners := make(map[string]Entry, 2*len(t))
	var found []Collision

	claim := func(symbol string, e Entry) {
		if prev, ok := owners[symbol]; ok {
			found = append(found, Collision{Symbol: symbol, First: prev, Second: e})
			return
		}
		owners[symbol] = e
	}
	for _, e := range t {
		claim(e.Name, e)
		claim(e.SizeSymbol(), e)
	}
	return found
}

// Names returns the symbol names in TOC order.
func (t TOC) Names() []string {
	names := make([]string, len(t))
	for i, e := range t {
		names[i] = e.Name
	}
	return names
}
