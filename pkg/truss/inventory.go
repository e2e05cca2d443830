package truss

import "fmt"

// ShapeChange is a bit set of the size changes available to a selection.
type ShapeChange int

const (
	CanIncreaseSize ShapeChange = 1 << iota
	CanDecreaseSize
)

// Inventory describes the stock a member may be built from. Materials and
// sections are named; sizes are an ordered range [0, Sizes).
type Inventory struct {
	Materials []string `json:"materials" yaml:"materials" validate:"min=1,dive,required"`
	Sections  []string `json:"sections" yaml:"sections" validate:"min=1,dive,required"`
	Sizes     int      `json:"sizes" yaml:"sizes" validate:"min=1"`
}

// DefaultInventory returns the stock catalog used when none is configured.
func DefaultInventory() Inventory {
	return Inventory{
		Materials: []string{"carbon-steel", "hsla-steel", "quenched-tempered-steel"},
		Sections:  []string{"solid-bar", "hollow-tube"},
		Sizes:     33,
	}
}

// DefaultStock is the stock new members get when the caller has no
// preference.
func (inv Inventory) DefaultStock() Stock {
	return Stock{Material: 0, Section: 0, Size: min(inv.Sizes-1, 15)}
}

// Valid reports whether every field of s names inventory stock.
func (inv Inventory) Valid(s Stock) bool {
	return s.Material >= 0 && s.Material < len(inv.Materials) &&
		s.Section >= 0 && s.Section < len(inv.Sections) &&
		s.Size >= 0 && s.Size < inv.Sizes
}

// Resize returns s with its size moved by offset, clamped to the inventory.
func (inv Inventory) Resize(s Stock, offset int) Stock {
	s.Size = max(0, min(inv.Sizes-1, s.Size+offset))
	return s
}

// AllowedShapeChanges reports which size changes would alter at least one
// of the given stocks.
func (inv Inventory) AllowedShapeChanges(stocks []Stock) ShapeChange {
	var mask ShapeChange
	for _, s := range stocks {
		if s.Size < inv.Sizes-1 {
			mask |= CanIncreaseSize
		}
		if s.Size > 0 {
			mask |= CanDecreaseSize
		}
	}
	return mask
}

// Describe renders s as "material section #size".
func (inv Inventory) Describe(s Stock) string {
	if !inv.Valid(s) {
		return fmt.Sprintf("stock(%d,%d,%d)", s.Material, s.Section, s.Size)
	}
	return fmt.Sprintf("%s %s #%d", inv.Materials[s.Material], inv.Sections[s.Section], s.Size)
}
