package truss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryResizeClamps(t *testing.T) {
	inv := DefaultInventory()
	s := Stock{Size: 1}
	assert.Equal(t, 3, inv.Resize(s, 2).Size)
	assert.Equal(t, 0, inv.Resize(s, -5).Size)
	assert.Equal(t, inv.Sizes-1, inv.Resize(s, 100).Size)
}

func TestInventoryValid(t *testing.T) {
	inv := DefaultInventory()
	assert.True(t, inv.Valid(inv.DefaultStock()))
	assert.False(t, inv.Valid(Stock{Material: 3}))
	assert.False(t, inv.Valid(Stock{Size: -1}))
}

func TestAllowedShapeChanges(t *testing.T) {
	inv := Inventory{Materials: []string{"m"}, Sections: []string{"s"}, Sizes: 3}
	assert.Equal(t, CanIncreaseSize, inv.AllowedShapeChanges([]Stock{{Size: 0}}))
	assert.Equal(t, CanDecreaseSize, inv.AllowedShapeChanges([]Stock{{Size: 2}}))
	assert.Equal(t, CanIncreaseSize|CanDecreaseSize,
		inv.AllowedShapeChanges([]Stock{{Size: 0}, {Size: 2}}))
	assert.Equal(t, ShapeChange(0), inv.AllowedShapeChanges(nil))
}

func TestInventoryDescribe(t *testing.T) {
	inv := DefaultInventory()
	assert.Equal(t, "hsla-steel hollow-tube #4", inv.Describe(Stock{Material: 1, Section: 1, Size: 4}))
	assert.Equal(t, "stock(9,0,0)", inv.Describe(Stock{Material: 9}))
}
