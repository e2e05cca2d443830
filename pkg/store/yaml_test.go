package store

import (
	"testing"

	"github.com/chazu/truss/pkg/edit"
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/site"
	"github.com/chazu/truss/pkg/truss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ edit.Codec = YAMLCodec{}

func TestDecodeDocument(t *testing.T) {
	src := `
joints:
  - {x: 0, y: 0, fixed: true}
  - {x: 4, y: 0, fixed: true}
  - {x: 2, y: 3}
members:
  - {a: 1, b: 3, material: 1, section: 0, size: 7}
  - {a: 3, b: 2, material: 1, section: 1, size: 4}
`
	m, err := YAMLCodec{}.Decode([]byte(src))
	require.NoError(t, err)
	require.NoError(t, m.CheckIndices())
	require.Equal(t, 3, m.JointCount())
	require.Equal(t, 2, m.MemberCount())

	assert.True(t, m.Joint(1).IsFixed())
	assert.False(t, m.Joint(2).IsFixed())
	assert.Equal(t, geom.Pt(2, 3), m.Joint(2).Point())
	assert.Same(t, m.Joint(2), m.Member(1).JointA())
	assert.Equal(t, truss.Stock{Material: 1, Section: 1, Size: 4}, m.Member(1).Stock())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"malformed", "joints: [", "store: unmarshal"},
		{"joint out of range", "joints: [{x: 0, y: 0}]\nmembers: [{a: 1, b: 2}]", "member 1: joint 2 out of range 1..1"},
		{"zero joint", "joints: [{x: 0, y: 0}, {x: 1, y: 0}]\nmembers: [{a: 0, b: 2}]", "joint 0 out of range"},
		{"same joint", "joints: [{x: 0, y: 0}]\nmembers: [{a: 1, b: 1}]", "both ends at joint 1"},
		{"fixed after free", "joints: [{x: 0, y: 0}, {x: 1, y: 0, fixed: true}]", "fixed joint 2 follows a free joint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := YAMLCodec{}.Decode([]byte(tt.src))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	c := site.MustNew(site.Params{Panels: 5, OverClearance: 8, PierPanel: -1})
	s := edit.NewSession(c)
	m := s.Model()
	top, st := s.AddJoint(geom.Pt(6, 4))
	require.Equal(t, edit.OK, st)
	require.Equal(t, edit.OK, s.AddMember(m.Joint(1), top, truss.Stock{Material: 2, Size: 11}))
	require.True(t, s.Autofix())

	data, err := s.Save(YAMLCodec{})
	require.NoError(t, err)
	want := NewDocument(m)

	other := edit.NewSession(c)
	require.NoError(t, other.Load(YAMLCodec{}, data))
	assert.Equal(t, want, NewDocument(other.Model()))
	assert.False(t, other.History().Dirty())
	assert.True(t, other.History().Stored())
}
