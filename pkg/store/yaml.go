// Package store persists truss models as YAML documents.
package store

import (
	"fmt"

	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/truss"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a model. Member ends are 1-based joint
// numbers, as shown to the user.
type Document struct {
	Joints  []JointRecord  `yaml:"joints"`
	Members []MemberRecord `yaml:"members,omitempty"`
}

type JointRecord struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Fixed bool    `yaml:"fixed,omitempty"`
}

type MemberRecord struct {
	A        int `yaml:"a"`
	B        int `yaml:"b"`
	Material int `yaml:"material"`
	Section  int `yaml:"section"`
	Size     int `yaml:"size"`
}

// YAMLCodec encodes models as YAML Documents.
type YAMLCodec struct{}

// Encode renders m.
func (YAMLCodec) Encode(m *truss.Model) ([]byte, error) {
	data, err := yaml.Marshal(NewDocument(m))
	if err != nil {
		return nil, fmt.Errorf("store: marshal: %w", err)
	}
	return data, nil
}

// Decode parses data and builds the model it describes.
func (YAMLCodec) Decode(data []byte) (*truss.Model, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: unmarshal: %w", err)
	}
	return doc.Model()
}

// NewDocument captures m.
func NewDocument(m *truss.Model) Document {
	doc := Document{Joints: make([]JointRecord, 0, m.JointCount())}
	for _, j := range m.Joints() {
		pt := j.Point()
		doc.Joints = append(doc.Joints, JointRecord{X: pt.X, Y: pt.Y, Fixed: j.IsFixed()})
	}
	for _, mem := range m.Members() {
		s := mem.Stock()
		doc.Members = append(doc.Members, MemberRecord{
			A:        mem.JointA().Number(),
			B:        mem.JointB().Number(),
			Material: s.Material,
			Section:  s.Section,
			Size:     s.Size,
		})
	}
	return doc
}

// Model builds a model from the document. Fixed joints must come first.
func (d Document) Model() (*truss.Model, error) {
	joints := make([]*truss.Joint, len(d.Joints))
	free := false
	for i, r := range d.Joints {
		pt := geom.Pt(r.X, r.Y)
		switch {
		case r.Fixed && free:
			return nil, fmt.Errorf("store: fixed joint %d follows a free joint", i+1)
		case r.Fixed:
			joints[i] = truss.NewFixedJoint(i, pt)
		default:
			free = true
			joints[i] = truss.NewJoint(pt)
		}
	}
	m := truss.NewWithJoints(joints)

	members := make([]*truss.Member, len(d.Members))
	for i, r := range d.Members {
		a, err := d.joint(m, r.A)
		if err != nil {
			return nil, fmt.Errorf("store: member %d: %w", i+1, err)
		}
		b, err := d.joint(m, r.B)
		if err != nil {
			return nil, fmt.Errorf("store: member %d: %w", i+1, err)
		}
		if a == b {
			return nil, fmt.Errorf("store: member %d: both ends at joint %d", i+1, r.A)
		}
		members[i] = truss.NewMemberAt(i, a, b, truss.Stock{Material: r.Material, Section: r.Section, Size: r.Size})
	}
	m.InsertMembers(members...)
	return m, nil
}

func (d Document) joint(m *truss.Model, number int) (*truss.Joint, error) {
	if number < 1 || number > m.JointCount() {
		return nil, fmt.Errorf("joint %d out of range 1..%d", number, m.JointCount())
	}
	return m.Joint(number - 1), nil
}
