package edit

import (
	"fmt"

	"github.com/chazu/truss/pkg/truss"
	"go.uber.org/zap"
)

// Codec converts a model to and from an opaque byte form. Sessions do not
// interpret the bytes.
type Codec interface {
	Encode(m *truss.Model) ([]byte, error)
	Decode(data []byte) (*truss.Model, error)
}

// Save encodes the model and marks the current state as stored.
func (s *Session) Save(c Codec) ([]byte, error) {
	data, err := c.Encode(s.model)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	s.history.Save()
	return data, nil
}

// Load replaces the model with the decoded one and forgets the history.
// The decoded model must be consistent and start with the site's fixed
// joints.
func (s *Session) Load(c Codec, data []byte) error {
	m, err := c.Decode(data)
	if err != nil {
		return fmt.Errorf("decode model: %w", err)
	}
	if errs := truss.Validate(m); len(errs) > 0 {
		return fmt.Errorf("loaded model is inconsistent: %w", errs[0])
	}
	want := s.site.PrescribedJoints()
	if m.JointCount() < len(want) {
		return fmt.Errorf("loaded model has %d joints, site prescribes %d", m.JointCount(), len(want))
	}
	for i, j := range want {
		got := m.Joint(i)
		if !got.IsFixed() || !got.IsAt(j.Point()) {
			return fmt.Errorf("loaded joint %d does not match the site support at %v", i+1, j.Point())
		}
	}
	s.model = m
	s.lastSelected = nil
	s.analysis = nil
	s.history.Load()
	s.log.Info("model loaded",
		zap.String("session", s.id.String()),
		zap.Int("joints", m.JointCount()),
		zap.Int("members", m.MemberCount()))
	return nil
}
