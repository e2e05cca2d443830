package truss

// Default capacity of a model.
const (
	DefaultMaxJoints  = 100
	DefaultMaxMembers = 200
)

// Limits bounds the size of a model.
type Limits struct {
	MaxJoints  int `json:"maxJoints" yaml:"max_joints" validate:"min=2"`
	MaxMembers int `json:"maxMembers" yaml:"max_members" validate:"min=1"`
}

// DefaultLimits returns the standard capacity.
func DefaultLimits() Limits {
	return Limits{MaxJoints: DefaultMaxJoints, MaxMembers: DefaultMaxMembers}
}
