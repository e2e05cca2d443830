package edit

import "fmt"

// Status is the outcome of a Session edit that can be refused for a reason
// the user should be told about.
type Status int

const (
	OK Status = iota
	AlreadyThere
	JointExists
	JointAtCapacity
	MemberAtCapacity
	SameJoint
	MemberExists
	CrossesPier
	FixedJoint
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case AlreadyThere:
		return "joint is already there"
	case JointExists:
		return "a joint already exists there"
	case JointAtCapacity:
		return "joint limit reached"
	case MemberAtCapacity:
		return "member limit reached"
	case SameJoint:
		return "member ends at the same joint"
	case MemberExists:
		return "member already exists"
	case CrossesPier:
		return "member crosses the pier"
	case FixedJoint:
		return "joint is fixed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
