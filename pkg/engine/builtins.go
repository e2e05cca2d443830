package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/truss/pkg/edit"
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/grid"
	"github.com/chazu/truss/pkg/truss"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms truss script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: joint-at -> joint_at
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec2 wraps a point.
type sexpVec2 struct {
	pt geom.Point
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.pt.X, v.pt.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// sexpJoint refers to a joint of the session model.
type sexpJoint struct {
	j *truss.Joint
}

func (r *sexpJoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(joint-at %d)", r.j.Number())
}
func (r *sexpJoint) Type() *zygo.RegisteredType { return nil }

// sexpMember refers to a member of the session model.
type sexpMember struct {
	m *truss.Member
}

func (r *sexpMember) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(member-at %d)", r.m.Number())
}
func (r *sexpMember) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool treats a bare keyword flag as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toPoint accepts either a single vec2 or an x y pair at the front of args
// and returns the point and the remaining arguments.
func toPoint(args []zygo.Sexp) (geom.Point, []zygo.Sexp, error) {
	if len(args) >= 1 {
		if v, ok := args[0].(*sexpVec2); ok {
			return v.pt, args[1:], nil
		}
	}
	if len(args) < 2 {
		return geom.Point{}, nil, fmt.Errorf("expected a vec2 or x and y")
	}
	x, err := toFloat64(args[0])
	if err != nil {
		return geom.Point{}, nil, fmt.Errorf("x: %w", err)
	}
	y, err := toFloat64(args[1])
	if err != nil {
		return geom.Point{}, nil, fmt.Errorf("y: %w", err)
	}
	return geom.Pt(x, y), args[2:], nil
}

func vec2(pt geom.Point) zygo.Sexp { return &sexpVec2{pt: pt} }

func boolSexp(b bool) zygo.Sexp { return &zygo.SexpBool{Val: b} }

func intSexp(n int) zygo.Sexp { return &zygo.SexpInt{Val: int64(n)} }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// scope is the state builtins act on during one evaluation.
type scope struct {
	sess   *edit.Session
	coords *grid.Coordinates
}

// toJoint resolves a joint reference or a 1-based joint number.
func (sc *scope) toJoint(s zygo.Sexp) (*truss.Joint, error) {
	m := sc.sess.Model()
	switch v := s.(type) {
	case *sexpJoint:
		if i := v.j.Index(); i < 0 || i >= m.JointCount() || m.Joint(i) != v.j {
			return nil, fmt.Errorf("joint is no longer in the model")
		}
		return v.j, nil
	case *zygo.SexpInt:
		n := int(v.Val)
		if n < 1 || n > m.JointCount() {
			return nil, fmt.Errorf("no joint %d", n)
		}
		return m.Joint(n - 1), nil
	}
	return nil, fmt.Errorf("expected joint, got %T (%s)", s, s.SexpString(nil))
}

// toMember resolves a member reference or a 1-based member number.
func (sc *scope) toMember(s zygo.Sexp) (*truss.Member, error) {
	m := sc.sess.Model()
	switch v := s.(type) {
	case *sexpMember:
		if i := v.m.Index(); i < 0 || i >= m.MemberCount() || m.Member(i) != v.m {
			return nil, fmt.Errorf("member is no longer in the model")
		}
		return v.m, nil
	case *zygo.SexpInt:
		n := int(v.Val)
		if n < 1 || n > m.MemberCount() {
			return nil, fmt.Errorf("no member %d", n)
		}
		return m.Member(n - 1), nil
	}
	return nil, fmt.Errorf("expected member, got %T (%s)", s, s.SexpString(nil))
}

// toEntity resolves a joint or member reference.
func (sc *scope) toEntity(s zygo.Sexp) (truss.Selectable, error) {
	switch s.(type) {
	case *sexpJoint:
		return sc.toJoint(s)
	case *sexpMember:
		return sc.toMember(s)
	}
	return nil, fmt.Errorf("expected joint or member, got %T (%s)", s, s.SexpString(nil))
}

// stockArgs reads :material :section :size over base.
func stockArgs(fn string, pa kwArgs, base truss.Stock) (truss.Stock, error) {
	for _, f := range []struct {
		key string
		dst *int
	}{
		{"material", &base.Material},
		{"section", &base.Section},
		{"size", &base.Size},
	} {
		if v, ok := pa.kw[f.key]; ok {
			n, err := toInt(v)
			if err != nil {
				return base, fmt.Errorf("%s: %s: %w", fn, f.key, err)
			}
			*f.dst = n
		}
	}
	return base, nil
}

// registerBuiltins installs the truss builtins into a zygomys environment.
// The builtins edit sc.sess during evaluation; every edit goes through the
// session history.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scope) {
	sess := sc.sess
	model := sess.Model()

	// -----------------------------------------------------------------------
	// (vec2 4 2)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		pt, _, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: %w", err)
		}
		return vec2(pt), nil
	})

	// -----------------------------------------------------------------------
	// (joint 6 4) or (joint (vec2 6 4))
	//
	// The point is snapped to the nearest valid grid point. A joint already
	// there is returned as is.
	// -----------------------------------------------------------------------
	env.AddFunction("joint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, _, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("joint: %w", err)
		}
		pt, _ = sc.coords.ShiftToNearestValid(pt)
		if j := model.FindJointAt(pt); j != nil {
			return &sexpJoint{j: j}, nil
		}
		j, st := sess.AddJoint(pt)
		if st != edit.OK {
			return zygo.SexpNull, fmt.Errorf("joint: %s", st)
		}
		return &sexpJoint{j: j}, nil
	})

	// -----------------------------------------------------------------------
	// (joint-at 3)
	// -----------------------------------------------------------------------
	env.AddFunction("joint_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("joint-at requires a joint number")
		}
		j, err := sc.toJoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("joint-at: %w", err)
		}
		return &sexpJoint{j: j}, nil
	})

	// -----------------------------------------------------------------------
	// (member-at 3)
	// -----------------------------------------------------------------------
	env.AddFunction("member_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("member-at requires a member number")
		}
		mem, err := sc.toMember(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("member-at: %w", err)
		}
		return &sexpMember{m: mem}, nil
	})

	// -----------------------------------------------------------------------
	// (member a b :material 0 :section 1 :size 12)
	//
	// Returns the new member, or nil when it was split at joints on the way.
	// -----------------------------------------------------------------------
	env.AddFunction("member", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("member requires two joints")
		}
		a, err := sc.toJoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("member: a: %w", err)
		}
		b, err := sc.toJoint(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("member: b: %w", err)
		}
		stock, err := stockArgs("member", pa, sess.Inventory().DefaultStock())
		if err != nil {
			return zygo.SexpNull, err
		}
		if !sess.Inventory().Valid(stock) {
			return zygo.SexpNull, fmt.Errorf("member: no such stock %s", sess.Inventory().Describe(stock))
		}
		if st := sess.AddMember(a, b, stock); st != edit.OK {
			return zygo.SexpNull, fmt.Errorf("member: %s", st)
		}
		if mem := model.FindMember(a, b); mem != nil {
			return &sexpMember{m: mem}, nil
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (move j 8 4) or (move j (vec2 8 4))
	// -----------------------------------------------------------------------
	env.AddFunction("move", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("move requires a joint and a point")
		}
		j, err := sc.toJoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		pt, _, err := toPoint(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("move: %w", err)
		}
		pt, _ = sc.coords.ShiftToNearestValid(pt)
		if st := sess.MoveJoint(j, pt); st != edit.OK && st != edit.AlreadyThere {
			return zygo.SexpNull, fmt.Errorf("move: %s", st)
		}
		return &sexpJoint{j: j}, nil
	})

	// -----------------------------------------------------------------------
	// (delete ref)
	// -----------------------------------------------------------------------
	env.AddFunction("delete", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("delete requires a joint or member")
		}
		e, err := sc.toEntity(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("delete: %w", err)
		}
		if st := sess.Delete(e); st != edit.OK {
			return zygo.SexpNull, fmt.Errorf("delete: %s", st)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (select ref :extend)
	// -----------------------------------------------------------------------
	env.AddFunction("select", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("select requires a joint or member")
		}
		e, err := sc.toEntity(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("select: %w", err)
		}
		extend := false
		if v, ok := pa.kw["extend"]; ok {
			if extend, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("select: extend: %w", err)
			}
		}
		return boolSexp(sess.Select(e, extend)), nil
	})

	env.AddFunction("select_all", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return boolSexp(sess.SelectAllMembers()), nil
	})

	env.AddFunction("clear_selection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return boolSexp(sess.ClearSelection()), nil
	})

	// -----------------------------------------------------------------------
	// (stock :material 1 :size 20)
	//
	// Changes the given fields of every selected member.
	// -----------------------------------------------------------------------
	env.AddFunction("stock", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		change, err := stockArgs("stock", parseArgs(args), truss.Keep)
		if err != nil {
			return zygo.SexpNull, err
		}
		inv := sess.Inventory()
		if change.Material >= len(inv.Materials) || change.Section >= len(inv.Sections) || change.Size >= inv.Sizes {
			return zygo.SexpNull, fmt.Errorf("stock: no such stock %s", inv.Describe(change))
		}
		return boolSexp(sess.ChangeSelectedMembers(change)), nil
	})

	// -----------------------------------------------------------------------
	// (resize 2) or (resize -1)
	// -----------------------------------------------------------------------
	env.AddFunction("resize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("resize requires a size offset")
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("resize: %w", err)
		}
		return boolSexp(sess.IncrementMemberSize(n)), nil
	})

	env.AddFunction("undo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return boolSexp(sess.Undo() == nil), nil
	})

	env.AddFunction("redo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return boolSexp(sess.Redo() == nil), nil
	})

	env.AddFunction("fixup", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return intSexp(sess.Fixup()), nil
	})

	env.AddFunction("autofix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return boolSexp(sess.Autofix()), nil
	})

	// -----------------------------------------------------------------------
	// (snap 6.3 4.1)
	// -----------------------------------------------------------------------
	env.AddFunction("snap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, _, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("snap: %w", err)
		}
		pt, _ = sc.coords.ShiftToNearestValid(pt)
		return vec2(pt), nil
	})

	// -----------------------------------------------------------------------
	// (nearby 6 4 1 0) or (nearby (vec2 6 4) 1 0)
	// -----------------------------------------------------------------------
	env.AddFunction("nearby", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, rest, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nearby: %w", err)
		}
		if len(rest) != 2 {
			return zygo.SexpNull, fmt.Errorf("nearby requires a direction dx dy")
		}
		dx, err := toInt(rest[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nearby: dx: %w", err)
		}
		dy, err := toInt(rest[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("nearby: dy: %w", err)
		}
		return vec2(sc.coords.NearbyPoint(pt, dx, dy)), nil
	})

	// -----------------------------------------------------------------------
	// (hull) -> [(vec2 ...) ...] around the selection
	// -----------------------------------------------------------------------
	env.AddFunction("hull", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts := sess.SelectionHull()
		items := make([]zygo.Sexp, len(pts))
		for i, pt := range pts {
			items[i] = vec2(pt)
		}
		return &zygo.SexpArray{Val: items}, nil
	})

	env.AddFunction("joint_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return intSexp(model.JointCount()), nil
	})

	env.AddFunction("member_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return intSexp(model.MemberCount()), nil
	})
}
