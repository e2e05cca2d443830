package truss

import "fmt"

// ValidationSeverity indicates whether a validation finding makes the model
// unusable for analysis or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // model is inconsistent
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Joint    int                // 1-based joint number, 0 if not joint-specific
	Member   int                // 1-based member number, 0 if not member-specific
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	switch {
	case e.Member > 0:
		return fmt.Sprintf("[%s] member %d: %s", e.Severity, e.Member, e.Message)
	case e.Joint > 0:
		return fmt.Sprintf("[%s] joint %d: %s", e.Severity, e.Joint, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
}

// ValidationResult bundles errors and warnings from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether no errors were found.
func (r ValidationResult) OK() bool { return len(r.Errors) == 0 }

// Validate runs the structural checks on m and returns every finding. An
// empty slice means the model is consistent. Validate never mutates m.
func Validate(m *Model) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateIndices(m)...)
	errs = append(errs, validateEndpoints(m)...)
	errs = append(errs, validateDuplicates(m)...)
	errs = append(errs, validateTranssections(m)...)
	return errs
}

// ValidateAll runs the structural checks plus the advisory ones and splits
// the findings by severity.
func ValidateAll(m *Model, lim Limits) ValidationResult {
	var result ValidationResult
	findings := Validate(m)
	findings = append(findings, validateUnconnected(m)...)
	findings = append(findings, validateCapacity(m, lim)...)
	for _, f := range findings {
		if f.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, f)
		} else {
			result.Errors = append(result.Errors, f)
		}
	}
	return result
}

// validateIndices checks that every entity's index matches its position.
func validateIndices(m *Model) []ValidationError {
	var errs []ValidationError
	for i, j := range m.joints {
		if j.Index() != i {
			errs = append(errs, ValidationError{
				Joint:    i + 1,
				Message:  fmt.Sprintf("stored index %d does not match position %d", j.Index(), i),
				Severity: SeverityError,
			})
		}
	}
	for i, mem := range m.members {
		if mem.Index() != i {
			errs = append(errs, ValidationError{
				Member:   i + 1,
				Message:  fmt.Sprintf("stored index %d does not match position %d", mem.Index(), i),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateEndpoints checks that members join two distinct joints that are
// present in the model.
func validateEndpoints(m *Model) []ValidationError {
	present := make(map[*Joint]bool, len(m.joints))
	for _, j := range m.joints {
		present[j] = true
	}
	var errs []ValidationError
	for i, mem := range m.members {
		switch {
		case mem.a == nil || mem.b == nil:
			errs = append(errs, ValidationError{
				Member: i + 1, Message: "missing endpoint", Severity: SeverityError,
			})
		case mem.a == mem.b:
			errs = append(errs, ValidationError{
				Member: i + 1, Message: "both ends at the same joint", Severity: SeverityError,
			})
		case !present[mem.a] || !present[mem.b]:
			errs = append(errs, ValidationError{
				Member: i + 1, Message: "endpoint is not in the model", Severity: SeverityError,
			})
		}
	}
	return errs
}

// pairKey is a canonical (order-independent) key for a pair of joints.
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b *Joint) pairKey {
	if a.Index() > b.Index() {
		a, b = b, a
	}
	return pairKey{lo: a.Index(), hi: b.Index()}
}

// validateDuplicates reports members joining a pair of joints that an
// earlier member already joins.
func validateDuplicates(m *Model) []ValidationError {
	var errs []ValidationError
	seen := make(map[pairKey]int)
	for i, mem := range m.members {
		if mem.a == nil || mem.b == nil {
			continue
		}
		key := makePairKey(mem.a, mem.b)
		if first, ok := seen[key]; ok {
			errs = append(errs, ValidationError{
				Member:   i + 1,
				Message:  fmt.Sprintf("duplicates member %d", first),
				Severity: SeverityError,
			})
			continue
		}
		seen[key] = i + 1
	}
	return errs
}

// validateTranssections reports members with a joint strictly inside them.
func validateTranssections(m *Model) []ValidationError {
	var errs []ValidationError
	for i, mem := range m.members {
		if mem.a == nil || mem.b == nil {
			continue
		}
		for _, j := range m.TranssectedJoints(mem.a, mem.b) {
			errs = append(errs, ValidationError{
				Member:   i + 1,
				Joint:    j.Number(),
				Message:  fmt.Sprintf("passes through joint %d", j.Number()),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateUnconnected warns about free joints with no members.
func validateUnconnected(m *Model) []ValidationError {
	used := make(map[*Joint]bool, len(m.joints))
	for _, mem := range m.members {
		used[mem.a] = true
		used[mem.b] = true
	}
	var errs []ValidationError
	for i, j := range m.joints {
		if !j.IsFixed() && !used[j] {
			errs = append(errs, ValidationError{
				Joint: i + 1, Message: "no members attached", Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validateCapacity warns when the model is at or over its limits.
func validateCapacity(m *Model, lim Limits) []ValidationError {
	var errs []ValidationError
	if len(m.joints) >= lim.MaxJoints {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("%d joints, limit is %d", len(m.joints), lim.MaxJoints),
			Severity: SeverityWarning,
		})
	}
	if len(m.members) >= lim.MaxMembers {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("%d members, limit is %d", len(m.members), lim.MaxMembers),
			Severity: SeverityWarning,
		})
	}
	return errs
}
