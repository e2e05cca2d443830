package edit

import "fmt"

// Analysis is the read-only result of a structural analysis of the model.
// The solver lives outside this package.
type Analysis interface {
	// Passes reports whether every member carries its load.
	Passes() bool
}

// AnalysisStatus summarizes the analysis attached to a session.
type AnalysisStatus int

const (
	NoAnalysis AnalysisStatus = iota
	AnalysisStale
	AnalysisPasses
	AnalysisFails
)

func (s AnalysisStatus) String() string {
	switch s {
	case NoAnalysis:
		return "none"
	case AnalysisStale:
		return "stale"
	case AnalysisPasses:
		return "passes"
	case AnalysisFails:
		return "fails"
	default:
		return fmt.Sprintf("AnalysisStatus(%d)", int(s))
	}
}

// SetAnalysis attaches a result computed for the model as it is now.
func (s *Session) SetAnalysis(a Analysis) {
	s.analysis = a
	s.analysisMark = s.history.Mark()
}

// AnalysisValid reports whether the attached analysis still describes the
// model. Undoing back to the analyzed state makes it valid again.
func (s *Session) AnalysisValid() bool {
	return s.analysis != nil && s.history.AtMark(s.analysisMark)
}

// AnalysisStatus reports the state of the attached analysis.
func (s *Session) AnalysisStatus() AnalysisStatus {
	switch {
	case s.analysis == nil:
		return NoAnalysis
	case !s.AnalysisValid():
		return AnalysisStale
	case s.analysis.Passes():
		return AnalysisPasses
	}
	return AnalysisFails
}
