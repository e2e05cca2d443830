package main

import (
	"fmt"

	"github.com/chazu/truss/pkg/config"
	"github.com/chazu/truss/pkg/edit"
	"github.com/chazu/truss/pkg/engine"
	"github.com/chazu/truss/pkg/geom"
	"github.com/chazu/truss/pkg/site"
	"github.com/chazu/truss/pkg/store"
	"github.com/chazu/truss/pkg/truss"
	"go.uber.org/zap"
)

// App runs truss scripts and saved models and summarizes the result.
type App struct {
	engine    *engine.Engine
	site      *site.Conditions
	limits    truss.Limits
	inventory truss.Inventory
	log       *zap.Logger
}

// PointData is a JSON-serializable point.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// JointData describes one joint.
type JointData struct {
	Number int       `json:"number"`
	At     PointData `json:"at"`
	Fixed  bool      `json:"fixed"`
}

// MemberData describes one member.
type MemberData struct {
	Number int     `json:"number"`
	A      int     `json:"a"`
	B      int     `json:"b"`
	Stock  string  `json:"stock"`
	Length float64 `json:"length"`
}

// BoundsData is the rectangle around every joint.
type BoundsData struct {
	Min PointData `json:"min"`
	Max PointData `json:"max"`
}

// EvalErrorData is a JSON-serializable error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full summary of an evaluated script or loaded model.
type EvalResult struct {
	Joints   []JointData     `json:"joints"`
	Members  []MemberData    `json:"members"`
	Hull     []PointData     `json:"hull"`
	Bounds   *BoundsData     `json:"bounds,omitempty"`
	Edits    []string        `json:"edits"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

func newResult() EvalResult {
	return EvalResult{
		Joints:   []JointData{},
		Members:  []MemberData{},
		Hull:     []PointData{},
		Edits:    []string{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

// NewApp creates an App for cfg. The configuration must already be valid.
func NewApp(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s, err := site.New(cfg.Site)
	if err != nil {
		return nil, err
	}
	return &App{
		engine: engine.NewEngine(
			engine.WithSite(s),
			engine.WithLimits(cfg.Limits),
			engine.WithInventory(cfg.Inventory),
			engine.WithDensity(cfg.Density()),
			engine.WithTimeout(cfg.Engine.Timeout),
			engine.WithLogger(log)),
		site:      s,
		limits:    cfg.Limits,
		inventory: cfg.Inventory,
		log:       log,
	}, nil
}

// Evaluate runs a script and summarizes the session it built.
func (a *App) Evaluate(source string) EvalResult {
	result, _ := a.evaluate(source)
	return result
}

// Export runs a script and encodes the model it built as YAML. The data is
// nil when the script failed.
func (a *App) Export(source string) ([]byte, EvalResult) {
	result, sess := a.evaluate(source)
	if sess == nil {
		return nil, result
	}
	data, err := sess.Save(store.YAMLCodec{})
	if err != nil {
		a.log.Error("export failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return nil, result
	}
	return data, result
}

// Check loads a saved model onto the configured site and summarizes it.
func (a *App) Check(data []byte) EvalResult {
	sess := edit.NewSession(a.site,
		edit.WithLimits(a.limits),
		edit.WithInventory(a.inventory),
		edit.WithLogger(a.log))
	if err := sess.Load(store.YAMLCodec{}, data); err != nil {
		a.log.Info("model rejected", zap.Error(err))
		result := newResult()
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	return a.summarize(sess)
}

func (a *App) evaluate(source string) (EvalResult, *edit.Session) {
	result := newResult()

	sess, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate failed", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result, nil
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result, nil
	}

	return a.summarize(sess), sess
}

func (a *App) summarize(sess *edit.Session) EvalResult {
	result := newResult()
	m := sess.Model()

	var hb geom.HullBuilder
	for _, j := range m.Joints() {
		result.Joints = append(result.Joints, JointData{
			Number: j.Number(),
			At:     pointData(j.Point()),
			Fixed:  j.IsFixed(),
		})
		hb.Add(j.Point())
	}
	for _, mem := range m.Members() {
		result.Members = append(result.Members, MemberData{
			Number: mem.Number(),
			A:      mem.JointA().Number(),
			B:      mem.JointB().Number(),
			Stock:  sess.Inventory().Describe(mem.Stock()),
			Length: mem.Length(),
		})
	}
	for _, pt := range hb.Hull(nil) {
		result.Hull = append(result.Hull, pointData(pt))
	}
	if lo, hi, ok := m.Bounds(); ok {
		result.Bounds = &BoundsData{Min: pointData(lo), Max: pointData(hi)}
	}

	done := sess.History().Undoable()
	for i := len(done) - 1; i >= 0; i-- {
		result.Edits = append(result.Edits, done[i].Name())
	}

	findings := truss.ValidateAll(m, sess.Limits())
	for _, f := range findings.Errors {
		result.Errors = append(result.Errors, EvalErrorData{Message: f.Error()})
	}
	for _, f := range findings.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: f.Error()})
	}
	return result
}

func pointData(p geom.Point) PointData { return PointData{X: p.X, Y: p.Y} }

// String renders a short human-readable report.
func (r EvalResult) String() string {
	s := fmt.Sprintf("%d joints, %d members\n", len(r.Joints), len(r.Members))
	for _, m := range r.Members {
		s += fmt.Sprintf("  member %d: joints %d-%d, %s, %.2f m\n", m.Number, m.A, m.B, m.Stock, m.Length)
	}
	for _, e := range r.Errors {
		if e.Line > 0 {
			s += fmt.Sprintf("error: line %d: %s\n", e.Line, e.Message)
		} else {
			s += fmt.Sprintf("error: %s\n", e.Message)
		}
	}
	for _, w := range r.Warnings {
		s += fmt.Sprintf("warning: %s\n", w.Message)
	}
	return s
}
