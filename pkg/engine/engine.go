// Package engine runs truss scripts: Lisp programs that drive an editing
// session through builtins such as joint, member and undo. It wraps zygomys
// in a sandboxed environment and returns the session the script built.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/truss/pkg/edit"
	"github.com/chazu/truss/pkg/grid"
	"github.com/chazu/truss/pkg/site"
	"github.com/chazu/truss/pkg/truss"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Engine evaluates scripts. It is safe for concurrent use; each call to
// Evaluate creates a fresh sandbox and a fresh session for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	site      *site.Conditions
	limits    truss.Limits
	inventory truss.Inventory
	density   grid.Density
	timeout   time.Duration
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSite sets the site scripts build on.
func WithSite(s *site.Conditions) Option { return func(e *Engine) { e.site = s } }

// WithLimits sets the joint and member capacity of script sessions.
func WithLimits(l truss.Limits) Option { return func(e *Engine) { e.limits = l } }

// WithInventory sets the stock catalog of script sessions.
func WithInventory(inv truss.Inventory) Option { return func(e *Engine) { e.inventory = inv } }

// WithDensity sets the grid joints are snapped to.
func WithDensity(d grid.Density) Option { return func(e *Engine) { e.density = d } }

// WithTimeout bounds a single evaluation.
func WithTimeout(d time.Duration) Option { return func(e *Engine) { e.timeout = d } }

// WithLogger sets the engine and session logger.
func WithLogger(l *zap.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine creates an Engine. Without options scripts run on the default
// site with the default limits and stock on a coarse grid.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		limits:    truss.DefaultLimits(),
		inventory: truss.DefaultInventory(),
		density:   grid.Coarse,
		timeout:   EvalTimeout,
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	if e.site == nil {
		e.site = site.MustNew(site.DefaultParams())
	}
	return e
}

// Evaluate runs source against a new session on the engine's site.
//
// Return semantics:
//   - On success: returns session + nil errors + nil error
//   - On parse/eval failure: returns nil session + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*edit.Session, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		sess, evalErrs, err := e.evaluate(source)
		ch <- evalResult{session: sess, errors: evalErrs, err: err}
	}()

	return e.await(ch, gen)
}

// evalResult carries an outcome out of the sandbox goroutine.
type evalResult struct {
	session *edit.Session
	errors  []EvalError
	err     error
}

// await returns the result of evaluation gen, or an error when it outlives
// the engine timeout or a later Evaluate has started. A timed-out sandbox
// goroutine keeps running; its result lands in the buffered channel and is
// dropped.
func (e *Engine) await(ch <-chan evalResult, gen uint64) (*edit.Session, []EvalError, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			e.log.Debug("evaluation superseded",
				zap.Uint64("generation", gen), zap.Uint64("current", current))
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.session, res.errors, res.err

	case <-timer.C:
		e.log.Warn("evaluation timed out", zap.Duration("timeout", e.timeout))
		return nil, nil, fmt.Errorf("evaluation timed out after %s", e.timeout)
	}
}

func (e *Engine) newSession() *edit.Session {
	return edit.NewSession(e.site,
		edit.WithLimits(e.limits),
		edit.WithInventory(e.inventory),
		edit.WithLogger(e.log))
}

// evaluate performs the zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*edit.Session, []EvalError, error) {
	sess := e.newSession()

	// Empty source is a valid program that leaves only the supports.
	if strings.TrimSpace(source) == "" {
		return sess, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	sc := &scope{
		sess:   sess,
		coords: grid.NewCoordinates(grid.New(e.density), e.site, sess.Model()),
	}
	registerBuiltins(env, sc)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err), nil
	}

	e.log.Debug("script evaluated",
		zap.String("session", sess.ID().String()),
		zap.Int("joints", sess.Model().JointCount()),
		zap.Int("members", sess.Model().MemberCount()),
		zap.Int("edits", sess.History().Len()))
	return sess, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
