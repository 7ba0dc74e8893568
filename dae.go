package rasdae

import (
	"fmt"

	"go.uber.org/zap"
)

// ============================================================
// Equations and DAE systems
// ============================================================

// Equation is either the species' ODE or an algebraic closure.
type Equation struct {
	Species string
	ODE     *Expression
	AE      *AlgebraicEquation
}

func (e Equation) IsAlgebraic() bool { return e.AE != nil }

func (e Equation) String() string {
	if e.AE != nil {
		return e.AE.String()
	}
	return "d" + bracket(e.Species) + "/dt = " + e.ODE.String()
}

func (e Equation) LaTeX() string {
	if e.AE != nil {
		return e.AE.LaTeX()
	}
	return "\\frac{d" + latexSpecies(e.Species) + "}{dt} = " + e.ODE.LaTeX()
}

// DAESystem is one reduction: the chosen species per pool and one
// equation per species.
type DAESystem struct {
	Index     int
	Choices   []string
	Equations []Equation
	Size      int
}

// Algebraic returns the number of equations replaced by a closure.
func (d *DAESystem) Algebraic() int {
	n := 0
	for _, e := range d.Equations {
		if e.IsAlgebraic() {
			n++
		}
	}
	return n
}

// ============================================================
// Enumerator
// ============================================================

type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Enumerator walks the Cartesian product of the pool species lists. The
// first pool varies slowest.
type Enumerator struct {
	ode    *ODESystem
	pools  PoolTable
	idx    []int
	done   bool
	next   int
	logger *zap.Logger
}

// NewEnumerator checks that every pool species has an ODE.
func NewEnumerator(ode *ODESystem, pools PoolTable, opts ...Option) (*Enumerator, error) {
	o := buildOptions(opts)
	for _, p := range pools {
		for _, s := range p.Species {
			if !ode.Has(s) {
				return nil, &ConsistencyError{Pool: p.Name, Species: s, Wrapped: ErrUnknownSpecies}
			}
		}
	}
	if overlaps := pools.Overlaps(); len(overlaps) > 0 {
		o.logger.Debug("pools share species", zap.Any("overlaps", overlaps))
	}
	e := &Enumerator{
		ode:    ode,
		pools:  pools,
		logger: o.logger.With(zap.Stringer("config", ode.Config())),
	}
	e.Reset()
	return e, nil
}

// Count is the number of systems a full pass yields.
func (e *Enumerator) Count() int { return e.pools.Combinations() }

// Reset restarts the enumeration.
func (e *Enumerator) Reset() {
	e.idx = make([]int, len(e.pools))
	e.next = 1
	e.done = e.pools.Combinations() == 0
}

// Next returns the next system, or false once the product is exhausted.
func (e *Enumerator) Next() (*DAESystem, bool) {
	if e.done {
		return nil, false
	}
	choices := make([]string, len(e.pools))
	for i, p := range e.pools {
		choices[i] = p.Species[e.idx[i]]
	}
	sys := e.build(choices)
	sys.Index = e.next
	e.next++
	e.advance()
	e.logger.Debug("enumerated DAE system",
		zap.Int("index", sys.Index),
		zap.Strings("choices", choices),
		zap.Int("size", sys.Size))
	return sys, true
}

func (e *Enumerator) advance() {
	for i := len(e.idx) - 1; i >= 0; i-- {
		e.idx[i]++
		if e.idx[i] < len(e.pools[i].Species) {
			return
		}
		e.idx[i] = 0
	}
	e.done = true
}

// build assembles the system for one choice per pool. A species chosen
// by several pools takes the closure of the first.
func (e *Enumerator) build(choices []string) *DAESystem {
	closures := make(map[string]*AlgebraicEquation, len(choices))
	for i := len(choices) - 1; i >= 0; i-- {
		ae := e.pools[i].Closure(choices[i])
		closures[choices[i]] = &ae
	}

	sys := &DAESystem{Choices: choices}
	for _, s := range e.ode.order {
		if ae, ok := closures[s]; ok {
			sys.Equations = append(sys.Equations, Equation{Species: s, AE: ae})
			continue
		}
		rhs := e.ode.rhs[s]
		sys.Equations = append(sys.Equations, Equation{Species: s, ODE: rhs})
		sys.Size += rhs.Len()
	}
	return sys
}

// At returns the system with the given 1-based index without disturbing
// the enumeration state.
func (e *Enumerator) At(index int) (*DAESystem, error) {
	if index < 1 || index > e.Count() {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrIndexOutOfRange, index, e.Count())
	}
	rem := index - 1
	choices := make([]string, len(e.pools))
	for i := len(e.pools) - 1; i >= 0; i-- {
		n := len(e.pools[i].Species)
		choices[i] = e.pools[i].Species[rem%n]
		rem /= n
	}
	sys := e.build(choices)
	sys.Index = index
	return sys, nil
}

// Systems collects a full enumeration.
func Systems(ode *ODESystem, pools PoolTable, opts ...Option) ([]*DAESystem, error) {
	e, err := NewEnumerator(ode, pools, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]*DAESystem, 0, e.Count())
	for sys, ok := e.Next(); ok; sys, ok = e.Next() {
		out = append(out, sys)
	}
	return out, nil
}
