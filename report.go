package rasdae

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ============================================================
// Reporter
// ============================================================

// Format selects how equations are rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatLaTeX Format = "latex"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "", text, latex and json.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatLaTeX, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Reporter writes systems to w. Text output is line-for-line stable.
type Reporter struct {
	w      *bufio.Writer
	format Format
	enc    *json.Encoder
}

func NewReporter(w io.Writer, format Format) (*Reporter, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatText
	}
	bw := bufio.NewWriter(w)
	return &Reporter{w: bw, format: format, enc: json.NewEncoder(bw)}, nil
}

func (r *Reporter) line(eq Equation) string {
	if r.format == FormatLaTeX {
		return eq.LaTeX()
	}
	return eq.String()
}

// WriteODE writes the unsimplified system and its size.
func (r *Reporter) WriteODE(ode *ODESystem) error {
	if r.format == FormatJSON {
		return r.enc.Encode(odeToJSON(ode))
	}
	for _, s := range ode.order {
		fmt.Fprintf(r.w, "%s\n\n", r.line(Equation{Species: s, ODE: ode.rhs[s]}))
	}
	_, err := fmt.Fprintf(r.w, "Size of the original ODE system: %d right-side terms.\n\n\n", ode.Size())
	return err
}

// WriteDAE writes one reduced system and its size.
func (r *Reporter) WriteDAE(sys *DAESystem) error {
	if r.format == FormatJSON {
		return r.enc.Encode(daeToJSON(sys))
	}
	for _, eq := range sys.Equations {
		fmt.Fprintf(r.w, "%s\n\n", r.line(eq))
	}
	_, err := fmt.Fprintf(r.w, "Size of DAE system %d: %d right-side terms.\n\n\n", sys.Index, sys.Size)
	return err
}

// Flush pushes buffered output to the underlying writer.
func (r *Reporter) Flush() error { return r.w.Flush() }

// ============================================================
// Pipeline
// ============================================================

// Run assembles the model for cfg and reports the ODE system followed by
// every DAE reduction.
func Run(cfg Config, w io.Writer, format Format, opts ...Option) error {
	o := buildOptions(opts)
	log := o.logger.With(zap.Stringer("config", cfg))

	ode := Assemble(cfg)
	pools := BuildPools(cfg)
	log.Debug("assembled ODE system",
		zap.Int("species", ode.Len()),
		zap.Int("terms", ode.Size()),
		zap.Int("reactions", len(ode.network)))

	en, err := NewEnumerator(ode, pools, opts...)
	if err != nil {
		return err
	}
	rep, err := NewReporter(w, format)
	if err != nil {
		return err
	}
	if err := rep.WriteODE(ode); err != nil {
		return fmt.Errorf("write ODE system: %w", err)
	}
	for sys, ok := en.Next(); ok; sys, ok = en.Next() {
		if err := rep.WriteDAE(sys); err != nil {
			return fmt.Errorf("write DAE system %d: %w", sys.Index, err)
		}
	}
	if err := rep.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	log.Info("enumerated DAE systems", zap.Int("count", en.Count()))
	return nil
}

// ============================================================
// JSON views
// ============================================================

type equationJSON struct {
	Species   string             `json:"species"`
	Kind      string             `json:"kind"`
	Text      string             `json:"text"`
	Terms     []Term             `json:"terms,omitempty"`
	Algebraic *AlgebraicEquation `json:"algebraic,omitempty"`
}

type odeJSON struct {
	Kind      string         `json:"kind"`
	Config    Config         `json:"config"`
	Equations []equationJSON `json:"equations"`
	Size      int            `json:"size"`
}

type daeJSON struct {
	Kind      string         `json:"kind"`
	Index     int            `json:"index"`
	Choices   []string       `json:"choices"`
	Equations []equationJSON `json:"equations"`
	Size      int            `json:"size"`
}

func equationToJSON(eq Equation) equationJSON {
	if eq.AE != nil {
		return equationJSON{Species: eq.Species, Kind: "ae", Text: eq.String(), Algebraic: eq.AE}
	}
	return equationJSON{Species: eq.Species, Kind: "ode", Text: eq.String(), Terms: eq.ODE.Terms()}
}

func odeToJSON(ode *ODESystem) odeJSON {
	out := odeJSON{Kind: "ode_system", Config: ode.cfg, Size: ode.Size()}
	for _, s := range ode.order {
		out.Equations = append(out.Equations, equationToJSON(Equation{Species: s, ODE: ode.rhs[s]}))
	}
	return out
}

func daeToJSON(sys *DAESystem) daeJSON {
	out := daeJSON{Kind: "dae_system", Index: sys.Index, Choices: sys.Choices, Size: sys.Size}
	for _, eq := range sys.Equations {
		out.Equations = append(out.Equations, equationToJSON(eq))
	}
	return out
}
