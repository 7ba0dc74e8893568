package rasdae

import (
	"fmt"
	"strings"
)

// ============================================================
// Term - one signed rate-law contribution
// ============================================================

// Saturation is the Michaelis-Menten denominator K<i>m+[S].
type Saturation struct {
	Constant string `json:"constant"`
	Species  string `json:"species"`
}

// Term is a signed rate law: Sign Rate[F1][F2]... with an optional
// saturation denominator.
type Term struct {
	Sign       int         `json:"sign"`
	Rate       string      `json:"rate"`
	Factors    []string    `json:"factors"`
	Saturation *Saturation `json:"saturation,omitempty"`
}

func plus(rate string, factors ...string) Term  { return Term{Sign: 1, Rate: rate, Factors: factors} }
func minus(rate string, factors ...string) Term { return Term{Sign: -1, Rate: rate, Factors: factors} }

func (t Term) signString() string {
	if t.Sign < 0 {
		return "-"
	}
	return "+"
}

// Body renders the term without its sign. It never contains whitespace.
func (t Term) Body() string {
	var b strings.Builder
	b.WriteString(t.Rate)
	for _, f := range t.Factors {
		b.WriteString(bracket(f))
	}
	if t.Saturation != nil {
		b.WriteString("/")
		b.WriteString(t.Saturation.Constant)
		b.WriteString("+")
		b.WriteString(bracket(t.Saturation.Species))
	}
	return b.String()
}

func (t Term) String() string { return t.signString() + " " + t.Body() }

func (t Term) LaTeX() string {
	var num strings.Builder
	num.WriteString(latexRate(t.Rate))
	for _, f := range t.Factors {
		num.WriteString(latexSpecies(f))
	}
	body := num.String()
	if t.Saturation != nil {
		body = fmt.Sprintf("\\frac{%s}{%s + %s}", body, latexRate(t.Saturation.Constant), latexSpecies(t.Saturation.Species))
	}
	return t.signString() + " " + body
}

func bracket(species string) string { return "[" + species + "]" }

func latexSpecies(species string) string { return "[\\mathrm{" + species + "}]" }

// latexRate maps k3, k-3, k3cat, kcat3 and K3m onto subscripted symbols.
func latexRate(rate string) string {
	switch {
	case strings.HasPrefix(rate, "kcat"):
		return "k^{cat}_{" + strings.TrimPrefix(rate, "kcat") + "}"
	case strings.HasPrefix(rate, "k-"):
		return "k^{-}_{" + strings.TrimPrefix(rate, "k-") + "}"
	case strings.HasPrefix(rate, "k") && strings.HasSuffix(rate, "cat"):
		return "k^{cat}_{" + strings.TrimSuffix(strings.TrimPrefix(rate, "k"), "cat") + "}"
	case strings.HasPrefix(rate, "K") && strings.HasSuffix(rate, "m"):
		return "K^{m}_{" + strings.TrimSuffix(strings.TrimPrefix(rate, "K"), "m") + "}"
	case strings.HasPrefix(rate, "k"):
		return "k_{" + strings.TrimPrefix(rate, "k") + "}"
	}
	return rate
}

// ============================================================
// Expression - ordered sum of terms
// ============================================================

// Expression is the right-hand side of one ODE. Terms keep the order in
// which reactions contributed them.
type Expression struct{ terms []Term }

func (e *Expression) append(terms ...Term) { e.terms = append(e.terms, terms...) }

// Terms returns a copy of the term list.
func (e *Expression) Terms() []Term {
	out := make([]Term, len(e.terms))
	copy(out, e.terms)
	return out
}

// Len is the number of signed rate terms.
func (e *Expression) Len() int { return len(e.terms) }

func (e *Expression) String() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func (e *Expression) LaTeX() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.LaTeX()
	}
	return strings.Join(parts, " ")
}

// CountTerms counts sign/expression token pairs in a rendered
// expression.
func CountTerms(rendered string) int { return len(strings.Fields(rendered)) / 2 }
