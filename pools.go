package rasdae

import "strings"

// ============================================================
// Conservation pools
// ============================================================

// Pool is a conserved total and the species that sum to it.
type Pool struct {
	Name    string   `json:"name"`
	Species []string `json:"species"`
}

// PoolTable holds Raf0, MEK0 and ERK0 in that order.
type PoolTable []Pool

const (
	PoolRaf = "Raf0"
	PoolMEK = "MEK0"
	PoolERK = "ERK0"
)

// BuildPools returns the conservation table for cfg. Under the QSS
// account pools list only free and phosphorylated forms; otherwise every
// complex touching the pool is included.
func BuildPools(cfg Config) PoolTable {
	if cfg.UseMichaelisMentenForAll {
		return PoolTable{
			{PoolRaf, []string{"Raf", "Raf*"}},
			{PoolMEK, []string{"MEK", "p-MEK", "pp-MEK"}},
			{PoolERK, []string{"ERK", "p-ERK", "pp-ERK"}},
		}
	}

	raf := []string{"Raf", "Raf*", "Raf*-MEK", "Raf*-p-MEK"}
	mek := []string{"MEK", "p-MEK", "pp-MEK", "Raf*-MEK", "Raf*-p-MEK", "pp-MEK-ERK", "pp-MEK-p-ERK"}
	erk := []string{"ERK", "p-ERK", "pp-ERK", "pp-MEK-ERK", "pp-MEK-p-ERK"}
	if cfg.EnableFeedback {
		// The feedback complex is counted in both Raf0 and ERK0.
		raf = append(raf, "pp-ERK-Raf*")
		erk = append(erk, "pp-ERK-Raf*")
	}
	return PoolTable{
		{PoolRaf, raf},
		{PoolMEK, mek},
		{PoolERK, erk},
	}
}

// Pool looks up a pool by name.
func (pt PoolTable) Pool(name string) (Pool, bool) {
	for _, p := range pt {
		if p.Name == name {
			return p, true
		}
	}
	return Pool{}, false
}

// Combinations is the number of DAE variants the table yields.
func (pt PoolTable) Combinations() int {
	if len(pt) == 0 {
		return 0
	}
	n := 1
	for _, p := range pt {
		n *= len(p.Species)
	}
	return n
}

// Overlaps maps each species listed in more than one pool to the pools
// that list it, in table order.
func (pt PoolTable) Overlaps() map[string][]string {
	seen := map[string][]string{}
	for _, p := range pt {
		for _, s := range p.Species {
			seen[s] = append(seen[s], p.Name)
		}
	}
	out := map[string][]string{}
	for s, pools := range seen {
		if len(pools) > 1 {
			out[s] = pools
		}
	}
	return out
}

// ============================================================
// Algebraic equations
// ============================================================

// AlgebraicEquation is [Species] = [Pool] - [Others...].
type AlgebraicEquation struct {
	Species string   `json:"species"`
	Pool    string   `json:"pool"`
	Others  []string `json:"others"`
}

// Closure derives the conservation equation solved for species. Others
// keep the pool-list order.
func (p Pool) Closure(species string) AlgebraicEquation {
	others := make([]string, 0, len(p.Species))
	for _, s := range p.Species {
		if s != species {
			others = append(others, s)
		}
	}
	return AlgebraicEquation{Species: species, Pool: p.Name, Others: others}
}

func (ae AlgebraicEquation) String() string {
	var b strings.Builder
	b.WriteString(bracket(ae.Species))
	b.WriteString(" = ")
	b.WriteString(bracket(ae.Pool))
	for _, o := range ae.Others {
		b.WriteString(" - ")
		b.WriteString(bracket(o))
	}
	return b.String()
}

func (ae AlgebraicEquation) LaTeX() string {
	var b strings.Builder
	b.WriteString(latexSpecies(ae.Species))
	b.WriteString(" = ")
	b.WriteString(latexSpecies(ae.Pool))
	for _, o := range ae.Others {
		b.WriteString(" - ")
		b.WriteString(latexSpecies(o))
	}
	return b.String()
}
