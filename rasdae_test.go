package rasdae_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/rasdae"
)

var (
	qss         = rasdae.Config{UseMichaelisMentenForAll: true}
	qssFeedback = rasdae.Config{UseMichaelisMentenForAll: true, EnableFeedback: true}
	full        = rasdae.Config{}
	fullFeed    = rasdae.Config{EnableFeedback: true}
	allConfigs  = []rasdae.Config{qss, qssFeedback, full, fullFeed}
)

// ============================================================
// Model tests
// ============================================================

func TestReactions_Feedback(t *testing.T) {
	assert.Len(t, rasdae.Reactions(full), 10)

	rs := rasdae.Reactions(fullFeed)
	require.Len(t, rs, 11)
	last := rs[10]
	assert.Equal(t, rasdae.FeedbackReaction, last.ID)
	assert.Equal(t, "pp-ERK + Raf* -> Raf", last.String())
}

func TestReactions_FreshSlice(t *testing.T) {
	rs := rasdae.Reactions(full)
	rs[0].Enzyme = "changed"
	assert.Equal(t, "RasGTP", rasdae.Reactions(full)[0].Enzyme)
}

func TestReaction_UsesMichaelisMenten(t *testing.T) {
	rs := rasdae.Reactions(full)
	assert.True(t, rs[0].UsesMichaelisMenten(full), "RasGTP is a small-molecule enzyme")
	assert.False(t, rs[2].UsesMichaelisMenten(full), "Raf* forms a complex")
	assert.True(t, rs[2].UsesMichaelisMenten(qss))
	assert.Equal(t, "Raf*-MEK", rs[2].Complex())
}

// ============================================================
// Pool tests
// ============================================================

func TestBuildPools_QSS(t *testing.T) {
	for _, cfg := range []rasdae.Config{qss, qssFeedback} {
		pools := rasdae.BuildPools(cfg)
		require.Len(t, pools, 3)
		assert.Equal(t, []string{"Raf", "Raf*"}, pools[0].Species)
		assert.Equal(t, []string{"MEK", "p-MEK", "pp-MEK"}, pools[1].Species)
		assert.Equal(t, []string{"ERK", "p-ERK", "pp-ERK"}, pools[2].Species)
		assert.Equal(t, 18, pools.Combinations())
		assert.Empty(t, pools.Overlaps())
	}
}

func TestBuildPools_Full(t *testing.T) {
	pools := rasdae.BuildPools(full)
	raf, ok := pools.Pool(rasdae.PoolRaf)
	require.True(t, ok)
	assert.Equal(t, []string{"Raf", "Raf*", "Raf*-MEK", "Raf*-p-MEK"}, raf.Species)
	mek, _ := pools.Pool(rasdae.PoolMEK)
	assert.Contains(t, mek.Species, "Raf*-MEK")
	assert.Equal(t, 4*7*5, pools.Combinations())

	_, ok = pools.Pool("RAS0")
	assert.False(t, ok)
}

func TestBuildPools_FullFeedbackOverlap(t *testing.T) {
	pools := rasdae.BuildPools(fullFeed)
	assert.Equal(t, 5*7*6, pools.Combinations())
	overlaps := pools.Overlaps()
	assert.Equal(t, []string{"Raf0", "ERK0"}, overlaps["pp-ERK-Raf*"])
	assert.Equal(t, []string{"Raf0", "MEK0"}, overlaps["Raf*-MEK"])
	assert.Equal(t, []string{"MEK0", "ERK0"}, overlaps["pp-MEK-p-ERK"])
	assert.Len(t, overlaps, 5)
}

func TestPool_Closure(t *testing.T) {
	tests := []struct {
		name    string
		pool    rasdae.Pool
		species string
		want    string
	}{
		{"first member", rasdae.Pool{Name: "MEK0", Species: []string{"MEK", "p-MEK", "pp-MEK"}}, "MEK", "[MEK] = [MEK0] - [p-MEK] - [pp-MEK]"},
		{"middle member", rasdae.Pool{Name: "MEK0", Species: []string{"MEK", "p-MEK", "pp-MEK"}}, "p-MEK", "[p-MEK] = [MEK0] - [MEK] - [pp-MEK]"},
		{"single member", rasdae.Pool{Name: "X0", Species: []string{"Raf"}}, "Raf", "[Raf] = [X0]"},
		{"empty pool", rasdae.Pool{Name: "X0"}, "Raf", "[Raf] = [X0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pool.Closure(tt.species).String())
		})
	}
}

func TestPoolTable_EmptyPoolHasNoCombinations(t *testing.T) {
	assert.Equal(t, 0, rasdae.PoolTable{}.Combinations())
	assert.Equal(t, 0, rasdae.PoolTable{{Name: "Raf0", Species: []string{"Raf"}}, {Name: "MEK0"}}.Combinations())
}

// ============================================================
// ODE assembly tests
// ============================================================

func TestAssemble_QSSFeedbackSpecies(t *testing.T) {
	ode := rasdae.Assemble(qssFeedback)
	assert.Equal(t,
		[]string{"Raf", "Raf*", "MEK", "p-MEK", "pp-MEK", "ERK", "p-ERK", "pp-ERK"},
		ode.Species())
	assert.False(t, ode.Has("RasGTP"), "Michaelis-Menten enzymes are parameters")
	assert.Equal(t, 22, ode.Size())
	assert.Equal(t,
		"- kcat1[RasGTP][Raf]/K1m+[Raf] + kcat2[Pase1][Raf*]/K2m+[Raf*] + kcat11[pp-ERK][Raf*]/K11m+[Raf*]",
		ode.RHS("Raf").String())
}

func TestAssemble_FullMassAction(t *testing.T) {
	ode := rasdae.Assemble(full)
	assert.Equal(t, []string{
		"Raf", "Raf*", "MEK", "Raf*-MEK", "p-MEK", "Raf*-p-MEK",
		"pp-MEK", "ERK", "pp-MEK-ERK", "p-ERK", "pp-MEK-p-ERK", "pp-ERK",
	}, ode.Species())
	assert.Equal(t, 48, ode.Size())

	assert.Equal(t,
		"+ k3[Raf*][MEK] - k-3[Raf*-MEK] - k3cat[Raf*-MEK]",
		ode.RHS("Raf*-MEK").String())
	assert.Equal(t,
		"+ kcat1[RasGTP][Raf]/K1m+[Raf] - kcat2[Pase1][Raf*]/K2m+[Raf*]"+
			" - k3[Raf*][MEK] + k-3[Raf*-MEK] - k3cat[Raf*-MEK]"+
			" - k4[Raf*][p-MEK] + k-4[Raf*-p-MEK] - k4cat[Raf*-p-MEK]",
		ode.RHS("Raf*").String())
	assert.Equal(t,
		"- k3[Raf*][MEK] + k-3[Raf*-MEK] + kcat5[Pase2][p-MEK]/K5m+[p-MEK]",
		ode.RHS("MEK").String())
}

func TestAssemble_Sizes(t *testing.T) {
	want := map[rasdae.Config]int{qss: 20, qssFeedback: 22, full: 48, fullFeed: 57}
	for cfg, size := range want {
		assert.Equal(t, size, rasdae.Assemble(cfg).Size(), cfg.String())
	}
}

func TestAssemble_TermCountMatchesRenderedTokens(t *testing.T) {
	for _, cfg := range allConfigs {
		ode := rasdae.Assemble(cfg)
		total := 0
		for _, s := range ode.Species() {
			rhs := ode.RHS(s)
			assert.Equal(t, rhs.Len(), rasdae.CountTerms(rhs.String()), s)
			total += rasdae.CountTerms(rhs.String())
		}
		assert.Equal(t, ode.Size(), total)
	}
}

func TestAssemble_EveryPoolSpeciesHasODE(t *testing.T) {
	for _, cfg := range allConfigs {
		ode := rasdae.Assemble(cfg)
		for _, p := range rasdae.BuildPools(cfg) {
			for _, s := range p.Species {
				assert.True(t, ode.Has(s), "%s: %s in %s", cfg, s, p.Name)
			}
		}
	}
}

// ============================================================
// Term rendering tests
// ============================================================

func TestTerm_LaTeX(t *testing.T) {
	ode := rasdae.Assemble(full)
	terms := ode.RHS("Raf*-MEK").Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, `+ k_{3}[\mathrm{Raf*}][\mathrm{MEK}]`, terms[0].LaTeX())
	assert.Equal(t, `- k^{-}_{3}[\mathrm{Raf*-MEK}]`, terms[1].LaTeX())
	assert.Equal(t, `- k^{cat}_{3}[\mathrm{Raf*-MEK}]`, terms[2].LaTeX())

	mm := ode.RHS("Raf").Terms()[0]
	assert.Equal(t, `- \frac{k^{cat}_{1}[\mathrm{RasGTP}][\mathrm{Raf}]}{K^{m}_{1} + [\mathrm{Raf}]}`, mm.LaTeX())
}

func TestExpression_TermsIsCopy(t *testing.T) {
	ode := rasdae.Assemble(qss)
	terms := ode.RHS("Raf").Terms()
	terms[0].Rate = "changed"
	assert.NotContains(t, ode.RHS("Raf").String(), "changed")
}

// ============================================================
// Enumerator tests
// ============================================================

func TestEnumerator_Count(t *testing.T) {
	for _, cfg := range allConfigs {
		ode := rasdae.Assemble(cfg)
		pools := rasdae.BuildPools(cfg)
		systems, err := rasdae.Systems(ode, pools)
		require.NoError(t, err)
		assert.Len(t, systems, pools.Combinations(), cfg.String())
		for i, sys := range systems {
			assert.Equal(t, i+1, sys.Index)
			assert.Len(t, sys.Equations, ode.Len())
		}
	}
}

func TestEnumerator_QSSFeedbackScenario(t *testing.T) {
	systems, err := rasdae.Systems(rasdae.Assemble(qssFeedback), rasdae.BuildPools(qssFeedback))
	require.NoError(t, err)
	require.Len(t, systems, 18)

	first := systems[0]
	assert.Equal(t, []string{"Raf", "MEK", "ERK"}, first.Choices)
	assert.Equal(t, 15, first.Size)
	assert.Equal(t, 3, first.Algebraic())
	assert.Equal(t, "[Raf] = [Raf0] - [Raf*]", first.Equations[0].String())

	// ERK varies fastest, Raf slowest.
	assert.Equal(t, []string{"Raf", "MEK", "p-ERK"}, systems[1].Choices)
	assert.Equal(t, []string{"Raf", "p-MEK", "ERK"}, systems[3].Choices)
	assert.Equal(t, []string{"Raf*", "MEK", "ERK"}, systems[9].Choices)
	assert.Equal(t, []string{"Raf*", "pp-MEK", "pp-ERK"}, systems[17].Choices)
}

func TestEnumerator_ComplexAppearsInFullSystem(t *testing.T) {
	ode := rasdae.Assemble(full)
	systems, err := rasdae.Systems(ode, rasdae.BuildPools(full))
	require.NoError(t, err)
	assert.Equal(t, 40, systems[0].Size)

	found := false
	for _, eq := range systems[0].Equations {
		if eq.Species == "Raf*-MEK" {
			found = true
			assert.False(t, eq.IsAlgebraic())
			assert.True(t, strings.HasPrefix(eq.String(), "d[Raf*-MEK]/dt = + k3[Raf*][MEK]"))
		}
	}
	assert.True(t, found)
}

func TestEnumerator_SharedSpeciesTakesFirstPool(t *testing.T) {
	en, err := rasdae.NewEnumerator(rasdae.Assemble(full), rasdae.BuildPools(full))
	require.NoError(t, err)

	// Raf0[2] = Raf*-MEK, MEK0[3] = Raf*-MEK, ERK0[0] = ERK.
	sys, err := en.At(2*35 + 3*5 + 0 + 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Raf*-MEK", "Raf*-MEK", "ERK"}, sys.Choices)
	assert.Equal(t, 2, sys.Algebraic())
	assert.Equal(t, 42, sys.Size)
	for _, eq := range sys.Equations {
		if eq.Species == "Raf*-MEK" {
			assert.Equal(t, "[Raf*-MEK] = [Raf0] - [Raf] - [Raf*] - [Raf*-p-MEK]", eq.String())
		}
	}
}

func TestEnumerator_ResetRestarts(t *testing.T) {
	en, err := rasdae.NewEnumerator(rasdae.Assemble(qss), rasdae.BuildPools(qss))
	require.NoError(t, err)

	var first []string
	for sys, ok := en.Next(); ok; sys, ok = en.Next() {
		first = append(first, strings.Join(sys.Choices, ","))
	}
	_, ok := en.Next()
	assert.False(t, ok)

	en.Reset()
	var second []string
	for sys, ok := en.Next(); ok; sys, ok = en.Next() {
		second = append(second, strings.Join(sys.Choices, ","))
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, en.Count())
}

func TestEnumerator_AtMatchesNext(t *testing.T) {
	en, err := rasdae.NewEnumerator(rasdae.Assemble(fullFeed), rasdae.BuildPools(fullFeed))
	require.NoError(t, err)
	for sys, ok := en.Next(); ok; sys, ok = en.Next() {
		at, err := en.At(sys.Index)
		require.NoError(t, err)
		assert.Equal(t, sys.Choices, at.Choices)
		assert.Equal(t, sys.Size, at.Size)
	}
}

func TestEnumerator_AtOutOfRange(t *testing.T) {
	en, err := rasdae.NewEnumerator(rasdae.Assemble(qss), rasdae.BuildPools(qss))
	require.NoError(t, err)
	for _, idx := range []int{0, -1, 19} {
		_, err := en.At(idx)
		assert.ErrorIs(t, err, rasdae.ErrIndexOutOfRange)
	}
}

func TestEnumerator_UnknownSpecies(t *testing.T) {
	pools := rasdae.PoolTable{{Name: "Raf0", Species: []string{"Raf", "Raf*-MEK"}}}
	_, err := rasdae.NewEnumerator(rasdae.Assemble(qss), pools)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rasdae.ErrUnknownSpecies))

	var ce *rasdae.ConsistencyError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Raf*-MEK", ce.Species)
	assert.Equal(t, "Raf0", ce.Pool)
}

func TestEnumerator_SingleMemberPool(t *testing.T) {
	pools := rasdae.PoolTable{{Name: "Raf0", Species: []string{"Raf"}}}
	systems, err := rasdae.Systems(rasdae.Assemble(qss), pools)
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "[Raf] = [Raf0]", systems[0].Equations[0].String())
}

func TestEnumerator_EmptyTable(t *testing.T) {
	systems, err := rasdae.Systems(rasdae.Assemble(qss), rasdae.PoolTable{})
	require.NoError(t, err)
	assert.Empty(t, systems)
}
