package rasdae

// ============================================================
// ODE assembly
// ============================================================

// ODESystem maps species to right-hand sides, in the order species
// first received a term.
type ODESystem struct {
	cfg     Config
	order   []string
	rhs     map[string]*Expression
	network []Reaction
}

func newODESystem(cfg Config) *ODESystem {
	return &ODESystem{cfg: cfg, rhs: map[string]*Expression{}}
}

func (o *ODESystem) add(species string, terms ...Term) {
	e, ok := o.rhs[species]
	if !ok {
		e = &Expression{}
		o.rhs[species] = e
		o.order = append(o.order, species)
	}
	e.append(terms...)
}

// Assemble builds the ODE system of the network under cfg.
//
// Michaelis-Menten reactions touch only substrate and product. Mass
// action reactions also write the enzyme and the E-S complex. Enzymes
// acting solely through Michaelis-Menten kinetics are parameters and get
// no equation.
func Assemble(cfg Config) *ODESystem {
	o := newODESystem(cfg)
	o.network = Reactions(cfg)
	for _, r := range o.network {
		if r.UsesMichaelisMenten(cfg) {
			o.addMichaelisMenten(r)
		} else {
			o.addMassAction(r)
		}
	}
	return o
}

func (o *ODESystem) addMichaelisMenten(r Reaction) {
	sat := &Saturation{Constant: r.michaelis(), Species: r.Substrate}
	consume := Term{Sign: -1, Rate: r.mmRate(), Factors: []string{r.Enzyme, r.Substrate}, Saturation: sat}
	produce := consume
	produce.Sign = 1
	o.add(r.Substrate, consume)
	o.add(r.Product, produce)
}

func (o *ODESystem) addMassAction(r Reaction) {
	e, s, c, p := r.Enzyme, r.Substrate, r.Complex(), r.Product
	o.add(e,
		minus(r.rate(), e, s),
		plus(r.backward(), c),
		minus(r.catalytic(), c),
	)
	o.add(s,
		minus(r.rate(), e, s),
		plus(r.backward(), c),
	)
	o.add(c,
		plus(r.rate(), e, s),
		minus(r.backward(), c),
		minus(r.catalytic(), c),
	)
	o.add(p, plus(r.catalytic(), c))
}

// Config returns the configuration the system was assembled under.
func (o *ODESystem) Config() Config { return o.cfg }

// Reactions returns the reactions that were assembled.
func (o *ODESystem) Reactions() []Reaction {
	out := make([]Reaction, len(o.network))
	copy(out, o.network)
	return out
}

// Species lists the ODE species in display order.
func (o *ODESystem) Species() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// Len is the number of distinct species.
func (o *ODESystem) Len() int { return len(o.order) }

func (o *ODESystem) Has(species string) bool {
	_, ok := o.rhs[species]
	return ok
}

// RHS returns the right-hand side of species, or nil.
func (o *ODESystem) RHS(species string) *Expression { return o.rhs[species] }

// Size is the total number of right-side terms.
func (o *ODESystem) Size() int {
	n := 0
	for _, s := range o.order {
		n += o.rhs[s].Len()
	}
	return n
}
