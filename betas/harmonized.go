package betas

import "math"

// Harmonized is the column-oriented result of a derivation. Every slice has the
// same length. Beta is nil when the path cannot produce an effect size.
type Harmonized struct {
	Name string
	Path Path

	SNP             []string
	EffectAllele    []string
	NonEffectAllele []string
	Chromosome      []string
	Position        []string
	Frequency       []float64
	Beta            []float64
	Zscore          []float64
}

// Row is one harmonized SNP. Beta is NaN when unavailable.
type Row struct {
	SNP             string
	EffectAllele    string
	NonEffectAllele string
	Chromosome      string
	Position        string
	Frequency       float64
	Beta            float64
	Zscore          float64
}

// Len is the number of SNPs.
func (h *Harmonized) Len() int {
	return len(h.SNP)
}

// HasBeta reports whether an effect size column is present.
func (h *Harmonized) HasBeta() bool {
	return h.Beta != nil
}

// Row returns the i'th SNP.
func (h *Harmonized) Row(i int) Row {
	r := Row{
		SNP:             h.SNP[i],
		EffectAllele:    h.EffectAllele[i],
		NonEffectAllele: h.NonEffectAllele[i],
		Chromosome:      h.Chromosome[i],
		Position:        h.Position[i],
		Frequency:       h.Frequency[i],
		Beta:            math.NaN(),
		Zscore:          h.Zscore[i],
	}
	if h.HasBeta() {
		r.Beta = h.Beta[i]
	}

	return r
}

func newHarmonized(name string, path Path, n int, withBeta bool) *Harmonized {
	h := &Harmonized{
		Name:            name,
		Path:            path,
		SNP:             make([]string, 0, n),
		EffectAllele:    make([]string, 0, n),
		NonEffectAllele: make([]string, 0, n),
		Chromosome:      make([]string, 0, n),
		Position:        make([]string, 0, n),
		Frequency:       make([]float64, 0, n),
		Zscore:          make([]float64, 0, n),
	}
	if withBeta {
		h.Beta = make([]float64, 0, n)
	}

	return h
}

// NewEmpty returns a table with no rows that is shaped like h.
func (h *Harmonized) NewEmpty(n int) *Harmonized {
	return newHarmonized(h.Name, h.Path, n, h.HasBeta())
}

// Append adds one row. When h has no Beta column, r.Beta is ignored.
func (h *Harmonized) Append(r Row) {
	h.SNP = append(h.SNP, r.SNP)
	h.EffectAllele = append(h.EffectAllele, r.EffectAllele)
	h.NonEffectAllele = append(h.NonEffectAllele, r.NonEffectAllele)
	h.Chromosome = append(h.Chromosome, r.Chromosome)
	h.Position = append(h.Position, r.Position)
	h.Frequency = append(h.Frequency, r.Frequency)
	h.Zscore = append(h.Zscore, r.Zscore)
	if h.HasBeta() {
		h.Beta = append(h.Beta, r.Beta)
	}
}

// Concat stacks tables in the order given. The result carries a Beta column
// only if every part does.
func Concat(name string, parts ...*Harmonized) *Harmonized {
	n := 0
	withBeta := len(parts) > 0
	path := PathInvalid
	for i, p := range parts {
		n += p.Len()
		withBeta = withBeta && p.HasBeta()
		if i == 0 {
			path = p.Path
		}
	}

	out := newHarmonized(name, path, n, withBeta)
	for _, p := range parts {
		out.SNP = append(out.SNP, p.SNP...)
		out.EffectAllele = append(out.EffectAllele, p.EffectAllele...)
		out.NonEffectAllele = append(out.NonEffectAllele, p.NonEffectAllele...)
		out.Chromosome = append(out.Chromosome, p.Chromosome...)
		out.Position = append(out.Position, p.Position...)
		out.Frequency = append(out.Frequency, p.Frequency...)
		out.Zscore = append(out.Zscore, p.Zscore...)
		if withBeta {
			out.Beta = append(out.Beta, p.Beta...)
		}
	}

	return out
}
