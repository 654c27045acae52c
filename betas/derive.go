package betas

import (
	"fmt"
	"math"

	"github.com/carbocation/gwasbetas/columns"
	"github.com/carbocation/gwasbetas/gwas"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Derive computes BETA (when the path allows) and ZSCORE for every row of t.
// The identifier and allele columns are copied unchanged. Rows whose inputs are
// missing or out of range get NaN statistics; only a column that is unusable
// as a whole produces an error.
func Derive(t *gwas.Table, roles columns.Roles, path Path) (*Harmonized, error) {
	d := deriver{t: t, roles: roles, path: path}

	h, err := d.identifiers()
	if err != nil {
		return nil, err
	}

	switch path {
	case PathPSign:
		mag, err := d.zMagnitude()
		if err != nil {
			return nil, err
		}
		sign, err := d.signs(columns.BetaSign)
		if err != nil {
			return nil, err
		}
		h.Zscore = floats.MulTo(make([]float64, len(mag)), mag, sign)

	case PathPOR:
		mag, err := d.zMagnitude()
		if err != nil {
			return nil, err
		}
		beta, err := d.logOdds()
		if err != nil {
			return nil, err
		}
		h.Beta = beta
		h.Zscore = floats.MulTo(make([]float64, len(mag)), mag, signOf(beta))

	case PathPBeta:
		mag, err := d.zMagnitude()
		if err != nil {
			return nil, err
		}
		beta, err := d.floats(columns.Beta)
		if err != nil {
			return nil, err
		}
		h.Beta = beta
		h.Zscore = floats.MulTo(make([]float64, len(mag)), mag, signOf(beta))

	case PathBetaSE:
		beta, err := d.floats(columns.Beta)
		if err != nil {
			return nil, err
		}
		se, err := d.standardErrors()
		if err != nil {
			return nil, err
		}
		h.Beta = beta
		h.Zscore = ratio(beta, se)

	case PathORSE:
		beta, err := d.logOdds()
		if err != nil {
			return nil, err
		}
		se, err := d.standardErrors()
		if err != nil {
			return nil, err
		}
		h.Beta = beta
		h.Zscore = ratio(beta, se)

	case PathZscore:
		z, err := d.floats(columns.Zscore)
		if err != nil {
			return nil, err
		}
		h.Zscore = z

	default:
		return nil, fmt.Errorf("Derive: %s is not a derivation path", path)
	}

	return h, nil
}

type deriver struct {
	t     *gwas.Table
	roles columns.Roles
	path  Path
}

func (d deriver) column(role columns.Role) (string, error) {
	col, declared := d.roles.Column(role)
	if !declared || !d.t.HasColumn(col) {
		return "", &columns.FormatError{
			Kind:   columns.ErrMissingColumns,
			Roles:  []columns.Role{role},
			Detail: fmt.Sprintf("%s has no column %q for the %s path", d.t.Name, col, d.path),
		}
	}
	return col, nil
}

func (d deriver) strings(role columns.Role) ([]string, error) {
	col, err := d.column(role)
	if err != nil {
		return nil, err
	}
	out, _ := d.t.Strings(col)
	return out, nil
}

func (d deriver) optionalStrings(role columns.Role) []string {
	if col, declared := d.roles.Column(role); declared {
		if out, exists := d.t.Strings(col); exists {
			return out
		}
	}
	return make([]string, d.t.Len())
}

// floats reads a numeric column. Infinite cells are treated as missing.
func (d deriver) floats(role columns.Role) ([]float64, error) {
	col, err := d.column(role)
	if err != nil {
		return nil, err
	}
	out, _ := d.t.Floats(col)
	for i, v := range out {
		if math.IsInf(v, 0) {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

func (d deriver) signs(role columns.Role) ([]float64, error) {
	col, err := d.column(role)
	if err != nil {
		return nil, err
	}
	out, _ := d.t.Signs(col)
	return out, nil
}

func (d deriver) numericError(role columns.Role, detail string) error {
	col, _ := d.roles.Column(role)
	return &NumericDerivationError{
		Table:  d.t.Name,
		Path:   d.path,
		Role:   role,
		Column: col,
		Detail: detail,
	}
}

func (d deriver) identifiers() (*Harmonized, error) {
	h := &Harmonized{Name: d.t.Name, Path: d.path}

	var err error
	if h.SNP, err = d.strings(columns.SNP); err != nil {
		return nil, err
	}
	if h.EffectAllele, err = d.strings(columns.EffectAllele); err != nil {
		return nil, err
	}
	if h.NonEffectAllele, err = d.strings(columns.NonEffectAllele); err != nil {
		return nil, err
	}
	h.Chromosome = d.optionalStrings(columns.Chromosome)
	h.Position = d.optionalStrings(columns.Position)

	h.Frequency = nanSlice(d.t.Len())
	if col, declared := d.roles.Column(columns.Frequency); declared {
		if freq, exists := d.t.Floats(col); exists {
			h.Frequency = freq
		}
	}

	return h, nil
}

// zMagnitude converts the two-sided p-value column to |Z|.
func (d deriver) zMagnitude() ([]float64, error) {
	p, err := d.floats(columns.PValue)
	if err != nil {
		return nil, err
	}

	out := ZMagnitudeFromP(p)
	if d.t.Len() > 0 && countFinite(out) == 0 {
		return nil, d.numericError(columns.PValue, "no value lies in (0, 1]")
	}

	return out, nil
}

// logOdds returns log(OR), after checking that the column holds ratios at all.
func (d deriver) logOdds() ([]float64, error) {
	or, err := d.floats(columns.OR)
	if err != nil {
		return nil, err
	}

	if d.t.Len() == 0 {
		return or, nil
	}

	positive := 0
	for _, v := range or {
		if v < 0 {
			col, _ := d.roles.Column(columns.OR)
			return nil, &columns.FormatError{
				Kind:   columns.ErrAmbiguousColumns,
				Roles:  []columns.Role{columns.OR},
				Detail: fmt.Sprintf("%s: column %s holds negative values (e.g. %g), so it is not an odds ratio; is it a beta?", d.t.Name, col, v),
			}
		}
		if v > 0 && !math.IsInf(v, 0) {
			positive++
		}
	}
	if positive == 0 {
		return nil, d.numericError(columns.OR, "no value is a positive, finite odds ratio")
	}

	if err := d.checkORIsNotBeta(or); err != nil {
		return nil, err
	}

	return LogOdds(or), nil
}

// checkORIsNotBeta rejects an OR column that repeats a separately declared beta
// column value for value.
func (d deriver) checkORIsNotBeta(or []float64) error {
	betaCol, declared := d.roles.Column(columns.Beta)
	if !declared {
		return nil
	}
	beta, exists := d.t.Floats(betaCol)
	if !exists {
		return nil
	}

	compared := 0
	for i := range or {
		if math.IsNaN(or[i]) || math.IsNaN(beta[i]) {
			continue
		}
		if or[i] != beta[i] {
			return nil
		}
		compared++
	}
	if compared == 0 {
		return nil
	}

	orCol, _ := d.roles.Column(columns.OR)
	return &columns.FormatError{
		Kind:   columns.ErrAmbiguousColumns,
		Roles:  []columns.Role{columns.OR, columns.Beta},
		Detail: fmt.Sprintf("%s: columns %s and %s hold identical values", d.t.Name, orCol, betaCol),
	}
}

func (d deriver) standardErrors() ([]float64, error) {
	se, err := d.floats(columns.SE)
	if err != nil {
		return nil, err
	}

	if d.t.Len() > 0 {
		positive := 0
		for _, v := range se {
			if v > 0 && !math.IsInf(v, 0) {
				positive++
			}
		}
		if positive == 0 {
			return nil, d.numericError(columns.SE, "no value is a positive, finite standard error")
		}
	}

	return se, nil
}

// ZMagnitudeFromP returns |Φ⁻¹(p/2)| for each two-sided p-value, and NaN for p
// outside (0, 1].
func ZMagnitudeFromP(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		if !(v > 0 && v <= 1) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Abs(distuv.UnitNormal.Quantile(v / 2))
	}
	return out
}

// LogOdds returns log(OR), with NaN wherever OR is not positive and finite.
func LogOdds(or []float64) []float64 {
	out := make([]float64, len(or))
	for i, v := range or {
		if !(v > 0) || math.IsInf(v, 0) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log(v)
	}
	return out
}

// ratio returns beta/se, with NaN wherever beta is not finite or se is not
// positive and finite.
func ratio(beta, se []float64) []float64 {
	out := floats.DivTo(make([]float64, len(beta)), beta, se)
	for i, v := range se {
		if !(v > 0) || math.IsInf(v, 0) || math.IsInf(beta[i], 0) {
			out[i] = math.NaN()
		}
	}
	return out
}

func signOf(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = gwas.Sign(v)
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func countFinite(x []float64) int {
	n := 0
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			n++
		}
	}
	return n
}
