// Package betas turns whatever association statistics a GWAS file reports into
// a signed Z-score and, where possible, a linear-scale effect size.
package betas

import (
	"fmt"

	"github.com/carbocation/gwasbetas/columns"
)

// Path is the formula used to derive BETA and ZSCORE from the declared columns.
type Path int

const (
	PathInvalid Path = iota
	PathPSign        // p-value + direction of effect: ZSCORE only
	PathPOR          // p-value + odds ratio
	PathPBeta        // p-value + beta
	PathBetaSE       // beta + standard error
	PathORSE         // odds ratio + standard error
	PathZscore       // a Z-score column used as-is
)

func (p Path) String() string {
	switch p {
	case PathPSign:
		return "P_SIGN"
	case PathPOR:
		return "P_OR"
	case PathPBeta:
		return "P_BETA"
	case PathBetaSE:
		return "BETA_SE"
	case PathORSE:
		return "OR_SE"
	case PathZscore:
		return "ZSCORE"
	}
	return "INVALID"
}

// ProducesBeta reports whether the path yields a BETA column.
func (p Path) ProducesBeta() bool {
	switch p {
	case PathPOR, PathPBeta, PathBetaSE, PathORSE:
		return true
	}
	return false
}

// Requires lists the roles the path consumes.
func (p Path) Requires() columns.Mask {
	for _, d := range decisionTable {
		if d.Path == p {
			return d.Requires
		}
	}
	return 0
}

// decisionTable is evaluated top to bottom; the first row whose roles are all
// declared is selected.
var decisionTable = []struct {
	Path     Path
	Requires columns.Mask
}{
	{PathPSign, columns.MaskOf(columns.PValue, columns.BetaSign)},
	{PathPOR, columns.MaskOf(columns.PValue, columns.OR)},
	{PathPBeta, columns.MaskOf(columns.PValue, columns.Beta)},
	{PathBetaSE, columns.MaskOf(columns.Beta, columns.SE)},
	{PathORSE, columns.MaskOf(columns.OR, columns.SE)},
	{PathZscore, columns.MaskOf(columns.Zscore)},
}

// conflictingRoles may never be bound to the same source column: their values
// live on different scales, so one column cannot be both.
var conflictingRoles = [][2]columns.Role{
	{columns.OR, columns.Beta},
	{columns.OR, columns.SE},
	{columns.Beta, columns.SE},
	{columns.PValue, columns.Beta},
	{columns.PValue, columns.OR},
	{columns.PValue, columns.SE},
	{columns.PValue, columns.Zscore},
	{columns.PValue, columns.BetaSign},
	{columns.Zscore, columns.Beta},
	{columns.Zscore, columns.OR},
	{columns.Zscore, columns.SE},
	{columns.BetaSign, columns.OR},
	{columns.BetaSign, columns.SE},
}

// SelectPath decides, from the declarations alone, which formula a run will
// use. It never looks at data.
func SelectPath(roles columns.Roles) (Path, error) {
	declared := roles.Declared()

	if need := columns.MaskOf(columns.Required...); !declared.Has(need) {
		return PathInvalid, &columns.FormatError{
			Kind:   columns.ErrInsufficientColumns,
			Roles:  (need &^ declared).Roles(),
			Detail: "identifier and allele columns must be declared",
		}
	}

	for _, pair := range conflictingRoles {
		a, aOK := roles.Column(pair[0])
		b, bOK := roles.Column(pair[1])
		if aOK && bOK && a == b {
			return PathInvalid, &columns.FormatError{
				Kind:   columns.ErrConflictingColumns,
				Roles:  []columns.Role{pair[0], pair[1]},
				Detail: fmt.Sprintf("both are bound to column %s", a),
			}
		}
	}

	for _, d := range decisionTable {
		if declared.Has(d.Requires) {
			return d.Path, nil
		}
	}

	return PathInvalid, &columns.FormatError{
		Kind:   columns.ErrInsufficientColumns,
		Detail: fmt.Sprintf("declared %s, but no derivation is possible; need pvalue with beta_sign, or or beta, or se with beta or or, or zscore", declared),
	}
}
