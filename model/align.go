package model

import (
	"strings"

	"github.com/carbocation/gwasbetas/betas"
)

// Align joins h against the model on SNP id and returns a new table in model
// order. SNPs missing from either side are dropped, as are SNPs whose alleles
// are not the model's two alleles. Where the file's effect allele is the
// model's non-reference allele, BETA and ZSCORE change sign and the alleles are
// swapped, so aligning an aligned table changes nothing. h is not modified.
//
// A SNP that appears more than once in h contributes only its first row.
func Align(h *betas.Harmonized, m Lookup) *betas.Harmonized {
	rowOf := make(map[string]int, h.Len())
	for i, snp := range h.SNP {
		if _, exists := rowOf[snp]; !exists {
			rowOf[snp] = i
		}
	}

	out := h.NewEmpty(len(m.SNPs()))
	for _, snp := range m.SNPs() {
		i, exists := rowOf[snp]
		if !exists {
			continue
		}
		a, _ := m.Alleles(snp)

		row := h.Row(i)
		ea := strings.ToUpper(row.EffectAllele)
		nea := strings.ToUpper(row.NonEffectAllele)

		switch {
		case ea == a.Reference && nea == a.NonReference:
			// Already oriented
		case ea == a.NonReference && nea == a.Reference:
			row.Beta = -row.Beta
			row.Zscore = -row.Zscore
			// Allele frequencies refer to the effect allele
			row.Frequency = 1 - row.Frequency
		default:
			continue
		}
		row.EffectAllele = a.Reference
		row.NonEffectAllele = a.NonReference

		out.Append(row)
	}

	return out
}
