package columns

import (
	"fmt"
	"sort"
	"strings"
)

// Layout is a named preset for a summary statistics format. Delimiter 0 means
// the separator is detected from the file.
type Layout struct {
	Delimiter rune
	Roles     Roles
}

func layout(delim rune, pairs ...interface{}) Layout {
	l := Layout{Delimiter: delim}
	for i := 0; i+1 < len(pairs); i += 2 {
		l.Roles = l.Roles.With(pairs[i].(Role), pairs[i+1].(string))
	}
	return l
}

// See https://github.com/rgcgithub/regenie/issues/50#issuecomment-723664958 for
// confirmation of the meaning of BETA and A1FREQ in REGENIE with regard to SNP.
var Layouts = map[string]Layout{
	// SNP	CHR	BP	GENPOS	ALLELE1	ALLELE0	A1FREQ	INFO	CHISQ_LINREG	P_LINREG	BETA	SE	CHISQ_BOLT_LMM_INF	P_BOLT_LMM_INF	CHISQ_BOLT_LMM	P_BOLT_LMM
	"BOLT": layout('\t',
		SNP, "SNP",
		EffectAllele, "ALLELE1",
		NonEffectAllele, "ALLELE0",
		Chromosome, "CHR",
		Position, "BP",
		Frequency, "A1FREQ",
		Beta, "BETA",
		SE, "SE",
	),

	// CHROM GENPOS ID ALLELE0 ALLELE1 A1FREQ INFO N TEST BETA SE CHISQ LOG10P
	"REGENIE": layout(' ',
		SNP, "ID",
		EffectAllele, "ALLELE1",
		NonEffectAllele, "ALLELE0",
		Chromosome, "CHROM",
		Position, "GENPOS",
		Frequency, "A1FREQ",
		Beta, "BETA",
		SE, "SE",
	),

	// SAIGE's Allele2 is the effect allele.
	"SAIGE": layout(0,
		SNP, "MarkerID",
		EffectAllele, "Allele2",
		NonEffectAllele, "Allele1",
		Chromosome, "CHR",
		Position, "POS",
		Frequency, "AF_Allele2",
		Beta, "BETA",
		SE, "SE",
	),

	// Psychiatric Genomics Consortium style daner files.
	"PGC": layout(0,
		SNP, "SNPID",
		EffectAllele, "A1",
		NonEffectAllele, "A2",
		Chromosome, "HG19CHRC",
		Position, "BP",
		OR, "OR",
		PValue, "P",
	),
}

// LayoutNames lists the preset names in lexical order.
func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}

// LookupLayout fetches a preset by case-insensitive name.
func LookupLayout(name string) (Layout, error) {
	l, exists := Layouts[strings.ToUpper(name)]
	if !exists {
		return Layout{}, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", name, LayoutNames())
	}

	return l, nil
}
