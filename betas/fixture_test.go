package betas

import (
	"strings"
	"testing"

	"github.com/carbocation/gwasbetas/columns"
	"github.com/carbocation/gwasbetas/gwas"
	"gonum.org/v1/gonum/floats/scalar"
)

// The same five SNPs expressed every way a GWAS might report them. OR, P and
// the sign column were computed from BETA and SE and then rounded to six
// significant digits, as a results file would print them.
const fixture = `CHR	SNPID	A1	A2	BP	FRQ	OR	SE	P	BETA	BETA_SIGN
1	rs1	A	G	100	0.31	1.05253	0.0123	3.14642e-05	0.0512	+
1	rs2	C	T	200	0.12	0.969379	0.015	0.0381413	-0.0311	-
2	rs3	G	A	300	0.45	1.12784	0.0402	0.00276669	0.1203	+
3	rs4	T	C	400	0.08	0.997902	0.011	0.848597	-0.0021	-
4	rs5	A	C	500	0.27	1.06716	0.0201	0.00122142	0.065	+
`

var (
	expectedSNP    = []string{"rs1", "rs2", "rs3", "rs4", "rs5"}
	expectedBeta   = []float64{0.0512, -0.0311, 0.1203, -0.0021, 0.065}
	expectedZscore = []float64{4.162601626016261, -2.0733333333333333, 2.992537313432836, -0.19090909090909092, 3.2338308457711444}
)

const relTol = 1e-3

func fixtureTable(t *testing.T) *gwas.Table {
	t.Helper()
	tab, err := gwas.Read(strings.NewReader(fixture), "scz2.txt", gwas.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func baseRoles() columns.Roles {
	return columns.Roles{}.
		With(columns.SNP, "SNPID").
		With(columns.EffectAllele, "A1").
		With(columns.NonEffectAllele, "A2").
		With(columns.Chromosome, "CHR").
		With(columns.Position, "BP").
		With(columns.Frequency, "FRQ")
}

func assertClose(t *testing.T, label string, want, got []float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s: expected %d values, got %d", label, len(want), len(got))
	}
	for i := range want {
		if !scalar.EqualWithinRel(want[i], got[i], relTol) {
			t.Errorf("%s[%d]: expected %v, got %v", label, i, want[i], got[i])
		}
	}
}
