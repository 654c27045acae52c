package betas

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/gwasbetas/columns"
	"github.com/carbocation/gwasbetas/gwas"
	"github.com/google/go-cmp/cmp"
)

func derive(t *testing.T, tab *gwas.Table, roles columns.Roles) *Harmonized {
	t.Helper()
	path, err := SelectPath(roles)
	if err != nil {
		t.Fatal(err)
	}
	h, err := Derive(tab, roles, path)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestDeriveEveryPathAgrees(t *testing.T) {
	tab := fixtureTable(t)

	for _, v := range []struct {
		Name     string
		Roles    columns.Roles
		WantBeta bool
	}{
		{"P_OR", baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"), true},
		{"P_BETA", baseRoles().With(columns.PValue, "P").With(columns.Beta, "BETA"), true},
		{"P_SIGN", baseRoles().With(columns.PValue, "P").With(columns.BetaSign, "BETA_SIGN"), false},
		{"BETA_SE", baseRoles().With(columns.Beta, "BETA").With(columns.SE, "SE"), true},
		{"OR_SE", baseRoles().With(columns.OR, "OR").With(columns.SE, "SE"), true},
	} {
		h := derive(t, tab, v.Roles)

		if h.Path.String() != v.Name {
			t.Errorf("%s: derived with %s", v.Name, h.Path)
		}
		if diff := cmp.Diff(expectedSNP, h.SNP); diff != "" {
			t.Errorf("%s: %s", v.Name, diff)
		}
		assertClose(t, v.Name+" zscore", expectedZscore, h.Zscore)

		if h.HasBeta() != v.WantBeta {
			t.Fatalf("%s: HasBeta is %v", v.Name, h.HasBeta())
		}
		if v.WantBeta {
			assertClose(t, v.Name+" beta", expectedBeta, h.Beta)
		}
	}
}

func TestDeriveCopiesIdentifiers(t *testing.T) {
	h := derive(t, fixtureTable(t), baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"))

	if diff := cmp.Diff([]string{"A", "C", "G", "T", "A"}, h.EffectAllele); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"G", "T", "A", "C", "C"}, h.NonEffectAllele); diff != "" {
		t.Error(diff)
	}
	if diff := cmp.Diff([]string{"1", "1", "2", "3", "4"}, h.Chromosome); diff != "" {
		t.Error(diff)
	}
	if h.Frequency[2] != 0.45 {
		t.Errorf("Expected frequency 0.45, got %v", h.Frequency[2])
	}
}

func TestPORIsExact(t *testing.T) {
	tab := fixtureTable(t)
	h := derive(t, tab, baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"))

	or, _ := tab.Floats("OR")
	p, _ := tab.Floats("P")
	mag := ZMagnitudeFromP(p)
	for i := range or {
		if h.Beta[i] != math.Log(or[i]) {
			t.Errorf("Row %d: beta %v != log(OR) %v", i, h.Beta[i], math.Log(or[i]))
		}
		if gwas.Sign(h.Zscore[i]) != gwas.Sign(h.Beta[i]) {
			t.Errorf("Row %d: zscore %v and beta %v disagree in sign", i, h.Zscore[i], h.Beta[i])
		}
		if math.Abs(h.Zscore[i]) != mag[i] {
			t.Errorf("Row %d: |zscore| %v != %v", i, math.Abs(h.Zscore[i]), mag[i])
		}
	}
}

func TestZMagnitudeFromP(t *testing.T) {
	for _, v := range []struct {
		P float64
		Z float64
	}{
		{0.05, 1.959963984540054},
		{1, 0},
		{5e-8, 5.451310437845481},
		{1e-300, 37.06578788077212},
	} {
		got := ZMagnitudeFromP([]float64{v.P})[0]
		if math.Abs(got-v.Z) > 1e-6*math.Max(1, v.Z) {
			t.Errorf("p=%g: expected %v, got %v", v.P, v.Z, got)
		}
	}

	for _, p := range []float64{0, -0.1, 1.5, math.NaN()} {
		if got := ZMagnitudeFromP([]float64{p})[0]; !math.IsNaN(got) {
			t.Errorf("p=%g: expected NaN, got %v", p, got)
		}
	}
}

func TestRowLevelProblemsBecomeNaN(t *testing.T) {
	input := `SNPID	A1	A2	OR	SE	P	BETA
rs1	A	G	1.05253	0.0123	3.14642e-05	0.0512
rs2	C	T	0	0	NA	-0.0311
rs3	G	A	NA	-1	1.7	0.1203
`
	tab, err := gwas.Read(strings.NewReader(input), "bad-rows", gwas.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	for _, roles := range []columns.Roles{
		baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"),
		baseRoles().With(columns.Beta, "BETA").With(columns.SE, "SE"),
		baseRoles().With(columns.OR, "OR").With(columns.SE, "SE"),
	} {
		h := derive(t, tab, roles)
		if h.Len() != 3 {
			t.Fatalf("%s: expected every row to be kept, got %d", h.Path, h.Len())
		}
		if !floatsClose(h.Zscore[0], expectedZscore[0]) {
			t.Errorf("%s: first row should survive, got %v", h.Path, h.Zscore[0])
		}
		for i := 1; i < 3; i++ {
			if !math.IsNaN(h.Zscore[i]) {
				t.Errorf("%s: row %d should be NaN, got %v", h.Path, i, h.Zscore[i])
			}
		}
	}
}

func TestInfiniteInputsBecomeNaN(t *testing.T) {
	input := `SNPID	A1	A2	OR	SE	P	BETA	Z
rs1	A	G	1.05253	0.0123	3.14642e-05	0.0512	4.1626
rs2	C	T	Inf	0.015	0.0381413	-Inf	+Inf
`
	tab, err := gwas.Read(strings.NewReader(input), "infinite", gwas.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	for _, roles := range []columns.Roles{
		baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"),
		baseRoles().With(columns.PValue, "P").With(columns.Beta, "BETA"),
		baseRoles().With(columns.Beta, "BETA").With(columns.SE, "SE"),
		baseRoles().With(columns.OR, "OR").With(columns.SE, "SE"),
		baseRoles().With(columns.Zscore, "Z"),
	} {
		h := derive(t, tab, roles)
		if math.IsNaN(h.Zscore[0]) {
			t.Errorf("%s: first row should survive", h.Path)
		}
		if !math.IsNaN(h.Zscore[1]) {
			t.Errorf("%s: expected a NaN zscore, got %v", h.Path, h.Zscore[1])
		}
		if h.HasBeta() && !math.IsNaN(h.Beta[1]) {
			t.Errorf("%s: expected a NaN beta, got %v", h.Path, h.Beta[1])
		}
	}

	if got := LogOdds([]float64{math.Inf(1)})[0]; !math.IsNaN(got) {
		t.Errorf("LogOdds(+Inf): expected NaN, got %v", got)
	}
	if got := ratio([]float64{math.Inf(-1)}, []float64{0.1})[0]; !math.IsNaN(got) {
		t.Errorf("ratio(-Inf, 0.1): expected NaN, got %v", got)
	}
}

func floatsClose(a, b float64) bool {
	return math.Abs(a-b) <= relTol*math.Abs(b)
}

func TestBetaScaleValuesInORColumnAreRejected(t *testing.T) {
	tab := fixtureTable(t)

	// The BETA column, which holds negative values, declared as an odds ratio
	roles := baseRoles().With(columns.OR, "BETA").With(columns.SE, "SE")
	path, err := SelectPath(roles)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Derive(tab, roles, path)
	if !errors.Is(err, columns.ErrAmbiguousColumns) {
		t.Fatalf("Expected an ambiguous column error, got %v", err)
	}

	roles = baseRoles().With(columns.PValue, "P").With(columns.OR, "BETA")
	path, _ = SelectPath(roles)
	if _, err := Derive(tab, roles, path); !errors.Is(err, columns.ErrAmbiguousColumns) {
		t.Fatalf("Expected an ambiguous column error for P_OR, got %v", err)
	}
}

func TestORDuplicatingBetaIsRejected(t *testing.T) {
	input := "SNPID\tA1\tA2\tP\tOR\tB\nrs1\tA\tG\t0.1\t1.2\t1.2\nrs2\tC\tT\t0.2\t0.9\t0.9\n"
	tab, err := gwas.Read(strings.NewReader(input), "dup", gwas.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	roles := baseRoles().With(columns.PValue, "P").With(columns.OR, "OR").With(columns.Beta, "B")
	path, _ := SelectPath(roles)
	if _, err := Derive(tab, roles, path); !errors.Is(err, columns.ErrAmbiguousColumns) {
		t.Fatalf("Expected an ambiguous column error, got %v", err)
	}
}

func TestUnusableColumnsAreNumericErrors(t *testing.T) {
	for _, v := range []struct {
		Name  string
		Input string
		Roles columns.Roles
		Role  columns.Role
	}{
		{
			"no valid p",
			"SNPID\tA1\tA2\tP\tBETA\nrs1\tA\tG\t0\t0.1\nrs2\tC\tT\tNA\t0.2\n",
			baseRoles().With(columns.PValue, "P").With(columns.Beta, "BETA"),
			columns.PValue,
		},
		{
			"no positive se",
			"SNPID\tA1\tA2\tSE\tBETA\nrs1\tA\tG\t0\t0.1\nrs2\tC\tT\t-1\t0.2\n",
			baseRoles().With(columns.SE, "SE").With(columns.Beta, "BETA"),
			columns.SE,
		},
		{
			"no positive or",
			"SNPID\tA1\tA2\tSE\tOR\nrs1\tA\tG\t0.1\t0\nrs2\tC\tT\t0.1\tNA\n",
			baseRoles().With(columns.SE, "SE").With(columns.OR, "OR"),
			columns.OR,
		},
	} {
		tab, err := gwas.Read(strings.NewReader(v.Input), v.Name, gwas.ReadOptions{})
		if err != nil {
			t.Fatal(err)
		}
		path, err := SelectPath(v.Roles)
		if err != nil {
			t.Fatal(err)
		}

		_, err = Derive(tab, v.Roles, path)
		var nde *NumericDerivationError
		if !errors.As(err, &nde) {
			t.Errorf("%s: expected *NumericDerivationError, got %v", v.Name, err)
			continue
		}
		if nde.Role != v.Role {
			t.Errorf("%s: expected role %s, got %s", v.Name, v.Role, nde.Role)
		}
	}
}

func TestDeriveMissingColumn(t *testing.T) {
	roles := baseRoles().With(columns.PValue, "PVAL").With(columns.OR, "OR")
	_, err := Derive(fixtureTable(t), roles, PathPOR)
	if !errors.Is(err, columns.ErrMissingColumns) {
		t.Errorf("Expected a missing column error, got %v", err)
	}
}

func TestDeriveEmptyTable(t *testing.T) {
	tab := gwas.NewTable("empty", []string{"SNPID", "A1", "A2", "P", "OR", "CHR", "BP", "FRQ"}, nil)
	h, err := Derive(tab, baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"), PathPOR)
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 0 {
		t.Errorf("Expected no rows, got %d", h.Len())
	}
}

func TestZscorePassThrough(t *testing.T) {
	input := "SNPID\tA1\tA2\tZ\nrs1\tA\tG\t1.5\nrs2\tC\tT\t-2\n"
	tab, err := gwas.Read(strings.NewReader(input), "z", gwas.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}

	h := derive(t, tab, baseRoles().With(columns.Zscore, "Z"))
	if h.HasBeta() {
		t.Error("A Z-score alone cannot give a beta")
	}
	if diff := cmp.Diff([]float64{1.5, -2}, h.Zscore); diff != "" {
		t.Error(diff)
	}
	// Chromosome, position and frequency were declared but absent here
	if h.Chromosome[0] != "" || !math.IsNaN(h.Frequency[0]) {
		t.Errorf("Expected empty optional columns, got %q %v", h.Chromosome[0], h.Frequency[0])
	}
}

func TestConcat(t *testing.T) {
	tab := fixtureTable(t)
	a := derive(t, tab, baseRoles().With(columns.PValue, "P").With(columns.OR, "OR"))
	b := derive(t, tab, baseRoles().With(columns.PValue, "P").With(columns.BetaSign, "BETA_SIGN"))

	both := Concat("all", a, a)
	if both.Len() != 10 || !both.HasBeta() {
		t.Errorf("Expected 10 rows with beta, got %d (%v)", both.Len(), both.HasBeta())
	}
	assertClose(t, "concat", append(append([]float64{}, expectedZscore...), expectedZscore...), both.Zscore)

	mixed := Concat("mixed", a, b)
	if mixed.HasBeta() {
		t.Error("Concatenating a table without beta must drop the beta column")
	}
	if mixed.Row(7).SNP != "rs3" {
		t.Errorf("Expected rs3 at row 7, got %s", mixed.Row(7).SNP)
	}
	if !math.IsNaN(mixed.Row(7).Beta) {
		t.Errorf("Expected NaN beta, got %v", mixed.Row(7).Beta)
	}
}
