package model

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const textModel = `rsid	gene	weight	ref_allele	eff_allele
rs5	ENSG1	0.1	C	A
rs3	ENSG1	0.2	G	A
rs5	ENSG2	0.3	C	A
rs1	ENSG2	-0.4	G	A
`

func TestLoadText(t *testing.T) {
	m, err := LoadText(strings.NewReader(textModel))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"rs5", "rs3", "rs1"}, m.SNPs()); diff != "" {
		t.Error(diff)
	}
	a, ok := m.Alleles("rs3")
	if !ok || a.Reference != "A" || a.NonReference != "G" {
		t.Errorf("Unexpected alleles for rs3: %+v (%v)", a, ok)
	}
	if _, ok := m.Alleles("rs2"); ok {
		t.Error("rs2 is not in the model")
	}
}

func TestLoadTextIncomplete(t *testing.T) {
	if _, err := LoadText(strings.NewReader("rsid\teff_allele\tref_allele\nrs1\tA\t\n")); err == nil {
		t.Error("Expected an error for a row without a ref_allele")
	}
}

func TestLoadCompressedText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte(textModel))
	gz.Close()
	f.Close()

	m, err := Load(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 3 {
		t.Errorf("Expected 3 SNPs, got %d", m.Len())
	}
}

func TestTableUppercasesAlleles(t *testing.T) {
	m := &Table{}
	m.Add("rs1", Alleles{Reference: "a", NonReference: " g"})
	a, _ := m.Alleles("rs1")
	if a.Reference != "A" || a.NonReference != "G" {
		t.Errorf("Expected normalized alleles, got %+v", a)
	}
}
