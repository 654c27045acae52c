// Package model holds the SNP and allele table of a reference prediction model
// and aligns harmonized statistics to it.
package model

import "strings"

// Alleles are the model's alleles for one SNP. Reference is the allele the
// model's weights refer to; aligned outputs use it as their effect allele.
type Alleles struct {
	Reference    string
	NonReference string
}

// Lookup is a read-only view of a reference model.
type Lookup interface {
	// SNPs lists the model's SNPs in model order.
	SNPs() []string
	// Alleles fetches one SNP's alleles.
	Alleles(snp string) (Alleles, bool)
}

// Table is an in-memory Lookup. The zero value is empty and ready to use.
type Table struct {
	order   []string
	alleles map[string]Alleles
}

// Add appends a SNP. A SNP seen before keeps its first alleles and position,
// since model tables list a SNP once per gene it contributes to.
func (t *Table) Add(snp string, a Alleles) {
	if t.alleles == nil {
		t.alleles = make(map[string]Alleles)
	}
	if _, exists := t.alleles[snp]; exists {
		return
	}

	a.Reference = strings.ToUpper(strings.TrimSpace(a.Reference))
	a.NonReference = strings.ToUpper(strings.TrimSpace(a.NonReference))

	t.alleles[snp] = a
	t.order = append(t.order, snp)
}

func (t *Table) SNPs() []string {
	return t.order
}

func (t *Table) Alleles(snp string) (Alleles, bool) {
	a, exists := t.alleles[snp]
	return a, exists
}

// Len is the number of distinct SNPs.
func (t *Table) Len() int {
	return len(t.order)
}
