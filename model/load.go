package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwasbetas"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// weight is one row of a model's weights table. Only the columns needed for
// alignment are read.
type weight struct {
	RSID         string `db:"rsid" csv:"rsid"`
	EffectAllele string `db:"eff_allele" csv:"eff_allele"`
	RefAllele    string `db:"ref_allele" csv:"ref_allele"`
}

func (w weight) alleles() Alleles {
	return Alleles{Reference: w.EffectAllele, NonReference: w.RefAllele}
}

// Load reads a model. Paths ending in .db are sqlite model databases with a
// weights table; anything else is a delimited text file with rsid, eff_allele
// and ref_allele columns. Text models may live on gs://.
func Load(path string, client *storage.Client) (*Table, error) {
	if strings.HasSuffix(path, ".db") {
		if gwasbetas.IsGoogleStorage(path) {
			return nil, fmt.Errorf("Load: sqlite models must be local, but got %s", path)
		}
		return LoadDB(path)
	}

	f, _, err := gwasbetas.MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, _, err := gwasbetas.MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	return LoadText(r)
}

// LoadText reads a tab-delimited model allele table.
func LoadText(r io.Reader) (*Table, error) {
	records := []*weight{}

	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.LazyQuotes = true
	tsv.FieldsPerRecord = -1

	if err := gocsv.UnmarshalCSV(tsv, &records); err != nil {
		return nil, pfx.Err(err)
	}

	return fromWeights(records)
}

func fromWeights(records []*weight) (*Table, error) {
	t := &Table{}
	for i, w := range records {
		if w.RSID == "" || w.EffectAllele == "" || w.RefAllele == "" {
			return nil, fmt.Errorf("model row %d is incomplete: %+v", i+1, *w)
		}
		t.Add(w.RSID, w.alleles())
	}

	return t, nil
}
