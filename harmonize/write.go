package harmonize

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/gwasbetas/betas"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"
)

// Missing values are written as NA.
const missing = "NA"

type naFloat struct {
	null.Float
}

func (f naFloat) MarshalCSV() (string, error) {
	if !f.Valid {
		return missing, nil
	}
	v := f.Float64
	if v == 0 {
		// No negative zeros from sign flips
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

type naString struct {
	null.String
}

func (s naString) MarshalCSV() (string, error) {
	if !s.Valid {
		return missing, nil
	}
	return s.String.String, nil
}

func floatCell(v float64) naFloat {
	return naFloat{null.NewFloat(v, !math.IsNaN(v) && !math.IsInf(v, 0))}
}

func stringCell(v string) naString {
	return naString{null.NewString(v, v != "")}
}

type outputRow struct {
	SNP             string   `csv:"snp"`
	EffectAllele    string   `csv:"effect_allele"`
	NonEffectAllele string   `csv:"non_effect_allele"`
	Chromosome      naString `csv:"chromosome"`
	Position        naString `csv:"position"`
	Frequency       naFloat  `csv:"frequency"`
	Beta            naFloat  `csv:"beta"`
	Zscore          naFloat  `csv:"zscore"`
}

// Write emits h as a tab-delimited table with a header.
func Write(w io.Writer, h *betas.Harmonized) error {
	rows := make([]*outputRow, 0, h.Len())
	for i := 0; i < h.Len(); i++ {
		r := h.Row(i)
		rows = append(rows, &outputRow{
			SNP:             r.SNP,
			EffectAllele:    r.EffectAllele,
			NonEffectAllele: r.NonEffectAllele,
			Chromosome:      stringCell(r.Chromosome),
			Position:        stringCell(r.Position),
			Frequency:       floatCell(r.Frequency),
			Beta:            floatCell(r.Beta),
			Zscore:          floatCell(r.Zscore),
		})
	}

	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(tsv)); err != nil {
		return pfx.Err(err)
	}
	tsv.Flush()

	return tsv.Error()
}

// WriteFile writes h to filename. The table is written to a temporary file
// that is renamed into place only once complete.
func WriteFile(filename string, h *betas.Harmonized) (err error) {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err = Write(f, h); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return pfx.Err(err)
	}

	if err = os.Rename(f.Name(), filename); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteSplit writes each table into folder under OutputName of its source,
// creating the folder if needed. It returns the files written, in order.
func WriteSplit(folder string, res *Result) ([]string, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, pfx.Err(err)
	}

	written := make([]string, 0, len(res.Tables))
	seen := make(map[string]string)
	for _, h := range res.Tables {
		name := OutputName(h.Name)
		if prior, exists := seen[name]; exists {
			return written, fmt.Errorf("WriteSplit: %s and %s would both be written to %s", prior, h.Name, name)
		}
		seen[name] = h.Name

		out := filepath.Join(folder, name)
		if err := WriteFile(out, h); err != nil {
			return written, err
		}
		written = append(written, out)
	}

	return written, nil
}

var compressionSuffixes = []string{".gz", ".bgz", ".bz2", ".xz", ".zip"}

// OutputName maps an input path (local or gs://) to the base name its
// harmonized output is written under: the same name, minus any compression
// suffix.
func OutputName(input string) string {
	if input == "" {
		return "harmonized.txt"
	}

	name := path.Base(filepath.ToSlash(input))
	for _, suffix := range compressionSuffixes {
		if trimmed := strings.TrimSuffix(name, suffix); trimmed != name && trimmed != "" {
			return trimmed
		}
	}

	return name
}
