package betas

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes how usable a harmonized table is.
type Summary struct {
	Rows       int
	UsableRows int     // rows with a finite ZSCORE
	Lambda     float64 // genomic inflation factor; NaN with no usable rows
}

func (s Summary) String() string {
	return fmt.Sprintf("%d rows, %d with a usable zscore, lambda_GC %.4f", s.Rows, s.UsableRows, s.Lambda)
}

// Summarize computes the genomic inflation factor, median(Z²) divided by the
// median of a 1 degree of freedom chi-square (≈0.4549).
func Summarize(h *Harmonized) Summary {
	out := Summary{Rows: h.Len(), Lambda: math.NaN()}

	chisq := make(stats.Float64Data, 0, h.Len())
	for _, z := range h.Zscore {
		if math.IsNaN(z) || math.IsInf(z, 0) {
			continue
		}
		chisq = append(chisq, z*z)
	}
	out.UsableRows = len(chisq)

	median, err := stats.Median(chisq)
	if err != nil {
		return out
	}

	expected := distuv.ChiSquared{K: 1}.Quantile(0.5)
	out.Lambda = median / expected

	return out
}
