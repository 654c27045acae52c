// Package harmonize runs the derivation over one or many GWAS tables and
// collects the results.
package harmonize

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/carbocation/gwasbetas/betas"
	"github.com/carbocation/gwasbetas/columns"
	"github.com/carbocation/gwasbetas/gwas"
	"github.com/carbocation/gwasbetas/model"
)

// Source yields input tables in order and returns io.EOF when exhausted. A
// failure to read one input should be a *gwas.ReadError so that the lenient
// policy can skip it.
type Source interface {
	Next() (*gwas.Table, error)
}

// Policy decides what a failure on one input does to the run.
type Policy int

const (
	// Strict aborts the run on the first failed input. It is the default.
	Strict Policy = iota
	// Lenient skips the failed input, records it, and continues.
	Lenient
)

func (p Policy) String() string {
	if p == Lenient {
		return "lenient"
	}
	return "strict"
}

// Options configure a run.
type Options struct {
	// Split returns one table per input instead of one concatenated table.
	Split bool

	// Model, when non-nil, restricts and orients the results to it. Split
	// tables are aligned one by one; an aggregate table is aligned once, after
	// concatenation, so that it is in model order however the inputs were
	// divided.
	Model model.Lookup

	Policy Policy

	// Logger receives progress messages. Nil means the standard logger.
	Logger *log.Logger
}

// FileError records an input skipped under the Lenient policy.
type FileError struct {
	Name string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result holds the harmonized tables. With Split, Tables pairs one-to-one with
// the inputs that succeeded, in input order and named after them; otherwise it
// holds exactly one table.
type Result struct {
	Path   betas.Path
	Tables []*betas.Harmonized
	Failed []FileError
}

// Run selects the derivation path once from roles, then derives every table
// src yields and aligns the results to opts.Model, if given. An aggregate run
// gives the same table whether the dataset came as one input or several.
// Declaration problems abort
// before any input is read. Per-input failures follow opts.Policy, except
// FormatErrors, which always abort. Under Strict, an aborted run returns no
// result at all.
func Run(src Source, roles columns.Roles, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	path, err := betas.SelectPath(roles)
	if err != nil {
		return nil, err
	}
	logger.Printf("Deriving statistics with the %s path from columns %s\n", path, roles)

	res := &Result{Path: path}
	parts := make([]*betas.Harmonized, 0)

	perFileModel := opts.Model
	if !opts.Split {
		perFileModel = nil
	}

	for {
		t, err := src.Next()
		if err == io.EOF {
			break
		}

		var h *betas.Harmonized
		if err == nil {
			h, err = processOne(t, roles, path, perFileModel, logger)
		}

		if err != nil {
			name := inputName(t, err)
			if columns.IsFormatError(err) || opts.Policy == Strict || !skippable(err) {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			logger.Printf("Skipping %s: %v\n", name, err)
			res.Failed = append(res.Failed, FileError{Name: name, Err: err})
			continue
		}

		parts = append(parts, h)
	}

	if opts.Split {
		res.Tables = parts
	} else {
		all := betas.Concat("", parts...)
		if len(parts) == 0 {
			all.Path = path
		}
		if opts.Model != nil {
			aligned := model.Align(all, opts.Model)
			logger.Printf("Aligned %d derived rows to the model; %d remain\n", all.Len(), aligned.Len())
			all = aligned
		}
		res.Tables = []*betas.Harmonized{all}
	}

	for _, h := range res.Tables {
		logger.Printf("%s: %s\n", displayName(h.Name), betas.Summarize(h))
	}

	return res, nil
}

func processOne(t *gwas.Table, roles columns.Roles, path betas.Path, m model.Lookup, logger *log.Logger) (*betas.Harmonized, error) {
	if err := gwas.ValidateStrict(t, roles); err != nil {
		return nil, err
	}

	h, err := betas.Derive(t, roles, path)
	if err != nil {
		return nil, err
	}

	if m == nil {
		logger.Printf("%s: derived %d rows\n", t.Name, h.Len())
		return h, nil
	}

	aligned := model.Align(h, m)
	logger.Printf("%s: derived %d rows, %d remain after alignment to the model\n", t.Name, h.Len(), aligned.Len())

	return aligned, nil
}

// skippable lists the failures that the lenient policy may step over.
func skippable(err error) bool {
	var re *gwas.ReadError
	var nde *betas.NumericDerivationError
	return errors.As(err, &re) || errors.As(err, &nde)
}

func inputName(t *gwas.Table, err error) string {
	if t != nil {
		return t.Name
	}
	var re *gwas.ReadError
	if errors.As(err, &re) {
		return re.Name
	}
	return "input"
}

func displayName(name string) string {
	if name == "" {
		return "aggregate"
	}
	return name
}
