//go:build cgo
// +build cgo

package model

import (
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

// LoadDB reads the weights table of a sqlite model database, in rowid order.
func LoadDB(path string) (*Table, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path + "?mode=ro"
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer db.Close()

	records := []*weight{}
	if err := db.Select(&records, "SELECT rsid, eff_allele, ref_allele FROM weights ORDER BY rowid"); err != nil {
		return nil, pfx.Err(err)
	}

	return fromWeights(records)
}
