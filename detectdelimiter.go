package gwasbetas

import (
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// Whitespace is returned by DetermineDelimiter for files whose columns are
// separated by runs of spaces, which encoding/csv cannot split.
const Whitespace = ' '

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}

// DetermineDelimiterFromHeader inspects the header line first. Summary
// statistics headers are almost always tab or space separated, and only when
// the header is inconclusive do we fall back to sampling the body.
func DetermineDelimiterFromHeader(sample []byte) rune {
	header := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		header = sample[:i]
	}

	switch {
	case bytes.IndexByte(header, '\t') >= 0:
		return '\t'
	case bytes.IndexByte(header, ',') >= 0:
		return ','
	case bytes.IndexByte(bytes.TrimSpace(header), ' ') >= 0:
		return Whitespace
	}

	return DetermineDelimiter(bytes.NewReader(sample))
}
