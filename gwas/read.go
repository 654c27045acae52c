package gwas

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwasbetas"
	"github.com/carbocation/pfx"
)

// ReadOptions control how a file is split into a table.
type ReadOptions struct {
	// Separator between columns. Zero means detect it from the header.
	// gwasbetas.Whitespace splits on runs of spaces and tabs.
	Separator rune

	// SkipUntilHeader, if set, discards every line before the first one that
	// equals it exactly; that line is the header.
	SkipUntilHeader string
}

// ReadError wraps a failure to read one input.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ReadFile opens a local or gs:// file, decompresses it if needed, and parses
// it into a table named after path.
func ReadFile(path string, client *storage.Client, opts ReadOptions) (*Table, error) {
	f, _, err := gwasbetas.MaybeOpenSeekerFromGoogleStorage(path, client)
	if err != nil {
		return nil, &ReadError{Name: path, Err: pfx.Err(err)}
	}
	defer f.Close()

	r, _, err := gwasbetas.MaybeDecompressReadCloser(f)
	if err != nil {
		return nil, &ReadError{Name: path, Err: pfx.Err(err)}
	}
	defer r.Close()

	t, err := Read(r, path, opts)
	if err != nil {
		return nil, &ReadError{Name: path, Err: err}
	}

	return t, nil
}

// Read parses already-decompressed text into a table.
func Read(r io.Reader, name string, opts ReadOptions) (*Table, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if opts.SkipUntilHeader != "" {
		data, err = skipUntilHeader(data, opts.SkipUntilHeader)
		if err != nil {
			return nil, err
		}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s has no header", name)
	}

	sep := opts.Separator
	if sep == 0 {
		sep = gwasbetas.DetermineDelimiterFromHeader(data)
	}

	var records [][]string
	if sep == gwasbetas.Whitespace {
		records, err = splitWhitespace(data)
	} else {
		records, err = splitDelimited(data, sep)
	}
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header", name)
	}

	return NewTable(name, records[0], records[1:]), nil
}

func skipUntilHeader(data []byte, header string) ([]byte, error) {
	offset := 0
	for offset < len(data) {
		end := bytes.IndexByte(data[offset:], '\n')
		line := data[offset:]
		next := len(data)
		if end >= 0 {
			line = data[offset : offset+end]
			next = offset + end + 1
		}

		if strings.TrimRight(string(line), "\r") == header {
			return data[offset:], nil
		}

		offset = next
	}

	return nil, fmt.Errorf("header line %q was never found", header)
}

func splitDelimited(data []byte, sep rune) ([][]string, error) {
	c := csv.NewReader(bytes.NewReader(data))
	c.Comma = sep
	c.LazyQuotes = true
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = sep != '\t'

	records := make([][]string, 0)
	for {
		row, err := c.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		records = append(records, row)
	}

	return records, nil
}

func splitWhitespace(data []byte) ([][]string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	records := make([][]string, 0)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		records = append(records, fields)
	}

	return records, scanner.Err()
}
