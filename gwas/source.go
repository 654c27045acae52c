package gwas

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwasbetas"
)

// Discover lists the files in folder (local or gs://) whose base names match
// pattern, in lexical order. An empty pattern matches everything.
func Discover(ctx context.Context, folder, pattern string, client *storage.Client) ([]string, error) {
	var keep func(string) bool
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("Discover: bad file pattern: %w", err)
		}
		keep = re.MatchString
	}

	paths, err := gwasbetas.ListFolder(ctx, folder, client, keep)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("Discover: no files in %s match %q", folder, pattern)
	}

	return paths, nil
}

// FileSource reads Paths one at a time, in order. It is not safe for concurrent
// use.
type FileSource struct {
	Paths   []string
	Options ReadOptions
	Client  *storage.Client

	next int
}

// Next returns the next table, or io.EOF once every path has been read. A
// read failure is returned as a *ReadError and the source advances past it.
func (s *FileSource) Next() (*Table, error) {
	if s.next >= len(s.Paths) {
		return nil, io.EOF
	}

	path := s.Paths[s.next]
	s.next++

	return ReadFile(path, s.Client, s.Options)
}

// SliceSource yields tables that have already been read.
type SliceSource struct {
	Tables []*Table

	next int
}

func (s *SliceSource) Next() (*Table, error) {
	if s.next >= len(s.Tables) {
		return nil, io.EOF
	}

	t := s.Tables[s.next]
	s.next++

	return t, nil
}
