package gwasbetas

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

// ListFolder returns the full paths of the files directly inside folder, in
// lexical order. Folders may be local or gs:// URLs; the latter require a
// client. Only files whose base name satisfies keep are returned; a nil keep
// returns every file.
func ListFolder(ctx context.Context, folder string, client *storage.Client, keep func(name string) bool) ([]string, error) {
	if keep == nil {
		keep = func(string) bool { return true }
	}

	var out []string

	if IsGoogleStorage(folder) {
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("a google storage client is required to list %s", folder))
		}

		bucketName, prefix, err := SplitGoogleStoragePath(strings.TrimSuffix(folder, "/") + "/")
		if err != nil {
			return nil, err
		}

		it := client.Bucket(bucketName).Objects(ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
		for {
			attrs, err := it.Next()
			if err == iterator.Done {
				break
			} else if err != nil {
				return nil, pfx.Err(err)
			}

			// Synthetic "directory" entries only carry a Prefix
			if attrs.Name == "" {
				continue
			}

			if keep(path.Base(attrs.Name)) {
				out = append(out, "gs://"+bucketName+"/"+attrs.Name)
			}
		}
	} else {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, pfx.Err(err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if keep(entry.Name()) {
				out = append(out, filepath.Join(folder, entry.Name()))
			}
		}
	}

	sort.Strings(out)

	return out, nil
}
