package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	draftPrefix    = "draft-"
	draftExt       = ".md"
	draftStampFmt  = "20060102-150405"
	draftGlob      = draftPrefix + "*" + draftExt
	maxDraftSuffix = 10000
)

// CreateDraft synthesizes a draft path named after now under dir and
// creates the empty file. When the name is taken a numeric suffix is
// appended until a free name is found.
func CreateDraft(dir string, now time.Time) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, defaultDirPerm); err != nil {
		return "", fmt.Errorf("failed to create drafts directory: %w", err)
	}

	stamp := now.Format(draftStampFmt)
	for n := 0; n < maxDraftSuffix; n++ {
		name := draftPrefix + stamp + draftExt
		if n > 0 {
			name = fmt.Sprintf("%s%s-%d%s", draftPrefix, stamp, n, draftExt)
		}
		path := filepath.Join(abs, name)

		// O_EXCL makes the existence check and the creation a single step.
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, defaultFilePerm)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create draft: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close draft: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free draft name for %s in %s", stamp, abs)
}

// IsDraftPath reports whether path is a draft file located under dir.
func IsDraftPath(dir, path string) bool {
	if dir == "" || path == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	ok, err := doublestar.Match("**/"+draftGlob, filepath.ToSlash(rel))
	return err == nil && ok
}

// ListDrafts returns the draft files in dir, newest name first.
// A missing directory yields no drafts.
func ListDrafts(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(os.DirFS(abs), draftGlob)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(abs, filepath.FromSlash(m)))
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}
