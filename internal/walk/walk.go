// Package walk performs the deterministic, sorted directory traversal that
// discovers build-file candidates: any file whose content, once blank lines
// and comments are skipped, begins with a recognizable stage-introduction
// line. Names are not filtered by extension.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ravdens/Prebake/internal/classify"
	"github.com/ravdens/Prebake/pkg/prebakeerrors"
)

// File is one discovered build-file candidate.
type File struct {
	Path     string
	Contents []byte
}

// Discover walks root, reads every regular file with bounded concurrency,
// and returns the candidates in deterministic (path-sorted) order. A read
// failure on any file is a fatal *prebakeerrors.IOError.
func Discover(root string) ([]File, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, &prebakeerrors.IOError{Op: "walk", Path: root, Err: err}
	}
	sort.Strings(paths)

	contents := make([][]byte, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &prebakeerrors.IOError{Op: "read", Path: root, Err: err}
	}

	var candidates []File
	for i, p := range paths {
		if looksLikeBuildFile(contents[i]) {
			candidates = append(candidates, File{Path: p, Contents: contents[i]})
		}
	}
	return candidates, nil
}

// looksLikeBuildFile reports whether the first non-blank, non-comment line
// of contents is a recognizable stage introduction.
func looksLikeBuildFile(contents []byte) bool {
	for _, raw := range strings.Split(string(contents), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d, err := classify.Line(line)
		if err != nil {
			return false
		}
		return d.Kind == classify.StageIntro
	}
	return false
}
