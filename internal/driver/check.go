package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cascade/internal/diag"
	"cascade/internal/source"
)

// CheckStage identifies a point in a file's check lifecycle.
type CheckStage uint8

const (
	CheckStarted CheckStage = iota
	CheckFinished
)

// CheckEvent notifies a progress observer about one file.
type CheckEvent struct {
	Path   string
	Stage  CheckStage
	Errors int
}

// CheckResult содержит результат проверки одного файла
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Err     error // IO error; диагностики в Bag
}

// ListSourceFiles возвращает отсортированный список всех *.casc файлов:
// пути-файлы как есть, директории — рекурсивно.
func ListSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(p, ".casc") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// CheckPaths parses every file in parallel (syntax check only) and returns
// per-file results in path order. The optional observer receives start and
// finish events; it must be safe for concurrent use.
func CheckPaths(ctx context.Context, paths []string, maxDiagnostics int, observer func(CheckEvent)) ([]CheckResult, error) {
	files, err := ListSourceFiles(paths)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if observer != nil {
				observer(CheckEvent{Path: file, Stage: CheckStarted})
			}
			parsed, err := Parse(file, maxDiagnostics)
			if err != nil {
				results[i] = CheckResult{Path: file, Err: err}
				if observer != nil {
					observer(CheckEvent{Path: file, Stage: CheckFinished, Errors: 1})
				}
				return nil
			}
			results[i] = CheckResult{
				Path:    file,
				FileSet: parsed.FileSet,
				Bag:     parsed.Bag,
			}
			if observer != nil {
				errors := 0
				for _, d := range parsed.Bag.Items() {
					if d.Severity >= diag.SevError {
						errors++
					}
				}
				observer(CheckEvent{Path: file, Stage: CheckFinished, Errors: errors})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
