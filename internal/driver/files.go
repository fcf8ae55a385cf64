package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"lintel/internal/config"
)

// Extensions lists the file suffixes picked up when walking directories.
var Extensions = []string{".js", ".mjs", ".cjs"}

// SkippedFile is a file the walk found but did not check.
type SkippedFile struct {
	Path   string
	Reason string
}

func hasSourceExt(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// CollectFiles expands paths into a sorted, de-duplicated list of source
// files. Directories are walked recursively; explicitly named files are
// taken whatever their extension. cfg filters by [files].ignore and
// max_size; a nil cfg filters nothing.
func CollectFiles(paths []string, cfg *config.Config) ([]string, []SkippedFile, error) {
	var (
		files   []string
		skipped []SkippedFile
	)
	seen := make(map[string]bool)
	add := func(path string, size int64) {
		if seen[path] {
			return
		}
		seen[path] = true
		if cfg != nil && cfg.TooLarge(size) {
			skipped = append(skipped, SkippedFile{
				Path:   path,
				Reason: fmt.Sprintf("larger than %s", humanize.IBytes(cfg.Files.MaxSize)),
			})
			return
		}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(root), info.Size())
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && cfg != nil && cfg.Ignored(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !hasSourceExt(path) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return err
			}
			add(path, fi.Size())
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	// deterministic order
	slices.Sort(files)
	slices.SortFunc(skipped, func(a, b SkippedFile) int { return strings.Compare(a.Path, b.Path) })
	return files, skipped, nil
}

// baseDirOf picks the directory paths are displayed relative to: the single
// directory argument, or the working directory otherwise.
func baseDirOf(paths []string) string {
	if len(paths) == 1 {
		if info, err := os.Stat(paths[0]); err == nil && info.IsDir() {
			return paths[0]
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
