package buildspec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// frameExtension is the only image extension the resolver accepts. The check
// is case-insensitive; appended extensions use this exact spelling.
const frameExtension = ".png"

// ResolveFiles expands one frame path specification into absolute file paths.
// Relative specs resolve against baseDir, never the process working
// directory, so spec files stay portable.
//
// A spec without a "*" names exactly one file; the image extension is
// appended when missing. A wildcard spec matches regular files directly
// inside the pattern's parent directory (no recursion) whose full path
// matches the pattern and whose extension is the image extension. Matches are
// sorted lexicographically so frame ordering never depends on directory
// enumeration order. A wildcard whose parent directory does not exist yields
// an empty, non-error result.
func ResolveFiles(spec, baseDir string) ([]string, error) {
	abs := spec
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(baseDir, abs)
	}
	abs = filepath.Clean(abs)

	if !strings.Contains(abs, "*") {
		if !hasFrameExtension(abs) {
			abs += frameExtension
		}
		return []string{abs}, nil
	}

	pattern, err := wildcardPattern(abs)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(abs)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list frame directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		info, statErr := os.Stat(full)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		if !pattern.MatchString(full) {
			continue
		}
		if !hasFrameExtension(full) {
			continue
		}
		files = append(files, full)
	}

	sort.Strings(files)
	return files, nil
}

// wildcardPattern compiles a full-path matcher where every "*" in the spec
// matches one or more characters and everything else is literal.
func wildcardPattern(abs string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(abs)
	expr := "^" + strings.ReplaceAll(quoted, `\*`, ".+") + "$"
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile frame pattern %q: %w", abs, err)
	}
	return pattern, nil
}

func hasFrameExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), frameExtension)
}
