package buildspec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads the spec file at path and returns its normalized Document. The
// builder is selected purely by filename suffix: a case-insensitive .json
// suffix picks the JSON builder, anything else the XML builder. Relative
// frame paths inside the spec resolve against the spec file's own directory,
// so loads are safe to run concurrently and independent of the caller's
// working directory.
func Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve spec path %s: %w", path, err)
	}
	baseDir := filepath.Dir(abs)

	if strings.EqualFold(filepath.Ext(abs), ".json") {
		return loadJSON(abs, baseDir)
	}
	return loadXML(abs, baseDir)
}
