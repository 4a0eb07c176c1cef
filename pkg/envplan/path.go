// pkg/envplan/path.go
package envplan

import (
	"path/filepath"
	"strings"
)

// PrependPath puts dir at the front of the search path unless the current
// value already contains it. The check is a substring match against the
// existing value, so a directory already present anywhere in PATH is never
// inserted twice.
func PrependPath(path, dir string) string {
	if dir == "" {
		return path
	}
	if strings.Contains(path, dir) {
		return path
	}
	if path == "" {
		return dir
	}
	return dir + string(filepath.ListSeparator) + path
}
