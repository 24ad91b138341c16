package securefile

import (
	"path/filepath"
	"strings"
)

// ExtensionRule is a single allow-list entry. Ext should include the leading
// dot (".log"); a missing dot is tolerated.
type ExtensionRule struct {
	Ext             string
	CaseInsensitive bool
}

// ExtensionFilter is an ordered allow-list of file extensions checked during
// OpenSecure for must-exist opens. A nil filter disables the check entirely;
// an empty non-nil filter matches nothing.
type ExtensionFilter []ExtensionRule

// Match reports whether the path's extension matches any rule.
func (f ExtensionFilter) Match(path string) bool {
	ext := filepath.Ext(path)
	for _, rule := range f {
		want := rule.Ext
		if want != "" && !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if rule.CaseInsensitive {
			if strings.EqualFold(ext, want) {
				return true
			}
		} else if ext == want {
			return true
		}
	}
	return false
}
