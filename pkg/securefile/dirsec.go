package securefile

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"pathguard/internal/logging"
)

const (
	// maxAncestorSegments bounds the ancestor chain so a pathological path
	// cannot make the walk unbounded.
	maxAncestorSegments = 128

	// maxSymlinkDepth bounds recursion through symbolic links; exceeding it
	// is treated as a loop or excessive indirection.
	maxSymlinkDepth = 5
)

// Verdict is the result of a directory trust check. When Secure is false,
// Detail names the first offending path segment and suggests a remediation,
// since the condition is usually fixable with chown/chmod.
type Verdict struct {
	Secure bool
	Detail string
}

func insecure(format string, args ...interface{}) Verdict {
	return Verdict{Secure: false, Detail: fmt.Sprintf(format, args...)}
}

// IsDirectorySecure walks every directory from the filesystem root down to
// path (inclusive) and requires each one to be owned by the effective user or
// root, and to be writable by neither group nor others. Symbolic links on the
// chain are followed with bounded depth and their targets held to the same
// standard. A directory is only as trustworthy as its least trustworthy
// ancestor, so the walk is root-to-leaf and the first violation is definitive.
func IsDirectorySecure(path string) Verdict {
	return checkPath(path, 0)
}

func checkPath(path string, symlinkDepth int) Verdict {
	if !filepath.IsAbs(path) {
		return insecure("path %q is not absolute", path)
	}

	chain, err := ancestorChain(filepath.Clean(path))
	if err != nil {
		return insecure("%v", err)
	}

	for _, ancestor := range chain {
		if v := checkSegment(ancestor, symlinkDepth); !v.Secure {
			logging.Debug("Directory trust check failed", "path", path, "segment", ancestor, "detail", v.Detail)
			return v
		}
	}
	return Verdict{Secure: true}
}

// chainStop is the highest ancestor included in the walk, normally unset so
// the walk reaches the filesystem root. Tests point it at a fixture directory
// so the chain stays inside a tree whose ownership they control.
var chainStop = ""

// ancestorChain returns path and every ancestor up to the root, ordered
// root-to-leaf.
func ancestorChain(path string) ([]string, error) {
	var chain []string
	for p := path; ; p = filepath.Dir(p) {
		chain = append(chain, p)
		if len(chain) > maxAncestorSegments {
			return nil, fmt.Errorf("path %q has more than %d segments", path, maxAncestorSegments)
		}
		if p == chainStop || p == filepath.Dir(p) {
			break // reached the root
		}
	}
	slices.Reverse(chain)
	return chain, nil
}

func checkSegment(path string, symlinkDepth int) Verdict {
	info, err := os.Lstat(path)
	if err != nil {
		return insecure("cannot stat %q: %v", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if symlinkDepth >= maxSymlinkDepth {
			return insecure("too many levels of symbolic links at %q (limit %d)", path, maxSymlinkDepth)
		}
		target, err := os.Readlink(path)
		if err != nil {
			return insecure("cannot read symbolic link %q: %v", path, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		// The link target must be trustworthy along its own full chain.
		return checkPath(target, symlinkDepth+1)
	}

	if !info.IsDir() {
		return insecure("%q is not a directory", path)
	}

	return checkOwnerAndMode(path, info)
}
