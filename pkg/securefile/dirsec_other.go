//go:build !unix

package securefile

import "os"

// Directory ownership checks require POSIX uid/mode semantics.
func checkOwnerAndMode(path string, info os.FileInfo) Verdict {
	return insecure("directory ownership validation for %q: %s", path, CodeNotSupported)
}
