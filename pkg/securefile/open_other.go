//go:build !unix

package securefile

import (
	"errors"
	"os"
)

var errFinalSymlink = errors.New("final path component is a symbolic link")

// Windows resolves symlinks at open time with no O_NOFOLLOW equivalent here;
// the post-open identity check is the swap defense on this platform.
func sysOpen(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}
