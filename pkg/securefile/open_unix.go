//go:build unix

package securefile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// errFinalSymlink reports that the final path component turned out to be a
// symbolic link at open time, after canonicalization said otherwise.
var errFinalSymlink = errors.New("final path component is a symbolic link")

// sysOpen opens the file with O_NOFOLLOW so a symlink swapped into the final
// component between validation and open is rejected by the kernel, and with
// O_CLOEXEC so the descriptor does not leak across exec.
func sysOpen(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := unix.Open(path, flag|unix.O_NOFOLLOW|unix.O_CLOEXEC, uint32(perm))
	if err != nil {
		if errors.Is(err, unix.ELOOP) || errors.Is(err, unix.EMLINK) {
			return nil, errFinalSymlink
		}
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}
