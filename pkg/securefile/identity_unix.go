//go:build unix

package securefile

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CaptureIdentity fingerprints an open file by handle. Statting the handle
// rather than the name guarantees the identity describes the exact file that
// was opened, not a same-named file swapped in afterwards.
func CaptureIdentity(f *os.File) (FileIdentity, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return FileIdentity{}, fmt.Errorf("fstat %s: %w", f.Name(), err)
	}
	return FileIdentity{
		kind: identityInodeDevice,
		ino:  uint64(st.Ino), // #nosec G115 -- platform-defined but safely representable in uint64
		dev:  uint64(st.Dev), // #nosec G115 -- platform-defined but safely representable in uint64
	}, nil
}
