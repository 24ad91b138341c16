//go:build unix

package securefile

import (
	"os"
	"syscall"

	"pathguard/internal/envtrust"
)

// groupOtherWrite masks the group-write and other-write permission bits.
const groupOtherWrite = 0o022

// checkOwnerAndMode verifies a single directory: the owner must be the
// effective user or root, and the mode must grant write to neither group nor
// others. When the effective user is root, a directory owned by the uid
// recorded in SUDO_UID is also accepted, so root running under sudo does not
// spuriously fail on the invoking user's own directories. The SUDO_UID
// sentinel (root) never relaxes the check.
func checkOwnerAndMode(path string, info os.FileInfo) Verdict {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return insecure("cannot read ownership of %q", path)
	}

	euid := uint32(os.Geteuid()) // #nosec G115 -- uids fit in uint32 on unix
	owner := st.Uid

	if owner != euid && owner != envtrust.RootUID {
		trusted := false
		if euid == envtrust.RootUID {
			if sudo := envtrust.SudoUID(); sudo != envtrust.RootUID && owner == sudo {
				trusted = true
			}
		}
		if !trusted {
			return insecure("directory %q is owned by uid %d, not by you (uid %d) or root; fix with: sudo chown %d %q",
				path, owner, euid, euid, path)
		}
	}

	if perm := info.Mode().Perm(); perm&groupOtherWrite != 0 {
		return insecure("directory %q is writable by group or others (mode %04o); fix with: chmod go-w %q",
			path, perm, path)
	}

	return Verdict{Secure: true}
}
