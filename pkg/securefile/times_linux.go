//go:build linux

package securefile

import "syscall"

func statTimes(st *syscall.Stat_t) (atime, mtime, ctime syscall.Timespec) {
	return st.Atim, st.Mtim, st.Ctim
}

// Linux has no st_flags.
func statFlags(*syscall.Stat_t) uint32 { return 0 }
