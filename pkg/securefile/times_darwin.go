//go:build darwin

package securefile

import "syscall"

func statTimes(st *syscall.Stat_t) (atime, mtime, ctime syscall.Timespec) {
	return st.Atimespec, st.Mtimespec, st.Ctimespec
}

func statFlags(st *syscall.Stat_t) uint32 { return st.Flags }
