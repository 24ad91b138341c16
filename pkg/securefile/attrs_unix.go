//go:build linux || darwin

package securefile

import (
	"fmt"
	"os"
	"syscall"
)

// StatAttributes snapshots a file's attributes by name, following symlinks.
func StatAttributes(path string) (*FileAttributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return attributesFromInfo(info)
}

// FstatAttributes snapshots attributes through an open handle.
func FstatAttributes(f *os.File) (*FileAttributes, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fstat %s: %w", f.Name(), err)
	}
	return attributesFromInfo(info)
}

func attributesFromInfo(info os.FileInfo) (*FileAttributes, error) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return nil, fmt.Errorf("no stat data available for %s", info.Name())
	}

	atime, mtime, ctime := statTimes(st)
	return &FileAttributes{
		Device:       uint64(st.Dev),   // #nosec G115 -- platform-defined but safely representable in uint64
		Inode:        uint64(st.Ino),   // #nosec G115
		Mode:         info.Mode(),
		Nlink:        uint64(st.Nlink), // #nosec G115
		UID:          st.Uid,
		GID:          st.Gid,
		Rdev:         uint64(st.Rdev), // #nosec G115
		Size:         st.Size,
		AccessTimeMs: timespecMillis(atime),
		ModTimeMs:    timespecMillis(mtime),
		ChangeTimeMs: timespecMillis(ctime),
		Flags:        statFlags(st),
	}, nil
}

func timespecMillis(ts syscall.Timespec) int64 {
	return int64(ts.Sec)*1000 + int64(ts.Nsec)/1_000_000
}
