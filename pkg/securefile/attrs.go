package securefile

import "io/fs"

// FileAttributes is a full attribute snapshot of a file, produced either by
// name (StatAttributes) or by handle (FstatAttributes). The by-handle variant
// is preferred wherever TOCTOU matters: it describes the exact file that was
// opened, not a same-named file that existed at lookup time.
type FileAttributes struct {
	Device uint64
	Inode  uint64
	Mode   fs.FileMode
	Nlink  uint64
	UID    uint32
	GID    uint32
	Rdev   uint64
	Size   int64

	// Milliseconds since the Unix epoch.
	AccessTimeMs int64
	ModTimeMs    int64
	ChangeTimeMs int64

	// Platform flags (st_flags on BSD-derived systems, file attribute bits on
	// Windows); zero where the platform has none.
	Flags uint32

	// SecurityDescriptor holds the file's security descriptor in SDDL form on
	// Windows. It is access-control metadata, so it is zeroed before release.
	SecurityDescriptor []byte
}

// SameFile reports whether both snapshots describe the same file: device,
// inode, owner uid and owner gid must all agree. This is the comparison set
// used by OpenSecure before and after the open call. Two nil snapshots are
// the same; nil never matches non-nil.
func (a *FileAttributes) SameFile(b *FileAttributes) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Device == b.Device &&
		a.Inode == b.Inode &&
		a.UID == b.UID &&
		a.GID == b.GID
}

// wipe zeroes the security descriptor bytes before dropping the reference so
// access-control metadata does not linger in released memory.
func (a *FileAttributes) wipe() {
	if a == nil {
		return
	}
	for i := range a.SecurityDescriptor {
		a.SecurityDescriptor[i] = 0
	}
	a.SecurityDescriptor = nil
}
