package securefile

import "fmt"

type identityKind int

const (
	identityNone identityKind = iota
	identityInodeDevice
	identityVolumeFileID
)

// FileIdentity is a platform-stable fingerprint of an open file: device and
// inode on POSIX systems, volume serial and 128-bit file id on Windows. The
// kind tag keeps equality exhaustive; the unpopulated arm is never compared,
// so uninitialized fields can never make two captures of the same file differ.
type FileIdentity struct {
	kind identityKind

	// identityInodeDevice
	ino uint64
	dev uint64

	// identityVolumeFileID
	volumeSerial uint64
	fileID       [16]byte
}

// Equal reports whether both identities refer to the same physical file.
// Identities of different kinds (or unpopulated ones) are never equal.
func (id FileIdentity) Equal(other FileIdentity) bool {
	if id.kind != other.kind {
		return false
	}
	switch id.kind {
	case identityInodeDevice:
		return id.ino == other.ino && id.dev == other.dev
	case identityVolumeFileID:
		return id.volumeSerial == other.volumeSerial && id.fileID == other.fileID
	default:
		return false
	}
}

// IsZero reports whether the identity was never captured.
func (id FileIdentity) IsZero() bool {
	return id.kind == identityNone
}

func (id FileIdentity) String() string {
	switch id.kind {
	case identityInodeDevice:
		return fmt.Sprintf("dev=%d ino=%d", id.dev, id.ino)
	case identityVolumeFileID:
		return fmt.Sprintf("volume=%d id=%x", id.volumeSerial, id.fileID)
	default:
		return "no identity"
	}
}
