//go:build windows

package securefile

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// fileIDInfoClass is the FileIdInfo information class for
// GetFileInformationByHandleEx (available since Windows 8 / Server 2012).
const fileIDInfoClass = 18

type fileIDInfo struct {
	VolumeSerialNumber uint64
	FileID             [16]byte
}

// CaptureIdentity fingerprints an open file by handle using the 128-bit file
// id where the filesystem provides one (ReFS), falling back to the classic
// 64-bit index for older volumes.
func CaptureIdentity(f *os.File) (FileIdentity, error) {
	h := windows.Handle(f.Fd())

	var info fileIDInfo
	err := windows.GetFileInformationByHandleEx(
		h, fileIDInfoClass,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err == nil {
		return FileIdentity{
			kind:         identityVolumeFileID,
			volumeSerial: info.VolumeSerialNumber,
			fileID:       info.FileID,
		}, nil
	}

	var byHandle windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &byHandle); err != nil {
		return FileIdentity{}, fmt.Errorf("file information for %s: %w", f.Name(), err)
	}

	id := FileIdentity{
		kind:         identityVolumeFileID,
		volumeSerial: uint64(byHandle.VolumeSerialNumber),
	}
	binary.LittleEndian.PutUint32(id.fileID[0:4], byHandle.FileIndexLow)
	binary.LittleEndian.PutUint32(id.fileID[4:8], byHandle.FileIndexHigh)
	return id, nil
}
