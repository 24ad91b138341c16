//go:build windows

package securefile

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// StatAttributes snapshots a file's attributes by name, following symlinks.
// Ownership and inode fields are only available through a handle on Windows;
// the by-name variant fills what Win32 exposes without opening the file.
func StatAttributes(path string) (*FileAttributes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	attrs := &FileAttributes{
		Mode:      info.Mode(),
		Size:      info.Size(),
		ModTimeMs: info.ModTime().UnixMilli(),
	}
	if data, ok := info.Sys().(*syscall.Win32FileAttributeData); ok && data != nil {
		attrs.AccessTimeMs = filetimeMillis(windows.Filetime(data.LastAccessTime))
		attrs.ModTimeMs = filetimeMillis(windows.Filetime(data.LastWriteTime))
		attrs.ChangeTimeMs = filetimeMillis(windows.Filetime(data.CreationTime))
		attrs.Flags = data.FileAttributes
	}
	return attrs, nil
}

// FstatAttributes snapshots attributes through an open handle, including the
// volume serial (device), file index (inode), link count and the security
// descriptor in SDDL form.
func FstatAttributes(f *os.File) (*FileAttributes, error) {
	h := windows.Handle(f.Fd())

	var byHandle windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(h, &byHandle); err != nil {
		return nil, fmt.Errorf("file information for %s: %w", f.Name(), err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("fstat %s: %w", f.Name(), err)
	}

	attrs := &FileAttributes{
		Device:       uint64(byHandle.VolumeSerialNumber),
		Inode:        uint64(byHandle.FileIndexHigh)<<32 | uint64(byHandle.FileIndexLow),
		Mode:         info.Mode(),
		Nlink:        uint64(byHandle.NumberOfLinks),
		Size:         info.Size(),
		AccessTimeMs: filetimeMillis(byHandle.LastAccessTime),
		ModTimeMs:    filetimeMillis(byHandle.LastWriteTime),
		ChangeTimeMs: filetimeMillis(byHandle.CreationTime),
		Flags:        byHandle.FileAttributes,
	}

	sd, err := windows.GetSecurityInfo(h, windows.SE_FILE_OBJECT,
		windows.OWNER_SECURITY_INFORMATION|windows.GROUP_SECURITY_INFORMATION|windows.DACL_SECURITY_INFORMATION)
	if err == nil && sd != nil {
		attrs.SecurityDescriptor = []byte(sd.String())
	}

	return attrs, nil
}

func filetimeMillis(ft windows.Filetime) int64 {
	return ft.Nanoseconds() / 1_000_000
}
