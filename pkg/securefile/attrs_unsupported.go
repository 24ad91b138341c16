//go:build !linux && !darwin && !windows

package securefile

import (
	"fmt"
	"os"
)

func StatAttributes(path string) (*FileAttributes, error) {
	return nil, fmt.Errorf("file attributes: %s", CodeNotSupported)
}

func FstatAttributes(f *os.File) (*FileAttributes, error) {
	return nil, fmt.Errorf("file attributes: %s", CodeNotSupported)
}
