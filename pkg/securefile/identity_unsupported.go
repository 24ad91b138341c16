//go:build !unix && !windows

package securefile

import (
	"fmt"
	"os"
)

func CaptureIdentity(f *os.File) (FileIdentity, error) {
	return FileIdentity{}, fmt.Errorf("file identity: %s", CodeNotSupported)
}
