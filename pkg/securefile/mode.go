package securefile

import (
	"fmt"
	"os"
)

// openMode is the parsed form of an fopen-style mode string.
type openMode struct {
	raw       string
	flag      int // os.O_* flags for the open call
	read      bool
	write     bool
	create    bool // file need not exist beforehand
	appending bool
	exclusive bool
}

// parseMode parses r/w/a with optional b, + and x modifiers. The b flag is
// accepted for compatibility and has no effect. The x flag requests exclusive
// creation and is only valid together with truncating write mode ("wx",
// "wbx", "w+x").
func parseMode(mode string) (openMode, error) {
	if mode == "" {
		return openMode{}, fmt.Errorf("mode string cannot be empty")
	}

	m := openMode{raw: mode}
	switch mode[0] {
	case 'r':
		m.read = true
		m.flag = os.O_RDONLY
	case 'w':
		m.write = true
		m.create = true
		m.flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		m.write = true
		m.create = true
		m.appending = true
		m.flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return openMode{}, fmt.Errorf("mode %q must start with 'r', 'w' or 'a'", mode)
	}

	plus := false
	for _, c := range mode[1:] {
		switch c {
		case 'b':
			// binary flag, meaningless on POSIX, accepted for compatibility
		case '+':
			plus = true
		case 'x':
			m.exclusive = true
		default:
			return openMode{}, fmt.Errorf("mode %q contains unknown flag %q", mode, string(c))
		}
	}

	if plus {
		m.read = true
		m.write = true
		m.flag = (m.flag &^ os.O_WRONLY) | os.O_RDWR
	}

	if m.exclusive {
		if mode[0] != 'w' {
			return openMode{}, fmt.Errorf("mode %q requests exclusive creation without truncating write mode", mode)
		}
		m.flag |= os.O_EXCL
	}

	return m, nil
}
