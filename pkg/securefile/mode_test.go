package securefile

import (
	"os"
	"testing"
)

func TestParseModeValid(t *testing.T) {
	tests := []struct {
		mode      string
		flag      int
		read      bool
		write     bool
		create    bool
		appending bool
		exclusive bool
	}{
		{mode: "r", flag: os.O_RDONLY, read: true},
		{mode: "rb", flag: os.O_RDONLY, read: true},
		{mode: "r+", flag: os.O_RDWR, read: true, write: true},
		{mode: "w", flag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC, write: true, create: true},
		{mode: "wb", flag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC, write: true, create: true},
		{mode: "w+", flag: os.O_RDWR | os.O_CREATE | os.O_TRUNC, read: true, write: true, create: true},
		{mode: "wx", flag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_EXCL, write: true, create: true, exclusive: true},
		{mode: "wbx", flag: os.O_WRONLY | os.O_CREATE | os.O_TRUNC | os.O_EXCL, write: true, create: true, exclusive: true},
		{mode: "w+x", flag: os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_EXCL, read: true, write: true, create: true, exclusive: true},
		{mode: "a", flag: os.O_WRONLY | os.O_CREATE | os.O_APPEND, write: true, create: true, appending: true},
		{mode: "ab", flag: os.O_WRONLY | os.O_CREATE | os.O_APPEND, write: true, create: true, appending: true},
		{mode: "a+", flag: os.O_RDWR | os.O_CREATE | os.O_APPEND, read: true, write: true, create: true, appending: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			m, err := parseMode(tt.mode)
			if err != nil {
				t.Fatalf("parseMode(%q) failed: %v", tt.mode, err)
			}
			if m.flag != tt.flag {
				t.Errorf("flag = %#o, want %#o", m.flag, tt.flag)
			}
			if m.read != tt.read || m.write != tt.write || m.create != tt.create {
				t.Errorf("read/write/create = %v/%v/%v, want %v/%v/%v",
					m.read, m.write, m.create, tt.read, tt.write, tt.create)
			}
			if m.appending != tt.appending {
				t.Errorf("appending = %v, want %v", m.appending, tt.appending)
			}
			if m.exclusive != tt.exclusive {
				t.Errorf("exclusive = %v, want %v", m.exclusive, tt.exclusive)
			}
		})
	}
}

func TestParseModeInvalid(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "empty", mode: ""},
		{name: "unknown leading letter", mode: "z"},
		{name: "unknown flag", mode: "rq"},
		{name: "exclusive with read", mode: "rx"},
		{name: "exclusive with append", mode: "ax"},
		{name: "exclusive with append plus", mode: "a+x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseMode(tt.mode); err == nil {
				t.Errorf("parseMode(%q) succeeded, want error", tt.mode)
			}
		})
	}
}
