// Package envtrust provides tamper-aware access to the process environment.
//
// A process environment can carry two entries with the same key (this is
// representable at the execve level even though shells normally prevent it),
// which makes the answer to "what is $NAME" ambiguous and attacker-chosen.
// This package scans the environment once for duplicate keys and refuses all
// lookups if any are found. It also resolves SUDO_UID so that callers running
// as root under sudo can recognize directories owned by the invoking user.
package envtrust

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"pathguard/internal/logging"
)

var (
	// ErrNotFound indicates the requested variable is not set.
	ErrNotFound = errors.New("environment variable not found")

	// ErrTampered indicates the environment contains duplicate keys and no
	// lookup result can be trusted.
	ErrTampered = errors.New("environment is tampered")

	// ErrInvalidName indicates the variable name is empty or contains '='.
	ErrInvalidName = errors.New("invalid environment variable name")
)

// environ is swappable so tests can inject a synthetic environment;
// duplicate keys cannot be produced through os.Setenv.
var environ = os.Environ

var (
	tamperOnce sync.Once
	tampered   bool
)

// IsEnvironmentTampered reports whether the process environment contains two
// entries sharing the same key. The scan runs once per process and the result
// is cached; first access from multiple goroutines is serialized by sync.Once.
func IsEnvironmentTampered() bool {
	tamperOnce.Do(func() {
		tampered = hasDuplicateKeys(environ())
		if tampered {
			logging.Warn("Environment contains duplicate variable names, refusing all lookups")
		}
	})
	return tampered
}

// hasDuplicateKeys reports whether two entries share an identical key up to
// the first '='. Entries without '=' have no key and never collide.
func hasDuplicateKeys(entries []string) bool {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

// GetTrustedEnv returns the value of the named variable, refusing the lookup
// entirely when the environment is tampered. The returned string is a copy
// owned by the caller.
func GetTrustedEnv(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, '=') {
		return "", ErrInvalidName
	}
	if IsEnvironmentTampered() {
		return "", ErrTampered
	}
	val, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return strings.Clone(val), nil
}

// RootUID is the uid of the superuser. SudoUID returns it as a sentinel
// meaning "no sudo context known"; callers must not relax ownership checks
// when they see it.
const RootUID = 0

var (
	sudoOnce sync.Once
	sudoUID  uint32
)

// SudoUID returns the uid recorded in SUDO_UID, memoized for the process
// lifetime. A missing or malformed variable, or a tampered environment,
// yields RootUID.
func SudoUID() uint32 {
	sudoOnce.Do(func() {
		sudoUID = resolveSudoUID()
	})
	return sudoUID
}

func resolveSudoUID() uint32 {
	val, err := GetTrustedEnv("SUDO_UID")
	if err != nil {
		logging.Debug("No usable SUDO_UID", "error", err)
		return RootUID
	}

	uid, err := strconv.ParseUint(strings.TrimSpace(val), 10, 32)
	if err != nil {
		logging.Warn("SUDO_UID is not a valid uid", "value", val, "error", err)
		return RootUID
	}
	return uint32(uid)
}

// resetForTest clears the memoized state so tests can re-run the scans.
func resetForTest() {
	tamperOnce = sync.Once{}
	tampered = false
	sudoOnce = sync.Once{}
	sudoUID = 0
	environ = os.Environ
}
