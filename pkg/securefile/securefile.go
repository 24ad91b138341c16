package securefile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"pathguard/internal/logging"
)

// maxPathLen is the longest canonical path accepted, matching the
// traditional PATH_MAX of 4096 bytes.
const maxPathLen = 4096

// createPerm is the permission for newly created files: owner read/write
// only, so a freshly created file is never exposed to group or others.
const createPerm = os.FileMode(0o600)

// OpenOptions carries the optional expectations for OpenSecure. All fields
// may be left zero.
type OpenOptions struct {
	// Filter restricts must-exist opens to an extension allow-list.
	Filter ExtensionFilter

	// ExpectedAttrs, when set, must match the file both before the open
	// (stat by name) and after it (stat by handle).
	ExpectedAttrs *FileAttributes

	// ExpectedIdentity, when set, must match the fingerprint captured from
	// the open handle; a mismatch closes the handle immediately.
	ExpectedIdentity *FileIdentity
}

// SecureFile is the capability object returned by OpenSecure. It is populated
// on every return, success or failure; IsValid distinguishes the two. A
// single SecureFile is not safe for concurrent use.
type SecureFile struct {
	file     *os.File
	path     string // canonical full path, fixed after open
	fd       int
	size     int64
	attrs    *FileAttributes
	identity FileIdentity

	code     Code
	detail   string
	poisoned bool // set by a failed close; the handle is permanently unusable
}

func (sf *SecureFile) fail(code Code, format string, args ...interface{}) *SecureFile {
	sf.code = code
	sf.detail = fmt.Sprintf(format, args...)
	return sf
}

// IsValid reports whether the handle is open and no error has occurred.
func (sf *SecureFile) IsValid() bool {
	return sf.file != nil && sf.code == CodeOK
}

// Path returns the canonical full path, empty if resolution never succeeded.
func (sf *SecureFile) Path() string { return sf.path }

// Name returns the filename component of the canonical path.
func (sf *SecureFile) Name() string {
	if sf.path == "" {
		return ""
	}
	return filepath.Base(sf.path)
}

// Fd returns the numeric descriptor, -1 when no handle is open.
func (sf *SecureFile) Fd() int {
	if sf.file == nil {
		return -1
	}
	return sf.fd
}

// Size returns the size recorded when the file was opened.
func (sf *SecureFile) Size() int64 { return sf.size }

// Attributes returns the by-handle attribute snapshot, nil on failed opens.
func (sf *SecureFile) Attributes() *FileAttributes { return sf.attrs }

// Identity returns the fingerprint captured from the open handle; zero on
// failed opens.
func (sf *SecureFile) Identity() FileIdentity { return sf.identity }

// Code returns the current error code.
func (sf *SecureFile) Code() Code { return sf.code }

// Detail returns the human-readable diagnostic for the current error, empty
// on success. For CodeInsecurePath it names the offending directory and a
// remediation command.
func (sf *SecureFile) Detail() string { return sf.detail }

// Err materializes the current state as an error, nil on success.
func (sf *SecureFile) Err() error {
	if sf.code == CodeOK {
		return nil
	}
	if sf.detail != "" {
		return fmt.Errorf("%s: %s", sf.code, sf.detail)
	}
	return errors.New(sf.code.String())
}

// OpenSecure validates and opens a file. The mode string follows fopen
// conventions (see parseMode). The result is never nil; check IsValid or
// Code. On any failure no handle is left open.
//
// For create-capable modes ("w", "a") the containing directory is validated
// and the file itself need not exist. For must-exist modes the full path is
// canonicalized first, so the directory checks run against the real location
// of the file, not a symlinked alias.
func OpenSecure(path, mode string, opts *OpenOptions) *SecureFile {
	sf := &SecureFile{code: CodeOK, fd: -1}
	if opts == nil {
		opts = &OpenOptions{}
	}

	if strings.TrimSpace(path) == "" {
		return sf.fail(CodeInvalidInput, "filename cannot be empty")
	}
	m, err := parseMode(mode)
	if err != nil {
		return sf.fail(CodeInvalidInput, "%v", err)
	}

	var dirToValidate string
	if m.create {
		// The file may not exist yet; canonicalize and validate the
		// containing directory instead.
		abs, err := filepath.Abs(path)
		if err != nil {
			return sf.fail(CodePathResolution, "cannot resolve %q: %v", path, err)
		}
		dir, err := canonicalPath(filepath.Dir(abs))
		if err != nil {
			return sf.fail(CodePathResolution, "%v", err)
		}
		sf.path = filepath.Join(dir, filepath.Base(abs))
		dirToValidate = dir
	} else {
		full, err := canonicalPath(path)
		if err != nil {
			return sf.fail(CodePathResolution, "%v", err)
		}
		sf.path = full
		dirToValidate = filepath.Dir(full)
	}
	if len(sf.path) > maxPathLen {
		return sf.fail(CodePathResolution, "canonical path exceeds %d bytes", maxPathLen)
	}

	if !m.create && opts.Filter != nil {
		if !opts.Filter.Match(sf.path) {
			return sf.fail(CodeExtensionMismatch, "extension of %q is not on the allow-list", sf.Name())
		}
	}

	// Pre-open attribute check by name. This can be raced by a swap between
	// stat and open; the post-open identity and attribute checks below close
	// that window.
	if !m.create && opts.ExpectedAttrs != nil {
		attrs, err := StatAttributes(sf.path)
		if err != nil {
			return sf.fail(CodePathResolution, "%v", err)
		}
		if !attrs.SameFile(opts.ExpectedAttrs) {
			return sf.fail(CodeAttributeMismatch, "file at %q does not match the expected owner or identity", sf.path)
		}
	}

	if v := IsDirectorySecure(dirToValidate); !v.Secure {
		sf.code = CodeInsecurePath
		sf.detail = v.Detail
		return sf
	}

	f, err := sysOpen(sf.path, m.flag, createPerm)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrExist):
			return sf.fail(CodeFileExists, "%q already exists", sf.path)
		case errors.Is(err, errFinalSymlink):
			return sf.fail(CodeInsecurePath, "%q: %v", sf.path, err)
		default:
			return sf.fail(CodeOpenFailed, "cannot open %q: %v", sf.path, err)
		}
	}

	// Fingerprint the handle itself. A same-named file swapped in after the
	// by-name stat cannot fool this check.
	identity, err := CaptureIdentity(f)
	if err != nil {
		closeDiscard(f)
		return sf.fail(CodeOpenFailed, "cannot fingerprint %q: %v", sf.path, err)
	}
	if opts.ExpectedIdentity != nil && !identity.Equal(*opts.ExpectedIdentity) {
		closeDiscard(f)
		return sf.fail(CodeIdentityMismatch, "%q no longer refers to the expected file (have %s, want %s)",
			sf.path, identity, *opts.ExpectedIdentity)
	}

	attrs, err := FstatAttributes(f)
	if err != nil {
		closeDiscard(f)
		return sf.fail(CodeOpenFailed, "cannot stat handle for %q: %v", sf.path, err)
	}
	if opts.ExpectedAttrs != nil && !attrs.SameFile(opts.ExpectedAttrs) {
		closeDiscard(f)
		return sf.fail(CodeAttributeMismatch, "open handle for %q does not match the expected owner or identity", sf.path)
	}

	sf.file = f
	sf.fd = int(f.Fd())
	sf.identity = identity
	sf.attrs = attrs
	sf.size = attrs.Size
	return sf
}

// canonicalPath resolves path to an absolute form with all symlinks and
// dot segments eliminated.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %v", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot canonicalize %q: %v", path, err)
	}
	if len(resolved) > maxPathLen {
		return "", fmt.Errorf("canonical path for %q exceeds %d bytes", path, maxPathLen)
	}
	return resolved, nil
}

func closeDiscard(f *os.File) {
	if err := f.Close(); err != nil {
		logging.Warn("Failed to close rejected handle", "path", f.Name(), "error", err)
	}
}

// guard is the common precondition for every post-open operation: a poisoned
// handle re-reports the failed close, and a closed handle rejects I/O.
func (sf *SecureFile) guard() error {
	if sf.poisoned {
		sf.code = CodeCloseFailed
		return ErrHandlePoisoned
	}
	if sf.file == nil {
		return ErrHandleClosed
	}
	return nil
}

// Read reads into p from the current offset. Errors other than end of file
// set CodeShortRead.
func (sf *SecureFile) Read(p []byte) (int, error) {
	if err := sf.guard(); err != nil {
		return 0, err
	}
	n, err := sf.file.Read(p)
	if err != nil && err != io.EOF {
		sf.fail(CodeShortRead, "read %q: %v", sf.path, err)
		return n, err
	}
	return n, err
}

// ReadAll reads the remainder of the file.
func (sf *SecureFile) ReadAll() ([]byte, error) {
	if err := sf.guard(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(sf.file)
	if err != nil {
		sf.fail(CodeShortRead, "read %q: %v", sf.path, err)
		return nil, err
	}
	return data, nil
}

// Write writes p at the current offset. A full filesystem sets CodeDiskFull;
// any other incomplete write sets CodeShortWrite.
func (sf *SecureFile) Write(p []byte) (int, error) {
	if err := sf.guard(); err != nil {
		return 0, err
	}
	n, err := sf.file.Write(p)
	if err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			sf.fail(CodeDiskFull, "write %q: %v", sf.path, err)
		} else {
			sf.fail(CodeShortWrite, "write %q: wrote %d of %d bytes: %v", sf.path, n, len(p), err)
		}
		return n, err
	}
	if n < len(p) {
		sf.fail(CodeShortWrite, "write %q: wrote %d of %d bytes", sf.path, n, len(p))
		return n, io.ErrShortWrite
	}
	return n, nil
}

// Seek sets the offset for the next read or write.
func (sf *SecureFile) Seek(offset int64, whence int) (int64, error) {
	if err := sf.guard(); err != nil {
		return 0, err
	}
	pos, err := sf.file.Seek(offset, whence)
	if err != nil {
		sf.fail(CodeSeekFailed, "seek %q: %v", sf.path, err)
		return pos, err
	}
	return pos, nil
}

// Flush forces buffered writes to stable storage.
func (sf *SecureFile) Flush() error {
	if err := sf.guard(); err != nil {
		return err
	}
	if err := sf.file.Sync(); err != nil {
		sf.fail(CodeFlushFailed, "flush %q: %v", sf.path, err)
		return err
	}
	return nil
}

// Close releases the handle. Closing an already-closed handle is a success,
// so Close is safe to call twice. A failed close permanently poisons the
// handle: every subsequent operation, including another Close, re-reports
// CodeCloseFailed. Sensitive attribute substructures are zeroed before the
// snapshot is dropped.
func (sf *SecureFile) Close() error {
	if sf.poisoned {
		sf.code = CodeCloseFailed
		return ErrHandlePoisoned
	}
	if sf.file == nil {
		return nil
	}

	f := sf.file
	sf.file = nil
	sf.fd = -1
	sf.attrs.wipe()

	if err := f.Close(); err != nil {
		sf.poisoned = true
		sf.fail(CodeCloseFailed, "close %q: %v", sf.path, err)
		return fmt.Errorf("close %q: %w", sf.path, err)
	}
	return nil
}
