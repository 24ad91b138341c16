package securefile

import "errors"

// Code classifies the outcome of secure file operations. Failures are carried
// in the SecureFile result object rather than returned as bare errors, so a
// caller can always inspect the full state of a refused open.
type Code int

const (
	// CodeOK indicates success.
	CodeOK Code = iota
	// CodeInvalidInput indicates an empty path or malformed mode string.
	CodeInvalidInput
	// CodePathResolution indicates the path could not be canonicalized or statted.
	CodePathResolution
	// CodeInsecurePath indicates a directory on the ancestor chain failed the
	// ownership or writability checks; Detail names the directory.
	CodeInsecurePath
	// CodeExtensionMismatch indicates the path's extension is not on the allow-list.
	CodeExtensionMismatch
	// CodeAttributeMismatch indicates the file's attributes differ from the
	// caller-supplied expectation (before or after open).
	CodeAttributeMismatch
	// CodeIdentityMismatch indicates the open handle refers to a different
	// physical file than the caller expected.
	CodeIdentityMismatch
	// CodeFileExists indicates exclusive creation hit an existing file.
	CodeFileExists
	// CodeOpenFailed indicates the underlying open or handle stat failed.
	CodeOpenFailed
	// CodeShortRead indicates a read error other than end of file.
	CodeShortRead
	// CodeShortWrite indicates a write stopped before all bytes were written.
	CodeShortWrite
	// CodeDiskFull indicates a write failed because the filesystem is full.
	CodeDiskFull
	// CodeSeekFailed indicates a seek error.
	CodeSeekFailed
	// CodeFlushFailed indicates a flush/sync error.
	CodeFlushFailed
	// CodeCloseFailed indicates a close error; the handle is poisoned and every
	// later operation re-reports this code.
	CodeCloseFailed
	// CodeEnvTampered indicates the environment failed the duplicate-key scan.
	// Nothing in this package produces it; it is reserved for callers mapping
	// envtrust.ErrTampered into this taxonomy. The validator itself treats a
	// tampered environment as "no sudo context" and keeps the strict ownership
	// rules, so tampering can never relax a verdict.
	CodeEnvTampered
	// CodeNotSupported indicates the platform cannot perform the operation.
	CodeNotSupported
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "success"
	case CodeInvalidInput:
		return "invalid input"
	case CodePathResolution:
		return "path resolution failed"
	case CodeInsecurePath:
		return "insecure path"
	case CodeExtensionMismatch:
		return "file extension not allowed"
	case CodeAttributeMismatch:
		return "file attribute mismatch"
	case CodeIdentityMismatch:
		return "file identity mismatch"
	case CodeFileExists:
		return "file already exists"
	case CodeOpenFailed:
		return "open failed"
	case CodeShortRead:
		return "short read"
	case CodeShortWrite:
		return "short write"
	case CodeDiskFull:
		return "disk full"
	case CodeSeekFailed:
		return "seek failed"
	case CodeFlushFailed:
		return "flush failed"
	case CodeCloseFailed:
		return "close failed"
	case CodeEnvTampered:
		return "environment is tampered"
	case CodeNotSupported:
		return "not supported on this platform"
	default:
		return "unknown error"
	}
}

// ErrHandleClosed is returned by I/O operations on a handle that was already
// closed (or never opened).
var ErrHandleClosed = errors.New("file handle is closed")

// ErrHandlePoisoned is returned by every operation after a failed close.
var ErrHandlePoisoned = errors.New("file handle is poisoned by a failed close")
