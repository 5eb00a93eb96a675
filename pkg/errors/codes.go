package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: reading or writing the log file, rewriting the
	// snapshot sidecar, or any other filesystem interaction.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the store's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected failures that don't fit into
	// other categories: bugs, assertion failures, or invariant violations
	// that shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base taxonomy to the failure modes
// of the append-only log: framing corruption, truncation, and the usual
// filesystem failure classes a single growing file can hit.
const (
	// ErrorCodeCorruptFrame indicates a frame's length prefix decoded to
	// zero, or EOF was reached before the declared payload length was
	// satisfied.
	ErrorCodeCorruptFrame ErrorCode = "CORRUPT_FRAME"

	// ErrorCodeCorruptSnapshot indicates the snapshot sidecar file could
	// not be read or parsed as a JSON (key, offset) listing. Sort order and
	// duplicates are not checked.
	ErrorCodeCorruptSnapshot ErrorCode = "CORRUPT_SNAPSHOT"

	// ErrorCodePermissionDenied indicates insufficient permissions to
	// access the log or snapshot file.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates the storage device backing the log or
	// snapshot file has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates the filesystem is mounted
	// read-only, so appends and snapshot replacement cannot proceed.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)

// Engine-specific error codes cover the record-level failure modes the four
// public operations (get, page, insert, delete) can surface.
const (
	// ErrorCodeNotFound indicates a lookup or delete against a key absent
	// from the index.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrorCodeEngineClosed indicates an operation was attempted after
	// Close returned.
	ErrorCodeEngineClosed ErrorCode = "ENGINE_CLOSED"
)
