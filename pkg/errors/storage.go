package errors

// StorageError is a specialized error type for log-store operations. It
// embeds baseError to inherit all the standard error functionality, then adds
// fields that pinpoint exactly where in the log file a problem occurred.
type StorageError struct {
	*baseError
	anchor   int64  // Anchor offset of the frame being read or written when the error occurred.
	fileName string // Name of the file that caused the issue.
	path     string // Path of the file that caused the issue.
}

// NewStorageError creates a new storage-specific error.
func NewStorageError(err error, code ErrorCode, msg string) *StorageError {
	return &StorageError{baseError: NewBaseError(err, code, msg)}
}

// WithAnchor records the anchor offset where the error occurred.
func (se *StorageError) WithAnchor(anchor int64) *StorageError {
	se.anchor = anchor
	return se
}

// WithFileName captures which file was being processed when the error occurred.
func (se *StorageError) WithFileName(fileName string) *StorageError {
	se.fileName = fileName
	return se
}

// WithPath captures which path was being processed when the error occurred.
func (se *StorageError) WithPath(path string) *StorageError {
	se.path = path
	return se
}

// Anchor returns the anchor offset involved in the error, if any.
func (se *StorageError) Anchor() int64 {
	return se.anchor
}

// FileName returns the name of the file that was being processed.
func (se *StorageError) FileName() string {
	return se.fileName
}

// Path returns the path of the file that was being processed.
func (se *StorageError) Path() string {
	return se.path
}
