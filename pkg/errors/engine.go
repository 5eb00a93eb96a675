package errors

// EngineError provides specialized error handling for engine-level
// operations (get, page, insert, delete). It extends the base error system
// with the key and operation context needed to diagnose a failed record
// lookup or mutation, while still supporting method chaining through all
// base error methods.
type EngineError struct {
	// Embed the base error to inherit all standard error functionality
	// including error chaining, structured details, and error codes.
	*baseError

	// Identifies which key was being processed when the error occurred.
	key string

	// Anchor offset the operation was reading or writing when it failed,
	// if applicable.
	anchor int64

	// Describes which engine operation was being performed
	// (e.g. "Get", "Page", "Insert", "Delete").
	operation string

	// Captures the number of live keys in the index at the time of the
	// error, useful when diagnosing an index that disagrees with the log.
	indexSize int
}

// NewEngineError creates a new engine-specific error with the provided context.
func NewEngineError(err error, code ErrorCode, msg string) *EngineError {
	return &EngineError{baseError: NewBaseError(err, code, msg)}
}

// Override base error methods to return *EngineError instead of *baseError.

func (ee *EngineError) WithMessage(msg string) *EngineError {
	ee.baseError.WithMessage(msg)
	return ee
}

func (ee *EngineError) WithCode(code ErrorCode) *EngineError {
	ee.baseError.WithCode(code)
	return ee
}

func (ee *EngineError) WithDetail(key string, value any) *EngineError {
	ee.baseError.WithDetail(key, value)
	return ee
}

// WithKey records which key was being processed when the error occurred.
func (ee *EngineError) WithKey(key string) *EngineError {
	ee.key = key
	return ee
}

// WithAnchor records the log anchor offset involved in the error.
func (ee *EngineError) WithAnchor(anchor int64) *EngineError {
	ee.anchor = anchor
	return ee
}

// WithOperation records what engine operation was being performed.
func (ee *EngineError) WithOperation(operation string) *EngineError {
	ee.operation = operation
	return ee
}

// WithIndexSize captures the size of the index when the error occurred.
func (ee *EngineError) WithIndexSize(size int) *EngineError {
	ee.indexSize = size
	return ee
}

// Key returns the key that was being processed when the error occurred.
func (ee *EngineError) Key() string {
	return ee.key
}

// Anchor returns the log anchor offset associated with the error.
func (ee *EngineError) Anchor() int64 {
	return ee.anchor
}

// Operation returns the name of the operation that was being performed.
func (ee *EngineError) Operation() string {
	return ee.operation
}

// IndexSize returns the size of the index when the error occurred.
func (ee *EngineError) IndexSize() int {
	return ee.indexSize
}

// NewKeyNotFoundError creates a specialized error for get/delete against a
// key absent from the index.
func NewKeyNotFoundError(operation, key string) *EngineError {
	return NewEngineError(nil, ErrorCodeNotFound, "key not found").
		WithKey(key).
		WithOperation(operation)
}

// NewCorruptFrameError creates an error for a frame whose length prefix
// decoded to zero or whose payload ran past EOF.
func NewCorruptFrameError(anchor int64, cause error) *EngineError {
	return NewEngineError(cause, ErrorCodeCorruptFrame, "log frame is corrupt").
		WithAnchor(anchor)
}

// NewIndexCorruptionError creates an error for cases where the in-memory
// index no longer agrees with the log it was built from.
func NewIndexCorruptionError(operation string, indexSize int, cause error) *EngineError {
	return NewEngineError(cause, ErrorCodeInternal, "index is inconsistent with log").
		WithOperation(operation).
		WithIndexSize(indexSize)
}
