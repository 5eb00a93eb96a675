package engine

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/arjunvarma/recordstore/pkg/errors"
)

// buildPayload renders a record body as `{"id":"<key>", ...fields}\n`. The
// "id" field is what rebuildFromLog's textual scan looks for, so every
// record written through the engine must carry it verbatim.
func buildPayload(key string, fields map[string]any) ([]byte, error) {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["id"] = key

	data, err := json.Marshal(body)
	if err != nil {
		return nil, errors.NewValidationError(err, errors.ErrorCodeInvalidInput, "failed to encode record body")
	}
	return append(data, '\n'), nil
}

// Get looks up key and returns its record. Returns a NotFound EngineError
// if the key is absent.
func (e *Engine) Get(key string) (GetResult, error) {
	if e.closed.Load() {
		return GetResult{}, ErrEngineClosed
	}

	start := time.Now()

	e.mu.RLock()
	offset, ok := e.index.Lookup(key)
	e.mu.RUnlock()
	if !ok {
		return GetResult{}, errors.NewKeyNotFoundError("Get", key)
	}

	payload, err := e.store.ReadFrame(offset)
	if err != nil {
		return GetResult{}, errors.NewIndexCorruptionError("Get", e.index.Size(), err)
	}

	return GetResult{
		Record:    Record{Key: key, Payload: json.RawMessage(payload)},
		ElapsedMs: elapsedMs(start),
	}, nil
}

// Page returns up to the configured page size of records, in ascending
// key order, for 1-based page number n. A non-positive n is coerced to 1.
// A page past the end of the index returns an empty list, not an error.
func (e *Engine) Page(n int) (PageResult, error) {
	if e.closed.Load() {
		return PageResult{}, ErrEngineClosed
	}
	if n < 1 {
		n = 1
	}

	start := time.Now()
	pageSize := e.options.PageSize
	offset := (n - 1) * pageSize

	e.mu.RLock()
	entries := e.index.Range(offset, pageSize)
	e.mu.RUnlock()

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		payload, err := e.store.ReadFrame(entry.Offset)
		if err != nil {
			return PageResult{}, errors.NewIndexCorruptionError("Page", e.index.Size(), err)
		}
		records = append(records, Record{Key: entry.Key, Payload: json.RawMessage(payload)})
	}

	return PageResult{Records: records, Page: n, ElapsedMs: elapsedMs(start)}, nil
}

// Insert mints a key, frames and appends the caller-supplied fields, then
// updates the index and persists a snapshot before returning. Side effects
// happen in the order log append -> index update -> snapshot replace.
func (e *Engine) Insert(req InsertRequest) (InsertResult, error) {
	if e.closed.Load() {
		return InsertResult{}, ErrEngineClosed
	}
	if req.Name == "" && req.Email == "" && len(req.Fields) == 0 {
		return InsertResult{}, errors.NewRequiredFieldError("name|email|fields")
	}

	start := time.Now()
	key := uuid.NewString()

	fields := make(map[string]any, len(req.Fields)+2)
	for k, v := range req.Fields {
		fields[k] = v
	}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}

	payload, err := buildPayload(key, fields)
	if err != nil {
		return InsertResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	anchor, err := e.store.Append(payload)
	if err != nil {
		// Log append failed: the index must remain untouched.
		return InsertResult{}, err
	}

	e.index.Insert(key, anchor)

	if err := e.persistSnapshot(); err != nil {
		return InsertResult{}, err
	}

	return InsertResult{
		Record:    Record{Key: key, Payload: json.RawMessage(payload)},
		ElapsedMs: elapsedMs(start),
	}, nil
}

// Delete removes key from the index and persists a snapshot. The log frame
// itself is left in place; no compaction pass reclaims it.
func (e *Engine) Delete(key string) (DeleteResult, error) {
	if e.closed.Load() {
		return DeleteResult{}, ErrEngineClosed
	}

	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.index.Delete(key) {
		return DeleteResult{}, errors.NewKeyNotFoundError("Delete", key)
	}

	if err := e.persistSnapshot(); err != nil {
		return DeleteResult{}, err
	}

	return DeleteResult{ElapsedMs: elapsedMs(start)}, nil
}
