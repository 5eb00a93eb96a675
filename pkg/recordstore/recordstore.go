// Package recordstore is the public entry point for embedding the record
// store in a host process. It wires the configured options and logger into
// internal/engine and exposes the four operation contracts (get, page,
// insert, delete) plus Stats and Close.
package recordstore

import (
	"github.com/arjunvarma/recordstore/internal/engine"
	"github.com/arjunvarma/recordstore/pkg/logger"
	"github.com/arjunvarma/recordstore/pkg/options"
)

// Instance is a running recordstore, backed by its own data directory and
// in-memory index. It is safe for concurrent use.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

// NewInstance boots a recordstore instance for the named service, applying
// any functional options over the package defaults and running the
// engine's startup protocol (seed, rehydrate, or rebuild).
func NewInstance(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	cfg := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &cfg})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &cfg}, nil
}

// Get looks up a record by key.
func (i *Instance) Get(key string) (engine.GetResult, error) {
	return i.engine.Get(key)
}

// Page returns the n-th page of records in ascending key order.
func (i *Instance) Page(n int) (engine.PageResult, error) {
	return i.engine.Page(n)
}

// Insert stores a new record, minting its key.
func (i *Instance) Insert(req engine.InsertRequest) (engine.InsertResult, error) {
	return i.engine.Insert(req)
}

// Delete removes a record by key. The underlying log frame is retained.
func (i *Instance) Delete(key string) (engine.DeleteResult, error) {
	return i.engine.Delete(key)
}

// Stats reports the current index size and log file size.
func (i *Instance) Stats() engine.Stats {
	return i.engine.Stats()
}

// Close releases the instance's open file handle.
func (i *Instance) Close() error {
	return i.engine.Close()
}
