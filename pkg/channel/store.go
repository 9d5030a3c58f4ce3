package channel

import (
	"github.com/kubev2v/vehicle-runtime/pkg/dataplane"
	"github.com/kubev2v/vehicle-runtime/pkg/handle"
)

// SampleRecorder durably persists a published sample. internal/diagnostics
// implements this against the DuckDB-backed store; tests use an in-memory
// fake.
type SampleRecorder[T any] interface {
	RecordSample(elementName string, v T)
}

// StoreBackedDataElement wraps a DataElement and additionally persists every
// published sample through a SampleRecorder before fan-out, so the latest
// value is always recoverable from the diagnostics store even across a
// process restart, at the cost of one extra write per Set/SetAllocated.
type StoreBackedDataElement[T any] struct {
	*DataElement[T]
	name     string
	recorder SampleRecorder[T]
}

// NewStoreBackedChannel creates a data element whose publishes are persisted
// under elementName through recorder in addition to the normal in-memory
// fan-out.
func NewStoreBackedChannel[T any](elementName string, recorder SampleRecorder[T]) *StoreBackedDataElement[T] {
	return &StoreBackedDataElement[T]{
		DataElement: NewDataElement[T](),
		name:        elementName,
		recorder:    recorder,
	}
}

// Set copy-publishes a value and records it.
func (s *StoreBackedDataElement[T]) Set(v T) {
	s.recorder.RecordSample(s.name, v)
	s.DataElement.Set(v)
}

// SetAllocated publishes an already-filled buffer and records its value.
func (s *StoreBackedDataElement[T]) SetAllocated(v handle.Mutable[T]) {
	s.recorder.RecordSample(s.name, v.Deref())
	s.DataElement.SetAllocated(v)
}

var (
	_ dataplane.Provider[int] = (*StoreBackedDataElement[int])(nil)
	_ dataplane.Consumer[int] = (*StoreBackedDataElement[int])(nil)
)
