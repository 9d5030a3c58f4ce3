package diagnostics

import "encoding/json"

// Recorder adapts a *Store to pkg/channel.SampleRecorder[T] for one named
// data element, JSON-encoding each sample before it is persisted.
type Recorder[T any] struct {
	store *Store
}

// NewRecorder creates a Recorder backed by store.
func NewRecorder[T any](store *Store) Recorder[T] {
	return Recorder[T]{store: store}
}

// RecordSample implements pkg/channel.SampleRecorder[T].
func (r Recorder[T]) RecordSample(elementName string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		r.store.logWriteError("sample_log", err)
		return
	}
	r.store.recordSampleJSON(elementName, string(data))
}
