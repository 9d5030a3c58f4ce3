package future

// Void is the payload type for operations and tasks that carry no value,
// e.g. init()/deInit() results. A Future[Void] still distinguishes ok from
// error.
type Void = struct{}
