package demo

import (
	"sync"

	"github.com/kubev2v/vehicle-runtime/pkg/channel"
	"github.com/kubev2v/vehicle-runtime/pkg/dataplane"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/handle"
	"github.com/kubev2v/vehicle-runtime/pkg/module"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// averageWindow bounds how many of the most recent samples computeAverage
// considers; older samples are dropped as new ones arrive.
const averageWindow = 10

// AverageSpeedRequest is computeAverage's input. It carries nothing today;
// it exists as a named type so the operation's contract can grow a filter
// (e.g. a time window) without changing the call's shape.
type AverageSpeedRequest struct{}

// AverageSpeedResponse is computeAverage's result.
type AverageSpeedResponse struct {
	AverageKPH float64
	Samples    int
}

// DashboardModule is a pure consumer: it depends on speed, keeps a rolling
// window of the samples speed publishes, and exposes computeAverage as an
// operation any caller (the introspection server, another module) can
// invoke through pkg/future.
type DashboardModule struct {
	Speed     dataplane.Consumer[VehicleSpeed]
	Operation *channel.Operation[AverageSpeedRequest, AverageSpeedResponse]

	ctrl module.Control

	mu      sync.Mutex
	samples []float64
}

// NewDashboardModule creates a dashboard module consuming speed and serving
// computeAverage through op.
func NewDashboardModule(speed dataplane.Consumer[VehicleSpeed], op *channel.Operation[AverageSpeedRequest, AverageSpeedResponse]) *DashboardModule {
	return &DashboardModule{Speed: speed, Operation: op}
}

func (m *DashboardModule) Name() string           { return "dashboard" }
func (m *DashboardModule) Dependencies() []string { return []string{"speed"} }

func (m *DashboardModule) Init(ctrl module.Control) result.Result[future.Void] {
	m.ctrl = ctrl
	m.Speed.RegisterDataElementHandler(m.Name(), m.onSpeed)
	m.Operation.RegisterOperationHandler(m.computeAverage)
	return result.FromValue(future.Void{})
}

// Start skips the scheduler entirely: dashboard has no periodic work of its
// own, only reactions to speed's notifications and computeAverage calls.
func (m *DashboardModule) Start() {
	m.ctrl.SkipStartingOfModule()
}

func (m *DashboardModule) Stop()   {}
func (m *DashboardModule) DeInit() {}

func (m *DashboardModule) OnError(err result.Error) {
	m.ctrl.ReportError(err, false)
}

func (m *DashboardModule) onSpeed(sample handle.Shared[VehicleSpeed]) {
	v := sample.Deref()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, v.KPH)
	if len(m.samples) > averageWindow {
		m.samples = m.samples[len(m.samples)-averageWindow:]
	}
}

func (m *DashboardModule) computeAverage(AverageSpeedRequest) AverageSpeedResponse {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.samples) == 0 {
		return AverageSpeedResponse{}
	}
	var sum float64
	for _, s := range m.samples {
		sum += s
	}
	return AverageSpeedResponse{AverageKPH: sum / float64(len(m.samples)), Samples: len(m.samples)}
}
