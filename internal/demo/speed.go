package demo

import (
	"math"
	"time"

	"github.com/kubev2v/vehicle-runtime/pkg/dataplane"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/module"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

// VehicleSpeed is the sample the speed module publishes every tick.
type VehicleSpeed struct {
	KPH float64
}

// SpeedModule is a provider-only module: it has no dependencies and no
// consumer-side surface, only a periodic task that publishes a sample.
type SpeedModule struct {
	Channel dataplane.Provider[VehicleSpeed]

	ctrl module.Control
	tick int64
}

// NewSpeedModule creates a speed module publishing through ch. ch may be a
// plain *channel.DataElement or a *channel.StoreBackedDataElement; Set is
// always called through the interface, so a store-backed channel's own
// recording Set is never bypassed.
func NewSpeedModule(ch dataplane.Provider[VehicleSpeed]) *SpeedModule {
	return &SpeedModule{Channel: ch}
}

func (m *SpeedModule) Name() string           { return "speed" }
func (m *SpeedModule) Dependencies() []string { return nil }

func (m *SpeedModule) Init(ctrl module.Control) result.Result[future.Void] {
	m.ctrl = ctrl
	if err := ctrl.Executor().RunPeriodic("sample", 1, m.sample, nil, 0, 5*time.Millisecond); err != nil {
		return result.FromError[future.Void](result.Unknown(err))
	}
	return result.FromValue(future.Void{})
}

func (m *SpeedModule) Start() {
	m.ctrl.ReportOperational()
}

func (m *SpeedModule) Stop()   {}
func (m *SpeedModule) DeInit() {}

func (m *SpeedModule) OnError(err result.Error) {
	m.ctrl.ReportError(err, false)
}

func (m *SpeedModule) sample(tick int64) {
	m.tick = tick
	kph := 40 + 10*math.Sin(float64(tick)/10)
	m.Channel.Set(VehicleSpeed{KPH: kph})
}
