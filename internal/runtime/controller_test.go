package runtime_test

import (
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/vehicle-runtime/internal/runtime"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/module"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

func TestRuntime(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Runtime Suite")
}

// instantModule reports operational as soon as Start is called.
type instantModule struct {
	name string
	deps []string
	ctrl module.Control

	mu      sync.Mutex
	started bool
	stopped bool
}

func (m *instantModule) Name() string           { return m.name }
func (m *instantModule) Dependencies() []string { return m.deps }
func (m *instantModule) Init(ctrl module.Control) result.Result[future.Void] {
	m.ctrl = ctrl
	return result.FromValue(future.Void{})
}
func (m *instantModule) Start() {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
	m.ctrl.ReportOperational()
}
func (m *instantModule) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}
func (m *instantModule) DeInit()                  {}
func (m *instantModule) OnError(err result.Error) {}

// stalledModule never reports operational.
type stalledModule struct {
	ctrl module.Control
}

func (m *stalledModule) Name() string           { return "stalled" }
func (m *stalledModule) Dependencies() []string { return nil }
func (m *stalledModule) Init(ctrl module.Control) result.Result[future.Void] {
	m.ctrl = ctrl
	return result.FromValue(future.Void{})
}
func (m *stalledModule) Start()                   {}
func (m *stalledModule) Stop()                    {}
func (m *stalledModule) DeInit()                  {}
func (m *stalledModule) OnError(err result.Error) {}

// failingInitModule always fails initialization.
type failingInitModule struct{}

func (m *failingInitModule) Name() string           { return "bad" }
func (m *failingInitModule) Dependencies() []string { return nil }
func (m *failingInitModule) Init(ctrl module.Control) result.Result[future.Void] {
	return result.FromError[future.Void](result.NotOK("bad config"))
}
func (m *failingInitModule) Start()                   {}
func (m *failingInitModule) Stop()                    {}
func (m *failingInitModule) DeInit()                  {}
func (m *failingInitModule) OnError(err result.Error) {}

var _ = Describe("Controller", func() {
	It("starts a dependency before its dependent and shuts both down cleanly", func() {
		a := &instantModule{name: "a"}
		b := &instantModule{name: "b", deps: []string{"a"}}

		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{}).WithStallDetection(5*time.Millisecond, 50)
		Expect(c.RegisterModule(a)).To(Succeed())
		Expect(c.RegisterModule(b)).To(Succeed())

		done := make(chan int, 1)
		go func() { done <- c.Run() }()

		time.Sleep(80 * time.Millisecond)
		c.Shutdown()

		Eventually(done, time.Second).Should(Receive(Equal(0)))
		Expect(a.started).To(BeTrue())
		Expect(b.started).To(BeTrue())
		Expect(a.stopped).To(BeTrue())
		Expect(b.stopped).To(BeTrue())
	})

	It("reports a critical error and aborts when a module fails to initialize", func() {
		var reported result.Error
		var criticalFlag bool
		hooks := runtime.Hooks{
			OnError: func(err result.Error, moduleName string, critical bool) {
				reported = err
				criticalFlag = critical
			},
		}
		c := runtime.New(5*time.Millisecond, nil, hooks)
		Expect(c.RegisterModule(&failingInitModule{})).To(Succeed())

		code := c.Run()
		Expect(code).To(Equal(1))
		Expect(criticalFlag).To(BeTrue())
		Expect(reported.Message).To(ContainSubstring("bad config"))
	})

	It("rejects a duplicate module name", func() {
		c := runtime.New(5*time.Millisecond, nil, runtime.Hooks{})
		Expect(c.RegisterModule(&instantModule{name: "dup"})).To(Succeed())
		Expect(c.RegisterModule(&instantModule{name: "dup"})).To(HaveOccurred())
	})

	It("raises a critical stall error for a module that never reports operational", func() {
		var criticalFlag bool
		var name string
		hooks := runtime.Hooks{
			OnError: func(err result.Error, moduleName string, critical bool) {
				criticalFlag = critical
				name = moduleName
			},
		}
		c := runtime.New(5*time.Millisecond, nil, hooks).WithStallDetection(5*time.Millisecond, 3)
		Expect(c.RegisterModule(&stalledModule{})).To(Succeed())

		code := c.Run()
		Expect(code).To(Equal(1))
		Expect(criticalFlag).To(BeTrue())
		Expect(name).To(Equal("stalled"))
	})
})
