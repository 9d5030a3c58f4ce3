package module_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/vehicle-runtime/pkg/executor"
	"github.com/kubev2v/vehicle-runtime/pkg/future"
	"github.com/kubev2v/vehicle-runtime/pkg/module"
	"github.com/kubev2v/vehicle-runtime/pkg/result"
)

func TestModule(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Module Suite")
}

var _ = Describe("State", func() {
	It("prints each lifecycle state by name", func() {
		Expect(module.NotInitialized.String()).To(Equal("notInitialized"))
		Expect(module.NotOperational.String()).To(Equal("notOperational"))
		Expect(module.Starting.String()).To(Equal("starting"))
		Expect(module.Operational.String()).To(Equal("operational"))
		Expect(module.Shutdown.String()).To(Equal("shutdown"))
	})
})

type noopControl struct {
	operational bool
	skipped     bool
	errors      []result.Error
}

func (c *noopControl) ReportOperational()       { c.operational = true }
func (c *noopControl) ReportError(err result.Error, critical bool) {
	c.errors = append(c.errors, err)
}
func (c *noopControl) SkipStartingOfModule()        { c.skipped = true }
func (c *noopControl) Executor() *executor.Executor { return nil }

type fakeModule struct {
	name string
	deps []string
	ctrl module.Control
}

func (m *fakeModule) Name() string           { return m.name }
func (m *fakeModule) Dependencies() []string { return m.deps }
func (m *fakeModule) Init(ctrl module.Control) result.Result[future.Void] {
	m.ctrl = ctrl
	return result.FromValue(future.Void{})
}
func (m *fakeModule) Start()                   { m.ctrl.ReportOperational() }
func (m *fakeModule) Stop()                    {}
func (m *fakeModule) DeInit()                  {}
func (m *fakeModule) OnError(err result.Error) {}

var _ module.Module = (*fakeModule)(nil)

var _ = Describe("Module", func() {
	It("reports operational through the injected Control once started", func() {
		ctrl := &noopControl{}
		m := &fakeModule{name: "m", deps: []string{"a", "b"}}

		Expect(m.Init(ctrl).HasValue()).To(BeTrue())
		m.Start()

		Expect(ctrl.operational).To(BeTrue())
		Expect(m.Dependencies()).To(Equal([]string{"a", "b"}))
	})
})
