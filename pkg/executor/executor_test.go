package executor_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/vehicle-runtime/pkg/executor"
	"github.com/kubev2v/vehicle-runtime/pkg/scheduler"
)

func TestExecutor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Executor Suite")
}

var _ = Describe("Executor", func() {
	var sched *scheduler.Scheduler

	AfterEach(func() {
		if sched != nil {
			sched.Stop()
		}
	})

	It("keeps tasks registered before Enable dormant", func() {
		sched = scheduler.New(5*time.Millisecond, nil)
		e := executor.New("m", nil, sched)

		var ran bool
		Expect(e.RunPeriodic("t", 1, func(int64) { ran = true }, nil, 0, 0)).To(Succeed())

		sched.Start()
		time.Sleep(30 * time.Millisecond)
		Expect(ran).To(BeFalse())
	})

	It("activates dormant tasks once Enable is called", func() {
		sched = scheduler.New(5*time.Millisecond, nil)
		e := executor.New("m", nil, sched)

		ran := make(chan struct{}, 1)
		Expect(e.RunPeriodic("t", 1, func(int64) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}, nil, 0, 0)).To(Succeed())

		sched.Start()
		e.Enable()
		Eventually(ran, time.Second).Should(Receive())
	})

	It("activates a task registered after Enable immediately", func() {
		sched = scheduler.New(5*time.Millisecond, nil)
		e := executor.New("m", nil, sched)
		e.Enable()

		ran := make(chan struct{}, 1)
		Expect(e.RunPeriodic("t", 1, func(int64) {
			select {
			case ran <- struct{}{}:
			default:
			}
		}, nil, 0, 0)).To(Succeed())

		sched.Start()
		Eventually(ran, time.Second).Should(Receive())
	})

	It("stops running tasks once Disable is called", func() {
		sched = scheduler.New(5*time.Millisecond, nil)
		e := executor.New("m", nil, sched)

		var count int
		Expect(e.RunPeriodic("t", 1, func(int64) { count++ }, nil, 0, 0)).To(Succeed())
		e.Enable()
		sched.Start()

		time.Sleep(30 * time.Millisecond)
		e.Disable()
		countAfterDisable := count
		time.Sleep(30 * time.Millisecond)
		Expect(count).To(Equal(countAfterDisable))
	})

	It("forwards a task panic to the installed OnTaskFail callback", func() {
		sched = scheduler.New(5*time.Millisecond, nil)
		e := executor.New("m", nil, sched)

		failed := make(chan any, 1)
		e.OnTaskFail(func(taskName string, recovered any) {
			failed <- recovered
		})

		Expect(e.RunPeriodic("boom", 1, func(int64) { panic("oops") }, nil, 0, 0)).To(Succeed())
		e.Enable()
		sched.Start()

		Eventually(failed, time.Second).Should(Receive(Equal("oops")))
	})
})
