package channel_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/vehicle-runtime/pkg/channel"
	"github.com/kubev2v/vehicle-runtime/pkg/handle"
)

func TestChannel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Channel Suite")
}

var _ = Describe("DataElement", func() {
	It("reports no sample available before the first publish", func() {
		el := channel.NewDataElement[int]()
		Expect(el.GetAllocated().HasValue()).To(BeFalse())
		Expect(el.Get()).To(Equal(0))
	})

	It("fans a copy-published value out to active subscribers only", func() {
		el := channel.NewDataElement[int]()

		var gotActive, gotDormant bool
		el.RegisterDataElementHandler("consumer-a", func(h handle.Shared[int]) { gotActive = true })
		el.RegisterDataElementHandler("consumer-b", func(h handle.Shared[int]) { gotDormant = true })
		el.StartEventHandlerForModule("consumer-a")

		el.Set(42)

		Expect(gotActive).To(BeTrue())
		Expect(gotDormant).To(BeFalse())
		Expect(el.Get()).To(Equal(42))
	})

	It("activates a handler registered after StartEventHandlerForModule immediately", func() {
		el := channel.NewDataElement[int]()
		el.StartEventHandlerForModule("consumer-a")

		var got int
		el.RegisterDataElementHandler("consumer-a", func(h handle.Shared[int]) { got = h.Deref() })

		el.Set(7)
		Expect(got).To(Equal(7))
	})

	It("stops notifying a handler once StopEventHandlerForModule is called", func() {
		el := channel.NewDataElement[int]()
		el.StartEventHandlerForModule("consumer-a")

		var calls int
		el.RegisterDataElementHandler("consumer-a", func(h handle.Shared[int]) { calls++ })

		el.Set(1)
		el.StopEventHandlerForModule("consumer-a")
		el.Set(2)

		Expect(calls).To(Equal(1))
	})

	It("publishes an allocated buffer via SetAllocated", func() {
		el := channel.NewDataElement[string]()
		buf := el.Allocate().Value()
		buf.Set("hello")
		el.SetAllocated(buf)

		Expect(el.Get()).To(Equal("hello"))
	})

	It("takes a subscriber snapshot so a handler registering mid-publish is not notified of the publish it registered during", func() {
		el := channel.NewDataElement[int]()
		el.StartEventHandlerForModule("consumer-a")
		el.StartEventHandlerForModule("consumer-b")

		var lateCalls int
		el.RegisterDataElementHandler("consumer-a", func(h handle.Shared[int]) {
			el.RegisterDataElementHandler("consumer-b", func(h handle.Shared[int]) { lateCalls++ })
		})

		el.Set(1)
		Expect(lateCalls).To(Equal(0))

		el.Set(2)
		Expect(lateCalls).To(Equal(1))
	})
})

type fakeRecorder struct {
	name string
	vals []int
}

func (f *fakeRecorder) RecordSample(elementName string, v int) {
	f.name = elementName
	f.vals = append(f.vals, v)
}

var _ = Describe("StoreBackedDataElement", func() {
	It("records every published sample in addition to the in-memory fan-out", func() {
		rec := &fakeRecorder{}
		el := channel.NewStoreBackedChannel[int]("speed", rec)

		el.Set(10)
		el.Set(20)

		Expect(rec.name).To(Equal("speed"))
		Expect(rec.vals).To(Equal([]int{10, 20}))
		Expect(el.Get()).To(Equal(20))
	})
})

var _ = Describe("Operation", func() {
	It("resolves an error future when no handler is registered", func() {
		op := channel.NewOperation[int, int]()
		f := op.Invoke(1)
		Expect(f.IsReady()).To(BeTrue())
		Expect(f.GetResult().HasValue()).To(BeFalse())
	})

	It("invokes the registered handler synchronously and resolves the future", func() {
		op := channel.NewOperation[[]int, int]()
		op.RegisterOperationHandler(func(in []int) int {
			sum := 0
			for _, v := range in {
				sum += v
			}
			return sum
		})

		f := op.Invoke([]int{1, 2, 3})
		Expect(f.IsReady()).To(BeTrue())
		Expect(f.Get()).To(Equal(6))
	})

	It("uses the latest registered handler, replacing an earlier one", func() {
		op := channel.NewOperation[int, int]()
		op.RegisterOperationHandler(func(in int) int { return in })
		op.RegisterOperationHandler(func(in int) int { return in * 2 })

		Expect(op.Invoke(5).Get()).To(Equal(10))
	})
})
