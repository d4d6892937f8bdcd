package debug

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/busfabric/bus/wishbone"
)

var _ = Describe("Tap", func() {
	var (
		triggered bool
		probe     uint64
		t         *Tap
	)

	BeforeEach(func() {
		triggered = false
		probe = 0
		t = MakeBuilder().
			WithTrigger(func() bool { return triggered }).
			WithSignal("probe", func() uint64 { return probe }).
			Build("Tap")
	})

	It("should count trigger occurrences", func() {
		t.Commit()
		Expect(t.Count()).To(Equal(uint64(0)))

		triggered = true
		t.Commit()
		t.Commit()
		Expect(t.Count()).To(Equal(uint64(2)))

		triggered = false
		t.Commit()
		Expect(t.Count()).To(Equal(uint64(2)))
	})

	It("should latch the probes until the next occurrence", func() {
		triggered = true
		probe = 0xAA
		t.Commit()

		triggered = false
		probe = 0xBB
		t.Commit()
		Expect(t.Value("probe")).To(Equal(uint64(0xAA)))

		triggered = true
		t.Commit()
		Expect(t.Value("probe")).To(Equal(uint64(0xBB)))
	})

	It("should panic on an unknown signal name", func() {
		Expect(func() { t.Value("nonexistent") }).To(Panic())
	})

	It("should lose a trigger that races a reset", func() {
		triggered = true
		t.Commit()
		Expect(t.Count()).To(Equal(uint64(1)))

		t.Reset()
		t.Commit()
		Expect(t.Count()).To(Equal(uint64(0)))

		t.Commit()
		Expect(t.Count()).To(Equal(uint64(1)))
	})

	It("should list its signals in declaration order", func() {
		t = MakeBuilder().
			WithTrigger(func() bool { return false }).
			WithSignal("b", func() uint64 { return 0 }).
			WithSignal("a", func() uint64 { return 0 }).
			Build("Tap2")

		Expect(t.Signals()).To(Equal([]string{"b", "a"}))
	})

	It("should record each occurrence", func() {
		ctrl := gomock.NewController(GinkgoT())
		recorder := NewMockDataRecorder(ctrl)

		recorder.EXPECT().CreateTable("tap_Bus_Tap_0_", TriggerEntry{})

		t = MakeBuilder().
			WithTrigger(func() bool { return triggered }).
			WithSignal("probe", func() uint64 { return probe }).
			WithRecorder(recorder).
			Build("Bus.Tap[0]")

		t.Commit()

		triggered = true
		probe = 0x80
		recorder.EXPECT().InsertData("tap_Bus_Tap_0_", TriggerEntry{
			Cycle:  1,
			Count:  1,
			Values: "probe=0x80",
		})
		t.Commit()
	})

	It("should probe every field of a classic bus", func() {
		bus := wishbone.New("Bus", 32, 30)
		bus.Adr = 0x40
		wishbone.PutUint(bus.DatW, 0xDEADBEEF)
		bus.Sel[0] = true
		bus.Sel[2] = true
		bus.Cyc = true
		bus.Ack = true

		t = MakeBuilder().
			WithTrigger(func() bool { return true }).
			WithSignals(WishboneSignals(bus)).
			Build("Tap3")
		t.Commit()

		Expect(t.Value("adr")).To(Equal(uint64(0x40)))
		Expect(t.Value("dat_w")).To(Equal(uint64(0xDEADBEEF)))
		Expect(t.Value("sel")).To(Equal(uint64(0b101)))
		Expect(t.Value("cyc")).To(Equal(uint64(1)))
		Expect(t.Value("stb")).To(Equal(uint64(0)))
		Expect(t.Value("we")).To(Equal(uint64(0)))
		Expect(t.Value("ack")).To(Equal(uint64(1)))
		Expect(t.Value("err")).To(Equal(uint64(0)))
	})

	Describe("Builder", func() {
		It("should require a trigger", func() {
			Expect(func() { MakeBuilder().Build("Bad") }).To(Panic())
		})

		It("should reject duplicate signal names", func() {
			Expect(func() {
				MakeBuilder().
					WithTrigger(func() bool { return false }).
					WithSignal("x", func() uint64 { return 0 }).
					WithSignal("x", func() uint64 { return 1 }).
					Build("Bad")
			}).To(Panic())
		})
	})
})
