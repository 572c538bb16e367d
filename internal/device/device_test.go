package device

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/tamzrod/vdevice/internal/events"
	"github.com/tamzrod/vdevice/internal/memory"
	"github.com/tamzrod/vdevice/internal/sensor"
	"github.com/tamzrod/vdevice/internal/status"
)

var _ = Describe("Device", func() {
	var (
		mockCtrl *gomock.Controller
		rec      *events.Recorder
		d        *Device
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		rec = &events.Recorder{}
		d = New(WithSink(rec), WithID("dev-test"))
		d.Reset()
	})

	AfterEach(func() {
		d.Reset()
		mockCtrl.Finish()
	})

	Context("initial state", func() {
		It("should start with a clear status and zeroed buffer", func() {
			Expect(d.RawStatus()).To(BeZero())
			for i := 0; i < memory.Length; i++ {
				v, err := d.Read(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(v).To(BeZero())
			}
		})
	})

	Context("write", func() {
		It("should store every valid index and set READY only", func() {
			for i := 0; i < memory.Length; i++ {
				v := int32(i*1000 - 3)
				d.Write(i, v)

				got, err := d.Read(i)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(v))
				Expect(d.Status().Ready()).To(BeTrue())
				Expect(d.Status().HasError()).To(BeFalse())
				Expect(d.Status().Critical()).To(BeFalse())
			}
		})

		DescribeTable("out-of-bounds index",
			func(index int) {
				d.Write(0, 7)
				d.Write(index, 50)

				Expect(d.Status().HasError()).To(BeTrue())
				Expect(d.Status().Ready()).To(BeFalse())
				Expect(d.RawStatus()).To(Equal(status.MaskError))

				_, buf := d.Snapshot()
				Expect(buf).To(Equal([memory.Length]int32{7}))
			},
			Entry("negative", -1),
			Entry("one past the end", 10),
			Entry("far out", 99),
		)

		It("should set READY and CRITICAL for the sentinel value", func() {
			d.Write(5, 0xDEAD)

			Expect(d.RawStatus()).To(Equal(status.MaskReady | status.MaskCritical))
			v, _ := d.Read(5)
			Expect(v).To(Equal(int32(0xDEAD)))
		})

		It("should clear CRITICAL on the next ordinary write", func() {
			d.Write(5, 0xDEAD)
			d.Write(5, 0xDEAE)

			Expect(d.RawStatus()).To(Equal(status.MaskReady))
		})

		It("should replace READY with ERROR and back", func() {
			d.Write(0, 1)
			d.Write(10, 1)
			Expect(d.RawStatus()).To(Equal(status.MaskError))

			d.Write(1, 1)
			Expect(d.RawStatus()).To(Equal(status.MaskReady))
		})

		It("should not clear OVERHEAT", func() {
			d.RegisterSensor(sensor.Fixed(55))
			_, err := d.RunAlarmCheck()
			Expect(err).NotTo(HaveOccurred())

			d.Write(0, 1)
			Expect(d.Status().Overheat()).To(BeTrue())

			d.Write(-1, 1)
			Expect(d.Status().Overheat()).To(BeTrue())
			Expect(d.RawStatus()).To(Equal(status.MaskOverheat | status.MaskError))
		})

		It("should emit a write event", func() {
			d.Write(99, 50)

			last := rec.Events[len(rec.Events)-1]
			Expect(last.Kind).To(Equal(events.KindWrite))
			Expect(last.DeviceID).To(Equal("dev-test"))
			Expect(last.Index).To(Equal(99))
			Expect(last.Outcome).To(Equal("out_of_bounds"))
			Expect(last.Raw).To(Equal(status.MaskError))
		})
	})

	Context("read", func() {
		It("should not touch the status register", func() {
			d.Write(99, 1)
			before := d.RawStatus()

			_, _ = d.Read(0)
			_, _ = d.Read(42)

			Expect(d.RawStatus()).To(Equal(before))
		})

		It("should report out-of-bounds reads explicitly", func() {
			v, err := d.Read(10)
			Expect(err).To(MatchError(memory.ErrOutOfBounds))
			Expect(v).To(Equal(memory.ReadSentinel))
		})
	})

	Context("reset", func() {
		It("should clear status and buffer and be idempotent", func() {
			d.Write(3, 0xDEAD)
			d.RegisterSensor(sensor.Fixed(60))
			_, _ = d.RunAlarmCheck()

			d.Reset()
			raw1, buf1 := d.Snapshot()
			d.Reset()
			raw2, buf2 := d.Snapshot()

			Expect(raw1).To(BeZero())
			Expect(buf1).To(Equal([memory.Length]int32{}))
			Expect(raw2).To(Equal(raw1))
			Expect(buf2).To(Equal(buf1))
		})

		It("should keep the registered sensor", func() {
			d.RegisterSensor(sensor.Fixed(55))
			d.Reset()

			alarm, err := d.RunAlarmCheck()
			Expect(err).NotTo(HaveOccurred())
			Expect(alarm).To(Equal(1))
		})
	})

	Context("alarm check", func() {
		It("should fail loudly without a sensor", func() {
			d.Write(0, 1)

			alarm, err := d.RunAlarmCheck()

			Expect(err).To(MatchError(ErrNoSensor))
			Expect(alarm).To(BeZero())
			Expect(d.RawStatus()).To(Equal(status.MaskReady))
		})

		DescribeTable("threshold",
			func(reading int16, wantAlarm int) {
				d.RegisterSensor(sensor.Fixed(reading))

				alarm, err := d.RunAlarmCheck()

				Expect(err).NotTo(HaveOccurred())
				Expect(alarm).To(Equal(wantAlarm))
				Expect(d.Status().Overheat()).To(Equal(wantAlarm == 1))
			},
			Entry("hot", int16(55), 1),
			Entry("cool", int16(20), 0),
			Entry("exactly at threshold", int16(50), 0),
			Entry("one above threshold", int16(51), 1),
			Entry("freezing", int16(-40), 0),
		)

		It("should clear OVERHEAT once the reading drops", func() {
			d.RegisterSensor(sensor.NewSequence(55, 20))

			Expect(d.RunAlarmCheck()).To(Equal(1))
			Expect(d.RunAlarmCheck()).To(Equal(0))
			Expect(d.Status().Overheat()).To(BeFalse())
		})

		It("should not clear READY or CRITICAL", func() {
			d.Write(5, 0xDEAD)
			d.RegisterSensor(sensor.Fixed(20))

			_, err := d.RunAlarmCheck()

			Expect(err).NotTo(HaveOccurred())
			Expect(d.RawStatus()).To(Equal(status.MaskReady | status.MaskCritical))
		})

		It("should sample the sensor exactly once per check", func() {
			src := NewMockSource(mockCtrl)
			src.EXPECT().Sample().Return(int16(51), nil).Times(1)
			d.RegisterSensor(src)

			alarm, err := d.RunAlarmCheck()

			Expect(err).NotTo(HaveOccurred())
			Expect(alarm).To(Equal(1))
		})

		It("should use the most recently registered sensor", func() {
			first := NewMockSource(mockCtrl)
			first.EXPECT().Sample().Times(0)
			second := NewMockSource(mockCtrl)
			second.EXPECT().Sample().Return(int16(10), nil)

			d.RegisterSensor(first)
			d.RegisterSensor(second)

			Expect(d.RunAlarmCheck()).To(Equal(0))
		})

		It("should leave status alone when sampling fails", func() {
			d.RegisterSensor(sensor.Fixed(60))
			_, _ = d.RunAlarmCheck()

			src := NewMockSource(mockCtrl)
			src.EXPECT().Sample().Return(int16(0), errors.New("bus timeout"))
			d.RegisterSensor(src)

			_, err := d.RunAlarmCheck()

			Expect(err).To(MatchError(ContainSubstring("bus timeout")))
			Expect(d.Status().Overheat()).To(BeTrue())
		})

		It("should fail again after the sensor is unregistered", func() {
			d.RegisterSensor(sensor.Fixed(1))
			d.RegisterSensor(nil)

			_, err := d.RunAlarmCheck()
			Expect(err).To(MatchError(ErrNoSensor))
		})
	})

	Context("scenarios", func() {
		It("reset, write(0,100)", func() {
			d.Write(0, 100)
			Expect(d.Status().Bits()).To(Equal([]string{"READY"}))
			Expect(d.Read(0)).To(Equal(int32(100)))
		})

		It("reset, write(99,50)", func() {
			d.Write(99, 50)
			Expect(d.Status().Bits()).To(Equal([]string{"ERROR"}))
		})

		It("reset, write(5,0xDEAD)", func() {
			d.Write(5, 0xDEAD)
			Expect(d.Status().Bits()).To(Equal([]string{"READY", "CRITICAL"}))
		})

		It("reset, register sensor(55), alarm check", func() {
			d.RegisterSensor(sensor.Fixed(55))
			Expect(d.RunAlarmCheck()).To(Equal(1))
			Expect(d.Status().Bits()).To(Equal([]string{"OVERHEAT"}))
		})
	})

	Context("isolation", func() {
		It("should not share state between instances", func() {
			other := New()
			d.Write(0, 9)

			Expect(other.RawStatus()).To(BeZero())
			Expect(other.Read(0)).To(BeZero())
			Expect(other.ID()).NotTo(Equal(d.ID()))
		})
	})

	Context("events", func() {
		It("should tolerate a nil sink", func() {
			quiet := New(WithSink(nil))
			quiet.Write(0, 1)
			Expect(quiet.RawStatus()).To(Equal(status.MaskReady))
		})

		It("should allow the sink to call back into the device", func() {
			var seen []uint32
			var dev *Device
			dev = New(WithSink(events.SinkFunc(func(e events.Event) {
				seen = append(seen, dev.RawStatus())
			})))

			dev.Write(0, 1)

			Expect(seen).To(Equal([]uint32{status.MaskReady}))
		})
	})
})
