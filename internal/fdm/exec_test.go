package fdm_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mstram-flight/Huginn/internal/fdm"
)

const testDt = 0.01

func newEngine() *fdm.Exec {
	b := fdm.NewBuilder("")
	b.Dt = testDt
	b.Latitude = 37.9232
	b.Longitude = 23.9217
	b.Altitude = 300.0
	b.Airspeed = 30.0
	b.Heading = 45.0

	e, err := b.Create()
	Expect(err).NotTo(HaveOccurred())
	return e
}

func startEngines(e *fdm.Exec) {
	e.SetProperty(fdm.PropMixtureCmd, 0.87)
	e.SetProperty(fdm.PropMagnetoCmd, 3.0)
	e.SetProperty(fdm.PropStarterCmd, 1.0)
}

func runFrames(e *fdm.Exec, n int) {
	for i := 0; i < n; i++ {
		ok, err := e.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	}
}

var _ = Describe("Builder", func() {
	It("returns a primed engine", func() {
		e := newEngine()

		Expect(e.DeltaT()).To(Equal(testDt))
		Expect(e.SimTime()).To(BeZero())
		Expect(e.Altitude()).To(Equal(300.0))
		Expect(e.Airspeed()).To(Equal(30.0))
		Expect(e.Holding()).To(BeFalse())
	})

	It("rejects a non-positive time step", func() {
		b := fdm.NewBuilder("")
		b.Altitude = 300.0

		_, err := b.Create()
		Expect(err).To(HaveOccurred())
	})

	It("rejects out of range initial conditions", func() {
		b := fdm.NewBuilder("")
		b.Dt = testDt
		b.Latitude = 120.0

		_, err := b.Create()
		Expect(err).To(HaveOccurred())

		b.Latitude = 37.9232
		b.Altitude = -10.0

		_, err = b.Create()
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Exec", func() {
	var e *fdm.Exec

	BeforeEach(func() {
		e = newEngine()
	})

	Describe("frame stepping", func() {
		It("advances simulation time by dt", func() {
			runFrames(e, 10)
			Expect(e.SimTime()).To(BeNumerically("~", 10*testDt, 1e-9))
		})

		It("flies level when trimmed", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			runFrames(e, 500)
			Expect(e.Altitude()).To(BeNumerically("~", 300.0, 0.5))
			Expect(e.Airspeed()).To(BeNumerically("~", 30.0, 0.5))
		})

		It("climbs with up elevator", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			e.SetProperty(fdm.PropElevatorCmd, 0.5)
			runFrames(e, 500)
			Expect(e.Altitude()).To(BeNumerically(">", 310.0))
			Expect(e.Attitude().Pitch).To(BeNumerically(">", 5.0))
		})

		It("descends through the ground with down elevator", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			e.SetProperty(fdm.PropElevatorCmd, -1.0)
			runFrames(e, 4000)
			Expect(e.Altitude()).To(BeNumerically("<", 0.0))
		})

		It("moves along the heading", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			start := e.Position()
			runFrames(e, 500)
			p := e.Position()

			Expect(p.Latitude).To(BeNumerically(">", start.Latitude))
			Expect(p.Longitude).To(BeNumerically(">", start.Longitude))
		})

		It("turns under aileron", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			e.SetProperty(fdm.PropAileronCmd, 0.5)
			runFrames(e, 500)

			Expect(e.Attitude().Roll).To(BeNumerically(">", 5.0))
			Expect(e.Position().Heading).NotTo(BeNumerically("~", 45.0, 1.0))
		})
	})

	Describe("holding", func() {
		It("freezes time and state", func() {
			startEngines(e)
			runFrames(e, 5)
			t := e.SimTime()
			alt := e.Altitude()

			e.Hold()
			Expect(e.Holding()).To(BeTrue())

			runFrames(e, 10)
			Expect(e.SimTime()).To(Equal(t))
			Expect(e.Altitude()).To(Equal(alt))
		})

		It("resumes after a hold", func() {
			e.Hold()
			runFrames(e, 3)
			Expect(e.SimTime()).To(BeZero())

			e.Resume()
			runFrames(e, 3)
			Expect(e.SimTime()).To(BeNumerically("~", 3*testDt, 1e-9))
		})
	})

	Describe("suspended integration", func() {
		It("cycles frames without advancing", func() {
			e.SuspendIntegration()
			Expect(e.IntegrationSuspended()).To(BeTrue())
			Expect(e.DeltaT()).To(BeZero())

			runFrames(e, 10)
			Expect(e.SimTime()).To(BeZero())
		})

		It("is independent of the hold flag", func() {
			e.SuspendIntegration()
			Expect(e.Holding()).To(BeFalse())

			e.Hold()
			e.Resume()
			Expect(e.IntegrationSuspended()).To(BeTrue())
		})

		It("restores the time step on resume", func() {
			e.SuspendIntegration()
			e.ResumeIntegration()
			Expect(e.DeltaT()).To(Equal(testDt))

			runFrames(e, 2)
			Expect(e.SimTime()).To(BeNumerically("~", 2*testDt, 1e-9))
		})
	})

	Describe("incremental hold", func() {
		It("re-holds after the armed frame count", func() {
			e.EnableIncrementalHold(3)

			for i := 0; i < 10; i++ {
				e.CheckIncrementalHold()
				_, err := e.Run()
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(e.Holding()).To(BeTrue())
			Expect(e.SimTime()).To(BeNumerically("~", 3*testDt, 1e-9))
		})

		It("ignores a non-positive frame count", func() {
			e.EnableIncrementalHold(0)

			for i := 0; i < 5; i++ {
				e.CheckIncrementalHold()
				_, err := e.Run()
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(e.Holding()).To(BeFalse())
		})
	})

	Describe("initial conditions", func() {
		It("refuses to run after a reset until rerun", func() {
			e.ResetToInitialConditions(0)

			ok, err := e.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())

			Expect(e.RunInitialConditions()).To(BeTrue())

			ok, err = e.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("restores the initial state", func() {
			startEngines(e)
			e.SetProperty(fdm.PropElevatorCmd, 0.5)
			runFrames(e, 200)
			Expect(e.Altitude()).NotTo(BeNumerically("~", 300.0, 0.1))

			e.ResetToInitialConditions(0)
			Expect(e.RunInitialConditions()).To(BeTrue())

			Expect(e.SimTime()).To(BeZero())
			Expect(e.Altitude()).To(Equal(300.0))
			Expect(e.Airspeed()).To(Equal(30.0))
			Expect(e.Attitude()).To(Equal(fdm.Attitude{}))
		})

		It("drops queued notifications in mode 1 only", func() {
			e.ProcessMessages()
			e.PostMessage("checkpoint")

			e.ResetToInitialConditions(0)
			Expect(e.PendingMessages()).To(Equal(1))

			e.ResetToInitialConditions(1)
			Expect(e.PendingMessages()).To(BeZero())
		})
	})

	Describe("trim", func() {
		It("fails with the engine off", func() {
			Expect(e.Trim(fdm.TrimModeFull)).To(BeFalse())
		})

		It("fails below stall speed", func() {
			b := fdm.NewBuilder("")
			b.Dt = testDt
			b.Altitude = 300.0
			b.Airspeed = 5.0

			slow, err := b.Create()
			Expect(err).NotTo(HaveOccurred())

			startEngines(slow)
			Expect(slow.Trim(fdm.TrimModeFull)).To(BeFalse())
		})

		It("levels the aircraft in full mode", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			e.SetProperty(fdm.PropAileronCmd, 1.0)
			runFrames(e, 200)
			Expect(e.Attitude().Roll).To(BeNumerically(">", 1.0))

			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			Expect(e.Attitude().Roll).To(BeZero())
			Expect(e.Property(fdm.PropAileronCmd)).To(BeZero())
			Expect(e.Property(fdm.PropThrottleCmd)).To(BeNumerically(">", 0.0))
		})

		It("leaves the lateral axes alone in longitudinal mode", func() {
			startEngines(e)
			e.SetProperty(fdm.PropAileronCmd, 0.3)

			Expect(e.Trim(fdm.TrimModeLongitudinal)).To(BeTrue())
			Expect(e.Property(fdm.PropAileronCmd)).To(Equal(0.3))
		})

		It("parks the aircraft in ground mode", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeGround)).To(BeTrue())

			Expect(e.Airspeed()).To(BeZero())
			Expect(e.Property(fdm.PropThrottleCmd)).To(BeZero())
		})

		It("does not leave integration suspended", func() {
			startEngines(e)
			Expect(e.Trim(fdm.TrimModeFull)).To(BeTrue())

			Expect(e.IntegrationSuspended()).To(BeFalse())
			Expect(e.DeltaT()).To(Equal(testDt))
		})
	})

	Describe("property tree", func() {
		It("round-trips values", func() {
			e.SetProperty("simulation/custom", 1.5)
			Expect(e.Property("simulation/custom")).To(Equal(1.5))
			Expect(e.Property("simulation/unknown")).To(BeZero())
		})

		It("starts the engine with starter and magneto", func() {
			Expect(e.EngineRunning()).To(BeFalse())

			startEngines(e)
			Expect(e.EngineRunning()).To(BeTrue())
		})

		It("produces thrust once running", func() {
			startEngines(e)
			e.SetProperty(fdm.PropThrottleCmd, 0.8)
			runFrames(e, 1)

			Expect(e.Property(fdm.PropEngineThrust)).To(BeNumerically(">", 100.0))
		})
	})

	Describe("notifications", func() {
		It("drains the queue", func() {
			e.ProcessMessages()
			e.PostMessage("one")
			e.PostMessage("two")
			Expect(e.PendingMessages()).To(Equal(2))

			e.ProcessMessages()
			Expect(e.PendingMessages()).To(BeZero())
		})
	})

	Describe("faults", func() {
		It("faults when a command drives the state non-finite", func() {
			startEngines(e)
			e.SetProperty(fdm.PropElevatorCmd, math.NaN())

			ok, err := e.Run()
			Expect(ok).To(BeFalse())
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("air data", func() {
		It("reports total pressure above static in flight", func() {
			a := e.Atmosphere()
			Expect(e.TotalPressure()).To(BeNumerically(">", a.Pressure))
		})
	})
})
