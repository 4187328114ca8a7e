package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scisim/internal/dynamo"
	"github.com/san-kum/scisim/internal/scene"
	"github.com/san-kum/scisim/internal/sim"
	"github.com/san-kum/scisim/internal/surface"
)

var _ = Describe("Stepper", func() {
	var (
		host    *sim.LoopHost
		stepper *sim.Stepper
		ticks   int
	)

	BeforeEach(func() {
		host = sim.NewLoopHost()
		ticks = 0
		stepper = sim.NewStepper(host, 0.25, func(dynamo.AnimationState) { ticks++ })
	})

	It("starts stopped with nothing pending", func() {
		Expect(stepper.Running()).To(BeFalse())
		Expect(host.Pending()).To(BeZero())
	})

	Context("when running", func() {
		BeforeEach(func() {
			stepper.Start()
		})

		It("keeps exactly one request pending", func() {
			stepper.Start()
			Expect(host.Pending()).To(Equal(1))
			host.Fire()
			Expect(host.Pending()).To(Equal(1))
		})

		It("advances by speed times base rate per frame", func() {
			stepper.SetSpeed(2)
			host.Fire()
			host.Fire()
			Expect(stepper.State().ElapsedTime).To(BeNumerically("~", 1.0, 1e-12))
			Expect(ticks).To(Equal(2))
		})

		It("does not catch up on missed frames", func() {
			host.Fire()
			Expect(ticks).To(Equal(1))
			Expect(stepper.State().ElapsedTime).To(BeNumerically("~", 0.25, 1e-12))
		})

		It("wraps the angle but not the time", func() {
			stepper.SetSpeed(10)
			for i := 0; i < 4; i++ {
				host.Fire()
			}
			st := stepper.State()
			Expect(st.ElapsedTime).To(BeNumerically("~", 10, 1e-9))
			Expect(st.ElapsedAngle).To(BeNumerically("<", dynamo.TwoPi))
			Expect(st.ElapsedAngle).To(BeNumerically("~", 10-dynamo.TwoPi, 1e-9))
		})

		Context("and then stopped", func() {
			BeforeEach(func() {
				host.Fire()
				stepper.Stop()
			})

			It("cancels the pending request", func() {
				Expect(host.Pending()).To(BeZero())
			})

			It("ignores further frames", func() {
				before := stepper.State()
				host.Fire()
				host.Fire()
				Expect(stepper.State()).To(Equal(before))
				Expect(ticks).To(Equal(1))
			})

			It("keeps elapsed values until reset", func() {
				Expect(stepper.State().ElapsedTime).To(BeNumerically(">", 0))
				stepper.Reset()
				Expect(stepper.State().ElapsedTime).To(BeZero())
				Expect(stepper.State().ElapsedAngle).To(BeZero())
			})

			It("resumes from where it stopped", func() {
				stepper.Start()
				host.Fire()
				Expect(stepper.State().ElapsedTime).To(BeNumerically("~", 0.5, 1e-12))
			})
		})
	})
})

var _ = Describe("Engine", func() {
	var (
		host   *sim.LoopHost
		rec    *surface.Recorder
		engine *sim.Engine
	)

	BeforeEach(func() {
		host = sim.NewLoopHost()
		rec = surface.NewRecorder()
		engine = sim.NewEngine(scene.Optics{}, host, rec, sim.WithPalette(scene.PaletteSunset))
		engine.Mount()
	})

	AfterEach(func() {
		engine.Unmount()
	})

	It("mounts with schema defaults", func() {
		p := engine.Panel().Params()
		Expect(p.Enum("element")).To(Equal("converging-lens"))
		Expect(p.Float("focal")).To(Equal(20.0))
		Expect(engine.Frames()).To(Equal(1))
	})

	It("draws the image for the default setup", func() {
		Expect(rec.Layers()).To(ContainElement("image"))
		v, ok := dynamo.Lookup(engine.Result(), "v")
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", 60, 1e-9))
	})

	It("suppresses the image when the object sits at the focus", func() {
		_, err := engine.Panel().SetFloat("object_distance", 20)
		Expect(err).NotTo(HaveOccurred())
		rec.Reset()
		engine.Redraw()
		Expect(rec.Ops).To(BeEmpty())
		host.Fire()
		Expect(engine.Result().Valid()).To(BeFalse())
		Expect(engine.Result().Err()).To(MatchError(dynamo.ErrImageAtInfinity))
		Expect(rec.Layers()).NotTo(ContainElement("image"))
		Expect(rec.Layers()).To(ContainElement("element"))
	})

	It("hides only the toggled overlay", func() {
		err := engine.Panel().SetToggle("show_rays", false)
		Expect(err).NotTo(HaveOccurred())
		rec.Reset()
		engine.Redraw()
		Expect(rec.Ops).To(BeEmpty())
		host.Fire()
		Expect(rec.Layers()).NotTo(ContainElement("rays"))
		Expect(rec.Layers()).To(ContainElements("focal-points", "image", "info"))
	})

	It("draws nothing once unmounted", func() {
		engine.Start()
		engine.Unmount()
		n := len(rec.Ops)
		host.Fire()
		Expect(rec.Ops).To(HaveLen(n))
		Expect(engine.Mounted()).To(BeFalse())
	})

	It("toggles between running and stopped", func() {
		engine.Toggle()
		Expect(engine.Running()).To(BeTrue())
		host.Fire()
		engine.Toggle()
		Expect(engine.Running()).To(BeFalse())
		Expect(engine.Frames()).To(Equal(2))
	})

	It("paints stopped changes only when the next frame fires", func() {
		engine.DragCamera(30, 0)
		engine.Redraw()
		engine.Seek(2)
		Expect(engine.Frames()).To(Equal(1))
		Expect(host.Pending()).To(Equal(1))
		host.Fire()
		Expect(engine.Frames()).To(Equal(2))
		Expect(engine.Dirty()).To(BeFalse())
	})
})
