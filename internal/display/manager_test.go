package display

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circlebench/internal/ppm"
)

var _ = Describe("Manager", func() {
	var (
		r    *fakeRenderer
		sink *sinkRecorder
	)

	BeforeEach(func() {
		r = newFakeRenderer(8, 6)
		sink = &sinkRecorder{}
	})

	interactive := func() *Manager {
		return NewManager(newController(r), Options{Interactive: true, Sink: sink.save})
	}

	Describe("initial mode", func() {
		It("starts headless when no display is requested", func() {
			m := NewManager(newController(r), Options{Sink: sink.save})
			Expect(m.State().Mode).To(Equal(HeadlessBatch))
		})

		It("starts running when a display is requested", func() {
			m := interactive()
			Expect(m.State().Mode).To(Equal(InteractiveRunning))
			Expect(m.State().Running).To(BeTrue())
			Expect(m.State().Paused).To(BeFalse())
		})

		It("defaults the viewport to the frame buffer", func() {
			m := interactive()
			Expect(m.State().ViewWidth).To(Equal(8))
			Expect(m.State().ViewHeight).To(Equal(6))
		})
	})

	Describe("Handle", func() {
		It("pauses starting with the frame after the request", func() {
			m := interactive()
			m.Handle(TogglePause{})
			Expect(m.State().Mode).To(Equal(InteractivePaused))

			_, err := m.RenderFrame()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.advances).To(Equal(1))
			Expect(m.State().Running).To(BeFalse())

			_, err = m.RenderFrame()
			Expect(err).NotTo(HaveOccurred())
			Expect(r.advances).To(Equal(1))
			Expect(r.count("clear")).To(Equal(2))
			Expect(r.count("render")).To(Equal(2))
		})

		It("toggles back to running with the simulation forced on", func() {
			m := interactive()
			m.Handle(TogglePause{})
			m.RenderFrame()
			m.Handle(TogglePause{})

			Expect(m.State().Mode).To(Equal(InteractiveRunning))
			Expect(m.State().Running).To(BeTrue())
			Expect(m.State().Paused).To(BeFalse())
			m.RenderFrame()
			Expect(r.advances).To(Equal(2))
		})

		DescribeTable("resume always leaves the simulation running",
			func(before []Event) {
				m := interactive()
				for _, ev := range before {
					m.Handle(ev)
					m.RenderFrame()
				}
				m.Handle(Resume{})
				m.Handle(Resume{})

				st := m.State()
				Expect(st.Mode).To(Equal(InteractiveRunning))
				Expect(st.Running).To(BeTrue())
				Expect(st.Paused).To(BeFalse())
			},
			Entry("from running", nil),
			Entry("from paused", []Event{TogglePause{}}),
			Entry("after pause and unpause", []Event{TogglePause{}, TogglePause{}}),
		)

		DescribeTable("quit terminates without writing the image",
			func(before []Event) {
				m := interactive()
				for _, ev := range before {
					m.Handle(ev)
				}
				m.Handle(Quit{})

				Expect(m.State().Mode).To(Equal(Terminated))
				Expect(sink.paths).To(BeEmpty())
			},
			Entry("from running", nil),
			Entry("from paused", []Event{TogglePause{}}),
			Entry("after resume", []Event{TogglePause{}, Resume{}}),
		)

		It("ignores events once terminated", func() {
			m := interactive()
			m.Handle(Quit{})
			m.Handle(Resume{})
			m.Handle(TogglePause{})
			Expect(m.State().Mode).To(Equal(Terminated))

			_, err := m.RenderFrame()
			Expect(err).To(MatchError(ErrNotInteractive))
		})

		It("ignores events in headless mode", func() {
			m := NewManager(newController(r), Options{Sink: sink.save})
			m.Handle(TogglePause{})
			m.Handle(Quit{})
			Expect(m.State().Mode).To(Equal(HeadlessBatch))
		})

		It("resizes the viewport but not the frame buffer", func() {
			m := interactive()
			m.Handle(Resize{Width: 100, Height: 40})

			Expect(m.State().Mode).To(Equal(InteractiveRunning))
			Expect(m.State().ViewWidth).To(Equal(100))
			Expect(m.State().ViewHeight).To(Equal(40))
			Expect(r.img.Width).To(Equal(8))
			Expect(r.img.Height).To(Equal(6))
		})

		It("toggles the stats panel without a transition", func() {
			m := interactive()
			m.Handle(ToggleStats{})
			Expect(m.State().ShowStats).To(BeTrue())
			Expect(m.State().Mode).To(Equal(InteractiveRunning))
			m.Handle(ToggleStats{})
			Expect(m.State().ShowStats).To(BeFalse())
		})
	})

	Describe("RenderFrame", func() {
		DescribeTable("clips the composite to the smaller size in each axis",
			func(vw, vh, wantW, wantH int) {
				m := interactive()
				m.Handle(Resize{Width: vw, Height: vh})
				_, err := m.RenderFrame()
				Expect(err).NotTo(HaveOccurred())

				Expect(m.Visible()).To(Equal(image.Rect(0, 0, wantW, wantH)))
				Expect(m.Surface().Bounds()).To(Equal(image.Rect(0, 0, vw, vh)))
			},
			Entry("viewport larger", 20, 20, 8, 6),
			Entry("viewport narrower", 4, 20, 4, 6),
			Entry("viewport shorter", 20, 3, 8, 3),
			Entry("viewport smaller", 2, 2, 2, 2),
		)

		It("copies pixels without transforming them", func() {
			r.color = [4]float32{1, 0, 0.5, 1}
			m := interactive()
			m.Handle(Resize{Width: 20, Height: 20})
			m.RenderFrame()

			s := m.Surface()
			o := s.PixOffset(3, 2)
			Expect(s.Pix[o : o+4]).To(Equal([]uint8{255, 0, 127, 255}))
			o = s.PixOffset(15, 15)
			Expect(s.Pix[o : o+4]).To(Equal([]uint8{0, 0, 0, 0}))
		})

		It("records frame-to-frame time", func() {
			m := interactive()
			m.RenderFrame()
			Expect(m.History()).To(BeEmpty())
			m.RenderFrame()
			m.RenderFrame()
			Expect(m.History()).To(HaveLen(2))
			Expect(m.Frames()).To(Equal(3))
		})
	})

	Describe("RunHeadless", func() {
		It("steps N frames and writes only the last one", func() {
			r.color = [4]float32{0.25, 0.5, 0.75, 1}
			m := NewManager(newController(r), Options{HeadlessFrames: 5, Sink: sink.save})

			Expect(m.RunHeadless(context.Background())).To(Succeed())
			Expect(r.count("clear")).To(Equal(5))
			Expect(r.count("advance")).To(Equal(5))
			Expect(r.count("render")).To(Equal(5))
			Expect(sink.paths).To(Equal([]string{DefaultOutputPath}))
			Expect(m.State().Mode).To(Equal(Terminated))
		})

		It("runs twenty frames by default", func() {
			m := NewManager(newController(r), Options{Sink: sink.save})
			Expect(m.RunHeadless(context.Background())).To(Succeed())
			Expect(r.count("render")).To(Equal(20))
			Expect(sink.paths).To(HaveLen(1))
		})

		It("keeps the per-frame stage order", func() {
			m := NewManager(newController(r), Options{HeadlessFrames: 2, Sink: sink.save})
			m.RunHeadless(context.Background())
			Expect(r.calls).To(Equal([]string{
				"clear", "advance", "render",
				"clear", "advance", "render",
			}))
		})

		It("continues normally when the sink fails", func() {
			sink.err = errors.New("disk full")
			m := NewManager(newController(r), Options{HeadlessFrames: 3, Sink: sink.save})
			Expect(m.RunHeadless(context.Background())).To(Succeed())
			Expect(m.State().Mode).To(Equal(Terminated))
		})

		It("stops between frames when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			m := NewManager(newController(r), Options{HeadlessFrames: 3, Sink: sink.save})
			Expect(m.RunHeadless(ctx)).To(MatchError(context.Canceled))
			Expect(r.calls).To(BeEmpty())
			Expect(sink.paths).To(BeEmpty())
		})

		It("refuses to run in interactive mode", func() {
			m := interactive()
			Expect(m.RunHeadless(context.Background())).To(MatchError(ErrNotHeadless))
		})

		It("writes a black 64x64 frame as a P6 file", func() {
			r = newFakeRenderer(64, 64)
			path := filepath.Join(GinkgoT().TempDir(), "output.ppm")
			m := NewManager(newController(r), Options{HeadlessFrames: 1, OutputPath: path, Sink: ppm.Save})
			Expect(m.RunHeadless(context.Background())).To(Succeed())

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			header := "P6\n64 64\n255\n"
			Expect(string(data[:len(header)])).To(Equal(header))
			Expect(data[len(header):]).To(Equal(make([]byte, 64*64*3)))
		})
	})
})
