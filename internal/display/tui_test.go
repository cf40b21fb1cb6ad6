package display

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("interactive model", func() {
	var (
		r   *fakeRenderer
		mgr *Manager
	)

	BeforeEach(func() {
		r = newFakeRenderer(8, 6)
		mgr = NewManager(newController(r), Options{Interactive: true, Sink: (&sinkRecorder{}).save})
	})

	key := func(s string) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}

	DescribeTable("maps keys to events",
		func(msg tea.KeyMsg, want Event) {
			Expect(EventForKey(msg)).To(Equal(want))
		},
		Entry("q", key("q"), Quit{}),
		Entry("Q", key("Q"), Quit{}),
		Entry("ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, Quit{}),
		Entry("+", key("+"), Resume{}),
		Entry("=", key("="), Resume{}),
		Entry("p", key("p"), TogglePause{}),
		Entry("P", key("P"), TogglePause{}),
		Entry("s", key("s"), ToggleStats{}),
	)

	It("ignores unbound keys", func() {
		Expect(EventForKey(key("x"))).To(BeNil())
	})

	It("renders a frame and requeues the next one", func() {
		m := newModel(mgr)
		next, cmd := m.Update(frameMsg{})
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(frameMsg{}))
		Expect(next.(model).mgr.Frames()).To(Equal(1))
	})

	It("quits through the state machine", func() {
		m := newModel(mgr)
		_, cmd := m.Update(key("q"))
		Expect(mgr.State().Mode).To(Equal(Terminated))
		Expect(cmd()).To(Equal(tea.Quit()))

		_, cmd = m.Update(frameMsg{})
		Expect(cmd).To(BeNil())
	})

	It("turns window size into a pixel viewport", func() {
		m := newModel(mgr)
		m.Update(tea.WindowSizeMsg{Width: 40, Height: 22})
		Expect(mgr.State().ViewWidth).To(Equal(40))
		Expect(mgr.State().ViewHeight).To(Equal(40))
	})

	It("shrinks the viewport when the stats panel opens", func() {
		m := newModel(mgr)
		next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 22})
		next.Update(key("s"))
		Expect(mgr.State().ShowStats).To(BeTrue())
		Expect(mgr.State().ViewHeight).To(Equal((22 - chromeRows - statsRows) * 2))
	})

	It("draws two pixel rows per line", func() {
		img := image.NewRGBA(image.Rect(0, 0, 3, 5))
		out := halfBlocks(img, img.Bounds())
		Expect(strings.Count(out, "\n")).To(Equal(3))
		Expect(strings.Count(out, "▀")).To(Equal(9))
	})
})
