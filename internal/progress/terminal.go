package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal writes status lines to w. When w is a terminal the current step
// is animated with a spinner until Succeed, Fail or Stop.
type Terminal struct {
	w       io.Writer
	animate bool
	frames  spinner.Spinner

	okStyle   lipgloss.Style
	failStyle lipgloss.Style

	mu   sync.Mutex
	text string
	done chan struct{}
	wg   sync.WaitGroup
}

// NewTerminal returns a Terminal sink writing to w.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:         w,
		animate:   isTerminal(w),
		frames:    spinner.Dot,
		okStyle:   r.NewStyle().Foreground(lipgloss.Color("2")),
		failStyle: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (t *Terminal) Start(text string) {
	t.Stop()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = text
	if !t.animate {
		fmt.Fprintf(t.w, "%s\n", text)
		return
	}
	t.done = make(chan struct{})
	t.wg.Add(1)
	go t.spin(t.done)
}

func (t *Terminal) spin(done <-chan struct{}) {
	defer t.wg.Done()
	tick := time.NewTicker(t.frames.FPS)
	defer tick.Stop()
	for i := 0; ; i++ {
		t.mu.Lock()
		fmt.Fprintf(t.w, "\r\033[K%s%s", t.frames.Frames[i%len(t.frames.Frames)], t.text)
		t.mu.Unlock()
		select {
		case <-done:
			return
		case <-tick.C:
		}
	}
}

func (t *Terminal) Succeed(text string) {
	t.finish(t.okStyle.Render("✔"), text)
}

func (t *Terminal) Fail(text string) {
	t.finish(t.failStyle.Render("✖"), text)
}

func (t *Terminal) finish(mark, text string) {
	t.Stop()
	fmt.Fprintf(t.w, "%s %s\n", mark, text)
}

// Stop ends the animation, if any, and clears the spinner line. It is safe to
// call more than once.
func (t *Terminal) Stop() {
	t.mu.Lock()
	done := t.done
	t.done = nil
	t.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	t.wg.Wait()
	fmt.Fprint(t.w, "\r\033[K")
}
