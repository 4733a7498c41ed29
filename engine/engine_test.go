package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/profiler"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/scene"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
)

type fakeRenderer struct {
	renderer.Renderer

	log      *[]string
	beginErr error
	resized  [2]int
}

func (f *fakeRenderer) BeginFrame() error {
	*f.log = append(*f.log, "begin")
	return f.beginErr
}

func (f *fakeRenderer) EndFrame() { *f.log = append(*f.log, "end") }
func (f *fakeRenderer) Present() { *f.log = append(*f.log, "present") }

func (f *fakeRenderer) Resize(width, height int) { f.resized = [2]int{width, height} }

type fakeScene struct {
	scene.Scene

	name    string
	active  bool
	r       renderer.Renderer
	cam     camera.Camera
	log     *[]string
	drawErr error
}

func (s *fakeScene) Name() string { return s.name }
func (s *fakeScene) Active() bool { return s.active }
func (s *fakeScene) Renderer() renderer.Renderer { return s.r }
func (s *fakeScene) Camera() camera.Camera { return s.cam }

func (s *fakeScene) Prepare() error {
	*s.log = append(*s.log, "prepare "+s.name)
	return nil
}

func (s *fakeScene) DrawCalls() error {
	*s.log = append(*s.log, "draw "+s.name)
	return s.drawErr
}

type fakeWindow struct {
	window.Window

	iterations int
	closed     bool
	log        *[]string
	onUpdate   func()
	onResize   func(width, height int)
}

func (w *fakeWindow) SetUpdateCallback(cb func()) { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) RequestClose() { w.closed = true }

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.iterations && !w.closed; i++ {
		if w.log != nil {
			*w.log = append(*w.log, "iteration")
		}
		w.onUpdate()
	}
}

func newFixture() (*[]string, *fakeRenderer) {
	log := &[]string{}
	return log, &fakeRenderer{log: log}
}

func TestFrameRendersActiveScenesInOrder(t *testing.T) {
	log, r := newFixture()
	e := NewEngine(
		WithScene(5, &fakeScene{name: "top", active: true, r: r, log: log}),
		WithScene(-1, &fakeScene{name: "bottom", active: true, r: r, log: log}),
		WithScene(2, &fakeScene{name: "hidden", active: false, r: r, log: log}),
	)

	if !e.Frame() {
		t.Fatal("Frame() = false")
	}
	want := []string{"prepare bottom", "prepare top", "begin", "draw bottom", "draw top", "end", "present"}
	if len(*log) != len(want) {
		t.Fatalf("frame = %v, want %v", *log, want)
	}
	for i := range want {
		if (*log)[i] != want[i] {
			t.Fatalf("frame = %v, want %v", *log, want)
		}
	}
	if e.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", e.Frames())
	}
}

func TestTickRunsBeforeRender(t *testing.T) {
	log, r := newFixture()
	e := NewEngine(WithScene(0, &fakeScene{name: "main", active: true, r: r, log: log}))
	e.SetTickCallback(func(float32) { *log = append(*log, "tick") })
	e.Frame()
	if (*log)[0] != "tick" {
		t.Errorf("frame = %v, want tick first", *log)
	}
}

func TestFrameRejectsReentry(t *testing.T) {
	log, r := newFixture()
	e := NewEngine(WithScene(0, &fakeScene{name: "main", active: true, r: r, log: log}))

	nested := true
	e.SetTickCallback(func(float32) {
		nested = e.Frame()
	})
	if !e.Frame() {
		t.Fatal("outer frame failed")
	}
	if nested {
		t.Error("nested Frame() ran while a frame was in progress")
	}
	begins := 0
	for _, l := range *log {
		if l == "begin" {
			begins++
		}
	}
	if begins != 1 {
		t.Errorf("rendered %d times in one frame, want 1", begins)
	}
}

func TestFramePanicQuits(t *testing.T) {
	e := NewEngine()
	e.SetTickCallback(func(float32) { panic("boom") })
	if e.Frame() {
		t.Error("panicking frame reported success")
	}
	select {
	case <-e.Done():
	default:
		t.Fatal("engine did not quit after a panic")
	}
	e.SetTickCallback(nil)
	if e.Frame() {
		t.Error("frame ran after quit")
	}
}

func TestBeginFrameFailureSkipsDraw(t *testing.T) {
	log, r := newFixture()
	r.beginErr = errors.New("surface lost")
	e := NewEngine(WithScene(0, &fakeScene{name: "main", active: true, r: r, log: log}))
	e.Frame()
	for _, l := range *log {
		if l == "draw main" || l == "present" {
			t.Errorf("frame = %v, want no draw after BeginFrame failure", *log)
		}
	}
}

func TestRunDrivesFramesUntilQuit(t *testing.T) {
	log, r := newFixture()
	w := &fakeWindow{iterations: 10, log: log}
	e := NewEngine(
		WithWindow(w),
		WithScene(0, &fakeScene{name: "main", active: true, r: r, log: log, drawErr: errors.New("no pipeline")}),
	)
	e.SetRenderCallback(func(float32) {
		if e.Frames() == 2 {
			e.Quit()
		}
	})
	e.Run()

	if e.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", e.Frames())
	}
	if !w.closed {
		t.Error("Quit did not ask the window to close")
	}

	// Every loop iteration renders exactly once, and nothing renders outside one.
	var ticks [][]string
	for _, l := range *log {
		if l == "iteration" {
			ticks = append(ticks, nil)
			continue
		}
		if len(ticks) == 0 {
			t.Fatalf("%q logged before the first iteration", l)
		}
		ticks[len(ticks)-1] = append(ticks[len(ticks)-1], l)
	}
	if len(ticks) != 3 {
		t.Fatalf("ran %d iterations, want 3: %v", len(ticks), *log)
	}
	for i, tick := range ticks {
		begins, presents := 0, 0
		for _, l := range tick {
			switch l {
			case "begin":
				begins++
			case "present":
				presents++
			}
		}
		if begins != 1 || presents != 1 {
			t.Errorf("iteration %d: %d begin and %d present, want 1 each: %v", i, begins, presents, tick)
		}
	}
}

func TestProfilerTicksOncePerFrame(t *testing.T) {
	var lines []string
	clock := time.Unix(0, 0)
	p := profiler.NewProfiler(
		profiler.WithInterval(time.Second),
		profiler.WithClock(func() time.Time {
			clock = clock.Add(500 * time.Millisecond)
			return clock
		}),
		profiler.WithLogf(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)
	e := NewEngine(WithProfiler(p))

	e.Frame()
	e.Frame()
	if len(lines) != 0 {
		t.Fatalf("profiler logged %v while disabled", lines)
	}

	e.EnableProfiler()
	for range 4 {
		e.Frame()
	}
	if len(lines) != 2 {
		t.Fatalf("profiler logged %d times over 4 half-second frames, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "FPS: 2.00") {
		t.Errorf("log line %q, want FPS: 2.00", lines[0])
	}
}

func TestRenderFrameLimit(t *testing.T) {
	e := NewEngine(WithRenderFrameLimit(100))
	if got := e.(*engine).renderFrameLimit; got != 10*time.Millisecond {
		t.Fatalf("frame limit = %v, want 10ms", got)
	}

	start := time.Now()
	for range 3 {
		e.Frame()
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("3 capped frames took %v, want at least 30ms", elapsed)
	}

	e.SetRenderFrameLimit(0)
	if got := e.(*engine).renderFrameLimit; got != 0 {
		t.Errorf("frame limit = %v after uncapping, want 0", got)
	}
}

func TestResizeUpdatesRendererAndCamera(t *testing.T) {
	log, r := newFixture()
	cam := camera.NewCamera(camera.WithAspect(1))
	w := &fakeWindow{}
	NewEngine(WithWindow(w), WithScene(0, &fakeScene{name: "main", active: true, r: r, cam: cam, log: log}))

	w.onResize(1600, 800)
	if r.resized != [2]int{1600, 800} {
		t.Errorf("renderer resized to %v", r.resized)
	}
	if cam.Aspect() != 2 {
		t.Errorf("camera aspect = %v, want 2", cam.Aspect())
	}

	w.onResize(0, 0)
	if r.resized != [2]int{1600, 800} || cam.Aspect() != 2 {
		t.Error("zero-size resize should be ignored")
	}
}
