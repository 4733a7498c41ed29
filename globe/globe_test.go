package globe

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/loader"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
)

// fakeLoader records requests and completes them only when told to.
type fakeLoader struct {
	requests  []string
	callbacks map[string]func(common.TextureStagingData)
	ready     []string
	closed    bool
}

var _ loader.Loader = &fakeLoader{}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{callbacks: make(map[string]func(common.TextureStagingData))}
}

func (f *fakeLoader) Load(src string, onLoaded func(common.TextureStagingData)) {
	f.requests = append(f.requests, src)
	f.callbacks[src] = onLoaded
}

// complete marks src as loaded; its callback runs on the next Poll.
func (f *fakeLoader) complete(src string) {
	f.ready = append(f.ready, src)
}

func (f *fakeLoader) Poll() int {
	n := 0
	for _, src := range f.ready {
		f.callbacks[src](common.TextureStagingData{Pixels: make([]byte, 16), Width: 2, Height: 2})
		delete(f.callbacks, src)
		n++
	}
	f.ready = nil
	return n
}

func (f *fakeLoader) Pending() int {
	return len(f.callbacks)
}

func (f *fakeLoader) Close() {
	f.closed = true
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

func TestBuildLayout(t *testing.T) {
	fl := newFakeLoader()
	rc := Build(1024, 768, WithLoader(fl))

	cam := rc.Camera()
	if x, y, z := cam.Position(); x != 0 || y != 0 || z != 500 {
		t.Errorf("camera at (%v, %v, %v), want (0, 0, 500)", x, y, z)
	}
	if !near(cam.Fov(), common.DegToRad(45)) || cam.Near() != 0.1 || cam.Far() != 10000 {
		t.Errorf("camera fov/near/far = %v/%v/%v", cam.Fov(), cam.Near(), cam.Far())
	}
	if !near(cam.Aspect(), 1024.0/768.0) {
		t.Errorf("camera aspect = %v", cam.Aspect())
	}

	if p := rc.Globe().Position(); p != [3]float32{0, 0, -300} {
		t.Errorf("globe at %v", p)
	}
	if p := rc.Moon().Position(); p != [3]float32{400, 100, -300} {
		t.Errorf("moon at %v", p)
	}
	if l := rc.Light(); l.Position() != [3]float32{10, 50, 400} || l.Color() != [3]float32{1, 1, 1} {
		t.Errorf("light at %v color %v", l.Position(), l.Color())
	}
	if len(rc.Scene().Groups()) != 2 {
		t.Errorf("scene has %d groups, want 2", len(rc.Scene().Groups()))
	}

	want := []string{DefaultGlobeTexture, DefaultMoonTexture, DefaultBackgroundTexture}
	if len(fl.requests) != len(want) {
		t.Fatalf("requested %v, want %v", fl.requests, want)
	}
	for i := range want {
		if fl.requests[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, fl.requests[i], want[i])
		}
	}

	if x, y := rc.Cursor(); x != 512 || y != 384 {
		t.Errorf("cursor starts at (%v, %v), want viewport center", x, y)
	}
}

func TestMeshesAttachOnlyAfterLoad(t *testing.T) {
	fl := newFakeLoader()
	rc := Build(800, 600, WithLoader(fl), WithSegments(8, 6))

	rc.Tick(0)
	if rc.Globe().Model() != nil || rc.Moon().Model() != nil {
		t.Fatal("meshes attached before textures loaded")
	}

	fl.complete(DefaultMoonTexture)
	if rc.Moon().Model() != nil {
		t.Fatal("mesh attached before Tick")
	}
	rc.Tick(0.016)
	moon := rc.Moon().Model()
	if moon == nil {
		t.Fatal("moon mesh not attached after its texture loaded")
	}
	if moon.VertexCount() != 9*7 {
		t.Errorf("moon has %d vertices, want %d", moon.VertexCount(), 9*7)
	}
	if math.Abs(float64(moon.BoundingRadius()-MoonRadius)) > 1e-2 {
		t.Errorf("moon radius = %v", moon.BoundingRadius())
	}
	if moon.Material().Texture().Empty() {
		t.Error("moon material has no texture")
	}
	if rc.Globe().Model() != nil {
		t.Error("globe attached without its texture")
	}

	fl.complete(DefaultBackgroundTexture)
	rc.Tick(0.016)
	if !rc.Scene().HasBackground() {
		t.Error("background not applied")
	}
}

func TestFailedLoadLeavesGroupEmpty(t *testing.T) {
	fl := newFakeLoader()
	rc := Build(800, 600, WithLoader(fl), WithSegments(4, 3))

	// The globe load never completes; the others do.
	fl.complete(DefaultMoonTexture)
	fl.complete(DefaultBackgroundTexture)
	for i := 0; i < 5; i++ {
		rc.Tick(0.016)
	}
	if rc.Globe().Model() != nil {
		t.Error("globe should stay empty when its texture never arrives")
	}
	if rc.Moon().Model() == nil {
		t.Error("moon should still attach")
	}
}

func TestOverrides(t *testing.T) {
	fl := newFakeLoader()
	rc := Build(800, 600,
		WithLoader(fl),
		WithGlobeTexture("assets/earth.png"),
		WithMoonTexture(""),
		WithBackgroundTexture(""),
		WithGlobeRadius(10),
		WithGlobePosition(1, 2, 3),
		WithMoonPosition(4, 5, 6),
		WithSegments(5, 4),
		WithShading(material.ShadingLambert),
	)
	if len(fl.requests) != 1 || fl.requests[0] != "assets/earth.png" {
		t.Fatalf("requests = %v, want only the globe", fl.requests)
	}
	if rc.Moon().Position() != [3]float32{4, 5, 6} || rc.Globe().Position() != [3]float32{1, 2, 3} {
		t.Error("position overrides not applied")
	}

	fl.complete("assets/earth.png")
	rc.Tick(0)
	m := rc.Globe().Model()
	if m == nil {
		t.Fatal("globe not attached")
	}
	if m.Material().Shading() != material.ShadingLambert {
		t.Errorf("shading = %v, want lambert", m.Material().Shading())
	}
	if m.VertexCount() != 6*5 {
		t.Errorf("globe has %d vertices, want 30", m.VertexCount())
	}
	if math.Abs(float64(m.BoundingRadius()-10)) > 1e-3 {
		t.Errorf("globe radius = %v, want 10", m.BoundingRadius())
	}
}

func TestHandlePointerMove(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		x, y       float64
		wantRotX   float32
		wantRotY   float32
		wantCursor [2]float64
	}{
		{"horizontal", 1024, 768, 522, 384, 0, 0.05, [2]float64{522, 384}},
		{"vertical", 0, 0, 0, 200, 1.0, 0, [2]float64{0, 200}},
		{"no movement", 1024, 768, 512, 384, 0, 0, [2]float64{512, 384}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := Build(tt.width, tt.height, WithLoader(newFakeLoader()))
			rc.HandlePointerMove(tt.x, tt.y)

			rot := rc.Globe().Rotation()
			if !near(rot[0], tt.wantRotX) || !near(rot[1], tt.wantRotY) || rot[2] != 0 {
				t.Errorf("rotation = %v, want (%v, %v, 0)", rot, tt.wantRotX, tt.wantRotY)
			}
			if x, y := rc.Cursor(); x != tt.wantCursor[0] || y != tt.wantCursor[1] {
				t.Errorf("cursor = (%v, %v), want %v", x, y, tt.wantCursor)
			}
			if rc.Moon().Rotation() != [3]float32{} {
				t.Errorf("moon rotated to %v", rc.Moon().Rotation())
			}
		})
	}
}

func TestCursorOriginOnScaledDisplay(t *testing.T) {
	// 1280x720 window at 2x scale: framebuffer is 2560x1440, cursor events use screen units.
	rc := Build(2560, 1440, WithLoader(newFakeLoader()), WithCursorOrigin(640, 360))

	if !near(rc.Camera().Aspect(), 2560.0/1440.0) {
		t.Errorf("camera aspect = %v, want framebuffer aspect", rc.Camera().Aspect())
	}
	if x, y := rc.Cursor(); x != 640 || y != 360 {
		t.Fatalf("cursor starts at (%v, %v), want (640, 360)", x, y)
	}

	rc.HandlePointerMove(640, 360)
	if rot := rc.Globe().Rotation(); rot != [3]float32{} {
		t.Errorf("pointer resting at the window center rotated the globe to %v", rot)
	}

	rc.HandlePointerMove(650, 360)
	if rot := rc.Globe().Rotation(); !near(rot[1], 0.05) || rot[0] != 0 {
		t.Errorf("rotation = %v, want (0, 0.05, 0)", rot)
	}
}

func TestCloseStopsLoader(t *testing.T) {
	fl := newFakeLoader()
	rc := Build(800, 600, WithLoader(fl))
	rc.Close()
	if !fl.closed {
		t.Error("Close did not close the loader")
	}
}

func TestRotationIsRunningSum(t *testing.T) {
	rc := Build(100, 100, WithLoader(newFakeLoader()))
	path := [][2]float64{{60, 50}, {80, 20}, {10, 10}, {-400, 900}, {50, 50}}

	var sumX, sumY float64
	lastX, lastY := 50.0, 50.0
	for _, p := range path {
		rc.HandlePointerMove(p[0], p[1])
		sumY += (p[0] - lastX) * RotationFactor
		sumX += (p[1] - lastY) * RotationFactor
		lastX, lastY = p[0], p[1]
	}

	rot := rc.Globe().Rotation()
	if math.Abs(float64(rot[0])-sumX) > 1e-5 || math.Abs(float64(rot[1])-sumY) > 1e-5 {
		t.Errorf("rotation = %v, want (%v, %v)", rot, sumX, sumY)
	}
	// Returning to the start cancels out exactly in real arithmetic.
	if math.Abs(sumX) > 1e-9 || math.Abs(sumY) > 1e-9 {
		t.Errorf("closed path sums to (%v, %v)", sumX, sumY)
	}
}
