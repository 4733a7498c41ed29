package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-globe/common"
)

func project(m [16]float32, x, y, z float32) (cx, cy, cz, cw float32) {
	cx = m[0]*x + m[4]*y + m[8]*z + m[12]
	cy = m[1]*x + m[5]*y + m[9]*z + m[13]
	cz = m[2]*x + m[6]*y + m[10]*z + m[14]
	cw = m[3]*x + m[7]*y + m[11]*z + m[15]
	return
}

func TestCameraProjectsSceneIntoDepthRange(t *testing.T) {
	c := NewCamera(
		WithPosition(0, 0, 500),
		WithFov(common.DegToRad(45)),
		WithAspect(1280.0/720.0),
		WithNear(0.1),
		WithFar(10000),
	)

	// globe center sits on the view axis
	cx, cy, cz, cw := project(c.ViewProjectionMatrix(), 0, 0, -300)
	if cw <= 0 {
		t.Fatalf("point in front of the camera has w = %v", cw)
	}
	if math.Abs(float64(cx/cw)) > 1e-5 || math.Abs(float64(cy/cw)) > 1e-5 {
		t.Errorf("globe center projects to (%v, %v), want screen center", cx/cw, cy/cw)
	}
	if d := cz / cw; d <= 0 || d >= 1 {
		t.Errorf("depth %v outside (0, 1)", d)
	}

	// moon center is right of and above the globe
	mx, my, _, mw := project(c.ViewProjectionMatrix(), 400, 100, -300)
	if mx/mw <= 0 || my/mw <= 0 {
		t.Errorf("moon projects to (%v, %v), want upper right", mx/mw, my/mw)
	}
	if mx/mw >= 1 || my/mw >= 1 {
		t.Errorf("moon projects to (%v, %v), want on screen", mx/mw, my/mw)
	}
}

func TestCameraSetAspect(t *testing.T) {
	c := NewCamera(WithAspect(2))
	before := c.ProjectionMatrix()[0]

	c.SetAspect(1)
	after := c.ProjectionMatrix()[0]
	if math.Abs(float64(after-2*before)) > 1e-5 {
		t.Errorf("x scale %v after halving aspect, want %v", after, 2*before)
	}

	c.SetAspect(0)
	if c.Aspect() != 1 {
		t.Errorf("zero aspect should be ignored, got %v", c.Aspect())
	}
}

func TestCameraUniform(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 500))
	buf := c.Uniform()
	var u GPUCameraUniform
	if len(buf) != 80 || u.Size() != 80 {
		t.Fatalf("uniform is %d bytes, struct %d, want 80", len(buf), u.Size())
	}
	if z := math.Float32frombits(binary.LittleEndian.Uint32(buf[72:76])); z != 500 {
		t.Errorf("camera z in uniform = %v, want 500", z)
	}
	vp := c.ViewProjectionMatrix()
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != vp[0] {
		t.Errorf("uniform view-proj[0] = %v, want %v", got, vp[0])
	}
}

func TestCameraProviderLabelsAreUnique(t *testing.T) {
	a := NewCamera()
	b := NewCamera()
	if a.BindGroupProvider().Label() == b.BindGroupProvider().Label() {
		t.Errorf("both cameras labeled %q", a.BindGroupProvider().Label())
	}
}
