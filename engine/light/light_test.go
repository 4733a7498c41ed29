package light

import (
	"encoding/binary"
	"math"
	"testing"
)

func readF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func TestNewLightDefaults(t *testing.T) {
	l := NewLight()
	if !l.Enabled() {
		t.Error("new light should be enabled")
	}
	if l.Intensity() != 1 {
		t.Errorf("intensity = %v, want 1", l.Intensity())
	}
	if l.Color() != [3]float32{1, 1, 1} {
		t.Errorf("color = %v, want white", l.Color())
	}
}

func TestLightUniformLayout(t *testing.T) {
	l := NewLight(
		WithPosition(300, 200, 400),
		WithHexColor(0xFF8000),
		WithIntensity(2),
	)
	buf := l.Uniform()
	var g GPULight
	if len(buf) != 32 || g.Size() != 32 {
		t.Fatalf("uniform is %d bytes, struct %d, want 32", len(buf), g.Size())
	}

	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"position.x", 0, 300},
		{"position.z", 8, 400},
		{"intensity", 12, 2},
		{"color.r", 16, 1},
		{"color.b", 24, 0},
		{"enabled", 28, 1},
	}
	for _, tt := range tests {
		if got := readF32(buf, tt.off); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDisabledLightUniform(t *testing.T) {
	l := NewLight(WithEnabled(false))
	if got := readF32(l.Uniform(), 28); got != 0 {
		t.Errorf("disabled light enabled flag = %v", got)
	}
	l.SetEnabled(true)
	if got := readF32(l.Uniform(), 28); got != 1 {
		t.Errorf("re-enabled light flag = %v", got)
	}

	nilLight := ToGPULight(nil)
	if nilLight.Enabled != 0 {
		t.Error("nil light should marshal as disabled")
	}
}
