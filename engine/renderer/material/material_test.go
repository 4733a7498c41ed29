package material

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("globe"))
	if m.Shading() != ShadingBasic {
		t.Errorf("default shading = %v, want basic", m.Shading())
	}
	if m.Color() != [4]float32{1, 1, 1, 1} {
		t.Errorf("default color = %v", m.Color())
	}
	if m.BindGroupProvider() == nil {
		t.Fatal("provider should be created")
	}
	if m.BindGroupProvider().Label() != "globe Material" {
		t.Errorf("provider label = %q", m.BindGroupProvider().Label())
	}
	if m.BindGroupProvider().Ready() {
		t.Error("provider should not be ready before GPU init")
	}
}

func TestMaterialUniform(t *testing.T) {
	m := NewMaterial(WithColor([4]float32{0.5, 0.25, 1, 1}), WithShading(ShadingLambert))
	buf := m.Uniform()
	if len(buf) != 32 {
		t.Fatalf("uniform is %d bytes, want 32", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])); got != 0.25 {
		t.Errorf("green = %v, want 0.25", got)
	}
	if got := binary.LittleEndian.Uint32(buf[16:20]); got != uint32(ShadingLambert) {
		t.Errorf("shading = %d, want %d", got, ShadingLambert)
	}
	var g GPUMaterial
	if g.Size() != 32 {
		t.Errorf("GPUMaterial size = %d, want 32", g.Size())
	}
}

func TestParseShading(t *testing.T) {
	tests := []struct {
		in   string
		want ShadingModel
	}{
		{"basic", ShadingBasic},
		{"lambert", ShadingLambert},
		{"", ShadingBasic},
		{"phong", ShadingBasic},
	}
	for _, tt := range tests {
		if got := ParseShading(tt.in); got != tt.want {
			t.Errorf("ParseShading(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if ParseShading(tt.want.String()) != tt.want {
			t.Errorf("round trip of %v failed", tt.want)
		}
	}
}
