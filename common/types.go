// package common contains plain data types and helpers shared across the engine. They are not
// interface-wrapped structs, just values that express commonly used data.
package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA8, 4 bytes per pixel, row-major from the top-left corner.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// Empty reports whether the staging data carries no pixels.
//
// Returns:
//   - bool: true if there is nothing to upload
func (t TextureStagingData) Empty() bool {
	return len(t.Pixels) == 0 || t.Width == 0 || t.Height == 0
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero values are replaced with linear filtering and repeat addressing at creation time.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW control addressing outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter control magnification and minification filtering.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter controls mip level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp clamp the sampled level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy sets the anisotropic filtering level.
	MaxAnisotropy uint16
}

// DecodeImage decodes a PNG or JPEG stream into RGBA staging data.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - r: reader positioned at the start of the encoded image
//
// Returns:
//   - TextureStagingData: the decoded pixels and dimensions
//   - error: error if the stream is not a supported image
func DecodeImage(r io.Reader) (TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}
