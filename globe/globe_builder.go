package globe

import (
	"github.com/Carmen-Shannon/oxy-globe/engine/loader"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
)

type config struct {
	globeTexture      string
	moonTexture       string
	backgroundTexture string

	globePosition [3]float32
	moonPosition  [3]float32
	globeRadius   float32
	moonRadius    float32

	widthSegments  int
	heightSegments int
	shading        material.ShadingModel

	cursorOrigin *[2]float64

	renderer renderer.Renderer
	loader   loader.Loader
}

func defaultConfig() config {
	return config{
		globeTexture:      DefaultGlobeTexture,
		moonTexture:       DefaultMoonTexture,
		backgroundTexture: DefaultBackgroundTexture,
		globePosition:     [3]float32{0, 0, -300},
		moonPosition:      [3]float32{400, 100, -300},
		globeRadius:       GlobeRadius,
		moonRadius:        MoonRadius,
		widthSegments:     DefaultSegments,
		heightSegments:    DefaultSegments,
		shading:           material.ShadingBasic,
	}
}

// BuildOption is a functional option for configuring Build.
type BuildOption func(*config)

// WithGlobeTexture sets the globe texture source. An empty source skips the load.
//
// Parameters:
//   - src: local file path or http(s) URL
//
// Returns:
//   - BuildOption: option function to apply
func WithGlobeTexture(src string) BuildOption {
	return func(c *config) {
		c.globeTexture = src
	}
}

// WithMoonTexture sets the moon texture source. An empty source skips the load.
func WithMoonTexture(src string) BuildOption {
	return func(c *config) {
		c.moonTexture = src
	}
}

// WithBackgroundTexture sets the background texture source. An empty source leaves the clear
// color showing.
func WithBackgroundTexture(src string) BuildOption {
	return func(c *config) {
		c.backgroundTexture = src
	}
}

// WithSegments sets the sphere tessellation for both globe and moon.
//
// Parameters:
//   - width: segments around the equator
//   - height: segments from pole to pole
//
// Returns:
//   - BuildOption: option function to apply
func WithSegments(width, height int) BuildOption {
	return func(c *config) {
		c.widthSegments = width
		c.heightSegments = height
	}
}

// WithShading selects the shading model for both spheres.
func WithShading(shading material.ShadingModel) BuildOption {
	return func(c *config) {
		c.shading = shading
	}
}

// WithGlobeRadius sets the globe sphere radius.
func WithGlobeRadius(radius float32) BuildOption {
	return func(c *config) {
		if radius > 0 {
			c.globeRadius = radius
		}
	}
}

// WithMoonRadius sets the moon sphere radius.
func WithMoonRadius(radius float32) BuildOption {
	return func(c *config) {
		if radius > 0 {
			c.moonRadius = radius
		}
	}
}

// WithGlobePosition sets the globe group's world-space position.
func WithGlobePosition(x, y, z float32) BuildOption {
	return func(c *config) {
		c.globePosition = [3]float32{x, y, z}
	}
}

// WithMoonPosition sets the moon group's world-space position.
func WithMoonPosition(x, y, z float32) BuildOption {
	return func(c *config) {
		c.moonPosition = [3]float32{x, y, z}
	}
}

// WithRenderer attaches the renderer the scene uploads to. Omit it for a headless context.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - BuildOption: option function to apply
func WithRenderer(r renderer.Renderer) BuildOption {
	return func(c *config) {
		c.renderer = r
	}
}

// WithLoader replaces the default texture loader.
func WithLoader(l loader.Loader) BuildOption {
	return func(c *config) {
		c.loader = l
	}
}

// WithCursorOrigin sets the pointer position the first move is measured from. Pointer events
// arrive in window screen coordinates, which differ from framebuffer pixels on scaled displays,
// so callers pass the center of the window's screen size here.
//
// Parameters:
//   - x, y: starting pointer position in window screen coordinates
//
// Returns:
//   - BuildOption: option function to apply
func WithCursorOrigin(x, y float64) BuildOption {
	return func(c *config) {
		c.cursorOrigin = &[2]float64{x, y}
	}
}
