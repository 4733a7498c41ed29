// Package globe assembles the globe-and-moon scene and maps pointer movement onto the globe's
// rotation.
package globe

import (
	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/camera"
	"github.com/Carmen-Shannon/oxy-globe/engine/light"
	"github.com/Carmen-Shannon/oxy-globe/engine/loader"
	"github.com/Carmen-Shannon/oxy-globe/engine/model"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-globe/engine/scene"
)

// Default texture sources.
const (
	DefaultGlobeTexture      = "https://eoimages.gsfc.nasa.gov/images/imagerecords/57000/57735/land_ocean_ice_cloud_2048.jpg"
	DefaultMoonTexture       = "public/images/moon.jpg"
	DefaultBackgroundTexture = "public/images/gold.jpg"
)

// Default scene layout.
const (
	GlobeRadius     = 200
	MoonRadius      = 50
	DefaultSegments = 50

	// RotationFactor converts one pixel of pointer travel into radians of globe rotation.
	RotationFactor = 0.005

	GlobeGroupName = "globe"
	MoonGroupName  = "moon"
)

// RenderContext owns everything the frame loop and the input handler share: the scene, its
// camera, the globe and moon groups, the last pointer position, and the texture loader.
// All methods must be called from the render thread.
type RenderContext struct {
	scene  scene.Scene
	camera camera.Camera
	light  light.Light
	globe  scene.Group
	moon   scene.Group
	loader loader.Loader

	lastX, lastY float64
}

// Build creates the scene for a viewport of the given size and starts the texture loads.
// Each sphere is attached to its group once its texture arrives through Tick. A failed load
// leaves its group empty. The pointer starts at the viewport center unless WithCursorOrigin
// places it elsewhere.
//
// Parameters:
//   - width: viewport width in framebuffer pixels
//   - height: viewport height in framebuffer pixels
//   - opts: functional options overriding sources, layout, and collaborators
//
// Returns:
//   - *RenderContext: the assembled context
func Build(width, height int, opts ...BuildOption) *RenderContext {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}

	cam := camera.NewCamera(
		camera.WithFov(common.DegToRad(45)),
		camera.WithAspect(aspect),
		camera.WithNear(0.1),
		camera.WithFar(10000),
		camera.WithPosition(0, 0, 500),
		camera.WithTarget(0, 0, 0),
	)
	pointLight := light.NewLight(
		light.WithHexColor(0xFFFFFF),
		light.WithPosition(10, 50, 400),
	)

	globeGroup := scene.NewGroup(GlobeGroupName,
		scene.WithGroupPosition(cfg.globePosition[0], cfg.globePosition[1], cfg.globePosition[2]),
	)
	moonGroup := scene.NewGroup(MoonGroupName,
		scene.WithGroupPosition(cfg.moonPosition[0], cfg.moonPosition[1], cfg.moonPosition[2]),
	)

	sceneOpts := []scene.SceneBuilderOption{
		scene.WithLight(pointLight),
		scene.WithGroups(globeGroup, moonGroup),
	}
	if cfg.renderer != nil {
		sceneOpts = append(sceneOpts, scene.WithRenderer(cfg.renderer))
	}

	ld := cfg.loader
	if ld == nil {
		ld = loader.NewLoader()
	}

	rc := &RenderContext{
		scene:  scene.NewScene("globe", cam, sceneOpts...),
		camera: cam,
		light:  pointLight,
		globe:  globeGroup,
		moon:   moonGroup,
		loader: ld,
		lastX:  float64(width) / 2,
		lastY:  float64(height) / 2,
	}
	if cfg.cursorOrigin != nil {
		rc.lastX, rc.lastY = cfg.cursorOrigin[0], cfg.cursorOrigin[1]
	}

	rc.loadSphere(globeGroup, cfg.globeTexture, cfg.globeRadius, cfg)
	rc.loadSphere(moonGroup, cfg.moonTexture, cfg.moonRadius, cfg)
	if cfg.backgroundTexture != "" {
		ld.Load(cfg.backgroundTexture, rc.scene.SetBackground)
	}

	return rc
}

// loadSphere requests src and, once it arrives, attaches a textured sphere to g.
func (rc *RenderContext) loadSphere(g scene.Group, src string, radius float32, cfg config) {
	if src == "" {
		return
	}
	rc.loader.Load(src, func(tex common.TextureStagingData) {
		mat := material.NewMaterial(
			material.WithName(g.Name()),
			material.WithTexture(tex),
			material.WithShading(cfg.shading),
		)
		g.Attach(model.NewSphere(g.Name(), radius, cfg.widthSegments, cfg.heightSegments, mat))
	})
}

// HandlePointerMove rotates the globe by the pointer travel since the previous event.
// Horizontal travel turns the globe about Y and vertical travel about X. The moon is never
// rotated. Angles accumulate without bounds.
//
// Parameters:
//   - x, y: pointer position in window screen coordinates
func (rc *RenderContext) HandlePointerMove(x, y float64) {
	dx := x - rc.lastX
	dy := y - rc.lastY
	rc.globe.Rotate(float32(dy*RotationFactor), float32(dx*RotationFactor), 0)
	rc.lastX, rc.lastY = x, y
}

// Tick applies every texture load that completed since the previous tick.
//
// Parameters:
//   - deltaTime: elapsed time since the previous tick in seconds
func (rc *RenderContext) Tick(deltaTime float32) {
	rc.loader.Poll()
}

// Close stops the texture loader. Loads still in flight are dropped.
func (rc *RenderContext) Close() {
	rc.loader.Close()
}

// Scene returns the assembled scene.
func (rc *RenderContext) Scene() scene.Scene {
	return rc.scene
}

// Camera returns the scene camera.
func (rc *RenderContext) Camera() camera.Camera {
	return rc.camera
}

// Light returns the scene's point light.
func (rc *RenderContext) Light() light.Light {
	return rc.light
}

// Globe returns the pointer-driven group.
func (rc *RenderContext) Globe() scene.Group {
	return rc.globe
}

// Moon returns the static secondary group.
func (rc *RenderContext) Moon() scene.Group {
	return rc.moon
}

// Loader returns the texture loader feeding the scene.
func (rc *RenderContext) Loader() loader.Loader {
	return rc.loader
}

// Cursor returns the last pointer position seen by HandlePointerMove.
func (rc *RenderContext) Cursor() (x, y float64) {
	return rc.lastX, rc.lastY
}
