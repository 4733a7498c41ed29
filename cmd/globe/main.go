package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/Carmen-Shannon/oxy-globe/engine"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-globe/engine/scene"
	"github.com/Carmen-Shannon/oxy-globe/engine/window"
	"github.com/Carmen-Shannon/oxy-globe/globe"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "window width in pixels")
	height := flag.Int("height", 720, "window height in pixels")
	globeSrc := flag.String("globe", globe.DefaultGlobeTexture, "globe texture path or URL")
	moonSrc := flag.String("moon", globe.DefaultMoonTexture, "moon texture path or URL")
	backgroundSrc := flag.String("background", globe.DefaultBackgroundTexture, "background texture path or URL (empty for none)")
	segments := flag.Int("segments", globe.DefaultSegments, "sphere width and height segments")
	shading := flag.String("shading", material.ShadingBasic.String(), "sphere shading: basic or lambert")
	profile := flag.Bool("profile", false, "log frame rate and memory once per second")
	uncapped := flag.Bool("uncapped", false, "disable vsync")
	fps := flag.Float64("fps", 0, "render frame rate cap (0 for none)")
	software := flag.Bool("software", false, "force the fallback (software) adapter")
	flag.Parse()

	win := window.NewWindow(
		window.WithTitle("oxy-globe"),
		window.WithWidth(*width),
		window.WithHeight(*height),
	)

	presentMode := renderer.PresentModeVSync
	if *uncapped {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAA4x),
		renderer.WithClearColor([3]float32{0, 0, 0}),
		renderer.WithForceSoftwareRenderer(*software),
	)
	if err := r.RegisterPipelines(scene.Pipelines()...); err != nil {
		log.Fatalf("failed to register pipelines: %v", err)
	}

	contentWidth, contentHeight := win.ContentSize()
	rc := globe.Build(win.Width(), win.Height(),
		globe.WithCursorOrigin(float64(contentWidth)/2, float64(contentHeight)/2),
		globe.WithRenderer(r),
		globe.WithGlobeTexture(*globeSrc),
		globe.WithMoonTexture(*moonSrc),
		globe.WithBackgroundTexture(*backgroundSrc),
		globe.WithSegments(*segments, *segments),
		globe.WithShading(material.ParseShading(*shading)),
	)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(*profile),
		engine.WithRenderFrameLimit(*fps),
		engine.WithScene(0, rc.Scene()),
		engine.WithTickCallback(rc.Tick),
	)
	win.SetMouseMoveCallback(rc.HandlePointerMove)

	log.Println("Starting oxy-globe")
	eng.Run()

	rc.Close()
	rc.Scene().Release()
	r.Release()
	if err := win.Close(); err != nil {
		log.Printf("failed to close window: %v", err)
	}
}
