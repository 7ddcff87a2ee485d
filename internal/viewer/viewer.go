// Package viewer implements the interactive application: it owns the
// window, the render loop, and the keyboard/mouse bindings that drive the
// scene's effects.
package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/effect"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
	"github.com/Faultbox/meshview/pkg/math"
)

// display modes, one per effect
const (
	modeIsoColor = iota
	modeIsoSurface
	modeThreshold
)

// Viewer is the interactive mesh viewer.
type Viewer struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	scene *scene.Scene
	block mesh.Shape

	isoColor   *effect.IsoColor
	isoSurface *effect.IsoSurface
	threshold  *effect.Threshold
	mode       int

	dragging bool

	scalarMin float32
	scalarMax float32
}

// New creates a viewer: window, OpenGL renderer, dataset, and effects.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{config: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "meshview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Background: cfg.Viewer.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()

	if err := v.loadDataset(); err != nil {
		v.renderer.Close()
		v.window.Close()
		return nil, err
	}

	logger.Info("viewer initialized",
		zap.String("mesh", cfg.Data.MeshPath),
		zap.String("colormap", cfg.Viewer.Colormap),
	)
	return v, nil
}

// loadDataset loads the configured FMS file, or the demo grid when no path
// is set, then wires the three effects to it.
func (v *Viewer) loadDataset() error {
	var block mesh.Shape
	if path := v.config.Data.MeshPath; path != "" {
		f, err := formats.LoadFMS(path)
		if err != nil {
			return fmt.Errorf("failed to load mesh: %w", err)
		}
		block, err = FromFMS(f)
		if err != nil {
			return fmt.Errorf("failed to build mesh: %w", err)
		}
		logger.Info("mesh loaded",
			zap.String("path", path),
			zap.String("version", f.Version.String()),
			zap.Uint32("vertices", f.VertexCount),
		)
	} else {
		var err error
		block, err = DemoDataset(8)
		if err != nil {
			return fmt.Errorf("failed to build demo dataset: %w", err)
		}
		logger.Info("demo dataset loaded", zap.Int("vertices", block.Base().VertexCount()))
	}
	v.block = block

	field := firstScalarField(block.Base())
	if field == "" {
		return fmt.Errorf("mesh carries no fields")
	}
	v.scalarMin, v.scalarMax = fieldRange(block.Base(), field)
	ramp := effect.ColormapByName(v.config.Viewer.Colormap)

	v.isoColor = effect.NewIsoColor(block, v.scalarMin, v.scalarMax)
	v.isoColor.SetColormap(ramp)
	if err := v.isoColor.BindInput(field); err != nil {
		return err
	}

	mid := (v.scalarMin + v.scalarMax) / 2
	v.isoSurface = effect.NewIsoSurface(block, mid)
	if err := v.isoSurface.BindInput(field); err != nil {
		return err
	}

	v.threshold = effect.NewThreshold(block, v.scalarMin, mid)
	if err := v.threshold.BindInput(field); err != nil {
		return err
	}

	v.scene = scene.New(v.isoColor)
	v.mode = modeIsoColor
	v.camera.FitToSphere(math.Sphere{Radius: 1})
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			v.handleEvent(event)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.config.Viewer.ShowFPS {
				logger.Debug("fps", zap.Int("count", frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(event.Width, event.Height)
	case input.EventKeyDown:
		v.handleKey(event.Key)
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = true
		}
	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = false
		}
	case input.EventMouseMove:
		if v.dragging {
			v.camera.HandleDrag(float32(event.XRel), float32(event.YRel))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(float32(event.WheelY))
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		v.running = false
	case sdl.SCANCODE_1:
		v.setMode(modeIsoColor)
	case sdl.SCANCODE_2:
		v.setMode(modeIsoSurface)
	case sdl.SCANCODE_3:
		v.setMode(modeThreshold)
	case sdl.SCANCODE_UP:
		v.adjustParam(0.05)
	case sdl.SCANCODE_DOWN:
		v.adjustParam(-0.05)
	case sdl.SCANCODE_C:
		v.cycleColormap()
	case sdl.SCANCODE_R:
		v.camera.FitToSphere(math.Sphere{Radius: 1})
	}
}

// setMode swaps the displayed effect. The previous effect stays wired to
// the dataset; only the scene membership changes.
func (v *Viewer) setMode(mode int) {
	if mode == v.mode {
		return
	}
	v.mode = mode
	switch mode {
	case modeIsoSurface:
		v.scene.SetChildren(v.isoSurface)
	case modeThreshold:
		v.scene.SetChildren(v.threshold)
	default:
		v.scene.SetChildren(v.isoColor)
	}
	logger.Debug("mode switched", zap.Int("mode", mode))
}

// adjustParam nudges the active effect's parameter by a fraction of the
// field's range.
func (v *Viewer) adjustParam(fraction float32) {
	delta := (v.scalarMax - v.scalarMin) * fraction
	switch v.mode {
	case modeIsoSurface:
		v.isoSurface.SetValue(v.isoSurface.Value() + delta)
	case modeThreshold:
		v.threshold.SetRange(v.threshold.Min(), v.threshold.Max()+delta)
	default:
		v.isoColor.SetRange(v.isoColor.Min()+delta, v.isoColor.Max()-delta)
	}
}

func (v *Viewer) cycleColormap() {
	var next effect.Colormap
	switch v.isoColor.Colormap().Name {
	case effect.Viridis.Name:
		next = effect.CoolWarm
	case effect.CoolWarm.Name:
		next = effect.Grayscale
	default:
		next = effect.Viridis
	}
	v.isoColor.SetColormap(next)
	logger.Debug("colormap switched", zap.String("name", next.Name))
}

func (v *Viewer) render() {
	width, height := v.window.GetSize()
	aspect := float32(width) / float32(height)

	v.renderer.Begin()
	v.renderer.DrawScene(v.scene, v.camera.ViewProjection(aspect), v.camera.Forward())
	v.renderer.End()
}

// firstScalarField returns the selector of the first arity-1 component on
// the block, preferring plain Data names.
func firstScalarField(b *mesh.Block) string {
	for _, d := range b.Data() {
		for _, c := range d.Components() {
			if c.Arity() == 1 {
				if c == d.Components()[0] {
					return d.Name()
				}
				return d.Name() + "." + c.Name()
			}
		}
	}
	return ""
}

// fieldRange scans a scalar field for its min and max.
func fieldRange(b *mesh.Block, selector string) (float32, float32) {
	dataName, compName, _ := strings.Cut(selector, ".")
	d := b.DataByName(dataName)
	if d == nil || len(d.Components()) == 0 {
		return 0, 1
	}
	c := d.Components()[0]
	if compName != "" {
		if named := d.Component(compName); named != nil {
			c = named
		}
	}
	vals := c.Array()
	if len(vals) == 0 {
		return 0, 1
	}
	lo, hi := vals[0], vals[0]
	for _, s := range vals[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}
