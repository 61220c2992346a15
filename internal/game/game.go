// Package game implements the runner simulation, the per-frame scene
// buffer assembly and the main loop that ties input, state and rendering
// together.
package game

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/dinorun/internal/assets"
	"github.com/Faultbox/dinorun/internal/config"
	"github.com/Faultbox/dinorun/internal/engine/audio"
	"github.com/Faultbox/dinorun/internal/engine/camera"
	"github.com/Faultbox/dinorun/internal/engine/debug"
	"github.com/Faultbox/dinorun/internal/engine/input"
	"github.com/Faultbox/dinorun/internal/engine/renderer"
	"github.com/Faultbox/dinorun/internal/engine/renderer/shaders"
	"github.com/Faultbox/dinorun/internal/engine/shader"
	"github.com/Faultbox/dinorun/internal/engine/texture"
	"github.com/Faultbox/dinorun/internal/engine/window"
	"github.com/Faultbox/dinorun/internal/logger"
	"github.com/Faultbox/dinorun/pkg/math"
)

const windowTitle = "Dino Run 3D"

// Projection constants from the original scene setup.
const (
	fieldOfViewDeg = 45
	nearPlane      = 0.1
	farPlane       = 20
)

// actionCooldown rate-limits restart and the debug toggle so a key held
// across several frames fires once.
const actionCooldown = 250 * time.Millisecond

var colorKeys = [...]sdl.Scancode{
	sdl.SCANCODE_0, sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4,
}

// Game owns the window, the render pipeline and the simulation.
type Game struct {
	cfg config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	textures *texture.Loader
	audio    *audio.Manager
	models   *assets.Manager
	camera   *camera.FlyCamera
	capture  *debug.ScreenshotCapture

	state      *State
	projection math.Mat4

	running         bool
	lastRestart     time.Time
	lastDebugToggle time.Time
}

// New creates the window, GL pipeline and simulation from the config.
func New(cfg config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("assets", cfg.Assets.Dir),
	)

	g := &Game{cfg: cfg}

	var err error
	g.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	vertSrc, vertOverride := shader.LoadSource(cfg.Assets.ShaderDir, "scene.vert", shaders.SceneVertexShader)
	fragSrc, fragOverride := shader.LoadSource(cfg.Assets.ShaderDir, "scene.frag", shaders.SceneFragmentShader)
	if vertOverride || fragOverride {
		logger.Info("using shader overrides", zap.String("dir", cfg.Assets.ShaderDir))
	}

	// The renderer calls gl.Init, so it must come right after the window's
	// GL context and before anything else touches GL.
	g.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	}, vertSrc, fragSrc)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	g.input = input.New()
	g.textures = texture.NewLoader()
	g.camera = camera.NewFlyCamera()
	g.capture = debug.NewScreenshotCapture("screenshots", "dinorun")
	g.projection = perspectiveFor(cfg.Graphics.Width, cfg.Graphics.Height)

	g.audio = audio.New()
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio unavailable, running silent", zap.Error(err))
	}
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)

	g.models = assets.NewManager(cfg.Assets.Dir)
	loaded := g.models.LoadGameModels()
	logger.Info("models loaded", zap.Int("count", loaded))

	g.state = NewState(cfg.Game.Seed)
	g.state.Debug = cfg.Game.Debug
	if g.state.Debug {
		g.window.SetRelativeMouseMode(true)
	}

	logger.Info("game initialized")
	return g, nil
}

// Run starts the main game loop and blocks until quit.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		if g.input.Update() {
			g.running = false
			break
		}

		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.resize(event.Width, event.Height)
			}
		}

		g.handleKeys()
		if !g.running {
			break
		}

		g.handleTickEvents(g.state.Advance())

		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.updateTitle(frameCount)
			if g.cfg.Game.ShowFPS {
				logger.Debug("fps", zap.Int("count", frameCount))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("game loop ended", zap.Int("score", g.state.Score()))
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.textures != nil {
		g.textures.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

// handleKeys maps the keyboard snapshot onto simulation actions. After a
// collision only quit and restart stay live.
func (g *Game) handleKeys() {
	if g.input.JustPressed(sdl.SCANCODE_ESCAPE) {
		g.running = false
		return
	}

	if g.input.JustPressed(sdl.SCANCODE_R) && time.Since(g.lastRestart) >= actionCooldown {
		g.lastRestart = time.Now()
		logger.Info("restarting run", zap.Int("score", g.state.Score()))
		g.state.Restart()
	}

	if g.state.GameOver {
		return
	}

	if g.input.JustPressed(sdl.SCANCODE_SPACE) && g.state.TriggerJump() {
		g.audio.PlayJump()
	}

	if g.input.JustPressed(sdl.SCANCODE_T) && time.Since(g.lastDebugToggle) >= actionCooldown {
		g.lastDebugToggle = time.Now()
		g.toggleDebug()
	}

	for i, code := range colorKeys {
		if g.input.JustPressed(code) {
			g.state.SetColorOffset(i)
		}
	}

	if g.state.Debug {
		g.handleDebugKeys()
	}
}

// handleDebugKeys drives the fly camera and the debug-only toggles.
func (g *Game) handleDebugKeys() {
	if g.input.JustPressed(sdl.SCANCODE_TAB) {
		g.renderer.SetWireframe(!g.renderer.Wireframe())
	}
	if g.input.JustPressed(sdl.SCANCODE_F2) {
		g.screenshot()
	}

	dx, dy := g.input.MouseDelta()
	g.camera.HandleLook(float32(dx), float32(dy))

	var forward, right float32
	if g.input.Down(sdl.SCANCODE_W) {
		forward++
	}
	if g.input.Down(sdl.SCANCODE_S) {
		forward--
	}
	if g.input.Down(sdl.SCANCODE_D) {
		right++
	}
	if g.input.Down(sdl.SCANCODE_A) {
		right--
	}
	g.camera.HandleMovement(forward, right)
}

// toggleDebug flips no-clip mode. Leaving it restores the fixed camera
// and solid rendering.
func (g *Game) toggleDebug() {
	g.state.Debug = !g.state.Debug
	g.window.SetRelativeMouseMode(g.state.Debug)
	if !g.state.Debug {
		g.camera.Reset()
		g.renderer.SetWireframe(false)
	}
	logger.Info("debug mode", zap.Bool("enabled", g.state.Debug))
}

// handleTickEvents turns simulation events into sounds and log lines.
func (g *Game) handleTickEvents(ev Events) {
	if ev.DayFlipped {
		logger.Info("day/night flip",
			zap.Bool("daytime", g.state.Daytime),
			zap.Int("scroll_speed", g.state.ScrollSpeed),
			zap.Int("jump_speed", g.state.JumpSpeed),
		)
		g.audio.PlayDayNight()
	}
	if ev.ObstacleRespawned {
		logger.Debug("obstacle respawned",
			zap.Int("span", g.state.Span),
			zap.Int("scroll_speed", g.state.ScrollSpeed),
		)
	}
	if ev.Collided {
		logger.Info("game over", zap.Int("score", g.state.Score()))
		g.audio.PlayGameOver()
	}
}

// render rebuilds the scene buffer from the current state and draws it.
func (g *Game) render() {
	models := []*assets.Model{
		g.models.Background(g.state.Daytime),
		g.models.Character(g.state.Tick),
		g.models.Obstacle(),
	}

	vertices, spans := BuildFrame(models, g.state)

	batches := make([]renderer.Batch, len(spans))
	for i, s := range spans {
		batches[i] = renderer.Batch{
			Texture: g.textures.Load(s.TexturePath),
			First:   s.First,
			Count:   s.Count,
		}
	}

	g.renderer.Begin()
	g.renderer.Draw(vertices, batches, g.camera.ViewMatrix(), g.projection)
}

// screenshot reads back the framebuffer and writes it as a PNG.
func (g *Game) screenshot() {
	w, h := g.renderer.Size()
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := g.capture.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) resize(width, height int) {
	g.renderer.Resize(width, height)
	g.projection = perspectiveFor(width, height)
}

func (g *Game) updateTitle(fps int) {
	title := fmt.Sprintf("%s - score %d", windowTitle, g.state.Score())
	if g.state.GameOver {
		title += " - game over (R to restart)"
	}
	if g.cfg.Game.ShowFPS {
		title += fmt.Sprintf(" - %d fps", fps)
	}
	g.window.SetTitle(title)
}

func perspectiveFor(width, height int) math.Mat4 {
	if height == 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	fovY := float32(fieldOfViewDeg * gomath.Pi / 180)
	return math.Perspective(fovY, aspect, nearPlane, farPlane)
}
