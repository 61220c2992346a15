// Package renderer provides OpenGL rendering for the interleaved scene
// buffer the game rebuilds every tick.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dinorun/internal/engine/shader"
	"github.com/Faultbox/dinorun/internal/logger"
	"github.com/Faultbox/dinorun/pkg/math"
)

// Vertex layout of the scene buffer: position, normal, texcoord.
const (
	FloatsPerVertex = 8
	vertexStride    = FloatsPerVertex * 4
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Batch is a contiguous run of vertices in the scene buffer drawn with one
// texture bound.
type Batch struct {
	Texture uint32
	First   int32
	Count   int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program       uint32
	locModel      int32
	locView       int32
	locProjection int32
	locTexture    int32

	sceneVAO uint32
	sceneVBO uint32

	wireframe bool
}

// New creates a new renderer with the given shader sources.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, vertexSrc, fragmentSrc string) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Default state: depth on, culling off (the meshes are drawn from both
	// sides), green ground clear color.
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.0, 1.0, 0.0, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.locModel = shader.GetUniform(r.program, "uModel")
	r.locView = shader.GetUniform(r.program, "uView")
	r.locProjection = shader.GetUniform(r.program, "uProjection")
	r.locTexture = shader.GetUniform(r.program, "uTexture")

	r.createSceneBuffer()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.sceneVAO != 0 {
		gl.DeleteVertexArrays(1, &r.sceneVAO)
	}
	if r.sceneVBO != 0 {
		gl.DeleteBuffers(1, &r.sceneVBO)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current drawable size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// SetWireframe toggles line rendering for debugging.
func (r *Renderer) SetWireframe(enabled bool) {
	r.wireframe = enabled
}

// Wireframe reports whether line rendering is active.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw streams the interleaved vertex buffer to the GPU and draws each
// batch with its texture bound. Vertices hold FloatsPerVertex floats each;
// batch First/Count are in vertices, not floats.
func (r *Renderer) Draw(vertices []float32, batches []Batch, view, projection math.Mat4) {
	if len(vertices) == 0 || len(batches) == 0 {
		return
	}

	gl.UseProgram(r.program)

	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	model := math.Identity()
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())

	gl.BindVertexArray(r.sceneVAO)

	// The whole scene is rebuilt each tick, so the buffer is streamed
	// rather than cached.
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sceneVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.DYNAMIC_DRAW)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(r.locTexture, 0)

	for _, b := range batches {
		gl.BindTexture(gl.TEXTURE_2D, b.Texture)
		gl.DrawArrays(gl.TRIANGLES, b.First, b.Count)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// createSceneBuffer sets up the VAO/VBO for the streamed scene geometry.
func (r *Renderer) createSceneBuffer() {
	gl.GenVertexArrays(1, &r.sceneVAO)
	gl.BindVertexArray(r.sceneVAO)

	gl.GenBuffers(1, &r.sceneVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.sceneVBO)

	// Position attribute (location = 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)

	// Texcoord attribute (location = 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("scene buffer created",
		zap.Uint32("vao", r.sceneVAO),
		zap.Uint32("vbo", r.sceneVBO),
	)
}
