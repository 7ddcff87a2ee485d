// Package renderer draws scene blocks with OpenGL. Geometry is uploaded
// per block and re-uploaded only when the block's epoch advances, so
// reactive updates cost one buffer refresh instead of a per-frame copy.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background [3]float32
}

// vertex layout: position, flat normal, color
const vertexStride = 9 * 4

// blockBuffer is the GPU mirror of one block.
type blockBuffer struct {
	vao   uint32
	vbo   uint32
	count int32
	epoch uint64
}

// Renderer draws blocks through a single two-sided lambert program lit
// from the camera.
type Renderer struct {
	config Config

	program   uint32
	uMVP      int32
	uLightDir int32
	uAlpha    int32

	buffers map[*mesh.Block]*blockBuffer
	drawn   map[*mesh.Block]bool
}

// New creates a renderer. Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		buffers: make(map[*mesh.Block]*blockBuffer),
		drawn:   make(map[*mesh.Block]bool),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Iso-surfaces and boundary shells are viewed from both sides.
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.applyBackground()

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program
	r.uMVP = shader.MustGetUniform(program, "uMVP")
	r.uLightDir = shader.MustGetUniform(program, "uLightDir")
	r.uAlpha = shader.MustGetUniform(program, "uAlpha")

	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, buf := range r.buffers {
		deleteBuffer(buf)
	}
	r.buffers = nil
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

// SetBackground changes the clear color.
func (r *Renderer) SetBackground(color [3]float32) {
	r.config.Background = color
	r.applyBackground()
}

func (r *Renderer) applyBackground() {
	bg := r.config.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	for b := range r.drawn {
		delete(r.drawn, b)
	}
}

// End finishes the frame: GPU buffers of blocks that were not drawn since
// Begin are released, so removed scene children do not leak.
func (r *Renderer) End() {
	for b, buf := range r.buffers {
		if !r.drawn[b] {
			deleteBuffer(buf)
			delete(r.buffers, b)
		}
	}
}

// DrawScene draws every scene child with the given view-projection and
// light direction.
func (r *Renderer) DrawScene(s *scene.Scene, viewProj math.Mat4, lightDir math.Vec3) {
	for _, child := range s.Children() {
		r.DrawBlock(child, viewProj, lightDir)
	}
}

// DrawBlock draws a single block, uploading its geometry first if the
// block changed since the last upload.
func (r *Renderer) DrawBlock(s mesh.Shape, viewProj math.Mat4, lightDir math.Vec3) {
	b := s.Base()
	r.drawn[b] = true

	buf := r.buffers[b]
	if buf == nil {
		buf = &blockBuffer{}
		gl.GenVertexArrays(1, &buf.vao)
		gl.GenBuffers(1, &buf.vbo)
		r.buffers[b] = buf
		r.upload(s, buf)
	} else if buf.epoch != b.Epoch() {
		r.upload(s, buf)
	}
	if buf.count == 0 {
		return
	}

	mvp := viewProj.Mul(math.UniformScale(b.Scale()))

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uMVP, 1, false, mvp.Ptr())
	gl.Uniform3f(r.uLightDir, lightDir.X, lightDir.Y, lightDir.Z)
	gl.Uniform1f(r.uAlpha, b.DefaultAlpha())

	gl.BindVertexArray(buf.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, buf.count)
	gl.BindVertexArray(0)
}

// upload expands the block to non-indexed triangles and pushes them to the
// GPU. Indices are expanded so each face can carry a flat normal.
func (r *Renderer) upload(s mesh.Shape, buf *blockBuffer) {
	b := s.Base()
	data := expandTriangles(s)
	buf.epoch = b.Epoch()
	buf.count = int32(len(data) / 9)
	if len(data) == 0 {
		return
	}

	gl.BindVertexArray(buf.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("block uploaded",
		zap.Uint64("epoch", buf.epoch),
		zap.Int32("vertices", buf.count),
	)
}

// expandTriangles flattens indexed triangles into position+normal+color
// records, one flat normal per face.
func expandTriangles(s mesh.Shape) []float32 {
	b := s.Base()
	verts := b.Vertices()
	tris := s.Triangles()
	colors := b.Colors()
	defColor := b.DefaultColor()
	perVertex := len(colors) == len(verts) && len(colors) > 0

	out := make([]float32, 0, len(tris)*9)
	for i := 0; i+2 < len(tris); i += 3 {
		var p [3]math.Vec3
		for k := 0; k < 3; k++ {
			j := tris[i+k] * 3
			p[k] = math.Vec3{X: verts[j], Y: verts[j+1], Z: verts[j+2]}
		}
		n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Normalize()

		for k := 0; k < 3; k++ {
			c := defColor
			if perVertex {
				j := tris[i+k] * 3
				c = [3]float32{colors[j], colors[j+1], colors[j+2]}
			}
			out = append(out,
				p[k].X, p[k].Y, p[k].Z,
				n.X, n.Y, n.Z,
				c[0], c[1], c[2],
			)
		}
	}
	return out
}

func deleteBuffer(buf *blockBuffer) {
	if buf.vao != 0 {
		gl.DeleteVertexArrays(1, &buf.vao)
	}
	if buf.vbo != 0 {
		gl.DeleteBuffers(1, &buf.vbo)
	}
}

// Two-sided lambert lit from the camera. Model transforms are uniform
// scales, so normals pass through untransformed.
const vertexShaderSrc = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aNormal;
	layout (location = 2) in vec3 aColor;

	uniform mat4 uMVP;

	out vec3 vNormal;
	out vec3 vColor;

	void main() {
		gl_Position = uMVP * vec4(aPos, 1.0);
		vNormal = aNormal;
		vColor = aColor;
	}
`

const fragmentShaderSrc = `
	#version 410 core

	in vec3 vNormal;
	in vec3 vColor;

	uniform vec3 uLightDir;
	uniform float uAlpha;

	out vec4 FragColor;

	void main() {
		float diffuse = abs(dot(normalize(vNormal), normalize(uLightDir)));
		vec3 lit = vColor * (0.25 + 0.75 * diffuse);
		FragColor = vec4(lit, uAlpha);
	}
`
