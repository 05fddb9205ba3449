package graphics

import (
	"errors"
	"fmt"

	"mini-voxel/internal/graphics/cull"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/streaming"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyColor is the clear colour, also used as fog colour.
var SkyColor = mgl32.Vec3{110.0 / 255.0, 177.0 / 255.0, 1.0}

const floatSize = 4

// ChunkRenderer uploads chunk meshes into one VAO/VBO pair each and draws
// them with the chunk shader. It implements streaming.Uploader. All methods
// must run on the goroutine that owns the GL context.
type ChunkRenderer struct {
	shader  *Shader
	frustum cull.Frustum

	// Per-frame stats, reset by Begin.
	DrawnChunks  int
	CulledChunks int
}

var _ streaming.Uploader = (*ChunkRenderer)(nil)

// NewChunkRenderer compiles the chunk shader. gl.Init must have run.
func NewChunkRenderer() (*ChunkRenderer, error) {
	shader, err := NewShader(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}
	return &ChunkRenderer{shader: shader}, nil
}

// Begin sets the camera for the frame's draws. fogEnd is usually the render
// distance in blocks.
func (r *ChunkRenderer) Begin(view, projection mgl32.Mat4, cameraPos mgl32.Vec3, fogEnd float32) {
	r.shader.Use()
	r.shader.SetMat4("view", view)
	r.shader.SetMat4("projection", projection)
	r.shader.SetVec3("cameraPos", cameraPos)
	r.shader.SetVec3("skyColor", SkyColor)
	r.shader.SetFloat("fogStart", fogEnd*0.6)
	r.shader.SetFloat("fogEnd", fogEnd)
	r.frustum = cull.FromMatrix(projection.Mul4(view))
	r.DrawnChunks = 0
	r.CulledChunks = 0
}

// Upload copies vertices into a new static VBO. An empty mesh gets a buffer
// that draws nothing.
func (r *ChunkRenderer) Upload(vertices []float32) (streaming.Buffer, error) {
	if len(vertices)%meshing.VertexStride != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of %d", len(vertices), meshing.VertexStride)
	}
	b := &chunkBuffer{renderer: r, count: int32(meshing.VertexCount(vertices))}
	if b.count == 0 {
		return b, nil
	}
	b.min, b.max, _ = meshing.Bounds(vertices)

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * floatSize)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 5*floatSize)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 6*floatSize)
	gl.EnableVertexAttribArray(3)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.Release()
		if code == gl.OUT_OF_MEMORY {
			return nil, errors.New("upload chunk mesh: out of video memory")
		}
		return nil, fmt.Errorf("upload chunk mesh: GL error 0x%x", code)
	}
	return b, nil
}

// Delete frees the shader. Buffers must be released separately.
func (r *ChunkRenderer) Delete() {
	r.shader.Delete()
}

type chunkBuffer struct {
	renderer *ChunkRenderer
	vao, vbo uint32
	count    int32
	min, max mgl32.Vec3
}

func (b *chunkBuffer) Draw() {
	if b.count == 0 {
		return
	}
	if !b.renderer.frustum.Visible(b.min, b.max) {
		b.renderer.CulledChunks++
		return
	}
	b.renderer.DrawnChunks++
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, b.count)
}

func (b *chunkBuffer) Release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	b.count = 0
}
