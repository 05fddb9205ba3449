package streaming

// Uploader hands a finished mesh to the rendering backend. vertices is a flat
// list of meshing.VertexStride floats per vertex, drawn as plain triangles.
// Upload and every Buffer method are only called from the goroutine that
// drives Manager.Render.
type Uploader interface {
	Upload(vertices []float32) (Buffer, error)
}

// Buffer is a mesh resident on the rendering backend.
type Buffer interface {
	Draw()
	Release()
}
