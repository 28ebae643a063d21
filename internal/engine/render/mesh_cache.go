package render

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
)

type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// meshCache uploads each geometry once, however many nodes share it.
type meshCache struct {
	meshes map[*geometry.Mesh]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[*geometry.Mesh]*gpuMesh)}
}

func (c *meshCache) get(m *geometry.Mesh) *gpuMesh {
	if gm, ok := c.meshes[m]; ok {
		return gm
	}
	gm := upload(m)
	c.meshes[m] = gm
	return gm
}

func upload(m *geometry.Mesh) *gpuMesh {
	gm := &gpuMesh{indexCount: int32(len(m.Indices))}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return gm
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	stride := int32(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	// Position
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	// Normal
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	// TexCoord
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)

	gl.GenBuffers(1, &gm.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gm
}

func (gm *gpuMesh) draw() {
	if gm.vao == 0 {
		return
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawElements(gl.TRIANGLES, gm.indexCount, gl.UNSIGNED_INT, nil)
}

func (c *meshCache) destroy() {
	for m, gm := range c.meshes {
		if gm.vao != 0 {
			gl.DeleteVertexArrays(1, &gm.vao)
			gl.DeleteBuffers(1, &gm.vbo)
			gl.DeleteBuffers(1, &gm.ebo)
		}
		delete(c.meshes, m)
	}
}
