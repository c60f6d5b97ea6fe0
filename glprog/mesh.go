package glprog

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/gldemos/programs"
)

const floatSize = 4

// Mesh is a vertex array with its buffers.
type Mesh struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

func primitiveMode(p programs.Primitive) uint32 {
	switch p {
	case programs.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

// UploadMesh copies m's vertices and indices into GL buffers.
func UploadMesh(m programs.Mesh) *Mesh {
	mesh := &Mesh{
		mode:    primitiveMode(m.Primitive),
		count:   m.Count(),
		indexed: len(m.Indices) > 0,
	}

	gl.GenVertexArrays(1, &mesh.vao)
	gl.BindVertexArray(mesh.vao)

	gl.GenBuffers(1, &mesh.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mesh.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*floatSize, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	}

	if mesh.indexed {
		gl.GenBuffers(1, &mesh.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mesh.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	stride := m.Stride() * floatSize
	for i, a := range m.Attributes {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride, uintptr(m.Offset(i)*floatSize))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindVertexArray(0)
	return mesh
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(m.mode, m.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(m.mode, 0, m.count)
	}
}

func (m *Mesh) Delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
}
