package programs

// Primitive is how a mesh's vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// Attribute is one interleaved vertex attribute.
type Attribute struct {
	Location uint32
	Size     int32
}

type Mesh struct {
	Vertices   []float32
	Indices    []uint32
	Attributes []Attribute
	Primitive  Primitive
}

// Stride is the number of floats per vertex.
func (m Mesh) Stride() int32 {
	var stride int32
	for _, a := range m.Attributes {
		stride += a.Size
	}
	return stride
}

// Offset is the number of floats before attribute i.
func (m Mesh) Offset(i int) int32 {
	var offset int32
	for _, a := range m.Attributes[:i] {
		offset += a.Size
	}
	return offset
}

// Count is the number of elements to draw.
func (m Mesh) Count() int32 {
	if len(m.Indices) > 0 {
		return int32(len(m.Indices))
	}
	if stride := m.Stride(); stride > 0 {
		return int32(len(m.Vertices)) / stride
	}
	return 0
}

// Quad covers the whole screen as a triangle strip.
var Quad = Mesh{
	Vertices:   []float32{-1, -1, 1, -1, -1, 1, 1, 1},
	Attributes: []Attribute{{Location: 0, Size: 2}},
	Primitive:  TriangleStrip,
}
