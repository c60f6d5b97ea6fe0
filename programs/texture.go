package programs

func init() {
	register(Program{
		Name:         "texture",
		Title:        "LearnOpenGL",
		VertexName:   "texture.vert",
		FragmentName: "texture.frag",
		Textures:     1,
		Mesh: Mesh{
			Vertices: []float32{
				// position      colour         texture coord
				-0.5, 0.2, 0.0, 1.0, 0.0, 0.0, 0.0, 1.0,
				0.3, 0.8, 0.0, 0.0, 1.0, 0.0, 1.0, 1.0,
				0.0, -0.8, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0,
				0.5, -0.8, 0.0, 0.0, 0.5, 0.5, 1.0, 0.0,
			},
			Indices: []uint32{
				0, 1, 2,
				1, 2, 3,
			},
			Attributes: []Attribute{
				{Location: 0, Size: 3},
				{Location: 1, Size: 3},
				{Location: 2, Size: 2},
			},
		},
		Animate: animateTime,
	})
}
