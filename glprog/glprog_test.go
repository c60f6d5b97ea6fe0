package glprog

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformFields(t *testing.T) {
	fields, err := uniformFields(uniformsType)
	require.NoError(t, err)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
		assert.NotNil(t, f.setter, f.name)
		assert.Equal(t, int32(1), f.count, f.name)
	}

	// names keep their case to match the GLSL declarations
	assert.Equal(t, []string{
		"time", "aspect", "camPos", "camRot",
		"model", "view", "projection",
		"centre", "ripple", "mixAmount",
		"texture0", "texture1",
	}, names)
}

func TestUniformFieldArrays(t *testing.T) {
	type lights struct {
		Colours  [4]mgl32.Vec3 `uniform:"colours"`
		Untagged string
	}

	fields, err := uniformFields(reflect.TypeOf(lights{}))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "colours", fields[0].name)
	assert.Equal(t, int32(4), fields[0].count)
}

func TestUniformFieldErrors(t *testing.T) {
	type bad struct {
		Name string `uniform:"name"`
	}

	_, err := uniformFields(reflect.TypeOf(bad{}))
	assert.Error(t, err)

	_, err = uniformFields(reflect.TypeOf(0))
	assert.Error(t, err)
}

func TestPrimitiveMode(t *testing.T) {
	assert.Equal(t, uint32(gl.TRIANGLES), primitiveMode(programs.Triangles))
	assert.Equal(t, uint32(gl.TRIANGLE_STRIP), primitiveMode(programs.TriangleStrip))
}

func TestTextureFormat(t *testing.T) {
	opaque := texture.Checker(4, 2, color.NRGBA{R: 1, A: 0xff}, color.NRGBA{G: 2, A: 0xff})
	internal, format, pix := textureFormat(opaque)
	assert.Equal(t, int32(gl.RGB), internal)
	assert.Equal(t, uint32(gl.RGB), format)
	require.Len(t, pix, 4*4*3)
	assert.Equal(t, opaque.Pix[:3], pix[:3])

	seeThrough := texture.New(2, 2)
	internal, format, pix = textureFormat(seeThrough)
	assert.Equal(t, int32(gl.RGBA), internal)
	assert.Equal(t, uint32(gl.RGBA), format)
	assert.Len(t, pix, 2*2*4)
}

func TestShaderTypeName(t *testing.T) {
	assert.Equal(t, "vertex", shaderTypeName(gl.VERTEX_SHADER))
	assert.Equal(t, "fragment", shaderTypeName(gl.FRAGMENT_SHADER))
	assert.Equal(t, "type 0x1", shaderTypeName(1))
}

func TestLogHelpers(t *testing.T) {
	assert.Equal(t, "x\x00", terminate("x"))
	assert.Equal(t, "x\x00", terminate("x\x00"))
	assert.Equal(t, "0:1: error", trimLog("0:1: error\n\x00\x00"))
}
