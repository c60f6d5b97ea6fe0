package glprog

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

type uniformSetter func(loc, count int32, ptr unsafe.Pointer)

var uniformSetters = map[reflect.Type]uniformSetter{
	reflect.TypeOf(mgl32.Vec2{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform2fv(loc, count, (*float32)(ptr)) },
	reflect.TypeOf(mgl32.Vec3{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform3fv(loc, count, (*float32)(ptr)) },
	reflect.TypeOf(mgl32.Vec4{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform4fv(loc, count, (*float32)(ptr)) },
	reflect.TypeOf(mgl64.Vec2{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform2dv(loc, count, (*float64)(ptr)) },
	reflect.TypeOf(mgl64.Vec3{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform3dv(loc, count, (*float64)(ptr)) },
	reflect.TypeOf(mgl64.Vec4{}): func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform4dv(loc, count, (*float64)(ptr)) },
	reflect.TypeOf(mgl32.Mat2{}): func(loc, count int32, ptr unsafe.Pointer) { gl.UniformMatrix2fv(loc, count, false, (*float32)(ptr)) },
	reflect.TypeOf(mgl32.Mat3{}): func(loc, count int32, ptr unsafe.Pointer) { gl.UniformMatrix3fv(loc, count, false, (*float32)(ptr)) },
	reflect.TypeOf(mgl32.Mat4{}): func(loc, count int32, ptr unsafe.Pointer) { gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr)) },
	reflect.TypeOf(int32(0)):     func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform1iv(loc, count, (*int32)(ptr)) },
	reflect.TypeOf(uint32(0)):    func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform1uiv(loc, count, (*uint32)(ptr)) },
	reflect.TypeOf(float32(0)):   func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform1fv(loc, count, (*float32)(ptr)) },
	reflect.TypeOf(float64(0)):   func(loc, count int32, ptr unsafe.Pointer) { gl.Uniform1dv(loc, count, (*float64)(ptr)) },
}

// uniformField is a struct field tagged with `uniform:"name"`.
type uniformField struct {
	name   string
	index  int
	count  int32
	setter uniformSetter
}

// uniformFields lists the uploadable fields of struct type t. Arrays of a
// supported type are uploaded as GLSL arrays.
func uniformFields(t reflect.Type) ([]uniformField, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("uniforms must be a struct, not %v", t)
	}

	var fields []uniformField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("uniform")
		if name == "" {
			continue
		}

		count := int32(1)
		ft := f.Type
		setter, ok := uniformSetters[ft]
		if !ok && ft.Kind() == reflect.Array {
			count = int32(ft.Len())
			setter, ok = uniformSetters[ft.Elem()]
		}
		if !ok {
			return nil, fmt.Errorf("unsupported uniform type %v for %v", f.Type, name)
		}

		fields = append(fields, uniformField{
			name:   name,
			index:  i,
			count:  count,
			setter: setter,
		})
	}
	return fields, nil
}
