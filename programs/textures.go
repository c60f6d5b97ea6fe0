package programs

import (
	"image/color"

	"github.com/stewi1014/gldemos/texture"
)

// DefaultTextures are used for any texture unit that wasn't given an image.
var DefaultTextures = []*texture.Image{
	texture.Checker(256, 8,
		color.NRGBA{R: 0x9c, G: 0x6b, B: 0x3c, A: 0xff},
		color.NRGBA{R: 0x5a, G: 0x3a, B: 0x1e, A: 0xff},
	),
	texture.Checker(256, 4,
		color.NRGBA{R: 0xff, G: 0xd7, B: 0x3c, A: 0xff},
		color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	),
}

// LoadTextures loads each path in order. Empty paths are left nil so the
// defaults are used.
func LoadTextures(paths []string) ([]*texture.Image, error) {
	textures := make([]*texture.Image, len(paths))
	for i, path := range paths {
		if path == "" {
			continue
		}

		t, err := texture.Load(path)
		if err != nil {
			return nil, err
		}
		textures[i] = t
	}
	return textures, nil
}
