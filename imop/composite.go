package imop

import (
	"image"

	"github.com/esimov/gokachu/utils"
)

// Draw composites src over backdrop (source-over) after mixing the
// overlapping colors with the given blend mode. Both images are read from
// their origin; the result has the size of their intersection.
func Draw(src, backdrop *image.NRGBA, blend Blend) *image.NRGBA {
	dx := utils.Min(src.Bounds().Dx(), backdrop.Bounds().Dx())
	dy := utils.Min(src.Bounds().Dy(), backdrop.Bounds().Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, dx, dy))

	for y := 0; y < dy; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		bi := backdrop.PixOffset(backdrop.Rect.Min.X, backdrop.Rect.Min.Y+y)
		di := dst.PixOffset(0, y)

		for x := 0; x < dx; x++ {
			as := float64(src.Pix[si+3]) / 255
			ab := float64(backdrop.Pix[bi+3]) / 255
			ao := as + ab*(1-as)

			for c := 0; c < 3; c++ {
				cs := float64(src.Pix[si+c]) / 255
				cb := float64(backdrop.Pix[bi+c]) / 255

				// the blended color replaces the source where the backdrop is opaque
				mixed := (1-ab)*cs + ab*blend.apply(cb, cs)
				co := as*mixed + ab*cb*(1-as)
				if ao > 0 {
					co /= ao
				}
				dst.Pix[di+c] = uint8(utils.Clamp(co*255+0.5, 0, 255))
			}
			dst.Pix[di+3] = uint8(utils.Clamp(ao*255+0.5, 0, 255))

			si += 4
			bi += 4
			di += 4
		}
	}
	return dst
}
