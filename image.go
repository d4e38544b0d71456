package gokachu

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// An *image.NRGBA already anchored at the origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}
	return dst
}

// Mirror flips the frame horizontally (selfie view).
func Mirror(img *image.NRGBA) *image.NRGBA {
	return imaging.FlipH(img)
}

// Luminance converts an image into a one dimensional array of gray values,
// row by row, using the Rec. 601 weights.
func Luminance(src *image.NRGBA) []uint8 {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		i := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		for x := 0; x < width; x++ {
			r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
			gray[y*width+x] = uint8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
			i += 4
		}
	}
	return gray
}

// grayToNRGBA expands a luminance plane back into an opaque image.
func grayToNRGBA(gray []uint8, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, v := range gray {
		dst.Pix[i*4+0] = v
		dst.Pix[i*4+1] = v
		dst.Pix[i*4+2] = v
		dst.Pix[i*4+3] = 0xff
	}
	return dst
}
