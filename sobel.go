package gokachu

import (
	"image"
	"math"

	"github.com/esimov/gokachu/utils"
)

type kernel [][]int32

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// SobelEdges detects the edges of a frame and returns them as white lines
// over a black background. Gradient magnitudes not exceeding the threshold
// are discarded; the one pixel border is always black.
// See https://en.wikipedia.org/wiki/Sobel_operator
func SobelEdges(img *image.NRGBA, threshold float64) *image.NRGBA {
	dx, dy := img.Bounds().Dx(), img.Bounds().Dy()
	gray := Luminance(img)
	edges := make([]uint8, dx*dy)

	for y := 1; y < dy-1; y++ {
		for x := 1; x < dx-1; x++ {
			var sumX, sumY int32
			// Sum each pixel of the 3x3 window with the kernel value
			for ky := 0; ky < len(kernelY); ky++ {
				for kx := 0; kx < len(kernelX); kx++ {
					px := int32(gray[(y+ky-1)*dx+x+kx-1])
					sumX += px * kernelX[ky][kx]
					sumY += px * kernelY[ky][kx]
				}
			}
			magnitude := math.Sqrt(float64(sumX*sumX) + float64(sumY*sumY))
			if magnitude > threshold {
				edges[y*dx+x] = 255
			}
		}
	}
	return grayToNRGBA(edges, dx, dy)
}

// adaptiveThreshold marks a pixel white when it is brighter than the mean of
// its block x block neighbourhood minus c, and black otherwise.
// The neighbourhood means are computed from a summed area table.
func adaptiveThreshold(gray []uint8, width, height, block int, c float64) []uint8 {
	stride := width + 1
	sat := make([]int64, stride*(height+1))
	for y := 0; y < height; y++ {
		var row int64
		for x := 0; x < width; x++ {
			row += int64(gray[y*width+x])
			sat[(y+1)*stride+x+1] = sat[y*stride+x+1] + row
		}
	}

	radius := block / 2
	out := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		y0, y1 := utils.Max(y-radius, 0), utils.Min(y+radius+1, height)
		for x := 0; x < width; x++ {
			x0, x1 := utils.Max(x-radius, 0), utils.Min(x+radius+1, width)
			sum := sat[y1*stride+x1] - sat[y0*stride+x1] - sat[y1*stride+x0] + sat[y0*stride+x0]
			mean := float64(sum) / float64((y1-y0)*(x1-x0))
			if float64(gray[y*width+x]) > mean-c {
				out[y*width+x] = 255
			}
		}
	}
	return out
}
