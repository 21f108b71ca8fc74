package frame

import "image"

const (
	// Black is the luminance of the first calibration segment.
	Black uint8 = 0
	// Grey is the luminance of the second calibration segment (255/2 truncated).
	Grey uint8 = 127
)

// Float is a height x width slice of continuous values.
type Float struct {
	Width  int
	Height int
	Pix    []float64
}

// NewFloat allocates a zeroed Float.
func NewFloat(width, height int) *Float {
	return &Float{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the value at (x, y).
func (f *Float) At(x, y int) float64 { return f.Pix[y*f.Width+x] }

// Set stores v at (x, y).
func (f *Float) Set(x, y int, v float64) { f.Pix[y*f.Width+x] = v }

// Row returns the y-th row backed by Pix.
func (f *Float) Row(y int) []float64 { return f.Pix[y*f.Width : (y+1)*f.Width] }

// Gray is an 8-bit single-channel frame.
type Gray struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewGray allocates a zeroed Gray frame.
func NewGray(width, height int) *Gray {
	return &Gray{Width: width, Height: height, Pix: make([]uint8, width*height)}
}

// RGB replicates the single channel into an rgb24 frame.
func (g *Gray) RGB() *RGB {
	out := &RGB{Width: g.Width, Height: g.Height, Pix: make([]uint8, len(g.Pix)*3)}
	for i, v := range g.Pix {
		j := i * 3
		out.Pix[j] = v
		out.Pix[j+1] = v
		out.Pix[j+2] = v
	}
	return out
}

// Image exposes the frame as an image.Gray sharing Pix.
func (g *Gray) Image() *image.Gray {
	return &image.Gray{Pix: g.Pix, Stride: g.Width, Rect: image.Rect(0, 0, g.Width, g.Height)}
}

// Mean returns the average luminance in 0..255.
func (g *Gray) Mean() float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range g.Pix {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(g.Pix))
}

// RGB is a packed rgb24 frame, three bytes per pixel.
type RGB struct {
	Width  int
	Height int
	Pix    []uint8
}

// Solid returns an RGB frame with every channel set to v.
func Solid(width, height int, v uint8) *RGB {
	pix := make([]uint8, width*height*3)
	if v != 0 {
		for i := range pix {
			pix[i] = v
		}
	}
	return &RGB{Width: width, Height: height, Pix: pix}
}

// Size reports the expected byte length for the frame dimensions.
func (r *RGB) Size() int { return r.Width * r.Height * 3 }

// Uniform reports whether every byte equals v.
func (r *RGB) Uniform(v uint8) bool {
	for _, p := range r.Pix {
		if p != v {
			return false
		}
	}
	return true
}

// Image converts the frame to an image.RGBA for encoders that need one.
func (r *RGB) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i := 0; i < r.Width*r.Height; i++ {
		j := i * 3
		img.Pix[i*4] = r.Pix[j]
		img.Pix[i*4+1] = r.Pix[j+1]
		img.Pix[i*4+2] = r.Pix[j+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}
