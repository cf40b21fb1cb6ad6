package render

// Image is a dense RGBA float frame buffer in row-major order.
type Image struct {
	Width  int
	Height int
	Data   []float32
}

func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Data:   make([]float32, 4*width*height),
	}
}

// Clear fills every pixel with the given color.
func (img *Image) Clear(r, g, b, a float32) {
	for i := 0; i < len(img.Data); i += 4 {
		img.Data[i] = r
		img.Data[i+1] = g
		img.Data[i+2] = b
		img.Data[i+3] = a
	}
}

// At returns the RGBA channels of pixel (x, y).
func (img *Image) At(x, y int) (r, g, b, a float32) {
	i := 4 * (y*img.Width + x)
	return img.Data[i], img.Data[i+1], img.Data[i+2], img.Data[i+3]
}

func (img *Image) Set(x, y int, r, g, b, a float32) {
	i := 4 * (y*img.Width + x)
	img.Data[i] = r
	img.Data[i+1] = g
	img.Data[i+2] = b
	img.Data[i+3] = a
}

func (img *Image) Clone() *Image {
	c := &Image{Width: img.Width, Height: img.Height, Data: make([]float32, len(img.Data))}
	copy(c.Data, img.Data)
	return c
}
