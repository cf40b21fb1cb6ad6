// Package ppm writes frame buffers as binary PPM (P6) images.
//
// The format is a text header "P6\n<width> <height>\n255\n" followed by
// width*height RGB byte triples in row-major order. Alpha is dropped.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/circlebench/internal/render"
)

const MaxValue = 255

var ErrOpen = errors.New("ppm: cannot open output file")

// Encode writes img to w.
func Encode(w io.Writer, img *render.Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n%d\n", img.Width, img.Height, MaxValue); err != nil {
		return err
	}

	row := make([]byte, 3*img.Width)
	for y := 0; y < img.Height; y++ {
		base := 4 * y * img.Width
		for x := 0; x < img.Width; x++ {
			px := img.Data[base+4*x : base+4*x+3]
			row[3*x] = ChannelByte(px[0])
			row[3*x+1] = ChannelByte(px[1])
			row[3*x+2] = ChannelByte(px[2])
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Save writes img to path. The file is always closed before returning.
func Save(img *render.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// ChannelByte scales v from [0,1] to [0,255] by multiply and truncate.
// Values outside [0,1] are clamped first so they cannot wrap around.
func ChannelByte(v float32) byte {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return MaxValue
	}
	return byte(MaxValue * v)
}
