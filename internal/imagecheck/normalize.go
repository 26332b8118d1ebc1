package imagecheck

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// normalize decodes an uploaded image, flattens any transparency onto a
// white background, bounds its dimensions, and re-encodes it as JPEG.
// The result is returned as a data URL ready for a vision request.
func normalize(data []byte, maxDimension, jpegQuality int) (string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	rgb := flatten(src)
	rgb = downscale(rgb, maxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode %s image as JPEG: %w", format, err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// flatten composites the image over white, discarding any alpha channel
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	return dst
}

// downscale resizes so that neither side exceeds maxDimension, preserving
// aspect ratio. Images already within bounds pass through untouched.
func downscale(src *image.RGBA, maxDimension int) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return src
	}

	scale := float64(maxDimension) / float64(w)
	if h > w {
		scale = float64(maxDimension) / float64(h)
	}
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
