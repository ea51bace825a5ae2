package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	ThumbnailMaxWidth  = 400
	ThumbnailMaxHeight = 400
	thumbnailQuality   = 85
)

type ThumbnailResult struct {
	Original  string `json:"original"`
	Thumbnail string `json:"thumbnail"`
	Status    string `json:"status"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// ThumbnailKey maps "a/b/c.png" to "a/b/c_thumb.png".
func ThumbnailKey(key string) string {
	i := strings.LastIndex(key, ".")
	if i <= strings.LastIndex(key, "/") {
		return key + "_thumb.jpg"
	}
	return key[:i] + "_thumb" + key[i:]
}

// fitWithin scales (w, h) down to fit maxW x maxH, keeping aspect ratio.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	if w*maxH >= h*maxW {
		nh := h * maxW / w
		if nh < 1 {
			nh = 1
		}
		return maxW, nh
	}
	nw := w * maxH / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxH
}

// RenderThumbnail decodes src and re-encodes a scaled copy. PNG stays PNG;
// everything else becomes JPEG flattened onto white.
func RenderThumbnail(src io.Reader, ext string) ([]byte, string, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, "", image.Point{}, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), ThumbnailMaxWidth, ThumbnailMaxHeight)
	rect := image.Rect(0, 0, w, h)

	var buf bytes.Buffer
	if strings.EqualFold(ext, "png") {
		dst := image.NewNRGBA(rect)
		draw.CatmullRom.Scale(dst, rect, img, b, draw.Src, nil)
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", image.Point{}, fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", image.Pt(w, h), nil
	}

	dst := image.NewRGBA(rect)
	draw.Draw(dst, rect, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, rect, img, b, draw.Over, nil)
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, "", image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", image.Pt(w, h), nil
}

// GenerateThumbnail reads key from the store and writes its thumbnail beside it.
func (u Usecases) GenerateThumbnail(ctx context.Context, key string) (*ThumbnailResult, error) {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	rc, err := u.deps.Store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	defer rc.Close()

	ext := ""
	if i := strings.LastIndex(key, "."); i >= 0 {
		ext = strings.ToLower(key[i+1:])
	}
	data, contentType, size, err := RenderThumbnail(rc, ext)
	if err != nil {
		return nil, err
	}
	thumbKey := ThumbnailKey(key)
	if err := u.deps.Store.Put(ctx, thumbKey, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("upload %s: %w", thumbKey, err)
	}
	u.deps.Log.Info("Generated thumbnail", "object_key", key, "thumbnail", thumbKey, "width", size.X, "height", size.Y)
	return &ThumbnailResult{
		Original:  key,
		Thumbnail: thumbKey,
		Status:    "success",
		Width:     size.X,
		Height:    size.Y,
	}, nil
}
