package gui

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

const (
	maxImageBytes = 8 << 20
	blurSize      = 12
)

// imageKey identifies the question an image belongs to. Fetch generations
// restart with every run.
type imageKey struct {
	run   uuid.UUID
	fetch uint64
}

type imageResult struct {
	key   imageKey
	token uint64
	img   image.Image
	err   error
}

// picture is the texture of the current question image.
type picture struct {
	key     imageKey
	token   uint64
	tex     rl.Texture2D
	loaded  bool
	failed  bool
	pending bool
	cancel  context.CancelFunc
}

func fetchImage(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch image: unexpected status %s", resp.Status)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// request starts loading url for key unless that question is already
// loading or loaded.
func (p *picture) request(client *http.Client, out *queue[imageResult], key imageKey, url string) {
	if p.key == key && (p.pending || p.loaded || p.failed) {
		return
	}
	p.release()
	p.key = key
	p.token++
	if url == "" {
		p.failed = true
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	p.cancel, p.pending = cancel, true
	token := p.token
	go func() {
		defer cancel()
		img, err := fetchImage(ctx, client, url)
		out.Enqueue(imageResult{key: key, token: token, img: img, err: err})
	}()
}

// accept turns a decoded image into a texture. It must run on the render
// thread.
func (p *picture) accept(res imageResult, blurred bool) {
	if res.token != p.token || !p.pending {
		return
	}
	p.pending = false
	if res.err != nil || res.img == nil {
		p.failed = true
		return
	}
	img := rl.NewImageFromImage(res.img)
	if blurred {
		rl.ImageBlurGaussian(img, blurSize)
	}
	p.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(p.tex, rl.FilterBilinear)
	p.loaded = p.tex.ID != 0
	p.failed = !p.loaded
}

func (p *picture) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.loaded {
		rl.UnloadTexture(p.tex)
	}
	p.tex = rl.Texture2D{}
	p.loaded, p.failed, p.pending = false, false, false
}

// draw fits the texture into rect keeping its aspect ratio. Zoomed images
// show only the central half.
func (p *picture) draw(rect rl.Rectangle, zoomed bool) {
	switch {
	case p.loaded:
	case p.failed:
		drawTextCentered("No image", rect, int32(rect.Height/2)-10, 20, colorDim)
		return
	default:
		drawTextCentered("Loading image…", rect, int32(rect.Height/2)-10, 20, colorDim)
		return
	}
	src := rl.NewRectangle(0, 0, float32(p.tex.Width), float32(p.tex.Height))
	if zoomed {
		src = rl.NewRectangle(src.Width/4, src.Height/4, src.Width/2, src.Height/2)
	}
	dst := fitRect(src.Width, src.Height, rect)
	rl.DrawTexturePro(p.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// fitRect scales a w×h box to fit inside bounds and centres it.
func fitRect(w, h float32, bounds rl.Rectangle) rl.Rectangle {
	if w <= 0 || h <= 0 {
		return bounds
	}
	scale := min(bounds.Width/w, bounds.Height/h)
	sw, sh := w*scale, h*scale
	return rl.NewRectangle(bounds.X+(bounds.Width-sw)/2, bounds.Y+(bounds.Height-sh)/2, sw, sh)
}
