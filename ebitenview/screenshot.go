package ebitenview

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues label for capture once the current frame has been
// drawn. Files are numbered in capture order, e.g. "003-level-2.png".
func (v *View) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// flushScreenshots encodes the finished frame once and writes a copy for
// every queued label.
func (v *View) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	labels := v.screenshotQueue
	v.screenshotQueue = v.screenshotQueue[:0]

	data, err := encodePNG(readFrame(screen))
	if err != nil {
		v.logger.Error("screenshot", "err", err)
		return
	}
	if err := os.MkdirAll(v.screenshotDir, 0o755); err != nil {
		v.logger.Error("screenshot", "err", err)
		return
	}
	for _, label := range labels {
		v.shots++
		path := filepath.Join(v.screenshotDir, shotName(v.shots, label))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			v.logger.Error("screenshot", "err", err)
			continue
		}
		v.logger.Info("screenshot", "path", path, "bytes", len(data))
	}
}

// readFrame copies the screen into an image.RGBA. ebiten hands back
// premultiplied pixels, which is exactly image.RGBA's layout, so the PNG
// encoder does the conversion to straight alpha.
func readFrame(screen *ebiten.Image) *image.RGBA {
	b := screen.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	screen.ReadPixels(img.Pix)
	return img
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// shotName builds "<seq>-<slug>.png". The slug keeps lowercase letters and
// digits; any other run of characters becomes a single hyphen.
func shotName(seq int, label string) string {
	var sb strings.Builder
	sep := false
	for _, r := range strings.ToLower(label) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if sep && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	slug := sb.String()
	if slug == "" {
		slug = "frame"
	}
	return fmt.Sprintf("%03d-%s.png", seq, slug)
}
