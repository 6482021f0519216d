package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// maxProbeBytes caps how much of an image is read while probing.
const maxProbeBytes = 20 << 20 // 20 MiB

// fetchAndProbeImage downloads an image and verifies it decodes, the closest
// server-side equivalent of waiting for a browser image load event.
func (p *Preloader) fetchAndProbeImage(ctx context.Context, url string) error {
	marker := p.perf.StartOperation("media:image_probe")
	defer p.perf.CompleteOperation(marker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		marker.SetError(err)
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		marker.SetError(err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		marker.SetError(err)
		return err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		marker.SetError(err)
		return err
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err := decodeImage(data, mediaType); err != nil {
		marker.SetError(err)
		return fmt.Errorf("image decode failed: %w", err)
	}

	marker.AddMetadata("bytes", len(data))
	return nil
}

// decodeImage verifies the bytes are a decodable image. WebP needs its own
// decoder; everything else goes through the standard image registry.
func decodeImage(data []byte, mediaType string) error {
	if mediaType == "image/webp" || (len(data) >= 12 && bytes.Equal(data[8:12], []byte("WEBP"))) {
		_, err := webp.Decode(bytes.NewReader(data))
		return err
	}
	_, err := imaging.Decode(bytes.NewReader(data))
	return err
}

// probeVideo issues a ranged request for the first byte of a video and
// checks the declared content type.
func (p *Preloader) probeVideo(ctx context.Context, url string) error {
	marker := p.perf.StartOperation("media:video_probe")
	defer p.perf.CompleteOperation(marker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		marker.SetError(err)
		return err
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err := p.client.Do(req)
	if err != nil {
		marker.SetError(err)
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		marker.SetError(err)
		return err
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "" && !strings.HasPrefix(mediaType, "video/") && mediaType != "application/octet-stream" {
		err := fmt.Errorf("unexpected content type %q", mediaType)
		marker.SetError(err)
		return err
	}

	return nil
}
