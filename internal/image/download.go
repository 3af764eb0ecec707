package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/dicebattle/internal/battle"
	"github.com/youruser/dicebattle/internal/util"
)

// ImageFetcher turns an avatar source into a decoded image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, src battle.AvatarSource) (image.Image, error)
}

// HTTPFetcher downloads http(s) URLs, reads other URLs as local paths and
// decodes raw bytes as they are.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// NewHTTPFetcherWithClient uses client as is.
func NewHTTPFetcherWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

// FetchImage errors wrap ErrAvatarFetch when the bytes could not be obtained
// and ErrAvatarDecode when they are not an image.
func (f *HTTPFetcher) FetchImage(ctx context.Context, src battle.AvatarSource) (image.Image, error) {
	var (
		body []byte
		err  error
	)
	switch {
	case len(src.Data) > 0:
		body = src.Data
	case isHTTPURL(src.URL):
		body, err = util.GetBytes(ctx, f.client, src.URL)
	case strings.TrimSpace(src.URL) != "":
		body, err = os.ReadFile(src.URL)
	default:
		err = fmt.Errorf("empty source")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvatarFetch, err)
	}
	return decodeImage(body)
}

func decodeImage(body []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvatarDecode, err)
	}
	return img, nil
}

func isHTTPURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
