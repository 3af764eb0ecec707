package imagepkg

import (
	"context"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/youruser/dicebattle/internal/battle"
)

func TestHTTPFetcher(t *testing.T) {
	pngBody := encodePNG(t, solidImage(4, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/avatar.png":
			_, _ = w.Write(pngBody)
		case "/garbage":
			_, _ = w.Write([]byte("<html>not an image</html>"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write(pngBody)
		case "/error":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	f := NewHTTPFetcherWithClient(srv.Client())

	t.Run("ok", func(t *testing.T) {
		img, err := f.FetchImage(ctx, battle.AvatarSource{URL: srv.URL + "/avatar.png"})
		require.NoError(t, err)
		require.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	})

	t.Run("404", func(t *testing.T) {
		_, err := f.FetchImage(ctx, battle.AvatarSource{URL: srv.URL + "/missing.png"})
		require.ErrorIs(t, err, ErrAvatarFetch)
	})

	t.Run("500", func(t *testing.T) {
		_, err := f.FetchImage(ctx, battle.AvatarSource{URL: srv.URL + "/error"})
		require.ErrorIs(t, err, ErrAvatarFetch)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := f.FetchImage(ctx, battle.AvatarSource{URL: srv.URL + "/garbage"})
		require.ErrorIs(t, err, ErrAvatarDecode)
	})

	t.Run("timeout", func(t *testing.T) {
		client := srv.Client()
		client.Timeout = 50 * time.Millisecond
		_, err := NewHTTPFetcherWithClient(client).FetchImage(ctx, battle.AvatarSource{URL: srv.URL + "/slow"})
		require.ErrorIs(t, err, ErrAvatarFetch)
	})

	t.Run("raw bytes", func(t *testing.T) {
		img, err := f.FetchImage(ctx, battle.AvatarSource{Data: pngBody})
		require.NoError(t, err)
		require.Equal(t, 4, img.Bounds().Dx())
	})

	t.Run("local file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "avatar.png")
		require.NoError(t, os.WriteFile(p, pngBody, 0o600))
		img, err := f.FetchImage(ctx, battle.AvatarSource{URL: p})
		require.NoError(t, err)
		require.Equal(t, 3, img.Bounds().Dy())
	})

	t.Run("missing local file", func(t *testing.T) {
		_, err := f.FetchImage(ctx, battle.AvatarSource{URL: filepath.Join(t.TempDir(), "nope.png")})
		require.ErrorIs(t, err, ErrAvatarFetch)
	})

	t.Run("empty source", func(t *testing.T) {
		_, err := f.FetchImage(ctx, battle.AvatarSource{})
		require.ErrorIs(t, err, ErrAvatarFetch)
	})
}

func TestIsHTTPURL(t *testing.T) {
	require.True(t, isHTTPURL("https://cdn.example.com/a.png"))
	require.True(t, isHTTPURL("HTTP://example.com"))
	require.False(t, isHTTPURL("/tmp/a.png"))
	require.False(t, isHTTPURL("ftp://example.com/a.png"))
}
