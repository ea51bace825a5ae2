package objectstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, "/profile/u1/20240101/abc.png", "image/png", strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rc, err := s.Get(ctx, "profile/u1/20240101/abc.png")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != "png-bytes" {
		t.Fatalf("body: got=%q", b)
	}
	if ct, ok := s.ContentType("profile/u1/20240101/abc.png"); !ok || ct != "image/png" {
		t.Fatalf("content type: got=%q ok=%v", ct, ok)
	}

	if err := s.Delete(ctx, "profile/u1/20240101/abc.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "profile/u1/20240101/abc.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestEmulatorURLs(t *testing.T) {
	g := &GCSStore{bucket: "media", emulatorHost: "http://fake-gcs:4443"}

	get, err := g.PresignGet(context.Background(), "portfolio/u 1/a.pdf", time.Hour)
	if err != nil {
		t.Fatalf("PresignGet: %v", err)
	}
	if want := "http://fake-gcs:4443/storage/v1/b/media/o/portfolio%2Fu%201%2Fa.pdf?alt=media"; get != want {
		t.Fatalf("get url:\nwant=%s\ngot =%s", want, get)
	}
	put, err := g.PresignPut(context.Background(), "/portfolio/a.pdf", "application/pdf", time.Hour)
	if err != nil {
		t.Fatalf("PresignPut: %v", err)
	}
	if want := "http://fake-gcs:4443/upload/storage/v1/b/media/o?uploadType=media&name=portfolio%2Fa.pdf"; put != want {
		t.Fatalf("put url:\nwant=%s\ngot =%s", want, put)
	}
}

func TestContentTypeForKey(t *testing.T) {
	if got := ContentTypeForKey("a/b/c.JPG"); got != "image/jpeg" {
		t.Fatalf("jpg: got=%q", got)
	}
	if got := ContentTypeForKey("a/b/c.bin"); got != "" {
		t.Fatalf("bin: got=%q", got)
	}
}
