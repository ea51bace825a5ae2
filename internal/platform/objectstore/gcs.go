package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/designhire-backend/internal/platform/logger"
)

type GCSStore struct {
	log          *logger.Logger
	client       *storage.Client
	bucket       string
	emulatorHost string
	accessID     string
	privateKey   []byte
}

func NewGCSStore(ctx context.Context, log *logger.Logger, cfg Config) (*GCSStore, error) {
	var opts []option.ClientOption
	emulator := ""
	switch cfg.Mode {
	case ModeGCSEmulator:
		emulator = strings.TrimRight(cfg.EmulatorHost, "/")
		_ = os.Setenv("STORAGE_EMULATOR_HOST", emulator)
		opts = append(opts, option.WithoutAuthentication())
	case ModeGCS:
		if creds := gcsCredentialOptions(); creds != nil {
			opts = append(opts, creds...)
		}
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	default:
		return nil, &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	var pk []byte
	if cfg.GCSPrivateKeyPath != "" {
		pk, err = os.ReadFile(cfg.GCSPrivateKeyPath)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("read GCS_PRIVATE_KEY_PATH: %w", err)
		}
	}
	log.Info("Object storage initialized", "mode", cfg.Mode, "bucket", cfg.Bucket, "emulator_host", emulator)
	return &GCSStore{
		log:          log.With("service", "GCSStore"),
		client:       client,
		bucket:       cfg.Bucket,
		emulatorHost: emulator,
		accessID:     cfg.GCSServiceAccountEmail,
		privateKey:   pk,
	}, nil
}

func gcsCredentialOptions() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (g *GCSStore) signedURL(key, method, contentType string, ttl time.Duration) (string, error) {
	key = normalizeKey(key)
	if g.emulatorHost != "" {
		// The emulator does not verify signatures; hand out its JSON API URLs.
		if method == http.MethodPut {
			return fmt.Sprintf("%s/upload/storage/v1/b/%s/o?uploadType=media&name=%s",
				g.emulatorHost, url.PathEscape(g.bucket), url.QueryEscape(key)), nil
		}
		return fmt.Sprintf("%s/storage/v1/b/%s/o/%s?alt=media",
			g.emulatorHost, url.PathEscape(g.bucket), url.PathEscape(key)), nil
	}
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  method,
		Expires: time.Now().Add(ttl),
	}
	if contentType != "" {
		opts.ContentType = contentType
	}
	if g.accessID != "" && len(g.privateKey) > 0 {
		opts.GoogleAccessID = g.accessID
		opts.PrivateKey = g.privateKey
	}
	u, err := g.client.Bucket(g.bucket).SignedURL(key, opts)
	if err != nil {
		return "", fmt.Errorf("sign %s url: %w", strings.ToLower(method), err)
	}
	return u, nil
}

func (g *GCSStore) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return g.signedURL(key, http.MethodPut, contentType, ttl)
}

func (g *GCSStore) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return g.signedURL(key, http.MethodGet, "", ttl)
}

func (g *GCSStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := g.client.Bucket(g.bucket).Object(normalizeKey(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	return r, nil
}

func (g *GCSStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := g.client.Bucket(g.bucket).Object(normalizeKey(key)).NewWriter(ctx)
	if contentType == "" {
		contentType = ContentTypeForKey(key)
	}
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer: %w", err)
	}
	return nil
}

func (g *GCSStore) Delete(ctx context.Context, key string) error {
	err := g.client.Bucket(g.bucket).Object(normalizeKey(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (g *GCSStore) Close() error { return g.client.Close() }
