package objectstore

import (
	"errors"
	"testing"
)

func clearStorageEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OBJECT_STORAGE_MODE", "STORAGE_EMULATOR_HOST", "S3_BUCKET_NAME", "S3_ENDPOINT",
		"S3_REGION", "S3_USE_PATH_STYLE", "GCS_BUCKET_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfigFromEnvDefaultsToS3(t *testing.T) {
	clearStorageEnv(t)

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeS3 {
		t.Fatalf("mode: want=%q got=%q", ModeS3, cfg.Mode)
	}
	if cfg.Bucket != "designhire-media" {
		t.Fatalf("bucket: got=%q", cfg.Bucket)
	}
	if cfg.S3Region != "us-east-1" || !cfg.S3UsePathStyle {
		t.Fatalf("s3 defaults: region=%q path_style=%v", cfg.S3Region, cfg.S3UsePathStyle)
	}
}

func TestResolveConfigFromEnvEmulatorFallback(t *testing.T) {
	clearStorageEnv(t)
	t.Setenv("STORAGE_EMULATOR_HOST", "http://fake-gcs:4443")
	t.Setenv("GCS_BUCKET_NAME", "media")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", ModeGCSEmulator, cfg.Mode)
	}
}

func TestResolveConfigFromEnvRejectsUnknownMode(t *testing.T) {
	clearStorageEnv(t)
	t.Setenv("OBJECT_STORAGE_MODE", "ftp")

	_, err := ResolveConfigFromEnv()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Code != ConfigErrorInvalidMode {
		t.Fatalf("expected invalid_mode, got %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		code ConfigErrorCode
	}{
		{"gcs without bucket", Config{Mode: ModeGCS}, ConfigErrorMissingBucket},
		{"emulator without host", Config{Mode: ModeGCSEmulator, Bucket: "b"}, ConfigErrorMissingEmulatorHost},
		{"relative s3 endpoint", Config{Mode: ModeS3, Bucket: "b", S3Endpoint: "minio:9000"}, ConfigErrorInvalidEndpoint},
		{"memory", Config{Mode: ModeMemory}, ""},
		{"s3 with endpoint", Config{Mode: ModeS3, Bucket: "b", S3Endpoint: "http://minio:9000"}, ""},
	}
	for _, tc := range cases {
		err := ValidateConfig(tc.cfg)
		if tc.code == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Code != tc.code {
			t.Fatalf("%s: want code %q got %v", tc.name, tc.code, err)
		}
	}
}
