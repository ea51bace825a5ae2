package objectstore

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

type Mode string

const (
	ModeS3          Mode = "s3"
	ModeGCS         Mode = "gcs"
	ModeGCSEmulator Mode = "gcs_emulator"
	ModeMemory      Mode = "memory"
)

type Config struct {
	Mode Mode

	Bucket string

	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	GCSServiceAccountEmail string
	GCSPrivateKeyPath      string
	EmulatorHost           string
}

func IsSupportedMode(mode Mode) bool {
	switch mode {
	case ModeS3, ModeGCS, ModeGCSEmulator, ModeMemory:
		return true
	default:
		return false
	}
}

type ConfigErrorCode string

const (
	ConfigErrorInvalidMode         ConfigErrorCode = "invalid_mode"
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorMissingEmulatorHost ConfigErrorCode = "missing_emulator_host"
	ConfigErrorInvalidEndpoint     ConfigErrorCode = "invalid_endpoint"
)

type ConfigError struct {
	Code     ConfigErrorCode
	Mode     string
	Endpoint string
	Cause    error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid object storage config"
	}
	switch e.Code {
	case ConfigErrorInvalidMode:
		return fmt.Sprintf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q, %q, %q)",
			e.Mode, ModeS3, ModeGCS, ModeGCSEmulator, ModeMemory)
	case ConfigErrorMissingBucket:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires a bucket name", e.Mode)
	case ConfigErrorMissingEmulatorHost:
		return fmt.Sprintf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST to be set", ModeGCSEmulator)
	case ConfigErrorInvalidEndpoint:
		return fmt.Sprintf("invalid endpoint %q; expected absolute URL like http://minio:9000", e.Endpoint)
	default:
		return "invalid object storage config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ResolveConfigFromEnv reads OBJECT_STORAGE_MODE and the per-backend settings.
// An unset mode falls back to gcs_emulator when STORAGE_EMULATOR_HOST is set
// and to s3 otherwise.
func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		S3Endpoint:             strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3Region:               strings.TrimSpace(os.Getenv("S3_REGION")),
		S3AccessKey:            strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		S3SecretKey:            strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		S3UsePathStyle:         !strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "false"),
		GCSServiceAccountEmail: strings.TrimSpace(os.Getenv("GCS_SERVICE_ACCOUNT_EMAIL")),
		GCSPrivateKeyPath:      strings.TrimSpace(os.Getenv("GCS_PRIVATE_KEY_PATH")),
		EmulatorHost:           strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")),
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}

	rawMode := strings.TrimSpace(os.Getenv("OBJECT_STORAGE_MODE"))
	mode := Mode(strings.ToLower(rawMode))
	switch mode {
	case "":
		if cfg.EmulatorHost != "" {
			cfg.Mode = ModeGCSEmulator
		} else {
			cfg.Mode = ModeS3
		}
	default:
		if !IsSupportedMode(mode) {
			return cfg, &ConfigError{Code: ConfigErrorInvalidMode, Mode: rawMode}
		}
		cfg.Mode = mode
	}

	switch cfg.Mode {
	case ModeS3:
		cfg.Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET_NAME"))
		if cfg.Bucket == "" {
			cfg.Bucket = "designhire-media"
		}
	case ModeGCS, ModeGCSEmulator:
		cfg.Bucket = strings.TrimSpace(os.Getenv("GCS_BUCKET_NAME"))
	case ModeMemory:
		cfg.Bucket = "memory"
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if !IsSupportedMode(cfg.Mode) {
		return &ConfigError{Code: ConfigErrorInvalidMode, Mode: string(cfg.Mode)}
	}
	if cfg.Mode == ModeMemory {
		return nil
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return &ConfigError{Code: ConfigErrorMissingBucket, Mode: string(cfg.Mode)}
	}
	switch cfg.Mode {
	case ModeS3:
		if cfg.S3Endpoint != "" {
			if err := validateAbsoluteURL(cfg.S3Endpoint); err != nil {
				return &ConfigError{Code: ConfigErrorInvalidEndpoint, Mode: string(cfg.Mode), Endpoint: cfg.S3Endpoint, Cause: err}
			}
		}
	case ModeGCSEmulator:
		if cfg.EmulatorHost == "" {
			return &ConfigError{Code: ConfigErrorMissingEmulatorHost, Mode: string(cfg.Mode)}
		}
		if err := validateAbsoluteURL(cfg.EmulatorHost); err != nil {
			return &ConfigError{Code: ConfigErrorInvalidEndpoint, Mode: string(cfg.Mode), Endpoint: cfg.EmulatorHost, Cause: err}
		}
	}
	return nil
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if strings.TrimSpace(u.Scheme) == "" || strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("not an absolute url")
	}
	return nil
}
