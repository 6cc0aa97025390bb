package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Storage interface for record seed documents
type Storage interface {
	// Upload stores a document under key and returns the normalised storage path
	Upload(ctx context.Context, key string, data io.Reader) (string, error)

	// Download retrieves a document by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

var ErrObjectNotFound = errors.New("object not found")

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// ConfigFromEnv reads storage configuration from environment variables
func ConfigFromEnv() StorageConfig {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	cfg := StorageConfig{
		Type:         StorageType(storageType),
		LocalPath:    os.Getenv("STORAGE_LOCAL_PATH"),
		S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
		S3Region:     os.Getenv("AWS_REGION"),
		AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = "./storage/seeds"
	}
	if cfg.S3Region == "" {
		cfg.S3Region = "us-east-1"
	}
	return cfg
}

// NewStorageFromEnv creates a storage instance from environment variables
func NewStorageFromEnv() (Storage, error) {
	return NewStorage(ConfigFromEnv())
}

// normalizeKey turns a caller-supplied key into a relative slash-separated path
func normalizeKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.ReplaceAll(key, " ", "_")
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}
