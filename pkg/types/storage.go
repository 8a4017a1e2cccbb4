// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"io"
)

// StorageType identifies the backend storage implementation
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // Local filesystem
	StorageTypeS3    StorageType = "s3"    // S3-compatible
)

// ObjectInfo describes a stored artifact without opening it.
type ObjectInfo struct {
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// ArtifactStorage is the interface for reading/writing repository artifacts.
// Implementations: Local, MemoryStorage, S3.
//
// ReadRange returns a stream bounded to [offset, offset+length). A negative
// length means "read to the end of the object". If the requested window
// extends past the object's end, implementations cap the stream at the
// object's last byte rather than failing.
type ArtifactStorage interface {
	// Type returns the storage type
	Type() StorageType

	// Write stores an artifact under the given key
	Write(ctx context.Context, key string, data io.Reader, size int64) error

	// Stat returns size and content type for a stored artifact
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// Read opens the whole artifact
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// ReadRange opens a bounded window of the artifact
	ReadRange(ctx context.Context, key string, offset, length int64) (io.ReadCloser, error)

	// Delete removes an artifact. Returns ErrKeyNotFound (wrapped) when the
	// key is absent so callers can distinguish the no-op case.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases any resources
	Close() error
}

// BackendConfig contains configuration for creating a storage instance
type BackendConfig struct {
	Type      StorageType `json:"type"`
	Endpoint  string      `json:"endpoint,omitempty"`
	Bucket    string      `json:"bucket,omitempty"`
	Path      string      `json:"path,omitempty"`
	Region    string      `json:"region,omitempty"`
	AccessKey string      `json:"access_key,omitempty"`
	SecretKey string      `json:"secret_key,omitempty"`
}
