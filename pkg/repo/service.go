// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/logger"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/storage/backend"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/types"
)

// DeliveryService resolves file descriptors against the artifact store
// and produces bounded resources for whole or ranged delivery. It holds
// no shared mutable state; concurrent requests are independent.
//
// All range validation happens before any store I/O. Store-level I/O
// failures propagate unmasked; the service never retries.
type DeliveryService struct {
	store    types.ArtifactStorage
	counters CounterSink
}

// NewDeliveryService wires the service with its collaborators.
func NewDeliveryService(store types.ArtifactStorage, counters CounterSink) *DeliveryService {
	if counters == nil {
		counters = NopSink{}
	}
	return &DeliveryService{store: store, counters: counters}
}

// Fetch resolves the whole artifact. The returned resource delivers the
// full object length.
func (s *DeliveryService) Fetch(ctx context.Context, d FileDescriptor) (*BoundedResource, error) {
	info, err := s.stat(ctx, d)
	if err != nil {
		return nil, err
	}

	body, err := s.store.Read(ctx, d.Path())
	if err != nil {
		if errors.Is(err, backend.ErrKeyNotFound) {
			return nil, newNotFound(d.Path(), err)
		}
		return nil, err
	}

	s.counters.Increment(CounterGet)
	return &BoundedResource{
		TotalLength:     info.Size,
		DeliveredLength: info.Size,
		ContentType:     info.ContentType,
		Filename:        d.Filename,
		Body:            body,
	}, nil
}

// FetchRange validates the raw Range header and resolves a bounded window
// of the artifact. A window reaching past the object's end is capped at
// the last byte; the resource's DeliveredLength reflects the actual bytes
// available.
func (s *DeliveryService) FetchRange(ctx context.Context, d FileDescriptor, rangeHeader string) (*BoundedResource, error) {
	spec, err := ParseRangeSpec(rangeHeader, d)
	if err != nil {
		return nil, err
	}

	info, err := s.stat(ctx, d)
	if err != nil {
		return nil, err
	}

	delivered := info.Size - spec.Start
	if delivered < 0 {
		delivered = 0
	}
	if l := spec.Length(); l >= 0 && l < delivered {
		delivered = l
	}

	var body io.ReadCloser
	if delivered == 0 {
		body = io.NopCloser(bytes.NewReader(nil))
	} else {
		body, err = s.store.ReadRange(ctx, d.Path(), spec.Start, spec.Length())
		if err != nil {
			if errors.Is(err, backend.ErrKeyNotFound) {
				return nil, newNotFound(d.Path(), err)
			}
			return nil, err
		}
	}

	s.counters.Increment(CounterGetRange)
	return &BoundedResource{
		TotalLength:     info.Size,
		DeliveredLength: delivered,
		Offset:          spec.Start,
		ContentType:     info.ContentType,
		Filename:        d.Filename,
		Body:            body,
	}, nil
}

// Delete removes the artifact. Deleting an absent artifact is not an
// error: the outcome is indistinguishable from deleting a present one,
// only the counter differs.
func (s *DeliveryService) Delete(ctx context.Context, d FileDescriptor) error {
	err := s.store.Delete(ctx, d.Path())
	if errors.Is(err, backend.ErrKeyNotFound) {
		logger.Ctx(ctx).Info().Str("path", d.Path()).Msg("ignoring delete of nonexistent artifact")
		s.counters.Increment(CounterDeleteNonExistent)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Ctx(ctx).Info().Str("path", d.Path()).Msg("deleted artifact")
	s.counters.Increment(CounterDelete)
	return nil
}

// Store uploads an artifact under the descriptor's path.
func (s *DeliveryService) Store(ctx context.Context, d FileDescriptor, data io.Reader, size int64) error {
	if err := s.store.Write(ctx, d.Path(), data, size); err != nil {
		return err
	}
	s.counters.Increment(CounterUpload)
	return nil
}

func (s *DeliveryService) stat(ctx context.Context, d FileDescriptor) (types.ObjectInfo, error) {
	info, err := s.store.Stat(ctx, d.Path())
	if err != nil {
		if errors.Is(err, backend.ErrKeyNotFound) {
			return types.ObjectInfo{}, newNotFound(d.Path(), err)
		}
		return types.ObjectInfo{}, err
	}
	return info, nil
}
