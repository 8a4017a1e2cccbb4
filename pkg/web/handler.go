// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/logger"
	"github.com/ImmobilienScout24/yum-repo-server/pkg/repo"
)

// GET /repo/{repo}/{arch}/{filename}
//
// Without a Range header the whole artifact is served with 200; with one,
// the validated window is served with 206 and Content-Range metadata.
func (s *Server) GetHandler(w http.ResponseWriter, r *http.Request) {
	descriptor, err := parseRepoPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	rangeHeader := r.Header.Get("Range")

	var resource *repo.BoundedResource
	if rangeHeader == "" {
		resource, err = s.svc.Fetch(r.Context(), descriptor)
	} else {
		resource, err = s.svc.FetchRange(r.Context(), descriptor, rangeHeader)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer resource.Close()

	setContentHeaders(w.Header(), resource)

	if rangeHeader != "" {
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d",
			resource.Offset, resource.LastByte(), resource.TotalLength))
		w.Header().Set("Content-Length", strconv.FormatInt(resource.DeliveredLength, 10))
		w.WriteHeader(http.StatusPartialContent)
	} else {
		w.Header().Set("Content-Length", strconv.FormatInt(resource.TotalLength, 10))
		w.WriteHeader(http.StatusOK)
	}

	// Stream the bounded window; an aborted client just ends the copy,
	// the deferred close releases the stream either way.
	io.Copy(w, resource.Body)
}

// DELETE /repo/{repoName}/{arch}/{filename}.rpm
//
// Responds 204 regardless of prior existence.
func (s *Server) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	descriptor, err := parseRepoPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Normalize the filename to carry the expected extension.
	if !strings.HasSuffix(descriptor.Filename, repo.RPMExtension) {
		descriptor.Filename += repo.RPMExtension
	}

	if err := s.svc.Delete(r.Context(), descriptor); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /repo/{repo}/{arch}/{filename}
func (s *Server) PostHandler(w http.ResponseWriter, r *http.Request) {
	descriptor, err := parseRepoPath(r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := s.svc.Store(r.Context(), descriptor, r.Body, r.ContentLength); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// parseRepoPath splits /repo/{repo}/{arch}/{filename} into a descriptor.
func parseRepoPath(urlPath string) (repo.FileDescriptor, error) {
	rest := strings.TrimPrefix(urlPath, Prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 3 {
		return repo.FileDescriptor{}, fmt.Errorf("expected %s{repo}/{arch}/{filename}, got %s", Prefix, urlPath)
	}
	return repo.NewFileDescriptor(parts[0], parts[1], parts[2])
}

// setContentHeaders assembles Content-Type and Content-Disposition.
// Package artifacts download as attachments, everything else renders
// inline. Only the base name leaks into the header, never the store path.
func setContentHeaders(h http.Header, resource *repo.BoundedResource) {
	if resource.ContentType != "" {
		h.Set("Content-Type", resource.ContentType)
	}

	disposition := "inline"
	if resource.ContentType == repo.MediaTypeRPM {
		disposition = "attachment"
	}
	h.Set("Content-Disposition", disposition+"; filename="+path.Base(resource.Filename))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch repo.CodeOf(err) {
	case repo.ErrCodeMalformedRange:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case repo.ErrCodeInvalidRangeOrder:
		http.Error(w, err.Error(), http.StatusRequestedRangeNotSatisfiable)
	case repo.ErrCodeNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		logger.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("storage error")
		http.Error(w, "storage error", http.StatusBadGateway)
	}
}
