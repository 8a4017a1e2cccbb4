// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

// Package web exposes the artifact delivery service over HTTP:
// whole and ranged GET, idempotent DELETE and upload under /repo/.
package web

import (
	"net/http"

	"github.com/ImmobilienScout24/yum-repo-server/pkg/repo"
)

// Prefix is the URL prefix all artifact routes live under.
const Prefix = "/repo/"

// Server handles artifact delivery requests. All collaborators are
// injected through the delivery service; the server itself is stateless.
type Server struct {
	svc *repo.DeliveryService
}

// NewServer registers the artifact routes on the given mux.
func NewServer(mux *http.ServeMux, svc *repo.DeliveryService) *Server {
	s := &Server{svc: svc}
	mux.Handle(Prefix, AccessLog(http.HandlerFunc(s.ServeHTTP)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.GetHandler(w, r)
	case http.MethodDelete:
		s.DeleteHandler(w, r)
	case http.MethodPost:
		s.PostHandler(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
