// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import "fmt"

// RPMExtension is the filename extension expected on deletable artifacts.
const RPMExtension = ".rpm"

// FileDescriptor is the logical address of a stored artifact:
// repository name, architecture and filename. It is immutable and built
// fresh per request; the path it derives is the store key.
type FileDescriptor struct {
	Repo     string
	Arch     string
	Filename string
}

// NewFileDescriptor builds a descriptor, requiring all components non-empty.
func NewFileDescriptor(repo, arch, filename string) (FileDescriptor, error) {
	if repo == "" || arch == "" || filename == "" {
		return FileDescriptor{}, fmt.Errorf("incomplete file descriptor: repo=%q arch=%q filename=%q", repo, arch, filename)
	}
	return FileDescriptor{Repo: repo, Arch: arch, Filename: filename}, nil
}

// Path returns the canonical store key for the artifact.
func (d FileDescriptor) Path() string {
	return d.Repo + "/" + d.Arch + "/" + d.Filename
}

func (d FileDescriptor) String() string {
	return d.Path()
}
