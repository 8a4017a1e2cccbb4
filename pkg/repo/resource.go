// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import "io"

// MediaTypeRPM is the media type of RPM packages, delivered as attachments.
const MediaTypeRPM = "application/x-rpm"

// BoundedResource is a readable window over a stored artifact. For whole
// deliveries Offset is 0 and DeliveredLength equals TotalLength; for
// ranged deliveries DeliveredLength is the actual byte count available in
// the window, capped at the object's end. The Body is bounded to the
// window and must be closed by the consumer on every exit path.
type BoundedResource struct {
	TotalLength     int64
	DeliveredLength int64
	Offset          int64
	ContentType     string
	Filename        string
	Body            io.ReadCloser
}

// LastByte returns the inclusive offset of the final delivered byte.
func (r *BoundedResource) LastByte() int64 {
	return r.Offset + r.DeliveredLength - 1
}

func (r *BoundedResource) Close() error {
	return r.Body.Close()
}
