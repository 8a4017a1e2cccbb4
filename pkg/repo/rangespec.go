// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"fmt"
	"regexp"
	"strconv"
)

// RangePatternRegexp is the accepted Range header grammar: a single
// byte range with a mandatory start and optional inclusive end, decimal
// digits with no leading zeros. Suffix ranges and range lists are
// rejected outright.
const RangePatternRegexp = `^bytes=(0|[1-9]\d*)-((0|[1-9]\d*)?)$`

var rangePattern = regexp.MustCompile(RangePatternRegexp)

// RangeSpec is a validated byte interval. Start and End are inclusive,
// 0-indexed byte offsets. HasEnd false means the range is open-ended and
// delivery continues to the object's last byte.
type RangeSpec struct {
	Start  int64
	End    int64
	HasEnd bool
}

// Length returns the requested window length, or -1 for open-ended ranges.
func (r RangeSpec) Length() int64 {
	if !r.HasEnd {
		return -1
	}
	return r.End - r.Start + 1
}

// ParseRangeSpec validates a raw Range header value against the grammar
// and returns the parsed interval. Grammar or integer-parse failures are
// classified ErrCodeMalformedRange; an end before the start is
// classified ErrCodeInvalidRangeOrder. The descriptor is only used for
// diagnostics.
func ParseRangeSpec(header string, d FileDescriptor) (RangeSpec, error) {
	groups := rangePattern.FindStringSubmatch(header)
	if groups == nil {
		return RangeSpec{}, newMalformedRange(
			fmt.Sprintf("byte range header does not match %s", RangePatternRegexp), header)
	}

	start, err := parseRangeInt(groups[1], header)
	if err != nil {
		return RangeSpec{}, err
	}

	if groups[2] == "" {
		return RangeSpec{Start: start}, nil
	}

	end, err := parseRangeInt(groups[2], header)
	if err != nil {
		return RangeSpec{}, err
	}
	if end < start {
		return RangeSpec{}, newInvalidRangeOrder(d.Path(), header)
	}

	return RangeSpec{Start: start, End: end, HasEnd: true}, nil
}

func parseRangeInt(value, header string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, newMalformedRange(
			fmt.Sprintf("could not parse range element %q", value), header)
	}
	return n, nil
}
