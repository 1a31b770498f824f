package control

import (
	"github.com/alwitt/livegate/common"
)

/*
CombineStats elementwise sum of two ingest counter sets.

Commutative and associative, so chains of any length fold to the same totals
regardless of combination order.

	@param a common.StreamStats - one counter set
	@param b common.StreamStats - the other counter set
	@return the combined counters
*/
func CombineStats(a, b common.StreamStats) common.StreamStats {
	return common.StreamStats{
		SourceBytes:                a.SourceBytes + b.SourceBytes,
		TranscodedBytes:            a.TranscodedBytes + b.TranscodedBytes,
		SourceSegments:             a.SourceSegments + b.SourceSegments,
		TranscodedSegments:         a.TranscodedSegments + b.TranscodedSegments,
		SourceSegmentsDuration:     a.SourceSegmentsDuration + b.SourceSegmentsDuration,
		TranscodedSegmentsDuration: a.TranscodedSegmentsDuration + b.TranscodedSegmentsDuration,
	}
}
