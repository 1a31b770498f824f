package control_test

import (
	"testing"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/stretchr/testify/assert"
)

func TestCombineStats(t *testing.T) {
	assert := assert.New(t)

	a := common.StreamStats{
		SourceBytes:                100,
		TranscodedBytes:            250,
		SourceSegments:             4,
		TranscodedSegments:         12,
		SourceSegmentsDuration:     8.0,
		TranscodedSegmentsDuration: 24.0,
	}
	b := common.StreamStats{
		SourceBytes:                50,
		TranscodedBytes:            75,
		SourceSegments:             2,
		TranscodedSegments:         6,
		SourceSegmentsDuration:     4.5,
		TranscodedSegmentsDuration: 13.5,
	}

	// Case 0: elementwise sum
	combined := control.CombineStats(a, b)
	assert.Equal(int64(150), combined.SourceBytes)
	assert.Equal(int64(325), combined.TranscodedBytes)
	assert.Equal(int64(6), combined.SourceSegments)
	assert.Equal(int64(18), combined.TranscodedSegments)
	assert.Equal(12.5, combined.SourceSegmentsDuration)
	assert.Equal(37.5, combined.TranscodedSegmentsDuration)

	// Case 1: commutative
	assert.Equal(combined, control.CombineStats(b, a))

	// Case 2: zero value is the identity
	assert.Equal(a, control.CombineStats(a, common.StreamStats{}))

	// Case 3: fold order does not matter
	c := common.StreamStats{SourceBytes: 7, SourceSegmentsDuration: 1.25}
	left := control.CombineStats(control.CombineStats(a, b), c)
	right := control.CombineStats(a, control.CombineStats(b, c))
	assert.Equal(left, right)
}
