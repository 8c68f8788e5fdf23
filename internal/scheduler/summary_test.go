package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldFlagSummaryInconsistency(t *testing.T) {
	assert.True(t, shouldFlagSummaryInconsistency(10, 0, 0))
	assert.False(t, shouldFlagSummaryInconsistency(10, 10, 0))
	assert.False(t, shouldFlagSummaryInconsistency(0, 0, 0))
	assert.False(t, shouldFlagSummaryInconsistency(10, 5, 5))
}
