package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cap guards run before the index client is touched, so a nil client is
// enough to exercise them.

func TestSearch_ZeroCapReturnsEmpty(t *testing.T) {
	retriever := NewWeaviateStaffRetriever(nil)

	matches, err := retriever.Search(context.Background(), "백엔드 OR 서버", 0)

	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestSearch_NegativeCapFailsFast(t *testing.T) {
	retriever := NewWeaviateStaffRetriever(nil)

	tests := []struct {
		name string
		topK int
	}{
		{"minus one", -1},
		{"large negative", -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := retriever.Search(context.Background(), "백엔드", tt.topK)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "negative result cap")
			assert.Nil(t, matches)
		})
	}
}
