package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestBatches(t *testing.T) {
	tests := []struct {
		name      string
		docs      int
		size      int
		wantSizes []int
	}{
		{"empty", 0, 500, nil},
		{"single partial", 3, 500, []int{3}},
		{"exact multiple", 1000, 500, []int{500, 500}},
		{"remainder", 1201, 500, []int{500, 500, 201}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := Batches(docs(tt.docs), tt.size)
			require.Len(t, batches, len(tt.wantSizes))
			for i, b := range batches {
				assert.Len(t, b, tt.wantSizes[i])
			}
		})
	}
}

func TestBatchesPreserveOrder(t *testing.T) {
	batches := Batches(docs(7), 3)
	var flat []any
	for _, b := range batches {
		flat = append(flat, b...)
	}
	assert.Equal(t, docs(7), flat)
}

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths("data")
	assert.Equal(t, "data/crops.converted.json", paths.Crops)
	assert.Equal(t, "data/prices.converted.json", paths.Prices)
}
