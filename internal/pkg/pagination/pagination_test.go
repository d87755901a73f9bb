package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	tests := []struct {
		name       string
		params     *Params
		total      int64
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty set", &Params{Page: 1, Limit: 20}, 0, 0, false, false},
		{"exact fit", &Params{Page: 1, Limit: 20}, 40, 2, true, false},
		{"partial last page", &Params{Page: 1, Limit: 20}, 41, 3, true, false},
		{"middle page", &Params{Page: 2, Limit: 10}, 35, 4, true, true},
		{"last page", &Params{Page: 4, Limit: 10}, 35, 4, false, true},
		{"single item", &Params{Page: 1, Limit: 20}, 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := GetMeta(tt.params, tt.total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, tt.hasPrev, meta.HasPrev)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

func TestNewResponse(t *testing.T) {
	data := []string{"a", "b"}
	resp := NewResponse(data, &Params{Page: 1, Limit: 2}, 5)

	assert.Equal(t, data, resp.Data)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Meta.HasNext)
}
