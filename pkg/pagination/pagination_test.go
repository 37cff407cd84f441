package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"", 1, 20},
		{"?page=3&per_page=10", 3, 10},
		{"?page=0&per_page=0", 1, 20},
		{"?page=-2&per_page=500", 1, 100},
		{"?page=abc&per_page=xyz", 1, 20},
	}

	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/items"+tt.query, nil)
		p := FromRequest(r)
		assert.Equal(t, tt.wantPage, p.Page, tt.query)
		assert.Equal(t, tt.wantPerPage, p.PerPage, tt.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 20).Offset())
	assert.Equal(t, 40, New(3, 20).Offset())
	assert.Equal(t, 20, New(3, 20).Limit())
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		wantPage int
		hasPrev  bool
		hasNext  bool
	}{
		{"empty", 1, 20, 0, 0, false, false},
		{"single partial page", 1, 20, 5, 1, false, false},
		{"exact fit", 1, 20, 20, 1, false, false},
		{"one over", 1, 20, 21, 2, false, true},
		{"middle", 2, 10, 35, 4, true, true},
		{"last", 4, 10, 35, 4, true, false},
		{"beyond end", 9, 10, 35, 4, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewMeta(New(tt.page, tt.perPage), tt.total)
			assert.Equal(t, tt.wantPage, meta.Pages)
			assert.Equal(t, tt.hasPrev, meta.HasPrev)
			assert.Equal(t, tt.hasNext, meta.HasNext)
			assert.Equal(t, int64(meta.Page)*int64(meta.PerPage) < meta.Total, meta.HasNext)
		})
	}
}
