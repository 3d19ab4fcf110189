package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page, size, total int
		want              int
	}{
		{1, 10, 0, 1},
		{1, 10, 10, 1},
		{1, 10, 11, 2},
		{3, 25, 100, 4},
	}
	for _, tt := range tests {
		p := NewPagination(tt.page, tt.size, tt.total)
		assert.Equal(t, tt.want, p.TotalPages, "total=%d size=%d", tt.total, tt.size)
		assert.Equal(t, tt.total, p.Total)
	}
}
