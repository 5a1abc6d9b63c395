package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonPositivePageSize(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	_, err = New(-3)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestComposePageMath(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		pageSize   int
		requested  int
		wantNumber int
		wantPages  int
		wantOffset int
	}{
		{"first page", 45, 9, 1, 1, 5, 0},
		{"middle page", 45, 9, 3, 3, 5, 18},
		{"exact multiple last page", 45, 9, 5, 5, 5, 36},
		{"partial last page", 46, 9, 6, 6, 6, 45},
		{"requested below range clamps to 1", 45, 9, 0, 1, 5, 0},
		{"requested negative clamps to 1", 45, 9, -7, 1, 5, 0},
		{"requested above range clamps to last", 45, 9, 99, 5, 5, 36},
		{"single item", 1, 9, 1, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pageSize)
			require.NoError(t, err)

			page := p.Compose(tt.total, tt.requested)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantOffset, page.Offset)
		})
	}
}

func TestComposeLastPageLength(t *testing.T) {
	// N items at page size S: every page except the last holds exactly S,
	// the last holds N - S*(ceil(N/S)-1).
	p, err := New(4)
	require.NoError(t, err)

	items := make([]int, 10)
	for i := range items {
		items[i] = i
	}

	page := p.Compose(int64(len(items)), 1)
	assert.Len(t, Slice(items, page), 4)

	page = p.Compose(int64(len(items)), 2)
	assert.Len(t, Slice(items, page), 4)
	assert.Equal(t, []int{4, 5, 6, 7}, Slice(items, page))

	page = p.Compose(int64(len(items)), 3)
	assert.Len(t, Slice(items, page), 2)
	assert.Equal(t, []int{8, 9}, Slice(items, page))
}

func TestComposeEmptyCollection(t *testing.T) {
	p, err := New(9)
	require.NoError(t, err)

	page := p.Compose(0, 1)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, []int{1}, page.Window)
	assert.False(t, page.HasPrev)
	assert.False(t, page.HasNext)
	assert.Empty(t, Slice([]string{}, page))
}

func TestWindowStaysInRange(t *testing.T) {
	p, err := New(2)
	require.NoError(t, err)

	for total := int64(0); total <= 40; total++ {
		for requested := -3; requested <= 25; requested++ {
			page := p.Compose(total, requested)
			require.NotEmpty(t, page.Window)
			for _, n := range page.Window {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, page.TotalPages)
			}
		}
	}
}

func TestWindowCenteredOnCurrentPage(t *testing.T) {
	p, err := New(1)
	require.NoError(t, err)

	// 20 pages, window width 4.
	page := p.Compose(20, 10)
	assert.Equal(t, []int{8, 9, 10, 11}, page.Window)

	// Near the start the window shifts right instead of dipping below 1.
	page = p.Compose(20, 1)
	assert.Equal(t, []int{1, 2, 3, 4}, page.Window)

	page = p.Compose(20, 2)
	assert.Equal(t, []int{1, 2, 3, 4}, page.Window)

	// Near the end it shifts left instead of passing the last page.
	page = p.Compose(20, 20)
	assert.Equal(t, []int{17, 18, 19, 20}, page.Window)
}

func TestWindowShorterThanWidthWhenFewPages(t *testing.T) {
	p, err := New(9)
	require.NoError(t, err)

	page := p.Compose(18, 1) // two pages only
	assert.Equal(t, []int{1, 2}, page.Window)
}

func TestCustomWindowWidth(t *testing.T) {
	p, err := NewWithWindow(1, 6)
	require.NoError(t, err)

	page := p.Compose(30, 15)
	assert.Len(t, page.Window, 6)
	assert.Contains(t, page.Window, 15)
}
