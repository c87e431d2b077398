package canvas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFilledBuffer creates a buffer with every pixel set to c.
func newFilledBuffer(t *testing.T, width, height int, c Color) *Buffer {
	t.Helper()
	b, err := New(width, height)
	require.NoError(t, err)
	b.Clear(c)
	return b
}

func TestNew(t *testing.T) {
	b, err := New(4, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 3, b.Height())
	assert.Len(t, b.Image().Pix, 4*3*4)

	c, err := b.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, Transparent, c)
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestBuffer_SetGet(t *testing.T) {
	b := newFilledBuffer(t, 10, 10, White)
	colors := []Color{
		{255, 0, 0, 255},
		{0, 0, 0, 0},
		{12, 34, 56, 78},
		{255, 255, 255, 1},
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := colors[(x+y)%len(colors)]
			require.NoError(t, b.Set(x, y, c))
			got, err := b.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, c, got, "pixel (%d,%d)", x, y)
		}
	}
}

func TestBuffer_SetDoesNotTouchNeighbours(t *testing.T) {
	b := newFilledBuffer(t, 3, 3, White)
	require.NoError(t, b.Set(1, 1, Black))

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			got, _ := b.Get(x, y)
			if x == 1 && y == 1 {
				assert.Equal(t, Black, got)
			} else {
				assert.Equal(t, White, got, "pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestBuffer_OutOfBounds(t *testing.T) {
	b := newFilledBuffer(t, 5, 4, White)
	points := [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 4}, {5, 4}, {100, 100}}

	for _, p := range points {
		_, err := b.Get(p[0], p[1])
		assert.ErrorIs(t, err, ErrOutOfBounds, "Get(%d,%d)", p[0], p[1])

		err = b.Set(p[0], p[1], Black)
		assert.ErrorIs(t, err, ErrOutOfBounds, "Set(%d,%d)", p[0], p[1])
	}

	// Failed writes must not clamp onto an edge pixel.
	snap := newFilledBuffer(t, 5, 4, White).Snapshot()
	assert.True(t, b.Equal(snap))
}

func TestBuffer_Clear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {7, 5}, {64, 33}} {
		b, err := New(size[0], size[1])
		require.NoError(t, err)

		c := Color{9, 8, 7, 6}
		b.Clear(c)
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				got, _ := b.Get(x, y)
				require.Equal(t, c, got, "%dx%d pixel (%d,%d)", size[0], size[1], x, y)
			}
		}
	}
}

func TestBuffer_SnapshotRestoreRoundTrip(t *testing.T) {
	b := newFilledBuffer(t, 8, 6, White)
	require.NoError(t, b.Set(2, 3, Color{1, 2, 3, 4}))
	require.NoError(t, b.Set(7, 5, Black))

	before := b.Snapshot()
	require.NoError(t, b.Restore(b.Snapshot()))
	assert.True(t, b.Equal(before))
}

func TestBuffer_SnapshotIsIndependent(t *testing.T) {
	b := newFilledBuffer(t, 4, 4, White)
	snap := b.Snapshot()

	require.NoError(t, b.Set(0, 0, Black))
	got, ok := snap.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, White, got, "snapshot must not alias the live buffer")

	require.NoError(t, b.Restore(snap))
	require.NoError(t, b.Set(1, 1, Black))
	got, _ = snap.At(1, 1)
	assert.Equal(t, White, got, "restore must copy, not adopt, the snapshot pixels")
}

func TestBuffer_RestoreDimensionMismatch(t *testing.T) {
	b := newFilledBuffer(t, 4, 4, White)
	other := newFilledBuffer(t, 4, 5, Black)
	before := b.Snapshot()

	err := b.Restore(other.Snapshot())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.True(t, b.Equal(before), "failed restore must leave the buffer untouched")

	assert.ErrorIs(t, b.Restore(nil), ErrDimensionMismatch)
}

func TestBuffer_View(t *testing.T) {
	b := newFilledBuffer(t, 3, 2, Color{10, 20, 30, 40})
	view := b.View()

	assert.Equal(t, b.Bounds(), view.Bounds())
	assert.Equal(t, b.Image().Pix, view.Pix)

	view.Pix[0] = 0xFF
	got, _ := b.Get(0, 0)
	assert.Equal(t, Color{10, 20, 30, 40}, got, "view must be a copy")
}

func TestSnapshot_Accessors(t *testing.T) {
	b := newFilledBuffer(t, 5, 2, Black)
	snap := b.Snapshot()

	assert.Equal(t, 5, snap.Width())
	assert.Equal(t, 2, snap.Height())
	assert.Equal(t, 5*2*4, snap.Size())

	_, ok := snap.At(5, 0)
	assert.False(t, ok)

	img := snap.Image()
	assert.Equal(t, b.Image().Pix, img.Pix)
}
