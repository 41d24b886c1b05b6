package analysis

import (
	"context"
	"encoding/binary"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildImage returns an image with a string at 0x100 and three aligned
// copies of the pointer 0x100+base.
func buildImage(base uint32) []byte {
	buf := make([]byte, 0x200)
	for _, off := range []int{0x0, 0x40, 0x80} {
		binary.LittleEndian.PutUint32(buf[off:], 0x100+base)
	}
	copy(buf[0x100:], "HELLOWORLD\x00")
	return buf
}

func testConfig(ceiling, step uint32, k int) Config {
	cfg := DefaultConfig()
	cfg.SearchCeiling = ceiling
	cfg.SearchStep = step
	cfg.TopK = k
	return cfg
}

func TestSearch_FindsBase(t *testing.T) {
	buf := buildImage(0x2000)
	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)
	require.Equal(t, 1, st.Len())

	got, err := Search(context.Background(), pt, st, testConfig(0x10000, 0x1000, 5))
	require.NoError(t, err)
	require.Len(t, got, 5)

	assert.Equal(t, Candidate{Address: 0x2000, Matches: 3}, got[0])
	for _, c := range got[1:] {
		assert.Equal(t, uint64(0), c.Matches)
	}
}

func TestSearch_DefaultRange(t *testing.T) {
	buf := buildImage(0x08000000)
	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)

	got, err := Search(context.Background(), pt, st, DefaultConfig())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, Candidate{Address: 0x08000000, Matches: 3}, got[0])
}

func TestSearch_BigEndian(t *testing.T) {
	buf := make([]byte, 0x200)
	binary.BigEndian.PutUint32(buf[0x10:], 0x30000+0x100)
	copy(buf[0x100:], "big endian target\x00")

	cfg := testConfig(0x100000, 0x10000, 3)
	cfg.BigEndian = true
	pt := ExtractPointers(buf, cfg.ByteOrder())
	st := ExtractStrings(buf, cfg.MinStringLength)

	got, err := Search(context.Background(), pt, st, cfg)
	require.NoError(t, err)
	assert.Equal(t, Candidate{Address: 0x30000, Matches: 1}, got[0])
}

func TestSearch_AllZero(t *testing.T) {
	buf := make([]byte, 256)
	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)

	assert.Equal(t, 0, st.Len())
	require.Equal(t, 1, pt.Len())
	assert.Equal(t, uint32(64), pt.Count(0))

	got, err := Search(context.Background(), pt, st, testConfig(0x100000, 0x10000, 5))
	require.NoError(t, err)
	require.Len(t, got, 5)
	for _, c := range got {
		assert.Equal(t, uint64(0), c.Matches)
	}
}

func TestSearch_FewerCandidatesThanK(t *testing.T) {
	pt := ExtractPointers(nil, binary.LittleEndian)
	st := ExtractStrings(nil, DefaultMinStringLength)

	got, err := Search(context.Background(), pt, st, testConfig(0x30000, 0x10000, 5))
	require.NoError(t, err)
	assert.Equal(t, []Candidate{
		{Address: 0x00000, Matches: 0},
		{Address: 0x10000, Matches: 0},
		{Address: 0x20000, Matches: 0},
	}, got)
}

func TestSearch_InvalidConfig(t *testing.T) {
	pt := ExtractPointers(nil, binary.LittleEndian)
	st := ExtractStrings(nil, DefaultMinStringLength)

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero step", cfg: testConfig(0x10000, 0, 5)},
		{name: "zero ceiling", cfg: testConfig(0, 0x1000, 5)},
		{name: "zero k", cfg: testConfig(0x10000, 0x1000, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Search(context.Background(), pt, st, tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSearch_Cancelled(t *testing.T) {
	buf := buildImage(0x2000)
	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		cfg := DefaultConfig()
		cfg.Workers = workers
		_, err := Search(ctx, pt, st, cfg)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestScore_SkipsOverflow(t *testing.T) {
	buf := make([]byte, 0x20)
	binary.LittleEndian.PutUint32(buf[0:], 0x8)
	binary.LittleEndian.PutUint32(buf[4:], 0xFFFF0010)
	copy(buf[0x10:], "ABCDEFGH\x00")

	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)
	require.Equal(t, []uint32{0x10}, st.Offsets())

	// 0x10 + 0xFFFFFFF8 wraps to 0x8, which must not count
	assert.Equal(t, uint64(0), Score(pt, st, 0xFFFFFFF8))
	assert.Equal(t, uint64(1), Score(pt, st, 0xFFFF0000))
}

func TestScore_Multiplicity(t *testing.T) {
	buf := make([]byte, 0x100)
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], 0x1000+0x80)
	}
	for i := 5; i < 7; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:], 0x1000+0xa0)
	}
	copy(buf[0x80:], "first string\x00")
	copy(buf[0xa0:], "second string\x00")

	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)
	assert.Equal(t, uint64(7), Score(pt, st, 0x1000))
}

func TestSearch_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 1<<14)
	for i := range buf {
		switch {
		case i%17 == 16:
			buf[i] = 0
		case i%5 == 0:
			buf[i] = byte(rng.Intn(256))
		default:
			buf[i] = byte('a' + rng.Intn(26))
		}
	}
	// a planted base and some noise pointers near it
	for i := 0; i < 64; i++ {
		off := uint32(rng.Intn(len(buf)))
		binary.LittleEndian.PutUint32(buf[i*4*8:], 0x00400000+off)
	}

	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, 4)

	seq := testConfig(0x01000000, 0x10000, 8)
	want, err := Search(context.Background(), pt, st, seq)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 1000} {
		par := seq
		par.Workers = workers
		got, err := Search(context.Background(), pt, st, par)
		require.NoError(t, err)
		assert.Equal(t, matchesOf(want), matchesOf(got), "workers %d", workers)
	}
}

func matchesOf(cs []Candidate) []uint64 {
	out := make([]uint64, len(cs))
	for i, c := range cs {
		out[i] = c.Matches
	}
	return out
}

func TestSearch_SortedDescending(t *testing.T) {
	buf := buildImage(0x50000)
	pt := ExtractPointers(buf, binary.LittleEndian)
	st := ExtractStrings(buf, DefaultMinStringLength)

	got, err := Search(context.Background(), pt, st, testConfig(0x100000, 0x10000, 16))
	require.NoError(t, err)
	assert.True(t, slices.IsSortedFunc(got, func(a, b Candidate) int {
		switch {
		case a.Matches > b.Matches:
			return -1
		case a.Matches < b.Matches:
			return 1
		}
		return 0
	}))
}
