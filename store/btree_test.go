package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, iter Iterator, err error) []Model {
	t.Helper()
	require.NoError(t, err)
	defer iter.Close()

	var res []Model
	for ; iter.Valid(); err = iter.Next() {
		require.NoError(t, err)
		res = append(res, Model{Key: iter.Key(), Value: iter.Value()})
	}
	require.NoError(t, err)
	return res
}

func pairs(kv ...string) []Model {
	var res []Model
	for i := 0; i < len(kv); i += 2 {
		res = append(res, Model{Key: []byte(kv[i]), Value: []byte(kv[i+1])})
	}
	return res
}

func TestCacheWrapGetSetDelete(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("b"), []byte("2")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))
	require.NoError(t, cache.Delete([]byte("a")))

	val, err := cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
	has, err := cache.Has([]byte("c"))
	require.NoError(t, err)
	assert.True(t, has)

	// parent is not modified until write
	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
	has, err = base.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, cache.Write())

	val, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
	val, err = base.Get([]byte("c"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)
}

func TestCacheWrapDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("changed")))
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	cache.Discard()

	val, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)
	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCacheWrapIterators(t *testing.T) {
	base := MemStore()
	for _, m := range pairs("a", "1", "b", "2", "c", "3", "d", "4") {
		require.NoError(t, base.Set(m.Key, m.Value))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("33")))
	require.NoError(t, cache.Set([]byte("bb"), []byte("22")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"all ascending": {
			want: pairs("a", "1", "bb", "22", "c", "33", "d", "4"),
		},
		"all descending": {
			reverse: true,
			want:    pairs("d", "4", "c", "33", "bb", "22", "a", "1"),
		},
		"bounded ascending": {
			start: []byte("b"),
			end:   []byte("d"),
			want:  pairs("bb", "22", "c", "33"),
		},
		"bounded descending": {
			start:   []byte("a"),
			end:     []byte("c"),
			reverse: true,
			want:    pairs("bb", "22", "a", "1"),
		},
		"open end": {
			start: []byte("c"),
			want:  pairs("c", "33", "d", "4"),
		},
		"open start": {
			end:  []byte("bb"),
			want: pairs("a", "1"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got []Model
			if tc.reverse {
				iter, err := cache.ReverseIterator(tc.start, tc.end)
				got = collect(t, iter, err)
			} else {
				iter, err := cache.Iterator(tc.start, tc.end)
				got = collect(t, iter, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	require.NoError(t, inner.Write())

	val, err := outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
	val, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, outer.Write())
	val, err = base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := NewNonAtomicBatch(base)
	require.NoError(t, batch.Set([]byte("x"), []byte("1")))
	require.NoError(t, batch.Delete([]byte("x")))
	assert.Len(t, batch.ShowOps(), 2)

	require.NoError(t, batch.Write())
	assert.Empty(t, batch.ShowOps())
	has, err := base.Has([]byte("x"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSliceIterator(t *testing.T) {
	data := pairs("a", "1", "b", "2")
	iter := NewSliceIterator(data)
	assert.Equal(t, data, collect(t, iter, nil))

	iter = NewSliceIterator(data[:1])
	require.NoError(t, iter.Next())
	assert.False(t, iter.Valid())
	assert.Error(t, iter.Next())

	empty, err := EmptyKVStore{}.Iterator(nil, nil)
	assert.Empty(t, collect(t, empty, err))
}
