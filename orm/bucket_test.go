package orm

import (
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstRef indexes a MultiRef by its lowest reference
func firstRef(obj Object) ([]byte, error) {
	mr, ok := obj.Value().(*MultiRef)
	if !ok {
		return nil, errors.WithType(errors.ErrType, obj.Value())
	}
	return mr.Refs[0], nil
}

func newTestBucket(unique bool) Bucket {
	return NewBucket("refs", NewSimpleObj(nil, new(MultiRef))).
		WithIndex("first", firstRef, unique)
}

func mustObj(t *testing.T, key string, refs ...string) Object {
	t.Helper()
	raw := make([][]byte, len(refs))
	for i, r := range refs {
		raw[i] = []byte(r)
	}
	mr, err := NewMultiRef(raw...)
	require.NoError(t, err)
	return NewSimpleObj([]byte(key), mr)
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket(false)

	obj := mustObj(t, "one", "b", "a")
	require.NoError(t, b.Save(db, obj))

	got, err := b.Get(db, []byte("one"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, got.Value().(*MultiRef).Refs)

	has, err := b.Has(db, []byte("one"))
	require.NoError(t, err)
	assert.True(t, has)

	missing, err := b.Get(db, []byte("two"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, b.Delete(db, []byte("one")))
	got, err = b.Get(db, []byte("one"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket(false)

	err := b.Save(db, NewSimpleObj([]byte("empty"), new(MultiRef)))
	assert.True(t, errors.ErrEmpty.Is(err))

	err = b.Save(db, NewSimpleObj(nil, new(MultiRef)))
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestBucketIndexes(t *testing.T) {
	cases := map[string]struct {
		unique   bool
		wantErr  *errors.Error
		wantKeys []string
	}{
		"unique index rejects a second object": {
			unique:   true,
			wantErr:  errors.ErrDuplicate,
			wantKeys: []string{"one"},
		},
		"multi index keeps both objects": {
			unique:   false,
			wantKeys: []string{"one", "two"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := newTestBucket(tc.unique)

			require.NoError(t, b.Save(db, mustObj(t, "one", "x")))
			err := b.Save(db, mustObj(t, "two", "x", "y"))
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			} else {
				require.NoError(t, err)
			}

			objs, err := b.GetIndexed(db, "first", []byte("x"))
			require.NoError(t, err)
			var keys []string
			for _, o := range objs {
				keys = append(keys, string(o.Key()))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestIndexFollowsUpdatesAndDeletes(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket(false)

	require.NoError(t, b.Save(db, mustObj(t, "one", "x")))
	require.NoError(t, b.Save(db, mustObj(t, "one", "z")))

	objs, err := b.GetIndexed(db, "first", []byte("x"))
	require.NoError(t, err)
	assert.Empty(t, objs)

	objs, err = b.GetIndexed(db, "first", []byte("z"))
	require.NoError(t, err)
	assert.Len(t, objs, 1)

	require.NoError(t, b.Delete(db, []byte("one")))
	objs, err = b.GetIndexed(db, "first", []byte("z"))
	require.NoError(t, err)
	assert.Empty(t, objs)

	_, err = b.GetIndexed(db, "unknown", []byte("z"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestBucketQueries(t *testing.T) {
	db := store.MemStore()
	b := newTestBucket(false)
	require.NoError(t, b.Save(db, mustObj(t, "aa", "x")))
	require.NoError(t, b.Save(db, mustObj(t, "ab", "x")))
	require.NoError(t, b.Save(db, mustObj(t, "b", "y")))

	qr := timelock.NewQueryRouter()
	b.Register("", qr)

	res, err := qr.Handler("/refs").Query(db, timelock.KeyQueryMod, []byte("aa"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, b.DBKey([]byte("aa")), res[0].Key)

	res, err = qr.Handler("/refs").Query(db, timelock.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Handler("/refs/first").Query(db, timelock.KeyQueryMod, []byte("x"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Handler("/refs").Query(db, timelock.KeyQueryMod, []byte("zz"))
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestPrefixRangeEnd(t *testing.T) {
	assert.Equal(t, []byte("b"), prefixRangeEnd([]byte("a")))
	assert.Equal(t, []byte{1}, prefixRangeEnd([]byte{0, 255}))
	assert.Nil(t, prefixRangeEnd([]byte{255, 255}))
	assert.Nil(t, prefixRangeEnd(nil))
}
