package gconf

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limitConf is a minimal configuration storing a single number.
type limitConf struct {
	Limit int `json:"limit"`
}

func (c *limitConf) Marshal() ([]byte, error) {
	return []byte(strconv.Itoa(c.Limit)), nil
}

func (c *limitConf) Unmarshal(raw []byte) error {
	n, err := strconv.Atoi(string(raw))
	c.Limit = n
	return err
}

func (c *limitConf) Validate() error {
	if c.Limit <= 0 {
		return errors.Wrap(errors.ErrState, "limit must be positive")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got limitConf
	err := Load(db, "lock", &got)
	assert.True(t, errors.ErrNotFound.Is(err))

	require.NoError(t, Save(db, "lock", &limitConf{Limit: 5}))
	require.NoError(t, Load(db, "lock", &got))
	assert.Equal(t, 5, got.Limit)

	raw, err := db.Get([]byte("_c:lock"))
	require.NoError(t, err)
	assert.Equal(t, []byte("5"), raw)

	err = Save(db, "lock", &limitConf{Limit: -1})
	assert.True(t, errors.ErrState.Is(err))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    int
	}{
		"configuration present": {
			genesis: `{"conf": {"lock": {"limit": 3}}}`,
			want:    3,
		},
		"package missing": {
			genesis: `{"conf": {"cash": {"limit": 3}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"lock": {"limit": 0}}}`,
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts timelock.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "lock", &limitConf{})
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)

			var got limitConf
			require.NoError(t, Load(db, "lock", &got))
			assert.Equal(t, tc.want, got.Limit)
		})
	}
}
