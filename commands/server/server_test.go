package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/weavetest/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "timelockd")
	require.NoError(t, err)
	return home, func() { os.RemoveAll(home) }
}

func TestConfigRoundTrip(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	conf, err := LoadConfig(home)
	assert.Nil(t, err)
	assert.Equal(t, DefaultConfig(), conf)

	conf.Bind = "tcp://0.0.0.0:9999"
	conf.Debug = true
	conf.LogLevel = "error"
	conf.MetricsBind = ":2112"
	assert.Nil(t, WriteConfig(home, conf))

	got, err := LoadConfig(home)
	assert.Nil(t, err)
	assert.Equal(t, conf, got)
}

func TestLoadConfigRejectsMalformed(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	require.NoError(t, ioutil.WriteFile(ConfigPath(home), []byte("bind = ["), 0644))

	_, err := LoadConfig(home)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestParseFlags(t *testing.T) {
	base := DefaultConfig()
	base.MetricsBind = ":2112"

	cases := map[string]struct {
		args    []string
		want    Config
		wantErr *errors.Error
	}{
		"no flags keep the file values": {
			want: base,
		},
		"flags override": {
			args: []string{"-bind", "tcp://127.0.0.1:1", "-debug", "-log_level", "debug", "-metrics_bind", ""},
			want: Config{Bind: "tcp://127.0.0.1:1", Debug: true, LogLevel: "debug"},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "1"},
			want:    base,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := parseFlags(base, tc.args)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFilterLogger(t *testing.T) {
	_, err := FilterLogger(log.NewNopLogger(), "info")
	assert.Nil(t, err)
	_, err = FilterLogger(log.NewNopLogger(), "loud")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestInitCmd(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	gen := func(args []string) (json.RawMessage, error) {
		return json.RawMessage(`{"cash":[]}`), nil
	}

	assert.Nil(t, InitCmd(gen, log.NewNopLogger(), home, nil))
	require.True(t, fileExists(ConfigPath(home)))

	raw, err := ioutil.ReadFile(filepath.Join(home, "config", GenesisFile))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(raw, &doc))
	var chainID string
	require.NoError(t, json.Unmarshal(doc["chain_id"], &chainID))
	require.True(t, timelock.IsValidChainID(chainID))
	require.JSONEq(t, `{"cash":[]}`, string(doc["app_state"]))

	err = InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.Nil(t, InitCmd(gen, log.NewNopLogger(), home, []string{"-force"}))
}

type optsInit struct {
	got timelock.Options
	err error
}

func (o *optsInit) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	o.got = opts
	return o.err
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()
	path := filepath.Join(home, "genesis.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(`{"chain_id": "test-chain-1", "app_state": {"lock": {"max_description_length": 10}}}`), 0600))

	ok := &optsInit{}
	assert.Nil(t, ValidateGenesis(ok, []string{path}))
	require.Contains(t, ok.got, "lock")

	bad := &optsInit{err: errors.ErrModel}
	assert.IsErr(t, errors.ErrModel, ValidateGenesis(bad, []string{path}))

	broken := filepath.Join(home, "broken.json")
	require.NoError(t, ioutil.WriteFile(broken, []byte(`{"app_state": [`), 0600))
	assert.IsErr(t, errors.ErrInput, ValidateGenesis(ok, []string{broken}))
}
