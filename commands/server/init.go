package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/timelock/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// GenesisFile is the name of the tendermint genesis file in the config
// directory of the home.
const GenesisFile = "genesis.json"

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the application state into the genesis file of home and
// a default app.toml if none exists. A genesis file that is not present
// is created with a random chain id. An existing app_state is only
// replaced when -force is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	force := len(args) > 0 && args[0] == "-force"
	if force {
		args = args[1:]
	}

	genFile := filepath.Join(home, "config", GenesisFile)
	if !fileExists(genFile) {
		if err := writeEmptyGenesis(genFile); err != nil {
			return err
		}
		logger.Info("Generated genesis file", "path", genFile)
	}

	if !fileExists(ConfigPath(home)) {
		if err := WriteConfig(home, DefaultConfig()); err != nil {
			return err
		}
		logger.Info("Generated app config", "path", ConfigPath(home))
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func writeEmptyGenesis(filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "config directory")
	}
	chainID, err := json.Marshal(fmt.Sprintf("test-chain-%v", cmn.RandStr(6)))
	if err != nil {
		return err
	}
	doc := GenesisDoc{"chain_id": chainID}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "read genesis")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if state, ok := doc["app_state"]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -force to replace it")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
