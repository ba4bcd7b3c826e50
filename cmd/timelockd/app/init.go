package app

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/crypto"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/lock"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// The first argument is the ticker of an asset issued to that account.
// The second is the account address. If none is given, a key is generated
// and printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "GLD"
	if len(args) > 0 {
		ticker = args[0]
	}

	var addr timelock.Address
	if len(args) > 1 {
		a, err := timelock.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		addr = a
	} else {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	opts := fmt.Sprintf(`
          {
            "cash": [
              {"address": "%s", "balance": 123456789}
            ],
            "token": [
              {"issuer": "%s", "ticker": "%s", "supply": 1000000000, "holders": []}
            ],
            "conf": {
              "lock": {
                "metadata": {"schema": 1},
                "max_description_length": %d,
                "record_deposit": 0
              }
            }
          }
	`, addr, addr, ticker, lock.DefaultMaxDescriptionLength)
	return []byte(opts), nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
func GenerateCoinKey() (timelock.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(err, "cannot serialize keys")
	}
	return addr, string(keys), nil
}
