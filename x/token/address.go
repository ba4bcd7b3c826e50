package token

import (
	"github.com/iov-one/timelock"
)

// ExtensionName is used for the conditions this package derives
const ExtensionName = "token"

// AssetID returns the id of the asset issued by issuer under the ticker.
func AssetID(issuer timelock.Address, ticker string) []byte {
	data := make([]byte, 0, len(issuer)+len(ticker))
	data = append(data, issuer...)
	data = append(data, ticker...)
	return timelock.NewCondition(ExtensionName, "asset", data).Address()
}

// CustodyAddress returns the address of the custody account holding
// units of the asset on behalf of the owner.
func CustodyAddress(owner timelock.Address, assetID []byte) timelock.Address {
	data := make([]byte, 0, len(owner)+len(assetID))
	data = append(data, owner...)
	data = append(data, assetID...)
	return timelock.NewCondition(ExtensionName, "custody", data).Address()
}

func validateAssetID(id []byte) error {
	return timelock.Address(id).Validate()
}
