package gallery

import (
	"github.com/ethereum/go-ethereum/common"
)

const untitledAsset = "Untitled asset"

// Title returns the display title for an asset. It never returns "".
func Title(a Asset) string {
	if a.Name != "" {
		return a.Name
	}

	addr := ShortAddress(a.AssetContract.Address)
	switch {
	case addr != "" && a.TokenID != "":
		return addr + " #" + a.TokenID
	case a.TokenID != "":
		return "#" + a.TokenID
	case addr != "":
		return addr
	default:
		return untitledAsset
	}
}

// ShortAddress shortens a hex address to its checksummed "0xAbCd…1234" form.
// Anything else, such as an ENS name, is returned unchanged.
func ShortAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	hex := common.HexToAddress(addr).Hex()
	return hex[:6] + "…" + hex[len(hex)-4:]
}
