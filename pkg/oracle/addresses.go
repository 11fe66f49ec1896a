package oracle

import "strings"

// Published Prompt contract addresses.
const (
	PromptAddressMainnet = "0xb880d47d3894d99157b52a7f869ab3b1e2d4349d"
	PromptAddressSepolia = "0xe75af5294f4cb4a8423ef8260595a54298c7a2fb"
)

// Network names recognized by PromptAddress.
const (
	NetworkMainnet = "mainnet"
	NetworkSepolia = "sepolia"
)

// PromptAddress returns the published Prompt address for network.
func PromptAddress(network string) (string, bool) {
	switch strings.ToLower(network) {
	case NetworkMainnet:
		return PromptAddressMainnet, true
	case NetworkSepolia:
		return PromptAddressSepolia, true
	}
	return "", false
}
