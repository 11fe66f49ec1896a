package oracle

import (
	_ "embed"
	"sync"

	"github.com/shamank/ora-sdk-go/pkg/web3"
)

// Method and event names of the Prompt contract.
const (
	MethodGetAIResult       = "getAIResult"
	MethodEstimateFee       = "estimateFee"
	MethodCalculateAIResult = "calculateAIResult"

	EventPromptRequest  = "promptRequest"
	EventPromptsUpdated = "promptsUpdated"
)

//go:embed prompt_abi.json
var promptABIJSON string

var (
	defaultABIOnce sync.Once
	defaultABI     *web3.Descriptor
)

// PromptABIJSON returns the JSON ABI of the Prompt contract.
func PromptABIJSON() string {
	return promptABIJSON
}

// DefaultABI returns the parsed Prompt contract ABI. The same descriptor is
// shared by every caller.
func DefaultABI() *web3.Descriptor {
	defaultABIOnce.Do(func() {
		defaultABI = web3.MustParseDescriptor(promptABIJSON)
	})
	return defaultABI
}
