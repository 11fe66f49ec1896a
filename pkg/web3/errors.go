package web3

import "github.com/pkg/errors"

var (
	// ErrInvalidAddress is returned when a contract or account address fails
	// format validation. The wrapping message carries the offending value.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrUnsupportedABI is returned before any network call when the bound ABI
	// descriptor does not declare the method an operation needs.
	ErrUnsupportedABI = errors.New("unsupported abi")
	// ErrNoSender is returned by Contract.Send when neither a local signer nor a
	// node-managed account can submit the transaction.
	ErrNoSender = errors.New("no transaction sender available")
	// ErrNotLinked is returned when a contract is used before being linked to a Context.
	ErrNotLinked = errors.New("contract is not linked to a context")
	// ErrPluginExists is returned when a namespace is already taken on a Context.
	ErrPluginExists = errors.New("plugin already registered")
	// ErrPluginNotFound is returned by Resolve when no plugin uses the namespace.
	ErrPluginNotFound = errors.New("plugin not found")
)
