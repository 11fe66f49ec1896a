package web3

import (
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// Descriptor is a parsed contract interface. It answers method-existence
// questions before anything is encoded or sent.
type Descriptor struct {
	abi abi.ABI
}

// NewDescriptor wraps an already parsed ABI.
func NewDescriptor(a abi.ABI) *Descriptor {
	return &Descriptor{abi: a}
}

// ParseDescriptor reads a JSON ABI definition.
func ParseDescriptor(r io.Reader) (*Descriptor, error) {
	a, err := abi.JSON(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse abi")
	}
	return NewDescriptor(a), nil
}

// MustParseDescriptor is like ParseDescriptor but panics on malformed input.
// It is meant for ABIs compiled into the binary.
func MustParseDescriptor(definition string) *Descriptor {
	d, err := ParseDescriptor(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return d
}

// ABI returns the underlying go-ethereum ABI.
func (d *Descriptor) ABI() abi.ABI {
	return d.abi
}

// Has reports whether the descriptor declares a method called name.
func (d *Descriptor) Has(name string) bool {
	_, ok := d.abi.Methods[name]
	return ok
}

// Method looks up name and fails with ErrUnsupportedABI when it is missing.
func (d *Descriptor) Method(name string) (abi.Method, error) {
	m, ok := d.abi.Methods[name]
	if !ok {
		return abi.Method{}, errors.Wrapf(ErrUnsupportedABI, "provided abi doesn't have %s method", name)
	}
	return m, nil
}

// Event looks up an event by name.
func (d *Descriptor) Event(name string) (abi.Event, bool) {
	ev, ok := d.abi.Events[name]
	return ev, ok
}
