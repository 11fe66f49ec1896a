package oracle

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Model identifies an AI model served by the oracle. It is encoded as uint256.
type Model uint64

const (
	Grok            Model = 9
	Llama2          Model = 11
	OpenLM          Model = 13
	StableDiffusion Model = 50
)

var modelNames = map[Model]string{
	Grok:            "grok",
	Llama2:          "llama2",
	OpenLM:          "openlm",
	StableDiffusion: "stable-diffusion",
}

// Models lists the named models in ascending id order.
func Models() []Model {
	out := make([]Model, 0, len(modelNames))
	for m := range modelNames {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return "model(" + strconv.FormatUint(uint64(m), 10) + ")"
}

// BigInt returns m as the uint256 argument the contract expects.
func (m Model) BigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(m))
}

// ParseModel accepts a model name (case-insensitive, "_" and "-" are
// interchangeable) or a decimal id. Unknown ids are allowed since the
// contract's model set can grow.
func ParseModel(s string) (Model, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, name := range modelNames {
		if name == key {
			return m, nil
		}
	}
	id, err := strconv.ParseUint(key, 10, 64)
	if err != nil {
		return 0, errors.Errorf("unknown model %q", s)
	}
	return Model(id), nil
}
