package web3

import (
	"errors"
	"strings"
	"testing"
)

const counterABI = `[
  {"type":"function","name":"count","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"bump","stateMutability":"payable","inputs":[{"name":"by","type":"uint256"}],"outputs":[]},
  {"type":"event","name":"Bumped","anonymous":false,"inputs":[{"name":"by","type":"uint256","indexed":false}]}
]`

func TestDescriptor(t *testing.T) {
	d := MustParseDescriptor(counterABI)

	if !d.Has("count") || !d.Has("bump") || d.Has("reset") {
		t.Fatal("unexpected method set")
	}
	if _, err := d.Method("count"); err != nil {
		t.Fatalf("Method(count): %v", err)
	}
	_, err := d.Method("reset")
	if !errors.Is(err, ErrUnsupportedABI) {
		t.Fatalf("err = %v, want ErrUnsupportedABI", err)
	}
	if !strings.Contains(err.Error(), "reset") {
		t.Fatalf("error %q does not name the method", err)
	}
	if _, ok := d.Event("Bumped"); !ok {
		t.Fatal("missing event")
	}
}

func TestParseDescriptorInvalid(t *testing.T) {
	if _, err := ParseDescriptor(strings.NewReader("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
	defer func() {
		if recover() == nil {
			t.Fatal("MustParseDescriptor should panic")
		}
	}()
	MustParseDescriptor("{not json")
}
