package web3

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shamank/ora-sdk-go/internal/testutil/ethrpc"
)

type stubPlugin struct {
	ns    string
	links []*Context
}

func (p *stubPlugin) Namespace() string { return p.ns }
func (p *stubPlugin) Link(c *Context) { p.links = append(p.links, c) }

type otherPlugin struct{ stubPlugin }

func TestRegisterPlugin(t *testing.T) {
	c := NewContext(&ethrpc.Spy{})
	p := &stubPlugin{ns: "ora"}

	if err := c.RegisterPlugin(p); err != nil {
		t.Fatalf("RegisterPlugin: %v", err)
	}
	if len(p.links) != 1 || p.links[0] != c {
		t.Fatal("plugin was not linked on registration")
	}
	if got, ok := c.Plugin("ora"); !ok || got != p {
		t.Fatal("plugin not reachable by namespace")
	}

	if err := c.RegisterPlugin(&stubPlugin{ns: "ora"}); !errors.Is(err, ErrPluginExists) {
		t.Fatalf("duplicate err = %v, want ErrPluginExists", err)
	}
	if err := c.RegisterPlugin(&stubPlugin{}); err == nil {
		t.Fatal("expected error for empty namespace")
	}

	if err := c.RegisterPlugin(&stubPlugin{ns: "alpha"}); err != nil {
		t.Fatal(err)
	}
	if got := c.Plugins(); !reflect.DeepEqual(got, []string{"alpha", "ora"}) {
		t.Fatalf("Plugins() = %v", got)
	}
}

func TestResolve(t *testing.T) {
	c := NewContext(&ethrpc.Spy{})
	p := &stubPlugin{ns: "ora"}
	if err := c.RegisterPlugin(p); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve[*stubPlugin](c, "ora")
	if err != nil || got != p {
		t.Fatalf("Resolve = %v, %v", got, err)
	}
	if _, err := Resolve[*stubPlugin](c, "missing"); !errors.Is(err, ErrPluginNotFound) {
		t.Fatalf("err = %v, want ErrPluginNotFound", err)
	}
	if _, err := Resolve[*otherPlugin](c, "ora"); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestSetProvider(t *testing.T) {
	first, second := &ethrpc.Spy{}, &ethrpc.Spy{}
	c := NewContext(first)
	if c.Provider() != Provider(first) {
		t.Fatal("unexpected initial provider")
	}
	c.SetProvider(second)
	if c.Provider() != Provider(second) {
		t.Fatal("provider not replaced")
	}
	if c.Signer() != nil {
		t.Fatal("expected no signer by default")
	}
}
