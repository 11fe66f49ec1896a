package oracle

import "testing"

func TestParseModel(t *testing.T) {
	cases := map[string]Model{
		"stable-diffusion": StableDiffusion,
		"Stable_Diffusion": StableDiffusion,
		"llama2":           Llama2,
		" GROK ":           Grok,
		"openlm":           OpenLM,
		"50":               StableDiffusion,
		"77":               Model(77),
	}
	for in, want := range cases {
		got, err := ParseModel(in)
		if err != nil {
			t.Fatalf("ParseModel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseModel(%q) = %d, want %d", in, got, want)
		}
	}
	if _, err := ParseModel("gpt-9000"); err == nil {
		t.Fatal("expected error for unknown name")
	}
}

func TestModelString(t *testing.T) {
	if StableDiffusion.String() != "stable-diffusion" {
		t.Fatalf("got %q", StableDiffusion.String())
	}
	if Model(7).String() != "model(7)" {
		t.Fatalf("got %q", Model(7).String())
	}
	if StableDiffusion.BigInt().Int64() != 50 {
		t.Fatal("BigInt mismatch")
	}
}

func TestModelsSorted(t *testing.T) {
	got := Models()
	want := []Model{Grok, Llama2, OpenLM, StableDiffusion}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestDefaultABI(t *testing.T) {
	d := DefaultABI()
	if d != DefaultABI() {
		t.Fatal("DefaultABI should be shared")
	}
	for _, m := range []string{MethodGetAIResult, MethodEstimateFee, MethodCalculateAIResult} {
		if !d.Has(m) {
			t.Fatalf("default abi lacks %s", m)
		}
	}
	if !d.ABI().Methods[MethodCalculateAIResult].IsPayable() {
		t.Fatal("calculateAIResult must be payable")
	}
	if !d.ABI().Methods[MethodGetAIResult].IsConstant() {
		t.Fatal("getAIResult must be a view")
	}
	for _, e := range []string{EventPromptRequest, EventPromptsUpdated} {
		if _, ok := d.Event(e); !ok {
			t.Fatalf("default abi lacks event %s", e)
		}
	}
}

func TestPromptAddress(t *testing.T) {
	if a, ok := PromptAddress("Mainnet"); !ok || a != PromptAddressMainnet {
		t.Fatalf("mainnet = %q %v", a, ok)
	}
	if a, ok := PromptAddress("sepolia"); !ok || a != PromptAddressSepolia {
		t.Fatalf("sepolia = %q %v", a, ok)
	}
	if _, ok := PromptAddress("goerli"); ok {
		t.Fatal("unexpected address for goerli")
	}
}
