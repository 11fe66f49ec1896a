package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/accounts/abi/abigen"
	"github.com/shamank/ora-sdk-go/pkg/oracle"
	"github.com/spf13/pflag"
)

func main() {
	out := pflag.StringP("out", "o", "", "output file (default <module>/pkg/oracle/bindings/prompt.go)")
	pkg := pflag.String("pkg", "bindings", "package name of the generated file")
	pflag.Parse()

	bindContent, err := generate(*pkg)
	if err != nil {
		log.Fatalf("Failed to generate binding: %v", err)
	}

	outPath := *out
	if outPath == "" {
		root, err := moduleRoot()
		if err != nil {
			log.Fatalf("Failed to locate module root: %v", err)
		}
		outPath = filepath.Join(root, "pkg", "oracle", "bindings", "prompt.go")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := os.WriteFile(outPath, []byte(bindContent), 0o600); err != nil {
		log.Fatalf("Failed to write ABI binding: %v", err)
	}
}

// generate renders abigen bindings for the Prompt contract. No bytecode is
// embedded: the contract is only ever called, never deployed from Go.
func generate(pkg string) (string, error) {
	return abigen.Bind(
		[]string{"Prompt"},
		[]string{oracle.PromptABIJSON()},
		[]string{""},
		nil, pkg, nil, nil)
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir, nil
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", fmt.Errorf("go.mod not found from %q", dir)
		}
		dir = next
	}
}
