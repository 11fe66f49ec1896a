package blockchain

import (
	"testing"
	"time"
)

func TestInitEvm_Unreachable(t *testing.T) {
	start := time.Now()
	_, err := InitEvm("http://127.0.0.1:1", 2*time.Second)
	if err == nil {
		t.Fatal("expected error dialing")
	}
	if time.Since(start) > 6*time.Second {
		t.Fatalf("InitEvm took too long")
	}
}

func TestInitEvm_BadScheme(t *testing.T) {
	if _, err := InitEvm("ftp://example.invalid", time.Second); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestEVMClientClose_Nil(t *testing.T) {
	var evm *EVMClient
	evm.Close()
	(&EVMClient{}).Close()
}
