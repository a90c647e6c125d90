package crypto

import (
	"bytes"
	"testing"
)

func TestSHA256(t *testing.T) {
	// sha256("abc")
	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

	if h := SHA256Hex([]byte("abc")); h != expected {
		t.Fatalf("SHA256Hex should be %s, not %s", expected, h)
	}

	if !bytes.Equal(SHA256([]byte("abc")), SHA256([]byte("abc"))) {
		t.Fatal("SHA256 should be deterministic")
	}

	if l := len(SHA256([]byte(""))); l != 32 {
		t.Fatalf("SHA256 should return 32 bytes, not %d", l)
	}
}
