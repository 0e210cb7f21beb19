package signer

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestSignRecoversAddress(t *testing.T) {
	s, err := NewSignerFromHex("0x" + testKey)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	msg := crypto.Keccak256([]byte("intent"))
	sig, err := s.Sign(msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if len(sig) != 65 || (sig[64] != 27 && sig[64] != 28) {
		t.Fatalf("unexpected signature %x", sig)
	}

	recoverable := make([]byte, 65)
	copy(recoverable, sig)
	recoverable[64] -= 27
	pub, err := crypto.SigToPub(PersonalMessageHash(msg), recoverable)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if crypto.PubkeyToAddress(*pub) != s.Address() {
		t.Fatalf("recovered %s, want %s", crypto.PubkeyToAddress(*pub).Hex(), s.Address().Hex())
	}
}

func TestNewSignerFromHexRejectsGarbage(t *testing.T) {
	if _, err := NewSignerFromHex("not-a-key"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewSigner(nil); err == nil {
		t.Fatal("expected error for nil key")
	}
}
