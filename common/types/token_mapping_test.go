package types

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

var (
	usdcSepolia = common.HexToAddress("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238")
	usdcBase    = common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e")
)

func TestNewTokenMapping(t *testing.T) {
	m, err := NewTokenMapping("USDC", 6,
		Deployment{ChainID: 11155111, Address: usdcSepolia},
		Deployment{ChainID: 84532, Address: usdcBase},
	)
	if err != nil {
		t.Fatalf("new mapping: %v", err)
	}

	if got, ok := m.AddressOn(84532); !ok || got != usdcBase {
		t.Fatalf("unexpected base deployment %s %v", got.Hex(), ok)
	}
	if _, ok := m.AddressOn(1); ok {
		t.Fatal("expected mainnet to be unmapped")
	}
	ids := m.ChainIDs()
	if len(ids) != 2 || ids[0] != 11155111 || ids[1] != 84532 {
		t.Fatalf("unexpected chain ids %v", ids)
	}
}

func TestTokenMappingIsImmutable(t *testing.T) {
	m, err := NewTokenMapping("USDC", 6, Deployment{ChainID: 84532, Address: usdcBase})
	if err != nil {
		t.Fatalf("new mapping: %v", err)
	}

	deployments := m.Deployments()
	deployments[0].Address = usdcSepolia

	if got, _ := m.AddressOn(84532); got != usdcBase {
		t.Fatalf("mapping mutated through copy: %s", got.Hex())
	}
}

func TestNewTokenMappingRejectsInvalid(t *testing.T) {
	if _, err := NewTokenMapping("USDC", 6); err == nil {
		t.Fatal("expected error for empty mapping")
	}
	if _, err := NewTokenMapping("USDC", 6,
		Deployment{ChainID: 84532, Address: usdcBase},
		Deployment{ChainID: 84532, Address: usdcSepolia},
	); err == nil {
		t.Fatal("expected error for duplicate chain")
	}
	if _, err := NewTokenMapping("USDC", 6, Deployment{ChainID: 84532}); err == nil {
		t.Fatal("expected error for zero address")
	}
}
