package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestBuildIntentCopiesSteps(t *testing.T) {
	steps := []Step{
		BatchTx(11155111, RawTx{To: usdcSepolia}),
		BatchTx(84532, RawTx{To: usdcBase}),
	}
	intent := BuildIntent(AccountRef{Owner: common.HexToAddress("0xabc")}, steps, FeePayment{ChainID: 11155111, Token: "USDC"})

	steps[0].ChainID = 1
	if intent.Steps[0].ChainID != 11155111 {
		t.Fatalf("intent steps alias caller slice")
	}
	if len(intent.Steps) != 2 || intent.Steps[1].ChainID != 84532 {
		t.Fatalf("unexpected steps %+v", intent.Steps)
	}
}

func TestIntentWireFormat(t *testing.T) {
	intent := BuildIntent(AccountRef{Type: "biconomy-v2"}, []Step{
		BatchTx(84532, RawTx{To: usdcBase, Data: []byte{0x12, 0x34}, Value: big.NewInt(0), GasLimit: 100000}),
	}, FeePayment{ChainID: 11155111, Token: "USDC"})

	raw, err := json.Marshal(intent)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	fee := decoded["feeTx"].(map[string]any)
	if fee["token"] != "USDC" {
		t.Fatalf("unexpected fee %v", fee)
	}
	tx := decoded["steps"].([]any)[0].(map[string]any)["txs"].([]any)[0].(map[string]any)
	if tx["data"] != "0x1234" {
		t.Fatalf("unexpected data encoding %v", tx["data"])
	}
}
