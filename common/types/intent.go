package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RawTx is a single call executed by the smart account.
type RawTx struct {
	To       common.Address `json:"to"`
	Data     hexutil.Bytes  `json:"data"`
	Value    *big.Int       `json:"value"`
	GasLimit uint64         `json:"gasLimit"`
}

// Step is an ordered batch of calls executed on one chain.
type Step struct {
	ChainID uint64  `json:"chainId"`
	Txs     []RawTx `json:"txs"`
}

// BatchTx builds a step on chainID from txs, preserving their order.
func BatchTx(chainID uint64, txs ...RawTx) Step {
	batch := make([]RawTx, len(txs))
	copy(batch, txs)
	return Step{ChainID: chainID, Txs: batch}
}

// FeePayment tells the execution node where and in which token fees are taken.
type FeePayment struct {
	ChainID uint64 `json:"chainId"`
	Token   string `json:"token"`
}

// AccountRef identifies the smart account an intent executes from.
type AccountRef struct {
	Type    string         `json:"type"`
	Owner   common.Address `json:"owner"`
	Salt    string         `json:"salt"`
	Address common.Address `json:"address"`
}

// Intent is a cross-chain transaction bundle. Steps execute in slice order.
type Intent struct {
	Account AccountRef `json:"account"`
	Steps   []Step     `json:"steps"`
	Fee     FeePayment `json:"feeTx"`
}

// BuildIntent assembles an intent from its steps and fee descriptor.
//
// Parameters:
// - account: the smart account the intent runs from.
// - steps: the ordered steps.
// - fee: the fee payment descriptor.
//
// Returns:
// - *Intent: a fresh intent owning a copy of steps.
func BuildIntent(account AccountRef, steps []Step, fee FeePayment) *Intent {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	return &Intent{
		Account: account,
		Steps:   ordered,
		Fee:     fee,
	}
}
