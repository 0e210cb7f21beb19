package wallet

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ClipFinance/xchain-mint/chains/evm/signer"
	commonerrors "github.com/ClipFinance/xchain-mint/common/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const testKey = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func recoverSigner(t *testing.T, raw, sig []byte) common.Address {
	t.Helper()
	s := make([]byte, len(sig))
	copy(s, sig)
	s[64] -= 27
	pub, err := crypto.SigToPub(signer.PersonalMessageHash(raw), s)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	return crypto.PubkeyToAddress(*pub)
}

func TestFromOptionsWithoutWallet(t *testing.T) {
	w, err := FromOptions(context.Background(), Options{}, testLogger())
	if w != nil {
		t.Fatal("expected no wallet")
	}
	if !errors.Is(err, commonerrors.ErrWalletUnavailable) {
		t.Fatalf("expected wallet unavailable, got %v", err)
	}
}

func TestKeyWallet(t *testing.T) {
	w, err := FromOptions(context.Background(), Options{PrivateKey: testKey}, testLogger())
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}

	addrs, err := w.RequestAddresses(context.Background())
	if err != nil || len(addrs) != 1 {
		t.Fatalf("request addresses: %v %v", addrs, err)
	}

	hash := crypto.Keccak256([]byte("itx"))
	sig, err := w.SignMessage(context.Background(), addrs[0], hash)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := recoverSigner(t, hash, sig); got != addrs[0] {
		t.Fatalf("signature recovers to %s", got.Hex())
	}

	if _, err := w.SignMessage(context.Background(), common.HexToAddress("0x01"), hash); err == nil {
		t.Fatal("expected error for foreign account")
	}
}

// walletNode answers eth_requestAccounts and personal_sign like an injected provider.
func walletNode(t *testing.T, s signer.Signer) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}

		var result any
		switch req.Method {
		case "eth_requestAccounts":
			result = []string{s.Address().Hex()}
		case "personal_sign":
			var data hexutil.Bytes
			if err := json.Unmarshal(req.Params[0], &data); err != nil {
				t.Errorf("params: %v", err)
			}
			sig, err := s.Sign(data)
			if err != nil {
				t.Errorf("sign: %v", err)
			}
			result = hexutil.Bytes(sig)
		default:
			t.Errorf("unexpected method %s", req.Method)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
}

func TestRPCWallet(t *testing.T) {
	s, err := signer.NewSignerFromHex(testKey)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	srv := walletNode(t, s)
	defer srv.Close()

	w, err := FromOptions(context.Background(), Options{RPCURL: srv.URL}, testLogger())
	if err != nil {
		t.Fatalf("wallet: %v", err)
	}
	defer w.(*RPCWallet).Close()

	addrs, err := w.RequestAddresses(context.Background())
	if err != nil || len(addrs) != 1 || addrs[0] != s.Address() {
		t.Fatalf("request addresses: %v %v", addrs, err)
	}

	hash := crypto.Keccak256([]byte("itx"))
	sig, err := w.SignMessage(context.Background(), addrs[0], hash)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if got := recoverSigner(t, hash, sig); got != s.Address() {
		t.Fatalf("signature recovers to %s", got.Hex())
	}
}
