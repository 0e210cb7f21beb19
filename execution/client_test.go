package execution

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var (
	testIntentHash = common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
	testExecHash   = common.HexToHash("0x2222222222222222222222222222222222222222222222222222222222222222")
)

func testIntent() *types.Intent {
	return types.BuildIntent(types.AccountRef{Type: "biconomy-v2"}, []types.Step{
		types.BatchTx(84532, types.RawTx{To: common.HexToAddress("0x01"), Value: big.NewInt(0), GasLimit: 100000}),
	}, types.FeePayment{ChainID: 11155111, Token: "USDC"})
}

func TestQuoteAndExecute(t *testing.T) {
	var executed executeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/quote":
			var intent types.Intent
			if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
				t.Errorf("decode intent: %v", err)
			}
			_ = json.NewEncoder(w).Encode(types.Quote{
				IntentHash:  testIntentHash,
				Intent:      intent,
				PaymentInfo: types.PaymentInfo{ChainID: 11155111, Token: "USDC", Amount: big.NewInt(42)},
			})
		case "/execute":
			if err := json.NewDecoder(r.Body).Decode(&executed); err != nil {
				t.Errorf("decode execute: %v", err)
			}
			_ = json.NewEncoder(w).Encode(types.ExecuteResponse{ExecutionHash: testExecHash})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", srv.Client(), testLogger())

	quote, err := client.GetQuote(context.Background(), testIntent())
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if quote.IntentHash != testIntentHash || quote.Intent.Fee.Token != "USDC" || len(quote.Intent.Steps) != 1 {
		t.Fatalf("unexpected quote %+v", quote)
	}

	sig := make([]byte, 65)
	sig[64] = 27
	resp, err := client.Execute(context.Background(), quote, sig)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.ExecutionHash != testExecHash {
		t.Fatalf("unexpected execution hash %s", resp.ExecutionHash.Hex())
	}
	if executed.Quote == nil || executed.Quote.IntentHash != testIntentHash || hexutil.Encode(executed.Signature) != hexutil.Encode(sig) {
		t.Fatalf("unexpected execute payload %+v", executed)
	}
}

func TestQuoteSurfacesNodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"message":"insufficient fee balance"}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil, testLogger()).GetQuote(context.Background(), testIntent())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Message != "insufficient fee balance" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestExecuteRejectsEmptySignature(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", nil, testLogger())
	if _, err := client.Execute(context.Background(), &types.Quote{IntentHash: testIntentHash}, nil); err == nil {
		t.Fatal("expected error")
	}
}
