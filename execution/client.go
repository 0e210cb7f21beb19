// Package execution is the client of the hosted intent execution node.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultHTTPTimeout = 30 * time.Second

// Service quotes and executes intents.
type Service interface {
	// GetQuote prices intent and returns the hash the owner must sign.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - intent: the intent to price.
	//
	// Returns:
	// - *types.Quote: the single-use quote.
	// - error: an error if the node rejects the intent.
	GetQuote(ctx context.Context, intent *types.Intent) (*types.Quote, error)

	// Execute submits a signed quote.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - quote: the quote returned by GetQuote.
	// - signature: the owner's signature over quote.IntentHash.
	//
	// Returns:
	// - *types.ExecuteResponse: the execution identifier.
	// - error: an error if the node rejects the submission.
	Execute(ctx context.Context, quote *types.Quote, signature []byte) (*types.ExecuteResponse, error)
}

// APIError is a non-2xx answer from the node.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("execution node error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("execution node error (%d): %s", e.StatusCode, e.Message)
}

// Client is the HTTP implementation of Service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a node client. A nil httpClient gets a client with a default timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

type executeRequest struct {
	Quote     *types.Quote  `json:"quote"`
	Signature hexutil.Bytes `json:"signature"`
}

func (c *Client) GetQuote(ctx context.Context, intent *types.Intent) (*types.Quote, error) {
	if intent == nil {
		return nil, errors.New("intent is nil")
	}

	var quote types.Quote
	if err := c.post(ctx, "/quote", intent, &quote); err != nil {
		return nil, errors.Wrap(err, "failed to get quote")
	}
	if quote.IntentHash == (common.Hash{}) {
		return nil, errors.New("node returned a quote without intent hash")
	}

	c.logger.WithFields(logrus.Fields{
		"intentHash": quote.IntentHash.Hex(),
		"feeChain":   quote.PaymentInfo.ChainID,
		"feeToken":   quote.PaymentInfo.Token,
	}).Debug("Received quote")

	return &quote, nil
}

func (c *Client) Execute(ctx context.Context, quote *types.Quote, signature []byte) (*types.ExecuteResponse, error) {
	if quote == nil {
		return nil, errors.New("quote is nil")
	}
	if len(signature) == 0 {
		return nil, errors.New("signature is empty")
	}

	var resp types.ExecuteResponse
	if err := c.post(ctx, "/execute", executeRequest{Quote: quote, Signature: signature}, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to execute intent")
	}
	if resp.ExecutionHash == (common.Hash{}) {
		return nil, errors.New("node returned an empty execution hash")
	}

	return &resp, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "perform request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
