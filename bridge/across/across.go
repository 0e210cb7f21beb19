// Package across implements the bridge plugin on top of Across v3 spoke pools.
package across

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ClipFinance/xchain-mint/bridge"
	"github.com/ClipFinance/xchain-mint/chains/evm"
	"github.com/ClipFinance/xchain-mint/chains/evm/utils"
	"github.com/ClipFinance/xchain-mint/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultAPIURL is the Across testnet API.
	DefaultAPIURL = "https://testnet.across.to/api"

	defaultHTTPTimeout = 15 * time.Second
	// Used when the API leaves fillDeadline unset.
	defaultFillWindow = 6 * time.Hour
)

var spokePool = utils.MustParseABI(spokePoolABI)

// Plugin encodes Across v3 deposits.
type Plugin struct {
	baseURL    string
	httpClient *http.Client
	gasLimit   uint64
	logger     *logrus.Logger
}

// NewPlugin creates an Across plugin. A nil httpClient gets a client with a short timeout.
//
// Parameters:
// - baseURL: the Across API root, e.g. https://testnet.across.to/api.
// - gasLimit: the gas limit set on every encoded call.
// - httpClient: the HTTP client, may be nil.
// - logger: the logger for logging purposes.
//
// Returns:
// - *Plugin: the plugin.
func NewPlugin(baseURL string, gasLimit uint64, httpClient *http.Client, logger *logrus.Logger) *Plugin {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Plugin{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		gasLimit:   gasLimit,
		logger:     logger,
	}
}

// flexUint accepts both quoted and bare JSON integers.
type flexUint struct {
	*big.Int
}

func (f *flexUint) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		f.Int = new(big.Int)
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return errors.Errorf("invalid integer %s", string(data))
	}
	f.Int = v
	return nil
}

func (f flexUint) asUint32() uint32 {
	if f.Int == nil || !f.Int.IsUint64() || f.Int.Uint64() > uint64(^uint32(0)) {
		return 0
	}
	return uint32(f.Int.Uint64())
}

type suggestedFees struct {
	TotalRelayFee struct {
		Total flexUint `json:"total"`
	} `json:"totalRelayFee"`
	Timestamp           flexUint       `json:"timestamp"`
	SpokePoolAddress    common.Address `json:"spokePoolAddress"`
	ExclusiveRelayer    common.Address `json:"exclusiveRelayer"`
	ExclusivityDeadline flexUint       `json:"exclusivityDeadline"`
	FillDeadline        flexUint       `json:"fillDeadline"`
	IsAmountTooLow      bool           `json:"isAmountTooLow"`
}

type apiError struct {
	Message string `json:"message"`
}

// Encode quotes the transfer and returns approve + depositV3 on the source chain.
func (p *Plugin) Encode(ctx context.Context, params bridge.Params) (*bridge.Result, error) {
	if params.Amount == nil || params.Amount.Sign() <= 0 {
		return nil, errors.New("bridge amount must be positive")
	}

	fees, err := p.suggestedFees(ctx, params)
	if err != nil {
		return nil, err
	}
	if fees.IsAmountTooLow {
		return nil, errors.Errorf("amount %s is below the Across minimum", params.Amount)
	}
	if fees.SpokePoolAddress == (common.Address{}) {
		return nil, errors.New("across returned no spoke pool")
	}

	relayFee := fees.TotalRelayFee.Total.Int
	if relayFee == nil {
		relayFee = new(big.Int)
	}
	output := new(big.Int).Sub(params.Amount, relayFee)
	if output.Sign() <= 0 {
		return nil, errors.Errorf("relay fee %s exceeds amount %s", relayFee, params.Amount)
	}

	quoteTimestamp := fees.Timestamp.asUint32()
	fillDeadline := fees.FillDeadline.asUint32()
	if fillDeadline == 0 {
		fillDeadline = quoteTimestamp + uint32(defaultFillWindow/time.Second)
	}

	approve, err := evm.EncodeApprove(fees.SpokePoolAddress, params.Amount)
	if err != nil {
		return nil, err
	}

	deposit, err := spokePool.Pack("depositV3",
		params.Account,
		params.Account,
		params.InputToken,
		params.OutputToken,
		params.Amount,
		output,
		new(big.Int).SetUint64(params.DestinationChainID),
		fees.ExclusiveRelayer,
		quoteTimestamp,
		fillDeadline,
		fees.ExclusivityDeadline.asUint32(),
		[]byte{},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack depositV3 data")
	}

	p.logger.WithFields(logrus.Fields{
		"from":      params.SourceChainID,
		"to":        params.DestinationChainID,
		"amount":    params.Amount.String(),
		"relayFee":  relayFee.String(),
		"spokePool": fees.SpokePoolAddress.Hex(),
	}).Debug("Encoded Across deposit")

	return &bridge.Result{
		Step: types.BatchTx(params.SourceChainID,
			types.RawTx{To: params.InputToken, Data: approve, Value: new(big.Int), GasLimit: p.gasLimit},
			types.RawTx{To: fees.SpokePoolAddress, Data: deposit, Value: new(big.Int), GasLimit: p.gasLimit},
		),
		OutputAmount: output,
	}, nil
}

func (p *Plugin) suggestedFees(ctx context.Context, params bridge.Params) (*suggestedFees, error) {
	query := url.Values{}
	query.Set("inputToken", params.InputToken.Hex())
	query.Set("outputToken", params.OutputToken.Hex())
	query.Set("originChainId", strconv.FormatUint(params.SourceChainID, 10))
	query.Set("destinationChainId", strconv.FormatUint(params.DestinationChainID, 10))
	query.Set("amount", params.Amount.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/suggested-fees?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query suggested fees")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read suggested fees")
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, errors.Errorf("across api error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, errors.Errorf("across api error (%d)", resp.StatusCode)
	}

	var fees suggestedFees
	if err := json.Unmarshal(body, &fees); err != nil {
		return nil, errors.Wrap(err, "failed to decode suggested fees")
	}
	return &fees, nil
}
