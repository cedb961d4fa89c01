package netstack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/logger"
)

var log = logger.NewLogger()

const (
	chainPath = "/chain"
	// upper bound on a peer's /chain body
	maxChainPayload = 64 << 20
)

var (
	ErrBadStatus      = errors.New("unexpected status code")
	ErrLengthMismatch = errors.New("reported length does not match chain")
)

// ChainResponse is the body of GET /chain, the only format nodes exchange.
type ChainResponse struct {
	Chain  []blockchain.Block `json:"chain"`
	Length int                `json:"length"`
}

func NewChainResponse(chain []blockchain.Block) ChainResponse {
	return ChainResponse{Chain: chain, Length: len(chain)}
}

type ChainClient struct {
	http *http.Client
}

func NewChainClient(timeout time.Duration) *ChainClient {
	return &ChainClient{
		http: &http.Client{Timeout: timeout},
	}
}

// FetchChain downloads the full chain of the peer at addr (host:port).
func (c *ChainClient) FetchChain(ctx context.Context, addr string) (*ChainResponse, error) {
	url := fmt.Sprintf("http://%s%s", addr, chainPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrBadStatus, resp.StatusCode, addr)
	}

	var chainResp ChainResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChainPayload)).Decode(&chainResp); err != nil {
		return nil, fmt.Errorf("decode chain from %s: %w", addr, err)
	}
	if len(chainResp.Chain) == 0 {
		return nil, fmt.Errorf("%s: %w", addr, blockchain.ErrEmptyChain)
	}
	if chainResp.Length != len(chainResp.Chain) {
		return nil, fmt.Errorf("%w: %s reported %d, sent %d", ErrLengthMismatch, addr, chainResp.Length, len(chainResp.Chain))
	}
	return &chainResp, nil
}
