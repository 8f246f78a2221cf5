// Package ethrpc is a minimal JSON-RPC 2.0 client for the probe
// methods used when fingerprinting Ethereum nodes.
package ethrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	maxRetryAttempts     = 3
	jitterMultiplier     = 2
	codeMethodNotFound   = -32601
	defaultClientTimeout = 10 * time.Second
)

// RPCError is an error object returned by the remote node.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type Client struct {
	HTTPClient *http.Client
	Endpoint   string
	UserAgent  string
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		Endpoint:   endpoint,
	}
}

// Call performs a single JSON-RPC request and returns the raw result
// field. A non-2xx status or an error object in the response body is
// an error; transient failures are retried a few times.
func (c *Client) Call(ctx context.Context, method string, params ...any) (gjson.Result, error) {
	if params == nil {
		params = []any{}
	}
	requestBytes, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
		"id":      1,
	})
	if err != nil {
		return gjson.Result{}, err
	}

	resp, err := c.makeRetryRequest(func() (*http.Response, error) {
		// Make sure the request buffer is created inside the retry, as
		// the first attempt consumes it.
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewBuffer(requestBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}

		return c.HTTPClient.Do(req)
	})
	if err != nil {
		return gjson.Result{}, err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}

	parsed := gjson.ParseBytes(body)
	if rpcErr := parsed.Get("error"); rpcErr.Exists() {
		return gjson.Result{}, &RPCError{
			Code:    int(rpcErr.Get("code").Int()),
			Message: rpcErr.Get("message").String(),
		}
	}

	return parsed.Get("result"), nil
}

// makeRetryRequest will retry the provided request up to maxRetryAttempts
// times, with exponential backoff and jitter between attempts.
func (c *Client) makeRetryRequest(action func() (*http.Response, error)) (*http.Response, error) {
	var resp *http.Response
	var err error

	for i := range maxRetryAttempts {
		// rand is initialized with a random seed by default
		jitterAmount := rand.Float64()
		time.Sleep(
			time.Duration(float64(i*i)*float64(time.Second) +
				jitterAmount*jitterMultiplier*float64(time.Second)*float64(i)))

		resp, err = action()
		if err != nil {
			continue
		}

		if resp.StatusCode < 500 {
			if resp.StatusCode >= 400 {
				resp.Body.Close()

				return nil, fmt.Errorf("request to %s failed with status %d", c.Endpoint, resp.StatusCode)
			}

			return resp, nil
		}

		resp.Body.Close()
		err = fmt.Errorf("request to %s failed with status %d", c.Endpoint, resp.StatusCode)
	}

	return nil, err
}

// ClientVersion fetches the node's identification string.
func (c *Client) ClientVersion(ctx context.Context) (string, error) {
	result, err := c.Call(ctx, "web3_clientVersion")
	if err != nil {
		return "", err
	}

	return result.String(), nil
}

// NetworkID fetches the network ID (net_version returns it as a
// decimal string).
func (c *Client) NetworkID(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "net_version")
}

// ChainID fetches the chain ID.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "eth_chainId")
}

// BlockNumber fetches the latest block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "eth_blockNumber")
}

// GasPrice fetches the current gas price in wei.
func (c *Client) GasPrice(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "eth_gasPrice")
}

// PeerCount fetches the number of connected peers.
func (c *Client) PeerCount(ctx context.Context) (uint64, error) {
	return c.callUint(ctx, "net_peerCount")
}

// Syncing reports whether the node is currently syncing; nodes return
// either false or a progress object.
func (c *Client) Syncing(ctx context.Context) (bool, error) {
	result, err := c.Call(ctx, "eth_syncing")
	if err != nil {
		return false, err
	}

	return result.Type != gjson.False, nil
}

// Mining reports whether the node is mining.
func (c *Client) Mining(ctx context.Context) (bool, error) {
	result, err := c.Call(ctx, "eth_mining")
	if err != nil {
		return false, err
	}

	return result.Bool(), nil
}

// SupportsMethod probes whether the node exposes a method: anything
// other than a "method not found" error counts as support.
func (c *Client) SupportsMethod(ctx context.Context, method string) (bool, error) {
	_, err := c.Call(ctx, method)
	if rpcErr, ok := err.(*RPCError); ok {
		return rpcErr.Code != codeMethodNotFound, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (c *Client) callUint(ctx context.Context, method string) (uint64, error) {
	result, err := c.Call(ctx, method)
	if err != nil {
		return 0, err
	}

	return parseQuantity(result)
}

// parseQuantity decodes the integer encodings seen across client
// implementations: hex quantities ("0x1"), decimal strings ("1"), and
// bare JSON numbers.
func parseQuantity(result gjson.Result) (uint64, error) {
	if result.Type == gjson.Number {
		return uint64(result.Int()), nil
	}

	str := result.String()
	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		return strconv.ParseUint(str[2:], 16, 64)
	}

	return strconv.ParseUint(str, 10, 64)
}
