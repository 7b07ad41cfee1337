// Package rpc provides a typed HTTP client for the node API, used by the
// miner and other external tooling.
package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/krewshul/uclcoin/internal/models"
)

// Client talks to a node's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the node at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *Client) post(path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr ErrorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("node returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("node returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Version returns the node's version string.
func (c *Client) Version() (string, error) {
	var v VersionResponse
	if err := c.get("/version", &v); err != nil {
		return "", err
	}
	return v.Version, nil
}

// Balance returns the confirmed balance of an address.
func (c *Client) Balance(address string) (int64, error) {
	var b BalanceResponse
	if err := c.get("/api/v1/balance/"+address, &b); err != nil {
		return 0, err
	}
	return b.Balance, nil
}

// PendingBalance returns the pool-adjusted balance of an address.
func (c *Client) PendingBalance(address string) (int64, error) {
	var b BalanceResponse
	if err := c.get("/api/v1/balance/"+address+"/pending", &b); err != nil {
		return 0, err
	}
	return b.Balance, nil
}

// LatestBlock returns the chain's latest block.
func (c *Client) LatestBlock() (models.Block, error) {
	var b models.Block
	if err := c.get("/api/v1/blocks/latest", &b); err != nil {
		return models.Block{}, err
	}
	return b, nil
}

// MinableBlock returns a block candidate rewarding address and the
// difficulty its hash must meet.
func (c *Client) MinableBlock(address string) (models.Block, int, error) {
	var m MinableBlockResponse
	if err := c.get("/api/v1/blocks/minable/"+address, &m); err != nil {
		return models.Block{}, 0, err
	}
	return m.Block, m.Difficulty, nil
}

// SubmitBlock submits a mined block for validation and chain extension.
func (c *Client) SubmitBlock(block models.Block) error {
	return c.post("/api/v1/blocks", block, nil)
}

// SubmitTransaction submits a signed transaction to the pending pool.
func (c *Client) SubmitTransaction(tx models.Transaction) error {
	return c.post("/api/v1/transactions", tx, nil)
}

// PendingTransactions returns the node's pending pool.
func (c *Client) PendingTransactions() ([]models.Transaction, error) {
	var p PendingTransactionsResponse
	if err := c.get("/api/v1/transactions/pending", &p); err != nil {
		return nil, err
	}
	return p.Transactions, nil
}

// RemovePendingTransaction withdraws a pending transaction by hash.
func (c *Client) RemovePendingTransaction(txHash string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/api/v1/transactions/"+txHash, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeResponse(resp, nil)
}
