package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/krewshul/uclcoin/internal/chain"
	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/miner"
	"github.com/krewshul/uclcoin/internal/models"
)

type failingPersister struct{}

func (failingPersister) Save(models.Block) error { return errors.New("disk full") }

func testChain() *chain.Chain {
	return chain.New(chain.Policy{
		CoinsPerBlock:           10,
		MinimumHashDifficulty:   1,
		MaxTransactionsPerBlock: 50,
	})
}

func mineCandidate(t *testing.T, c *chain.Chain, rewardAddress string) models.Block {
	t.Helper()

	candidate := c.MinableBlock(rewardAddress)
	mined, err := miner.Mine(context.Background(), candidate, c.Policy().HashDifficulty(candidate.Index))
	if err != nil {
		t.Fatalf("Mine() failed: %v", err)
	}
	return mined
}

func submitBlock(t *testing.T, engine *gin.Engine, block models.Block) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(block)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// A block the chain accepted but the store could not write must surface as
// 500, with the in-memory chain keeping the block and the pool purged.
func TestSubmitReportsPersistenceFailure(t *testing.T) {
	c := testChain()
	priv, addr, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	if !c.AddBlock(mineCandidate(t, c, addr)) {
		t.Fatal("AddBlock() rejected a freshly mined block")
	}

	_, dest, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	tx, err := crypto.NewTransaction(priv, addr, dest, 5, 0, 100)
	if err != nil {
		t.Fatalf("NewTransaction() failed: %v", err)
	}
	if !c.PushPendingTransaction(tx) {
		t.Fatal("PushPendingTransaction() rejected a valid transaction")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.POST("/blocks", NewBlockHandler(c, failingPersister{}).Submit)

	w := submitBlock(t, engine, mineCandidate(t, c, addr))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Submit() = %d, want 500 when persistence fails", w.Code)
	}
	if got := c.Height(); got != 2 {
		t.Errorf("Height() = %d, want 2 (the chain keeps the accepted block)", got)
	}
	if got := len(c.PendingTransactions()); got != 0 {
		t.Errorf("%d transactions still pending, want the mined ones purged", got)
	}
}
