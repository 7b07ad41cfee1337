package chain

import (
	"testing"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

func TestMinableBlockOnEmptyPool(t *testing.T) {
	c := New(testPolicy())

	candidate := c.MinableBlock(genesisAddressOne)
	if candidate.Index != 1 {
		t.Errorf("Candidate index = %d, want 1", candidate.Index)
	}
	if candidate.PreviousHash != c.LatestBlock().CurrentHash {
		t.Error("Candidate is not linked to the latest block")
	}
	if candidate.Nonce != 0 || candidate.CurrentHash != "" {
		t.Error("Candidate nonce and hash must be left for the miner")
	}

	if len(candidate.Transactions) != 1 {
		t.Fatalf("Candidate has %d transactions, want only the reward", len(candidate.Transactions))
	}
	reward := candidate.Transactions[0]
	if reward.Source != models.CoinbaseAddress {
		t.Errorf("Reward source = %q, want %q", reward.Source, models.CoinbaseAddress)
	}
	if reward.Destination != genesisAddressOne {
		t.Errorf("Reward destination = %q, want %q", reward.Destination, genesisAddressOne)
	}
	if reward.Amount != 10 {
		t.Errorf("Reward amount = %d, want the base reward 10", reward.Amount)
	}
	if reward.Fee != 0 {
		t.Errorf("Reward fee = %d, want 0", reward.Fee)
	}
}

func TestMinableBlockCollectsFees(t *testing.T) {
	c := New(testPolicy())
	priv, addr := newFundedKey(t, c)

	fees := []uint64{1, 2}
	for i, fee := range fees {
		tx, err := crypto.NewTransaction(priv, addr, genesisAddressOne, 1, fee, 100+uint64(i))
		if err != nil {
			t.Fatalf("NewTransaction() failed: %v", err)
		}
		if !c.PushPendingTransaction(tx) {
			t.Fatalf("PushPendingTransaction() rejected transaction %d", i)
		}
	}

	candidate := c.MinableBlock(genesisAddressTwo)
	if len(candidate.Transactions) != 3 {
		t.Fatalf("Candidate has %d transactions, want 3", len(candidate.Transactions))
	}
	reward := candidate.Transactions[len(candidate.Transactions)-1]
	if reward.Amount != 13 {
		t.Errorf("Reward amount = %d, want base 10 + fees 3", reward.Amount)
	}
}

func TestMinableBlockHonorsCap(t *testing.T) {
	policy := testPolicy()
	policy.MaxTransactionsPerBlock = 3
	c := New(policy)
	priv, addr := newFundedKey(t, c)

	// Each spend passes individually against the confirmed balance of 10
	for i := uint64(0); i < 5; i++ {
		tx, err := crypto.NewTransaction(priv, addr, genesisAddressOne, 1, 0, 100+i)
		if err != nil {
			t.Fatalf("NewTransaction() failed: %v", err)
		}
		if !c.PushPendingTransaction(tx) {
			t.Fatalf("PushPendingTransaction() rejected transaction %d", i)
		}
	}

	candidate := c.MinableBlock(genesisAddressTwo)
	if got := len(candidate.Transactions); got != 4 {
		t.Errorf("Candidate has %d transactions, want cap 3 + reward", got)
	}
}

func TestMinableBlockSkipsConfirmed(t *testing.T) {
	c := New(testPolicy())
	priv, addr := newFundedKey(t, c)

	tx, err := crypto.NewTransaction(priv, addr, genesisAddressOne, 2, 0, 100)
	if err != nil {
		t.Fatalf("NewTransaction() failed: %v", err)
	}
	if !c.PushPendingTransaction(tx) {
		t.Fatal("PushPendingTransaction() rejected a valid transaction")
	}
	mineAndAdd(t, c, genesisAddressTwo)

	// The mined transaction still sits in the pool but must not be selected
	if len(c.PendingTransactions()) != 1 {
		t.Fatal("Expected the mined transaction to remain pending")
	}
	candidate := c.MinableBlock(genesisAddressTwo)
	if got := len(candidate.Transactions); got != 1 {
		t.Errorf("Candidate has %d transactions, want only the reward", got)
	}
}

func TestMinableBlockDoesNotMutateState(t *testing.T) {
	c := New(testPolicy())
	priv, addr := newFundedKey(t, c)

	tx, err := crypto.NewTransaction(priv, addr, genesisAddressOne, 2, 0, 100)
	if err != nil {
		t.Fatalf("NewTransaction() failed: %v", err)
	}
	if !c.PushPendingTransaction(tx) {
		t.Fatal("PushPendingTransaction() rejected a valid transaction")
	}

	before := len(c.PendingTransactions())
	c.MinableBlock(genesisAddressTwo)
	c.MinableBlock(genesisAddressTwo)

	if got := len(c.PendingTransactions()); got != before {
		t.Errorf("Pending pool size changed from %d to %d", before, got)
	}
	if got := c.Height(); got != 1 {
		t.Errorf("Height() = %d, want 1 (template building must not append)", got)
	}
}
