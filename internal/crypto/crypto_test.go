package crypto

import (
	"testing"

	"github.com/krewshul/uclcoin/internal/models"
)

func TestGenerateKeyPair(t *testing.T) {
	priv, addr, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	if len(priv) != 64 {
		t.Errorf("Expected 64 hex chars of private key, got %d", len(priv))
	}
	// Compressed public keys are 33 bytes
	if len(addr) != 66 {
		t.Errorf("Expected 66 hex chars of address, got %d", len(addr))
	}

	_, addr2, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}
	if addr == addr2 {
		t.Error("Two generated key pairs share an address")
	}
}

func TestSignAndVerify(t *testing.T) {
	priv, addr, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() failed: %v", err)
	}

	tx, err := NewTransaction(priv, addr, "destination", 5, 1, 1234)
	if err != nil {
		t.Fatalf("NewTransaction() failed: %v", err)
	}

	if !Verify(tx) {
		t.Error("Verify() = false for a correctly signed transaction")
	}

	tampered := tx
	tampered.Amount = 500
	tampered.TxHash = HashTransaction(tampered)
	if Verify(tampered) {
		t.Error("Verify() = true for a transaction with a tampered amount")
	}
}

func TestVerifyRejectsCoinbase(t *testing.T) {
	tx := models.Transaction{
		Source:      models.CoinbaseAddress,
		Destination: "someone",
		Amount:      10,
		Timestamp:   0,
	}
	if Verify(tx) {
		t.Error("Verify() = true for a coinbase transaction")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tx := models.Transaction{
		Source:      "not-a-public-key",
		Destination: "someone",
		Amount:      10,
		Signature:   "not-a-signature",
	}
	if Verify(tx) {
		t.Error("Verify() = true for a transaction with an unparseable source")
	}
}

func TestHashTransactionDeterminism(t *testing.T) {
	tx := models.Transaction{
		Source:      "a",
		Destination: "b",
		Amount:      1,
		Fee:         2,
		Timestamp:   3,
		Signature:   "sig",
	}

	if HashTransaction(tx) != HashTransaction(tx) {
		t.Error("HashTransaction() is not deterministic")
	}

	other := tx
	other.Signature = "other"
	if HashTransaction(tx) == HashTransaction(other) {
		t.Error("HashTransaction() ignores the signature")
	}
}

func TestHashBlockDependsOnNonce(t *testing.T) {
	block := models.Block{
		Index:        1,
		Transactions: []models.Transaction{{TxHash: "aa"}, {TxHash: "bb"}},
		PreviousHash: "cc",
		Timestamp:    42,
		Nonce:        0,
	}

	h0 := HashBlock(block)
	if len(h0) != 64 {
		t.Errorf("Expected 64 hex chars of block hash, got %d", len(h0))
	}

	block.Nonce = 1
	if HashBlock(block) == h0 {
		t.Error("HashBlock() ignores the nonce")
	}
}
