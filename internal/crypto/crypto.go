// Package crypto provides the hashing and signature primitives the chain
// core depends on: deterministic identity digests for transactions and
// blocks, and secp256k1 ECDSA signing/verification. Addresses are
// hex-encoded compressed public keys.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/krewshul/uclcoin/internal/models"
)

// signingPreimage is the canonical byte form of the signed transaction
// fields. The signature itself is excluded so it can be computed before
// signing.
func signingPreimage(t models.Transaction) []byte {
	s := fmt.Sprintf("%s|%s|%d|%d|%d",
		t.Source, t.Destination, t.Amount, t.Fee, t.Timestamp)
	return []byte(s)
}

// SigningDigest returns the 32-byte digest a transaction signature commits to.
func SigningDigest(t models.Transaction) [32]byte {
	return sha256.Sum256(signingPreimage(t))
}

// HashTransaction returns the hex identity hash of a transaction. The
// signature is part of the preimage, so the hash is only final once the
// transaction is signed.
func HashTransaction(t models.Transaction) string {
	preimage := append(signingPreimage(t), []byte("|"+t.Signature)...)
	sum := sha256.Sum256(preimage)
	return hex.EncodeToString(sum[:])
}

// HashBlock returns the hex hash of a block over its index, transaction
// identity hashes, previous hash, timestamp and nonce. This is the value
// the proof-of-work predicate is checked against.
func HashBlock(b models.Block) string {
	parts := make([]string, 0, len(b.Transactions)+4)
	parts = append(parts, fmt.Sprintf("%d", b.Index))
	for _, t := range b.Transactions {
		parts = append(parts, t.TxHash)
	}
	parts = append(parts, b.PreviousHash)
	parts = append(parts, fmt.Sprintf("%d", b.Timestamp))
	parts = append(parts, fmt.Sprintf("%d", b.Nonce))

	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// Sign signs the transaction's digest with a hex-encoded secp256k1 private
// key and returns the hex DER signature.
func Sign(privKeyHex string, t models.Transaction) (string, error) {
	raw, err := hex.DecodeString(privKeyHex)
	if err != nil {
		return "", fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("invalid private key length: %d", len(raw))
	}
	priv := secp256k1.PrivKeyFromBytes(raw)

	digest := SigningDigest(t)
	sig := ecdsa.Sign(priv, digest[:])
	return hex.EncodeToString(sig.Serialize()), nil
}

// Verify reports whether the transaction's signature is valid for its
// source address. Coinbase transactions carry no signature and always
// verify false; they are never admitted to the pool and the validator
// checks them by reward rules instead.
func Verify(t models.Transaction) bool {
	if t.IsCoinbase() {
		return false
	}

	pubBytes, err := hex.DecodeString(t.Source)
	if err != nil {
		return false
	}
	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return false
	}

	sigBytes, err := hex.DecodeString(t.Signature)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}

	digest := SigningDigest(t)
	return sig.Verify(digest[:], pub)
}

// GenerateKeyPair returns a new hex private key and its address (the
// hex-encoded compressed public key).
func GenerateKeyPair() (privKeyHex, address string, err error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate private key: %w", err)
	}
	pub := priv.PubKey()
	return hex.EncodeToString(priv.Serialize()), hex.EncodeToString(pub.SerializeCompressed()), nil
}

// NewTransaction builds and signs a transaction from privKeyHex, filling in
// Signature and TxHash.
func NewTransaction(privKeyHex, source, destination string, amount, fee, timestamp uint64) (models.Transaction, error) {
	t := models.Transaction{
		Source:      source,
		Destination: destination,
		Amount:      amount,
		Fee:         fee,
		Timestamp:   timestamp,
	}
	sig, err := Sign(privKeyHex, t)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Signature = sig
	t.TxHash = HashTransaction(t)
	return t, nil
}
