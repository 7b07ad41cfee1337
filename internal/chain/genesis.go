package chain

import (
	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/models"
)

// The genesis block is part of the protocol and must be byte-for-byte
// identical on every node: two hand-authored coinbase transactions
// crediting two fixed addresses 10 coins each, with a fixed historical
// timestamp and nonce.
const (
	genesisAddressOne = "032b72046d335b5318a672763338b08b9642225189ab3f0cba777622cfee0fc07b"
	genesisAddressTwo = "02f846677f65911f140a42af8fe7c1e5cbc7d148c44057ce49ee0cd0a72b21df4f"

	genesisPreviousHash = "000000000000000000000000000000000000000000000000000000000000000000"
	genesisNonce        = 27118821
)

// GenesisBlock returns the pinned first block of the chain.
func GenesisBlock() models.Block {
	one := models.Transaction{
		Source:      models.CoinbaseAddress,
		Destination: genesisAddressOne,
		Amount:      10,
		Fee:         0,
		Timestamp:   0,
		Signature:   "",
	}
	one.TxHash = crypto.HashTransaction(one)

	two := models.Transaction{
		Source:      models.CoinbaseAddress,
		Destination: genesisAddressTwo,
		Amount:      10,
		Fee:         0,
		Timestamp:   0,
		Signature:   "",
	}
	two.TxHash = crypto.HashTransaction(two)

	block := models.Block{
		Index:        0,
		Transactions: []models.Transaction{one, two},
		PreviousHash: genesisPreviousHash,
		Timestamp:    0,
		Nonce:        genesisNonce,
	}
	block.CurrentHash = crypto.HashBlock(block)
	return block
}
