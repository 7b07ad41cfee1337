package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krewshul/uclcoin/internal/crypto"
	"github.com/krewshul/uclcoin/internal/miner"
	"github.com/krewshul/uclcoin/internal/rpc"
	"github.com/krewshul/uclcoin/pkg/semver"
	"github.com/krewshul/uclcoin/pkg/version"
)

func main() {
	nodeURL := flag.String("node", "http://127.0.0.1:8080", "Node API base URL")
	address := flag.String("address", "", "Reward address (hex compressed public key)")
	interval := flag.Duration("interval", 5*time.Second, "Delay between mined blocks")
	keygen := flag.Bool("keygen", false, "Generate a key pair and exit")
	flag.Parse()

	if *keygen {
		priv, addr, err := crypto.GenerateKeyPair()
		if err != nil {
			log.Fatalf("Failed to generate key pair: %v", err)
		}
		log.Printf("private key: %s", priv)
		log.Printf("address:     %s", addr)
		return
	}

	if *address == "" {
		log.Fatal("A reward address is required (-address), or use -keygen to create one")
	}

	client := rpc.NewClient(*nodeURL)

	// Refuse to mine against an incompatible node
	nodeVersion, err := client.Version()
	if err != nil {
		log.Fatalf("Failed to query node version: %v", err)
	}
	nodeVer, err := semver.Parse(nodeVersion)
	if err != nil {
		log.Fatalf("Node reported an invalid version %q: %v", nodeVersion, err)
	}
	ownVer, err := semver.Parse(version.Version)
	if err != nil {
		log.Fatalf("Invalid build version %q: %v", version.Version, err)
	}
	if !semver.Compatible(nodeVer, ownVer) {
		log.Fatalf("Node version %s is not compatible with miner version %s", nodeVer, ownVer)
	}
	log.Printf("Connected to node %s (version %s)", *nodeURL, nodeVersion)

	// Stop the search cleanly on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Stopping miner...")
		cancel()
	}()

	for {
		candidate, difficulty, err := client.MinableBlock(*address)
		if err != nil {
			log.Printf("Failed to fetch minable block: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(*interval):
			}
			continue
		}

		log.Printf("Mining block %d (%d transactions, difficulty %d)",
			candidate.Index, len(candidate.Transactions), difficulty)

		start := time.Now()
		mined, err := miner.Mine(ctx, candidate, difficulty)
		if err != nil {
			return
		}
		log.Printf("Mined block %d in %v: nonce %d, hash %s",
			mined.Index, time.Since(start), mined.Nonce, mined.CurrentHash)

		if err := client.SubmitBlock(mined); err != nil {
			log.Printf("Block %d rejected by node: %v", mined.Index, err)
		} else {
			log.Printf("Block %d accepted", mined.Index)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(*interval):
		}
	}
}
