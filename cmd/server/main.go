package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krewshul/uclcoin/internal/api"
	"github.com/krewshul/uclcoin/internal/chain"
	"github.com/krewshul/uclcoin/internal/config"
	"github.com/krewshul/uclcoin/internal/storage"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Starting uclcoin node...")

	// Open block storage
	log.Printf("Opening Pebble database at %s", cfg.Pebble.Path)
	db, err := storage.NewPebbleDB(cfg.Pebble.Path)
	if err != nil {
		log.Fatalf("Failed to open Pebble database: %v", err)
	}
	blockStore := storage.NewBlockStore(db)

	// Restore the chain from persisted blocks, or start at genesis
	policy := cfg.Chain.Policy()
	blocks, err := blockStore.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load blocks: %v", err)
	}

	var chainState *chain.Chain
	if len(blocks) == 0 {
		chainState = chain.New(policy)
		if err := blockStore.Save(chainState.LatestBlock()); err != nil {
			log.Fatalf("Failed to persist genesis block: %v", err)
		}
		log.Println("Initialized new chain at genesis")
	} else {
		chainState, err = chain.NewFromBlocks(policy, blocks)
		if err != nil {
			log.Fatalf("Failed to restore chain: %v", err)
		}
		log.Printf("Restored chain at height %d", chainState.Height())
	}

	// Initialize API router
	router := api.NewRouter(chainState, blockStore)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Engine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in goroutine
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close the database
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server stopped")
}
