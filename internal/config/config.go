package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/krewshul/uclcoin/internal/chain"
)

// Config represents the application configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Pebble PebbleConfig `yaml:"pebble"`
	Chain  ChainConfig  `yaml:"chain"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// PebbleConfig represents the Pebble database configuration
type PebbleConfig struct {
	Path string `yaml:"path"`
}

// ChainConfig represents the economic policy of the chain. The defaults are
// the protocol constants; changing them forks the network.
type ChainConfig struct {
	CoinsPerBlock           uint64 `yaml:"coins_per_block"`
	HashDifficulty          int    `yaml:"hash_difficulty"`
	MaxTransactionsPerBlock int    `yaml:"max_transactions_per_block"`
}

// Policy converts the chain section into the core's policy type.
func (c ChainConfig) Policy() chain.Policy {
	return chain.Policy{
		CoinsPerBlock:           c.CoinsPerBlock,
		MinimumHashDifficulty:   c.HashDifficulty,
		MaxTransactionsPerBlock: c.MaxTransactionsPerBlock,
	}
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	defaults := chain.DefaultPolicy()
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Pebble: PebbleConfig{
			Path: "./data/pebble",
		},
		Chain: ChainConfig{
			CoinsPerBlock:           defaults.CoinsPerBlock,
			HashDifficulty:          defaults.MinimumHashDifficulty,
			MaxTransactionsPerBlock: defaults.MaxTransactionsPerBlock,
		},
	}

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.loadEnv()

	return cfg, nil
}

func (c *Config) loadEnv() {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Pebble config
	if path := os.Getenv("PEBBLE_PATH"); path != "" {
		c.Pebble.Path = path
	}

	// Chain config
	if coins := os.Getenv("CHAIN_COINS_PER_BLOCK"); coins != "" {
		if v, err := strconv.ParseUint(coins, 10, 64); err == nil {
			c.Chain.CoinsPerBlock = v
		}
	}
	if difficulty := os.Getenv("CHAIN_HASH_DIFFICULTY"); difficulty != "" {
		if v, err := strconv.Atoi(difficulty); err == nil {
			c.Chain.HashDifficulty = v
		}
	}
	if max := os.Getenv("CHAIN_MAX_TRANSACTIONS_PER_BLOCK"); max != "" {
		if v, err := strconv.Atoi(max); err == nil {
			c.Chain.MaxTransactionsPerBlock = v
		}
	}
}
