package api

import (
	"github.com/gin-gonic/gin"

	"github.com/krewshul/uclcoin/internal/api/handlers"
	"github.com/krewshul/uclcoin/internal/api/middleware"
	"github.com/krewshul/uclcoin/internal/chain"
	"github.com/krewshul/uclcoin/internal/storage"
	"github.com/krewshul/uclcoin/pkg/version"
)

// Router wraps the Gin router with handlers
type Router struct {
	engine             *gin.Engine
	blockHandler       *handlers.BlockHandler
	transactionHandler *handlers.TransactionHandler
	balanceHandler     *handlers.BalanceHandler
}

// NewRouter creates a new Router with all handlers. blockStore may be nil
// when running without persistence.
func NewRouter(c *chain.Chain, blockStore *storage.BlockStore) *Router {
	gin.SetMode(gin.ReleaseMode)

	// A nil *BlockStore must stay a nil interface inside the handler.
	var persister handlers.BlockPersister
	if blockStore != nil {
		persister = blockStore
	}

	r := &Router{
		engine:             gin.New(),
		blockHandler:       handlers.NewBlockHandler(c, persister),
		transactionHandler: handlers.NewTransactionHandler(c),
		balanceHandler:     handlers.NewBalanceHandler(c),
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger())
	r.engine.Use(middleware.CORS())
}

// setupRoutes configures API routes
func (r *Router) setupRoutes() {
	// Health check
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.engine.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{"version": version.Version})
	})

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Block routes
		blocks := v1.Group("/blocks")
		{
			blocks.GET("/latest", r.blockHandler.GetLatest)
			blocks.GET("/minable/:address", r.blockHandler.GetMinable)
			blocks.GET("/:index", r.blockHandler.GetByIndex)
			blocks.POST("", r.blockHandler.Submit)
		}

		// Transaction routes
		txs := v1.Group("/transactions")
		{
			txs.POST("", r.transactionHandler.Submit)
			txs.GET("/pending", r.transactionHandler.GetPending)
			txs.DELETE("/:txhash", r.transactionHandler.Remove)
		}

		// Balance routes
		balance := v1.Group("/balance")
		{
			balance.GET("/:address", r.balanceHandler.Get)
			balance.GET("/:address/pending", r.balanceHandler.GetPending)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
