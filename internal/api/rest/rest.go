package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-token-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Reads (public)
	{
		v1.GET("/registry/config", handler.GetConfig)
		v1.GET("/registry/contracts", handler.ListContracts)
		v1.GET("/registry/contracts/:account/tokens/:ticker", handler.GetTokenByContract)
		v1.GET("/registry/tokens", handler.ListTokens)
		v1.GET("/registry/tokens/:ticker", handler.GetToken)
		v1.GET("/registry/balances/:account", handler.GetDepositBalance)
		v1.GET("/issuance/:contract/stats/:ticker", handler.GetStat)
		v1.GET("/ledgers/:contract/balances/:account", handler.GetLedgerBalances)
		v1.GET("/actions", handler.ListActions)
	}

	// Actions (signed); the engine checks the signers against the authority each action requires
	signed := v1.Group("", middleware.Auth(authCfg))
	{
		signed.POST("/registry/config", handler.SetConfig)
		signed.POST("/registry/enable", handler.Enable)
		signed.POST("/registry/disable", handler.Disable)
		signed.POST("/registry/contracts", handler.AddContract)
		signed.DELETE("/registry/contracts/:account", handler.RemoveContract)
		signed.POST("/registry/tokens", handler.RegToken)
		signed.POST("/registry/tokens/admin", handler.AddToken)
		signed.DELETE("/registry/tokens/:ticker", handler.RemoveToken)
		signed.POST("/registry/tokens/:ticker/contract", handler.SetContract)
		signed.POST("/registry/balances/:account/open", handler.OpenBalance)
		signed.POST("/registry/balances/:account/close", handler.CloseBalance)
		signed.POST("/registry/balances/:account/withdraw", handler.Withdraw)

		signed.POST("/issuance/:contract/registry", handler.SetRegistry)
		signed.POST("/issuance/:contract/supply", handler.SetSupply)
		signed.POST("/issuance/:contract/distribute", handler.Distribute)
		signed.POST("/issuance/:contract/balances/open", handler.OpenIssuanceBalance)
		signed.POST("/issuance/:contract/balances/close", handler.CloseIssuanceBalance)

		signed.POST("/ledgers/:contract/create", handler.CreateSymbol)
		signed.POST("/ledgers/:contract/issue", handler.IssueSymbol)

		signed.POST("/transfers", handler.Transfer)
	}
}
