package main

import (
	"oec/config"
	"oec/di"
	"oec/shared/logger"
)

// @title Oromia Education Center API
// @version 1.0
// @description Facility and dormitory booking, store ledger, attendance and site content for the Oromia Education Center.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
