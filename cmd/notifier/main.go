package main

import (
	"oec/config"
	"oec/di"
	"oec/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	consumer := di.InitializeNotifier()
	consumer.Run()
}
