package main

import (
	"os"

	"github.com/spigot/internal/spigot/logger"
)

func main() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
