package main

import (
	"os"

	"github.com/Sevistuo/cquery/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.NewDefault().Error("command execution failed", logging.Fields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}
