package main

import (
	"os"

	"go.uber.org/zap"

	supacodedemo "github.com/temirov/supacode-demo/cmd/supacode-demo"
)

func main() {
	logger := zap.Must(zap.NewProduction())

	executionErr := supacodedemo.Execute()
	if executionErr != nil {
		logger.Error("command execution failed", zap.Error(executionErr))
		_ = logger.Sync()
		os.Exit(1)
	}

	_ = logger.Sync()
}
