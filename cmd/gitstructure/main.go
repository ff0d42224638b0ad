package main

import (
	"fmt"

	"github.com/tvaleev/gitstructure/internal/cli"
	"github.com/tvaleev/gitstructure/internal/utils"
)

// main is the entry point for the gitstructure command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf("logger initialization failed: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal("application execution failed: " + applicationExecutionError.Error())
	}
}
