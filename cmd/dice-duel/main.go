package main

import (
	"os"

	"github.com/lixenwraith/dice-duel/core"
)

func main() {
	// Panic recovery: restore the terminal even if the game crashes on the main goroutine
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
