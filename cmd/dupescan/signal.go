package main

import (
	"os"
	"os/signal"
	"syscall"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

// setupSignalHandler returns a channel that is closed when SIGINT or
// SIGTERM arrives, and a function to stop listening
func setupSignalHandler() (<-chan struct{}, func()) {
	shutdown := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			dupescan.VerboseLog(1, "received signal: %v", sig)
			close(shutdown)
		case <-done:
		}
	}()

	return shutdown, func() {
		signal.Stop(sigChan)
		close(done)
	}
}
