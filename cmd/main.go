package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/NIRMITI18/health-care-agent/internal/bootstrap"
)

func main() {
	c := bootstrap.NewContainer()
	c.MustInit()

	if err := c.Start(); err != nil {
		c.Log.Errorf("Failed to start: %v", err)
		c.Shutdown()
		os.Exit(1)
	}

	waitForShutdown(c)
}

// waitForShutdown blocks until a signal arrives or a component cancels the container
func waitForShutdown(c *bootstrap.Container) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		c.Log.Infow("Shutting down...", "signal", sig.String())
	case <-c.Context.Done():
		c.Log.Warn("Application context cancelled, shutting down...")
	}

	c.Shutdown()
}
