package main

import (
	"os"
)

// @title       Chat Relay API
// @description Relays Telegram chat messages to a completion provider with bounded per-user history.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
