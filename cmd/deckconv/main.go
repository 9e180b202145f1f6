// Package main provides the deckconv CLI application. deckconv
// converts Magic: The Gathering deck lists between formats, backed by
// a local SQLite card database synced from Scryfall.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
