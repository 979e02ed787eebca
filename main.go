// ABOUTME: Entry point for the StoneLedger CLI
// ABOUTME: Hands off to the cobra command tree
package main

import (
	"os"

	"github.com/harperreed/stoneledger/cli"
)

const version = "0.1.0"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
