// Command reelsearch ingests movie and TV catalogs into a vector index
// and serves semantic search over them.
package main

import (
	"fmt"
	"os"

	"github.com/reel-labs/reelsearch/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
