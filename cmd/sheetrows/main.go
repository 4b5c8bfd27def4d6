// Command sheetrows reads and edits Google Sheets rows.
package main

import (
	"os"

	"github.com/custodia-labs/sheetrows/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
