// Command triage is the operator CLI: classify text offline, list stored
// feedback in dashboard order, and hash the dashboard admin password.
package main

import (
	"os"

	"feedback-prioritizer/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
