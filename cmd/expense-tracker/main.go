// Command expense-tracker records expenses and serves them over MCP.
package main

import "github.com/custodia-labs/expense-tracker/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
