// Package main is the gymstats admin tool: schema migration and data maintenance
// jobs that are not exposed over HTTP.
package main

import (
	"context"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
