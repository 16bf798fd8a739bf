// Package main provides the command-line entry point: render notices from a
// roster workbook, browse them in a terminal UI, or write a progress report.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
