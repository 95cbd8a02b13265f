package main

import (
	"os"

	"github.com/vegasq/pq2csv/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
