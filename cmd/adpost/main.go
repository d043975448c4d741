// Package main is the entry point for the adpost CLI.
package main

import (
	"os"

	"github.com/donaldgifford/adposting/cmd/adpost/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
