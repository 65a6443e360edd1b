package main

import (
	"github.com/mod-analysis/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
