package main

import (
	"os"

	"github.com/common-gull/cocobolo-core/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
