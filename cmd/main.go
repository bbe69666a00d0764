package main

import (
	"fmt"
	"os"

	"github.com/polywrap/safe-contracts-wrapper-sub000/cmd/safe"
)

func main() {
	rootCmd := safe.BuildSafeCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
