package main

import (
	"os"

	"zyapi/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		cmd.PrintError(err)
		os.Exit(1)
	}
}
