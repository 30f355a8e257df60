package main

import (
	"fmt"
	"os"

	filerenamer "github.com/thrawn01/file-renamer"
)

func main() {
	if err := filerenamer.RunCmd(os.Args, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
