package main

import (
	"errors"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	cmd := newRootCmd()
	cmd.SetArgs(protectNegatives(os.Args[1:]))
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			log.Print(err)
		}
		os.Exit(1)
	}
}
