package main

import (
	"fmt"
	"os"

	"secondbest/ui"
)

func main() {
	if err := ui.RunSecondBest(); err != nil {
		fmt.Fprintf(os.Stderr, "secondbest: %v\n", err)
		os.Exit(1)
	}
}
