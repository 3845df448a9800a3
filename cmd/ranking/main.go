package main

import (
	"fmt"
	"os"

	"ccr/internal/ranking"
)

func main() {
	if err := ranking.Run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
