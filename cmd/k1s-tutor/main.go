// Package main provides the k1s-tutor CLI, an interactive kubectl tutorial
// backed by a simulated cluster.
package main

import (
	"fmt"
	"os"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/cmd/k1s-tutor/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
