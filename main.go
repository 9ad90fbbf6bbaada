// The main package for the analyzer executable.
package main

import (
	"github.com/MataNBhohadanA/text-analyzer/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
