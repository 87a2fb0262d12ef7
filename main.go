// The main package for the aisitescraper executable.
package main

import (
	"github.com/kmakumb/AISiteScraper/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
