// Command ember previews and inspects ember screens.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/ember/cmd/ember/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
