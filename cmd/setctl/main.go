// Command setctl manages the flashcard-set catalog in a data directory:
// adding and validating set documents, listing catalogued sets and finding
// documents that are not yet catalogued.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
