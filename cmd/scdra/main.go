// Command scdra runs the supply chain disruption response agent: it
// investigates a reported disruption with read-only tools, quantifies the
// financial exposure and drafts a response plan for human review.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
