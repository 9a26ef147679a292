// Command dashpatch applies JSON Patch documents, extended with wildcard
// and predicate path selectors, to Grafana dashboards and data sources.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
