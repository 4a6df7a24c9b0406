// Command ejbctx finds EJB interfaces in a Java project and assembles, for
// each one, a context bundle of its bean, DTO and entity sources.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
