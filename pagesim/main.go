// Command pagesim simulates Clock page replacement over an address trace.
package main

import "github.com/sarchlab/pagesim/pagesim/cmd"

func main() {
	cmd.Execute()
}
