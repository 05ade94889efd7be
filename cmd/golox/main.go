// Command golox is a tree-walking interpreter for Lox.
package main

import (
	"os"

	"github.com/insertnamehere77/loxo/cmd/golox/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
