// cmd/docchat/main.go
package main

import (
	cmd "github.com/mwiater/docchat/internal/cli"
)

// main starts the docchat CLI application by delegating to the
// cobra root command defined in the docchat package.
func main() {
	cmd.Execute()
}
