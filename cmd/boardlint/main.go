// boardlint validates declarative embedded board configurations: peripheral
// field schemas, MCU package constraints and physical pin allocation.
package main

import "github.com/boardlint/boardlint/cmd/boardlint/cmd"

func main() {
	cmd.Execute()
}
