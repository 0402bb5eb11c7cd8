package main

import (
	"github.com/inklinehq/Inkline-CLI/cmds"
)

func main() {
	cmds.RootCmd.Execute()
}
