package main

import (
	"github.com/findy-network/findy-bridge/cmd"
)

func main() {
	cmd.Execute()
}
