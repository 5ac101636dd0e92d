package main

import (
	"github.com/vvm/vvm/src/cmd"
)

func main() {
	cmd.Execute()
}
