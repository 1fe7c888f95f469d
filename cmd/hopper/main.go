package main

import (
	"github.com/hopperhttp/hopper/internal/cli"
)

func main() {
	cli.Execute()
}
