package main

import (
	"github.com/promoarcade/snakesladders/internal/cli"
)

func main() {
	cli.Execute()
}
