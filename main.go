package main

import (
	"os"

	"github.com/suatkocar/food-ordering-system/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
