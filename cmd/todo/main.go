package main

import (
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}
}
