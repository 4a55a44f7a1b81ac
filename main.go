package main

import (
	"os"

	"github.com/code-server-panel/code-server-panel/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
