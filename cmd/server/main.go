package main

import (
	"fmt"
	"os"
	"slot_engine/internal/app"

	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := app.NewApp().Run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}
