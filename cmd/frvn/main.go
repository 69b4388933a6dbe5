package main

import (
	"context"
	"fmt"
	"os"

	"frvn-service/internal/cli"
)

func main() {
	root := cli.NewRootCmd()

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
