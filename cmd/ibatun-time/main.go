package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd, err := NewRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
