package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jrazmi/tasktrack/app/tasktrack/commands"
)

var build = "develop"

func main() {
	if err := commands.NewRootCommand(build).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "tasktrack:", err)
		os.Exit(1)
	}
}
