package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/taskio/taskboard/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "taskctl",
		Usage:   "Taskboard command-line client",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewSetupCommand(),
			commands.NewProjectCommand(),
			commands.NewTaskCommand(),
			commands.NewTagCommand(),
			commands.NewUserCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
