package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/taskio/taskboard/internal/api"
)

// NewUserCommand creates all subcommands for the 'user' command group.
func NewUserCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Browse the user directory",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List users",
				Flags:   pagingFlags(),
				Action: func(c *cli.Context) error {
					client := api.NewClient()
					users, err := client.ListUsers(c.Int("page"), c.Int("size"))
					if err != nil {
						fmt.Printf("Error listing users: %v\n", err)
						return err
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL")
					fmt.Fprintln(w, "--\t----\t-----")
					for _, u := range users {
						fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "Show a user",
				ArgsUsage: "[user-id]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("user ID is required")
					}
					id, err := parseID(c.Args().First())
					if err != nil {
						return err
					}

					client := api.NewClient()
					user, err := client.GetUser(id)
					if err != nil {
						fmt.Printf("Error getting user: %v\n", err)
						return err
					}

					fmt.Printf("ID:    %d\n", user.ID)
					fmt.Printf("Name:  %s\n", user.Name)
					fmt.Printf("Email: %s\n", user.Email)
					return nil
				},
			},
		},
	}
}
