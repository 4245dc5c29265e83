package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/taskio/taskboard/internal/api"
)

// NewTagCommand creates all subcommands for the 'tag' command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "Manage tags",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tags",
				Flags:   pagingFlags(),
				Action: func(c *cli.Context) error {
					client := api.NewClient()
					tags, err := client.ListTags(c.Int("page"), c.Int("size"))
					if err != nil {
						fmt.Printf("Error listing tags: %v\n", err)
						return err
					}

					if len(tags) == 0 {
						fmt.Println("No tags found. Use 'taskctl tag create' to add one.")
						return nil
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tTITLE")
					fmt.Fprintln(w, "--\t-----")
					for _, t := range tags {
						fmt.Fprintf(w, "%d\t%s\n", t.ID, t.Title)
					}
					w.Flush()
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "Create a new tag",
				ArgsUsage: "[title]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("tag title is required")
					}

					client := api.NewClient()
					tag, err := client.CreateTag(c.Args().First())
					if err != nil {
						fmt.Printf("Error creating tag: %v\n", err)
						return err
					}

					fmt.Printf("✅ Tag '%s' created (id %d).\n", tag.Title, tag.ID)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a tag",
				ArgsUsage: "[tag-id]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("tag ID is required")
					}
					id, err := parseID(c.Args().First())
					if err != nil {
						return err
					}

					client := api.NewClient()
					if err := client.DeleteTag(id); err != nil {
						fmt.Printf("Error deleting tag: %v\n", err)
						return err
					}

					fmt.Println("✅ Tag deleted successfully!")
					return nil
				},
			},
		},
	}
}
