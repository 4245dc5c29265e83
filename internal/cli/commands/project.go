package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/taskio/taskboard/internal/api"
	"github.com/taskio/taskboard/internal/config"
)

// NewProjectCommand creates all subcommands for the 'project' command group.
func NewProjectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Manage projects",
		Subcommands: []*cli.Command{
			projectListCmd(),
			projectCreateCmd(),
			projectShowCmd(),
			projectDeleteCmd(),
			projectAddMemberCmd(),
			projectUseCmd(),
		},
	}
}

// projectListCmd lists projects.
func projectListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List projects",
		Flags:   pagingFlags(),
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			projects, err := client.ListProjects(c.Int("page"), c.Int("size"))
			if err != nil {
				fmt.Printf("Error listing projects: %v\n", err)
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found. Use 'taskctl project create' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCREATOR\tDESCRIPTION")
			fmt.Fprintln(w, "--\t----\t-------\t-----------")

			for _, p := range projects {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
					p.ID,
					p.Name,
					p.CreatorID,
					truncateString(p.Description, 40))
			}
			w.Flush()
			return nil
		},
	}
}

// projectCreateCmd creates a new project.
func projectCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new project",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Project description",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project name is required")
			}
			name := c.Args().First()
			description := c.String("description")

			client := api.NewClient()
			project, err := client.CreateProject(name, description)
			if err != nil {
				fmt.Printf("Error creating project: %v\n", err)
				return err
			}

			fmt.Printf("✅ Project '%s' created successfully!\n", project.Name)
			fmt.Printf("ID: %d\n", project.ID)
			return nil
		},
	}
}

// projectShowCmd shows details for a specific project.
func projectShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a project",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			client := api.NewClient()
			project, err := client.GetProject(id)
			if err != nil {
				fmt.Printf("Error getting project: %v\n", err)
				return err
			}

			fmt.Printf("Project Details for '%s':\n", project.Name)
			fmt.Printf("----------------------------------\n")
			fmt.Printf("ID:          %d\n", project.ID)
			fmt.Printf("Name:        %s\n", project.Name)
			fmt.Printf("Description: %s\n", project.Description)
			if project.Creator != nil {
				fmt.Printf("Creator:     %s <%s>\n", project.Creator.Name, project.Creator.Email)
			}
			fmt.Printf("Members:     %d\n", len(project.Members))
			for _, m := range project.Members {
				fmt.Printf("  - %s <%s>\n", m.Name, m.Email)
			}
			fmt.Printf("Tasks:       %d\n", len(project.Tasks))
			return nil
		},
	}
}

// projectDeleteCmd deletes a project after confirmation.
func projectDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a project",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Delete project %d and all of its tasks?", id),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}

			client := api.NewClient()
			if err := client.DeleteProject(id); err != nil {
				fmt.Printf("Error deleting project: %v\n", err)
				return err
			}

			fmt.Println("✅ Project deleted successfully!")
			return nil
		},
	}
}

// projectAddMemberCmd adds users to a project's member set.
func projectAddMemberCmd() *cli.Command {
	return &cli.Command{
		Name:      "add-member",
		Usage:     "Add members to a project (creator only)",
		ArgsUsage: "[project-id] [user-id,...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("project ID and at least one user ID are required")
			}
			projectID, err := parseID(c.Args().Get(0))
			if err != nil {
				return err
			}
			memberIDs, err := parseIDList(c.Args().Get(1))
			if err != nil {
				return err
			}

			client := api.NewClient()
			project, err := client.AddMembers(projectID, memberIDs)
			if err != nil {
				fmt.Printf("Error adding members: %v\n", err)
				return err
			}

			fmt.Printf("✅ Project '%s' now has %d members.\n", project.Name, len(project.Members))
			return nil
		},
	}
}

// projectUseCmd remembers a default project for task commands.
func projectUseCmd() *cli.Command {
	return &cli.Command{
		Name:      "use",
		Usage:     "Set the active project for task commands",
		ArgsUsage: "[project-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				cfg = &config.Config{}
			}
			cfg.ActiveProjectID = id
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("could not save config: %w", err)
			}

			fmt.Printf("✅ Active project set to %d.\n", id)
			return nil
		},
	}
}

// pagingFlags returns the shared page/size flags for list commands.
func pagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Value: 1,
			Usage: "Page number (1-based)",
		},
		&cli.IntFlag{
			Name:  "size",
			Value: 50,
			Usage: "Page size",
		},
	}
}
