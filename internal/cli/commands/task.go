package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/taskio/taskboard/internal/api"
	"github.com/taskio/taskboard/internal/config"
	"github.com/taskio/taskboard/pkg/models"
)

// NewTaskCommand creates all subcommands for the 'task' command group.
func NewTaskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Manage tasks",
		Subcommands: []*cli.Command{
			taskListCmd(),
			taskCreateCmd(),
			taskShowCmd(),
			taskUpdateCmd(),
			taskDoneCmd(),
			taskDeleteCmd(),
			taskAddTagCmd(),
			taskAssignCmd(),
			taskBoardCmd(),
		},
	}
}

// activeProjectID resolves the project flag, falling back to the
// project remembered by 'project use'.
func activeProjectID(c *cli.Context) uint {
	if c.IsSet("project") {
		return uint(c.Uint("project"))
	}
	if cfg, err := config.Load(); err == nil {
		return cfg.ActiveProjectID
	}
	return 0
}

func projectFlag() cli.Flag {
	return &cli.UintFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Project ID (defaults to the active project)",
	}
}

// taskListCmd lists tasks.
func taskListCmd() *cli.Command {
	flags := append(pagingFlags(),
		projectFlag(),
		&cli.StringFlag{
			Name:    "status",
			Aliases: []string{"s"},
			Usage:   "Filter by status (PENDING, IN_PROGRESS, COMPLETED)",
		},
	)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks",
		Flags:   flags,
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			tasks, err := client.ListTasks(c.Int("page"), c.Int("size"), c.String("status"), activeProjectID(c))
			if err != nil {
				fmt.Printf("Error listing tasks: %v\n", err)
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPROJECT\tTAGS\tTITLE")
			fmt.Fprintln(w, "--\t------\t-------\t----\t-----")

			for _, t := range tasks {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
					t.ID,
					t.Status,
					t.ProjectID,
					len(t.Tags),
					truncateString(t.Title, 50))
			}
			w.Flush()
			return nil
		},
	}
}

// taskCreateCmd creates a new task.
func taskCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new task",
		ArgsUsage: "[title]",
		Flags: []cli.Flag{
			projectFlag(),
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Task description (markdown)",
			},
			&cli.StringFlag{
				Name:  "status",
				Usage: "Initial status",
				Value: string(models.TaskStatusPending),
			},
			&cli.StringFlag{
				Name:     "tags",
				Usage:    "Comma-separated tag IDs (at least one required)",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task title is required")
			}
			projectID := activeProjectID(c)
			if projectID == 0 {
				return fmt.Errorf("no project given; pass --project or run 'taskctl project use'")
			}
			tagIDs, err := parseIDList(c.String("tags"))
			if err != nil {
				return err
			}

			client := api.NewClient()
			task, err := client.CreateTask(c.Args().First(), c.String("description"), c.String("status"), projectID, tagIDs)
			if err != nil {
				fmt.Printf("Error creating task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' created successfully!\n", task.Title)
			fmt.Printf("ID: %d\n", task.ID)
			return nil
		},
	}
}

// taskShowCmd shows details for a task, rendering the description as
// markdown.
func taskShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a task",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			client := api.NewClient()
			task, err := client.GetTask(id)
			if err != nil {
				fmt.Printf("Error getting task: %v\n", err)
				return err
			}

			fmt.Printf("Task Details for '%s':\n", task.Title)
			fmt.Printf("----------------------------------\n")
			fmt.Printf("ID:      %d\n", task.ID)
			fmt.Printf("Status:  %s\n", task.Status)
			fmt.Printf("Project: %d\n", task.ProjectID)

			if len(task.Tags) > 0 {
				fmt.Print("Tags:    ")
				for i, tag := range task.Tags {
					if i > 0 {
						fmt.Print(", ")
					}
					fmt.Print(tag.Title)
				}
				fmt.Println()
			}
			if len(task.Assignees) > 0 {
				fmt.Println("Assignees:")
				for _, a := range task.Assignees {
					fmt.Printf("  - %s <%s>\n", a.Name, a.Email)
				}
			}

			if task.Description != "" {
				rendered, err := glamour.Render(task.Description, "auto")
				if err != nil {
					fmt.Printf("\n%s\n", task.Description)
				} else {
					fmt.Print(rendered)
				}
			}
			return nil
		},
	}
}

// taskUpdateCmd applies a partial update to a task.
func taskUpdateCmd() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update a task's fields",
		ArgsUsage: "[task-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "New title"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "New status"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			var title, description, status *string
			if c.IsSet("title") {
				title = stringPtr(c.String("title"))
			}
			if c.IsSet("description") {
				description = stringPtr(c.String("description"))
			}
			if c.IsSet("status") {
				status = stringPtr(c.String("status"))
			}
			if title == nil && description == nil && status == nil {
				return fmt.Errorf("nothing to update")
			}

			client := api.NewClient()
			task, err := client.UpdateTask(id, title, description, status)
			if err != nil {
				fmt.Printf("Error updating task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task %d updated (status %s).\n", task.ID, task.Status)
			return nil
		},
	}
}

// taskDoneCmd marks a task COMPLETED.
func taskDoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task as completed",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			client := api.NewClient()
			task, err := client.UpdateTask(id, nil, nil, stringPtr(string(models.TaskStatusCompleted)))
			if err != nil {
				fmt.Printf("Error completing task: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' completed!\n", task.Title)
			return nil
		},
	}
}

// taskDeleteCmd deletes a task after confirmation.
func taskDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a task",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID(c.Args().First())
			if err != nil {
				return err
			}

			confirmed := false
			prompt := &survey.Confirm{
				Message: fmt.Sprintf("Delete task %d?", id),
			}
			if err := survey.AskOne(prompt, &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}

			client := api.NewClient()
			if err := client.DeleteTask(id); err != nil {
				fmt.Printf("Error deleting task: %v\n", err)
				return err
			}

			fmt.Println("✅ Task deleted successfully!")
			return nil
		},
	}
}

// taskAddTagCmd adds tags to a task.
func taskAddTagCmd() *cli.Command {
	return &cli.Command{
		Name:      "add-tag",
		Usage:     "Add tags to a task",
		ArgsUsage: "[task-id] [tag-id,...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("task ID and at least one tag ID are required")
			}
			taskID, err := parseID(c.Args().Get(0))
			if err != nil {
				return err
			}
			tagIDs, err := parseIDList(c.Args().Get(1))
			if err != nil {
				return err
			}

			client := api.NewClient()
			task, err := client.AddTags(taskID, tagIDs)
			if err != nil {
				fmt.Printf("Error adding tags: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' now has %d tags.\n", task.Title, len(task.Tags))
			return nil
		},
	}
}

// taskAssignCmd assigns a user to a task.
func taskAssignCmd() *cli.Command {
	return &cli.Command{
		Name:      "assign",
		Usage:     "Assign a user to a task",
		ArgsUsage: "[task-id] [user-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("task ID and user ID are required")
			}
			taskID, err := parseID(c.Args().Get(0))
			if err != nil {
				return err
			}
			userID, err := parseID(c.Args().Get(1))
			if err != nil {
				return err
			}

			client := api.NewClient()
			task, err := client.AddAssignee(taskID, userID)
			if err != nil {
				fmt.Printf("Error assigning user: %v\n", err)
				return err
			}

			fmt.Printf("✅ Task '%s' now has %d assignees.\n", task.Title, len(task.Assignees))
			return nil
		},
	}
}

// Board column styles.
var (
	boardColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(30)

	boardHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7aa2f7"))
)

// taskBoardCmd renders tasks as status columns.
func taskBoardCmd() *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "Display tasks in a board view, grouped by status",
		Flags: []cli.Flag{projectFlag()},
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			projectID := activeProjectID(c)

			columns := []models.TaskStatus{
				models.TaskStatusPending,
				models.TaskStatusInProgress,
				models.TaskStatusCompleted,
			}

			rendered := make([]string, 0, len(columns))
			for _, status := range columns {
				tasks, err := client.ListTasks(1, 100, string(status), projectID)
				if err != nil {
					fmt.Printf("Error fetching %s tasks: %v\n", status, err)
					return err
				}

				body := boardHeaderStyle.Render(fmt.Sprintf("%s (%d)", status, len(tasks)))
				for _, t := range tasks {
					body += fmt.Sprintf("\n#%d %s", t.ID, truncateString(t.Title, 22))
				}
				rendered = append(rendered, boardColumnStyle.Render(body))
			}

			fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
			return nil
		},
	}
}
