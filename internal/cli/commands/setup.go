package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/taskio/taskboard/internal/api"
	"github.com/taskio/taskboard/internal/config"
)

func NewSetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Configure the CLI with user authentication",
		Subcommands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a new user account",
				Action: func(c *cli.Context) error {
					return handleUserRegistration()
				},
			},
			{
				Name:  "login",
				Usage: "Login with existing user credentials",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy the issued token to the clipboard",
					},
				},
				Action: func(c *cli.Context) error {
					return handleUserLogin(c.Bool("copy"))
				},
			},
			{
				Name:  "logout",
				Usage: "Forget the stored session token",
				Action: func(c *cli.Context) error {
					if err := config.DeleteToken(); err != nil {
						return err
					}
					fmt.Println("Session cleared.")
					return nil
				},
			},
			{
				Name:  "api-url",
				Usage: "Set the API base URL",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("API base URL is required")
					}
					cfg, err := config.Load()
					if err != nil {
						cfg = &config.Config{}
					}
					cfg.APIBaseURL = c.Args().First()
					if err := config.Save(cfg); err != nil {
						return fmt.Errorf("could not save config: %w", err)
					}
					fmt.Println("✅ Configuration saved successfully!")
					return nil
				},
			},
		},
		Action: func(c *cli.Context) error {
			// Default action - show help
			return cli.ShowCommandHelp(c, "setup")
		},
	}
}

func handleUserRegistration() error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter your name: ")
	name, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read name: %w", err)
	}
	name = strings.TrimSpace(name)

	fmt.Print("Enter your email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read email: %w", err)
	}
	email = strings.TrimSpace(email)

	password, err := readPassword("Enter your password: ")
	if err != nil {
		return err
	}

	client := api.NewClient()
	user, err := client.Register(name, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("✅ User '%s' registered successfully (id %d)!\n", user.Name, user.ID)
	fmt.Println("Run 'taskctl setup login' to start a session.")
	return nil
}

func handleUserLogin(copyToken bool) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter your email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("could not read email: %w", err)
	}
	email = strings.TrimSpace(email)

	password, err := readPassword("Enter your password: ")
	if err != nil {
		return err
	}

	client := api.NewClient()
	token, err := client.Login(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.StoreToken(token); err != nil {
		return fmt.Errorf("could not store session token: %w", err)
	}

	fmt.Println("✅ Login successful!")

	if copyToken {
		if err := clipboard.WriteAll(token); err != nil {
			fmt.Printf("Could not copy token to clipboard: %v\n", err)
		} else {
			fmt.Println("✅ Token copied to clipboard")
		}
	}
	return nil
}

// readPassword prompts without echoing the input.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("could not read password: %w", err)
	}
	return strings.TrimSpace(string(password)), nil
}
