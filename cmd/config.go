package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suatkocar/food-ordering-system/internal/database"
)

const defaultPort = 5432

// connFlags holds the connection settings shared by every command.
type connFlags struct {
	host           string
	port           int
	user           string
	password       string
	dbName         string
	sslMode        string
	nonInteractive bool
}

func registerConnFlags(cmd *cobra.Command, c *connFlags) {
	cmd.Flags().StringVar(&c.host, "host", "", "PostgreSQL host (or DATABASE_HOST env)")
	cmd.Flags().IntVar(&c.port, "port", 0, "PostgreSQL port (default 5432, or DATABASE_PORT env)")
	cmd.Flags().StringVar(&c.user, "user", "", "PostgreSQL username (or DATABASE_USER env)")
	cmd.Flags().StringVar(&c.dbName, "dbname", "", "Database name (or DATABASE_NAME env)")
	cmd.Flags().StringVar(&c.sslMode, "sslmode", "", "sslmode for the connection (default disable)")
	cmd.Flags().BoolVar(&c.nonInteractive, "non-interactive", false, "Never prompt; fail if any required value is missing")
}

// resolve fills missing values from the environment (after loading an
// optional .env file) and finally from interactive prompts.
func (c *connFlags) resolve() (database.Config, error) {
	_ = godotenv.Load()

	if c.host == "" {
		c.host = os.Getenv("DATABASE_HOST")
	}
	if c.port == 0 {
		if p := os.Getenv("DATABASE_PORT"); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				c.port = port
			}
		}
	}
	if c.user == "" {
		c.user = os.Getenv("DATABASE_USER")
	}
	if c.password == "" {
		c.password = os.Getenv("DATABASE_PASSWORD")
		if c.password == "" {
			c.password = os.Getenv("PGPASSWORD")
		}
	}
	if c.dbName == "" {
		c.dbName = os.Getenv("DATABASE_NAME")
	}

	if !c.nonInteractive {
		if err := c.promptMissing(); err != nil {
			return database.Config{}, err
		}
	}

	if c.port == 0 {
		c.port = defaultPort
	}
	if c.sslMode == "" {
		c.sslMode = "disable"
	}

	if c.host == "" || c.user == "" || c.dbName == "" {
		return database.Config{}, fmt.Errorf("missing required config: set flags/env or run interactively (see --help)")
	}

	return database.Config{
		Host:     c.host,
		Port:     c.port,
		User:     c.user,
		Password: c.password,
		Name:     c.dbName,
		SSLMode:  c.sslMode,
	}, nil
}

func (c *connFlags) promptMissing() error {
	reader := bufio.NewReader(os.Stdin)

	if c.host == "" {
		fmt.Print("Host: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read host: %w", err)
		}
		c.host = strings.TrimSpace(line)
	}
	if c.port == 0 {
		fmt.Printf("Port [%d]: ", defaultPort)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read port: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			c.port = defaultPort
		} else if port, err := strconv.Atoi(line); err == nil {
			c.port = port
		} else {
			c.port = defaultPort
		}
	}
	if c.user == "" {
		fmt.Print("Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read user: %w", err)
		}
		c.user = strings.TrimSpace(line)
	}
	if c.password == "" {
		c.password = promptPassword("Password: ")
	}
	if c.dbName == "" {
		fmt.Print("Database name: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read database name: %w", err)
		}
		c.dbName = strings.TrimSpace(line)
	}

	return nil
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	return string(pass)
}

// pgIdentifier quotes a PostgreSQL identifier to prevent SQL injection.
func pgIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}
