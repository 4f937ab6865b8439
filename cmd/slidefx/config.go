package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/slidefx/internal/config"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the configuration file",
	// Only sets up logging; an invalid file must still be reportable.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return err
		}
		return showConfig(os.Stdout, configPath(), c)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitOpts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file for errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Printf("%s does not exist, defaults apply\n", path)
			return nil
		}
		if _, err := config.LoadConfig(path); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configValidateCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing config file")
}

func showConfig(w io.Writer, path string, c *config.Config) error {
	status := "not present, defaults apply"
	if info, err := os.Stat(path); err == nil {
		status = fmt.Sprintf("modified %s (%s)", humanize.Time(info.ModTime()), humanize.Bytes(uint64(info.Size())))
	}
	fmt.Fprintf(w, "# %s\n# %s\n", path, status)
	fmt.Fprintf(w, "# slide duration %s, edge policy %s\n\n", c.SlideDuration(), c.Policy())

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
