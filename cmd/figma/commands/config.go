package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show the effective configuration and store the API token",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetTokenCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if viper.ConfigFileUsed() == "" && cfg.APIToken == "" {
				return constants.ErrNoConfigFile
			}

			cfg.APIToken = maskToken(cfg.APIToken)

			return render(cmd.OutOrStdout(), cfg, []string{"Setting", "Value"}, func(table *tablewriter.Table) {
				rows := [][]string{
					{"Config File", orNA(viper.ConfigFileUsed())},
					{"API Token", cfg.APIToken},
					{"Base URL", cfg.BaseURL},
					{"Retry Max", strconv.Itoa(cfg.RetryMax)},
					{"Retry Wait Unit", cfg.RetryWaitUnit.String()},
					{"HTTP Timeout", cfg.HTTPTimeout.String()},
					{"Lease Wait Interval", cfg.LeaseWaitInterval.String()},
					{"NATS URL", orNA(cfg.NATS.URL)},
					{"NATS Subject", cfg.NATS.Subject},
					{"Output", cfg.Output},
				}

				names := make([]string, 0, len(cfg.Buckets))
				for name := range cfg.Buckets {
					names = append(names, name)
				}

				sort.Strings(names)

				for _, name := range names {
					bucket := cfg.Buckets[name]
					rows = append(rows, []string{
						"Bucket " + name,
						fmt.Sprintf("%d / %s", bucket.TokensPerPeriod, bucket.Period),
					})
				}

				for _, row := range rows {
					_ = table.Append(row[0], row[1])
				}
			})
		},
	}
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token [TOKEN]",
		Short: "Store the API token",
		Long:  "Store a Figma personal access token in the config file. Without an argument the token is read from the terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string

			if len(args) == 1 {
				token = args[0]
			} else {
				read, err := promptToken(cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				token = read
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return constants.ErrEmptyToken
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			if err := saveConfigValue(path, "api_token", token); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", path)

			return nil
		},
	}
}

// promptToken reads a token from the terminal without echoing it.
func promptToken(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", constants.ErrTokenNotTerminal
	}

	_, _ = fmt.Fprint(prompt, "Figma API token: ")

	tokenBytes, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(prompt)

	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}

	return string(tokenBytes), nil
}

// configFilePath returns the config file in use, the --config path, or the
// default $HOME/.figma/config.yml.
func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	if flag := viper.GetString("config"); flag != "" {
		return flag, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, ".figma", "config.yml"), nil
}

// saveConfigValue sets key in the YAML file at path, keeping every other key.
func saveConfigValue(path, key string, value interface{}) error {
	settings := map[string]interface{}{}

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		if settings == nil {
			settings = map[string]interface{}{}
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading %s: %w", path, err)
	}

	settings[key] = value

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, out, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
