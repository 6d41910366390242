// Package commands implements the figma CLI command tree.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fivetwenty-io/figma/internal/config"
	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/fivetwenty-io/figma/pkg/figmaclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Masked       = "***"

	timeLayout = "2006-01-02 15:04:05"
)

// TableFunc fills a table for the table output format.
type TableFunc func(table *tablewriter.Table)

// loadConfig decodes the global viper state.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the CLI logger. Verbose output is human readable and
// includes debug entries; otherwise only warnings and errors are written.
func newLogger(verbose bool) (*zap.Logger, error) {
	var zapConfig zap.Config

	if verbose {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		zapConfig.Encoding = "console"
	}

	zapConfig.OutputPaths = []string{"stderr"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}

// CreateClient creates a Figma client from the CLI configuration. The
// returned cleanup closes the client and flushes the logger.
func CreateClient(ctx context.Context) (figma.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}

	clientConfig, err := cfg.ToClientConfig(figma.NewZapLogger(logger))
	if err != nil {
		_ = logger.Sync()

		return nil, nil, fmt.Errorf("building client configuration: %w", err)
	}

	client, err := figmaclient.New(ctx, clientConfig)
	if err != nil {
		_ = logger.Sync()

		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close client", zap.Error(err))
		}

		_ = logger.Sync()
	}

	return client, cleanup, nil
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	return signal.NotifyContext(parent, os.Interrupt)
}

// withClient runs fn with a configured client and an interruptible context.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client figma.Client) error) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	client, cleanup, err := CreateClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	return fn(ctx, client)
}

// outputFormat returns the selected output format.
func outputFormat() string {
	output := viper.GetString("output")
	if output == "" {
		return constants.FormatTable
	}

	return output
}

// render writes data in the selected output format. fill is used for the
// table format.
func render(out io.Writer, data interface{}, headers []string, fill TableFunc) error {
	switch outputFormat() {
	case constants.FormatJSON:
		return StandardJSONRenderer(out, data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(out, data)
	case constants.FormatTable:
		table := tablewriter.NewWriter(out)
		table.Header(toAny(headers)...)
		fill(table)

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutputFormat, outputFormat())
	}
}

// StandardJSONRenderer writes indented JSON.
func StandardJSONRenderer(out io.Writer, data interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes YAML.
func StandardYAMLRenderer(out io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(constants.JSONIndentSize)

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

// titleCategory renders a category as a table label, e.g. "File Image".
func titleCategory(category figma.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(category), "_", " "))
}

// truncate shortens s for table cells.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= constants.StringTruncationLength {
		return s
	}

	return string(runes[:constants.StringTruncationLength-3]) + "..."
}

// maskToken hides all but the last few characters of a credential.
func maskToken(token string) string {
	if token == "" {
		return NotAvailable
	}

	if len(token) <= constants.TokenMaskVisible {
		return Masked
	}

	return Masked + token[len(token)-constants.TokenMaskVisible:]
}

// orNA substitutes NotAvailable for empty strings.
func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}

	return s
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(values []string) []string {
	var out []string

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
