package commands_test

import (
	"testing"

	"github.com/fivetwenty-io/figma/cmd/figma/commands"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{"comments", commands.NewCommentsCommand(), "comments", []string{"list"}},
		{"files", commands.NewFilesCommand(), "files", []string{"get", "versions"}},
		{"components", commands.NewComponentsCommand(), "components", []string{"get", "list", "sets"}},
		{"images", commands.NewImagesCommand(), "images", []string{"export", "svg-url", "svg"}},
		{"webhooks", commands.NewWebhooksCommand(), "webhooks", []string{"list", "get", "create", "update", "delete"}},
		{"dev resources", commands.NewDevResourcesCommand(), "dev-resources", []string{"list", "create", "delete"}},
		{"projects", commands.NewProjectsCommand(), "projects", []string{"list", "files"}},
		{"config", commands.NewConfigCommand(), "config", []string{"show", "set-token"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Len(t, tt.cmd.Commands(), len(tt.subcommands))

			for _, name := range tt.subcommands {
				sub := findSubcommand(tt.cmd, name)
				require.NotNil(t, sub, "subcommand %s should exist", name)
				assert.NotNil(t, sub.RunE)
				assert.NotEmpty(t, sub.Long)
			}
		})
	}
}

func TestImagesExportCommand(t *testing.T) {
	t.Parallel()

	export := findSubcommand(commands.NewImagesCommand(), "export")
	require.NotNil(t, export)
	assert.Equal(t, "export FILE_KEY", export.Use)

	for _, flagName := range []string{"ids", "scale", "format", "version", "contents-only", "use-absolute-bounds", "svg-include-id"} {
		assert.NotNil(t, export.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "1", export.Flags().Lookup("scale").DefValue)
	assert.Equal(t, "svg", export.Flags().Lookup("format").DefValue)
	assert.Equal(t, "true", export.Flags().Lookup("contents-only").DefValue)
}

func TestImagesSVGCommands(t *testing.T) {
	t.Parallel()

	images := commands.NewImagesCommand()

	svgURL := findSubcommand(images, "svg-url")
	require.NotNil(t, svgURL)
	assert.Nil(t, svgURL.Flags().Lookup("format"), "SVG commands always render svg")

	svg := findSubcommand(images, "svg")
	require.NotNil(t, svg)

	out := svg.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "o", out.Shorthand)
}

func TestWebhooksCreateCommand(t *testing.T) {
	t.Parallel()

	create := findSubcommand(commands.NewWebhooksCommand(), "create")
	require.NotNil(t, create)

	for _, flagName := range []string{"team", "event", "endpoint", "passcode", "status", "description"} {
		assert.NotNil(t, create.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "ACTIVE", create.Flags().Lookup("status").DefValue)
}

func TestFilesGetCommand(t *testing.T) {
	t.Parallel()

	get := findSubcommand(commands.NewFilesCommand(), "get")
	require.NotNil(t, get)
	assert.Equal(t, "get FILE_KEY", get.Use)

	depth := get.Flags().Lookup("depth")
	require.NotNil(t, depth)
	assert.Equal(t, "2", depth.DefValue)
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc", "today")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewBucketsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewBucketsCommand()
	assert.Equal(t, "buckets", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
