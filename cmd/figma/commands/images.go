package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewImagesCommand creates the images command group
func NewImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "Render file nodes",
		Long:    "Render nodes of a Figma file as images and download SVG markup",
	}

	cmd.AddCommand(newImagesExportCommand())
	cmd.AddCommand(newImagesSVGURLCommand())
	cmd.AddCommand(newImagesSVGCommand())

	return cmd
}

// addImageFlags binds render options to cmd, starting from the documented
// defaults.
func addImageFlags(cmd *cobra.Command, opts *figma.ImageOptions, withFormat bool) {
	defaults := figma.DefaultImageOptions()

	cmd.Flags().Float64Var(&opts.Scale, "scale", defaults.Scale, "render scale between 0.01 and 4")
	cmd.Flags().BoolVar(&opts.SVGOutlineText, "svg-outline-text", defaults.SVGOutlineText, "render text as outlines")
	cmd.Flags().BoolVar(&opts.SVGIncludeID, "svg-include-id", defaults.SVGIncludeID, "include layer names as id attributes")
	cmd.Flags().BoolVar(&opts.SVGIncludeNodeID, "svg-include-node-id", defaults.SVGIncludeNodeID, "include node ids as data attributes")
	cmd.Flags().BoolVar(&opts.SVGSimplifyStroke, "svg-simplify-stroke", defaults.SVGSimplifyStroke, "simplify inside and outside strokes")
	cmd.Flags().BoolVar(&opts.ContentsOnly, "contents-only", defaults.ContentsOnly, "exclude overlapping content")
	cmd.Flags().BoolVar(&opts.UseAbsoluteBounds, "use-absolute-bounds", defaults.UseAbsoluteBounds, "use the node's full dimensions")
	cmd.Flags().StringVar(&opts.Version, "version", "", "file version id")

	opts.Format = defaults.Format
	if withFormat {
		cmd.Flags().StringVar(&opts.Format, "format", defaults.Format, "jpg, png, svg or pdf")
	}
}

func newImagesExportCommand() *cobra.Command {
	var (
		opts    figma.ImageOptions
		nodeIDs []string
	)

	cmd := &cobra.Command{
		Use:   "export FILE_KEY",
		Short: "Render nodes",
		Long:  "Render file nodes and print the signed URL of each render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := splitList(nodeIDs)
			if len(ids) == 0 {
				return constants.ErrNodeIDsRequired
			}

			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				images, err := client.Images().Export(ctx, args[0], ids, &opts)
				if err != nil {
					return fmt.Errorf("failed to export images: %w", err)
				}

				keys := make([]string, 0, len(images.Images))
				for key := range images.Images {
					keys = append(keys, key)
				}

				sort.Strings(keys)

				return render(cmd.OutOrStdout(), images.Images, []string{"Node", "URL"}, func(table *tablewriter.Table) {
					for _, key := range keys {
						_ = table.Append(key, orNA(images.Images[key]))
					}
				})
			})
		},
	}

	cmd.Flags().StringSliceVar(&nodeIDs, "ids", nil, "node ids to render (required)")
	addImageFlags(cmd, &opts, true)

	return cmd
}

func newImagesSVGURLCommand() *cobra.Command {
	var opts figma.ImageOptions

	cmd := &cobra.Command{
		Use:   "svg-url FILE_KEY NODE_ID",
		Short: "Get the SVG render URL of a node",
		Long:  "Print the signed SVG render URL of one node, or nothing when the node has no render",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				signed, err := client.Images().SVGURL(ctx, args[0], args[1], &opts)
				if err != nil {
					return fmt.Errorf("failed to resolve SVG URL: %w", err)
				}

				if signed == "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Node %s has no SVG render\n", args[1])

					return nil
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), signed)

				return err
			})
		},
	}

	addImageFlags(cmd, &opts, false)

	return cmd
}

func newImagesSVGCommand() *cobra.Command {
	var (
		opts    figma.ImageOptions
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "svg FILE_KEY NODE_ID",
		Short: "Download the SVG markup of a node",
		Long:  "Render one node as SVG, download and validate the markup",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client figma.Client) error {
				markup, err := client.Images().SVGSource(ctx, args[0], args[1], &opts)
				if err != nil {
					return fmt.Errorf("failed to download SVG: %w", err)
				}

				if markup == "" {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Node %s has no SVG render\n", args[1])

					return nil
				}

				return writeOutput(cmd.OutOrStdout(), outFile, markup)
			})
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the markup to a file instead of stdout")
	addImageFlags(cmd, &opts, false)

	return cmd
}

// writeOutput writes content to path, or to out when path is empty.
func writeOutput(out io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(out, content)

		return err
	}

	if err := os.WriteFile(path, []byte(content), constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
