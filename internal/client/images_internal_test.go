package client

import (
	"testing"

	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSVG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		markup  string
		wantErr bool
	}{
		{name: "minimal", markup: `<svg/>`},
		{name: "with prolog", markup: `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><g/></svg>`},
		{name: "with comment before root", markup: `<!-- exported --><svg></svg>`},
		{name: "empty", markup: "", wantErr: true},
		{name: "text", markup: "not xml", wantErr: true},
		{name: "unclosed", markup: `<svg><g></svg>`, wantErr: true},
		{name: "other root", markup: `<png/>`, wantErr: true},
		{name: "trailing whitespace and comment", markup: "<svg></svg>\n<!-- end -->\n"},
		{name: "second root", markup: `<svg/><svg/>`, wantErr: true},
		{name: "trailing text", markup: `<svg></svg>trailing garbage`, wantErr: true},
		{name: "trailing element", markup: `<svg></svg><script/>`, wantErr: true},
		{name: "leading text", markup: `junk<svg/>`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateSVG(tt.markup)
			if tt.wantErr {
				require.ErrorIs(t, err, figma.ErrInvalidSVGDocument)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestImageQuery(t *testing.T) {
	t.Parallel()

	query, err := imageQuery([]string{"1:2"}, figma.DefaultImageOptions())
	require.NoError(t, err)

	assert.Equal(t, "1:2", query.Get("ids"))
	assert.Equal(t, "1", query.Get("scale"))
	assert.Equal(t, "svg", query.Get("format"))
	assert.Equal(t, "true", query.Get("svg_outline_text"))
	assert.Equal(t, "false", query.Get("svg_include_id"))
	assert.Equal(t, "false", query.Get("svg_include_node_id"))
	assert.Equal(t, "true", query.Get("svg_simplify_stroke"))
	assert.Equal(t, "true", query.Get("contents_only"))
	assert.Equal(t, "false", query.Get("use_absolute_bounds"))
	assert.False(t, query.Has("version"))
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/v1/files/abc", filePath("abc"))
	assert.Equal(t, "/v1/files/abc/comments", filePath("abc", "comments"))
	assert.Equal(t, "/v1/files/a%2Fb/versions", filePath("a/b", "versions"))
}
