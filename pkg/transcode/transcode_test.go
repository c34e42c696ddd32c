package transcode

import (
	"regexp"
	"strings"
	"testing"

	forgeerrors "github.com/arthur-debert/iconforge/pkg/errors"
	"github.com/arthur-debert/iconforge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	strokePolicy = types.RenderingPolicy{FillType: types.FillTypeStroke, DefaultStrokeWidth: 2, SupportsStrokeWidth: true}
	fillPolicy   = types.RenderingPolicy{FillType: types.FillTypeFill}
	mixedPolicy  = types.RenderingPolicy{FillType: types.FillTypeMixed, DefaultStrokeWidth: 1.5, SupportsStrokeWidth: true}
)

const strokeSVG = `<svg width="24" height="24" viewBox="0 0 24 24" fill="none" xmlns="http://www.w3.org/2000/svg">
<path d="M4 12h16" stroke="#000" stroke-width="2" stroke-linecap="round"/>
</svg>`

const fillSVG = `<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
<path d="M4 4h16v16H4z" fill="black" fill-rule="evenodd"/>
<circle cx="12" cy="12" r="3" fill="#FFffff"/>
</svg>`

func TestComponentStrokePolicy(t *testing.T) {
	out, err := Component([]byte(strokeSVG), "ArrowRightOutline", strokePolicy)
	require.NoError(t, err)

	assert.Contains(t, out, "const ArrowRightOutline = React.forwardRef")
	assert.Contains(t, out, "ArrowRightOutline.displayName = 'ArrowRightOutline';")
	assert.Contains(t, out, `viewBox="0 0 24 24"`)

	// Stroke channel rewired to the color prop.
	assert.Contains(t, out, "stroke={color}")
	// Stroke width substituted and exposed as a prop with the policy default.
	assert.Contains(t, out, "strokeWidth={strokeWidth}")
	assert.Contains(t, out, "strokeWidth = 2,")
	assert.Contains(t, out, "strokeWidth?: number | string;")
	// Attribute renaming reaches nested content.
	assert.Contains(t, out, "strokeLinecap")
	assert.NotContains(t, out, "stroke-linecap")
}

func TestComponentRootStrokeCarried(t *testing.T) {
	// Normalized sources hoist all stroke paint to the <svg> root.
	normalized := `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">
<path d="M4 12h16"/>
</svg>`

	out, err := Component([]byte(normalized), "ArrowRightOutline", strokePolicy)
	require.NoError(t, err)

	// The root stroke drives every shape, so it must reach the component.
	assert.Contains(t, out, "stroke={color}")
	assert.Contains(t, out, `strokeLinecap="round"`)
	assert.Contains(t, out, `strokeLinejoin="round"`)
	// Width is exposed through the prop, not duplicated as a literal.
	assert.Equal(t, 1, strings.Count(out, "strokeWidth={strokeWidth}"))
	assert.NotContains(t, out, `strokeWidth="2"`)
}

func TestComponentRootStrokeLiteralWidth(t *testing.T) {
	normalized := `<svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="1.5"><path d="M4 12h16"/></svg>`
	fixed := types.RenderingPolicy{FillType: types.FillTypeStroke}

	out, err := Component([]byte(normalized), "ArrowRightLight", fixed)
	require.NoError(t, err)

	assert.Contains(t, out, "stroke={color}")
	assert.Contains(t, out, `strokeWidth="1.5"`)
	assert.NotContains(t, out, "strokeWidth?: number | string;")
}

func TestComponentFillPolicy(t *testing.T) {
	out, err := Component([]byte(fillSVG), "BoxBulk", fillPolicy)
	require.NoError(t, err)

	// Black-ish fills become dynamic; other colors are preserved.
	assert.Contains(t, out, "fill={color}")
	assert.Contains(t, out, `fill="#FFffff"`)
	assert.Contains(t, out, "fillRule")

	// Fill-only policy exposes no strokeWidth prop surface.
	assert.NotContains(t, out, "strokeWidth?: number | string;")
	assert.NotContains(t, out, "strokeWidth = ")
}

func TestColorChannelExclusivity(t *testing.T) {
	// For a stroke policy, no literal non-none stroke value may survive.
	out, err := Component([]byte(strokeSVG), "X", strokePolicy)
	require.NoError(t, err)
	literalStroke := regexp.MustCompile(`stroke="(?:[^n"][^"]*|n[^o"][^"]*)"`)
	assert.NotRegexp(t, literalStroke, out)

	// For a fill policy, no literal black-ish fill may survive.
	out, err = Component([]byte(fillSVG), "X", fillPolicy)
	require.NoError(t, err)
	assert.NotContains(t, out, `fill="black"`)
	assert.NotContains(t, out, `fill="#000"`)
	assert.NotContains(t, out, `fill="#000000"`)
}

func TestComponentMixedPolicy(t *testing.T) {
	svg := `<svg viewBox="0 0 32 32"><path d="M1 1" stroke="#111" fill="black"/><path d="M2 2" stroke="none" fill="none"/></svg>`
	out, err := Component([]byte(svg), "HeartTwoTone", mixedPolicy)
	require.NoError(t, err)

	assert.Contains(t, out, "stroke={color}")
	assert.Contains(t, out, "fill={color}")
	// none stays none in both channels, and the custom viewBox is kept.
	assert.Contains(t, out, `stroke="none"`)
	assert.Contains(t, out, `viewBox="0 0 32 32"`)
	assert.Contains(t, out, "strokeWidth = 1.5,")
}

func TestComponentDefaultViewBox(t *testing.T) {
	out, err := Component([]byte(`<svg><path d="M0 0"/></svg>`), "Dot", fillPolicy)
	require.NoError(t, err)
	assert.Contains(t, out, `viewBox="0 0 24 24"`)
}

func TestComponentStripsStyle(t *testing.T) {
	svg := `<svg viewBox="0 0 24 24"><g style="opacity:.5"><path d="M0 0" style="fill:red"/></g></svg>`
	out, err := Component([]byte(svg), "Styled", fillPolicy)
	require.NoError(t, err)
	assert.NotContains(t, out, "style=")
}

func TestComponentMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no svg wrapper", `<div><p>hi</p></div>`},
		{"truncated", `<svg viewBox="0 0 24 24"><path`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Component([]byte(tt.input), "Broken", strokePolicy)
			require.Error(t, err)
			assert.True(t, forgeerrors.IsErrorCode(err, forgeerrors.ErrMalformedSVG))
		})
	}
}

func TestComponentPure(t *testing.T) {
	first, err := Component([]byte(strokeSVG), "ArrowRightOutline", strokePolicy)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Component([]byte(strokeSVG), "ArrowRightOutline", strokePolicy)
		require.NoError(t, err)
		assert.Equal(t, first, again, "transcoding must be byte-deterministic")
	}
}

func TestFormatWidth(t *testing.T) {
	assert.Equal(t, "2", formatWidth(2))
	assert.Equal(t, "1.5", formatWidth(1.5))
	assert.Equal(t, "0.75", formatWidth(0.75))
}
