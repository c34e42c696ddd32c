package classify

import (
	"testing"

	"github.com/arthur-debert/iconforge/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func testTable() []schema.Category {
	return []schema.Category{
		{ID: "action", Keywords: []string{"arrow", "play", "download"}},
		{ID: "commerce", Keywords: []string{"bag", "cart", "tag"}},
		{ID: "media", Keywords: []string{"play", "camera"}},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"arrow-right", "action"},
		{"bag-two", "commerce"},
		{"Bag 2", "commerce"},
		{"camera-roll", "media"},
		// "play" appears in both action and media; first-registered wins.
		{"play-circle", "action"},
		{"mystery-shape", "misc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, testTable()))
		})
	}
}

func TestRelatedCategories(t *testing.T) {
	assert.Equal(t, []string{"action", "media"}, RelatedCategories("play-button", testTable()))
	assert.Equal(t, []string{"commerce"}, RelatedCategories("shopping-bag", testTable()))
	assert.Empty(t, RelatedCategories("mystery", testTable()))
}

func TestGenerateTags(t *testing.T) {
	tags := GenerateTags("arrow-right", "action", testTable())
	assert.Equal(t, []string{"arrow", "right"}, tags)

	// Keywords of other categories don't leak in.
	tags = GenerateTags("bag-two", "commerce", testTable())
	assert.Equal(t, []string{"bag", "two"}, tags)

	// Misc icons still get their own words as tags.
	tags = GenerateTags("mystery-shape", "misc", testTable())
	assert.Equal(t, []string{"mystery", "shape"}, tags)
}
