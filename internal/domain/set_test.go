package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	got := NormalizeTags([]string{"Medical", " medical", "", "Beginner", "BEGINNER", "anatomy"})
	assert.Equal(t, []string{"medical", "beginner", "anatomy"}, got)
	assert.Empty(t, NormalizeTags(nil))
}

func TestSetDescriptorHasTag(t *testing.T) {
	t.Parallel()

	d := SetDescriptor{Tags: []string{"science", "advanced"}}
	assert.True(t, d.HasTag("Science"))
	assert.False(t, d.HasTag("history"))
}

func TestCloneDetachesFromSource(t *testing.T) {
	t.Parallel()

	pdf, pages := "exam.pdf", 10
	m := &SetMetadata{SourcePDF: &pdf, TotalPages: &pages}
	mc := m.Clone()
	pdf, pages = "other.pdf", 99
	require.NotNil(t, mc.SourcePDF)
	assert.Equal(t, "exam.pdf", *mc.SourcePDF)
	assert.Equal(t, 10, *mc.TotalPages)
	assert.Nil(t, mc.FormatType)

	d := &SetDescriptor{ID: "a", Title: "before", Tags: []string{"x"}}
	dc := d.Clone()
	d.Title = "after"
	d.Tags[0] = "y"
	assert.Equal(t, "before", dc.Title)
	assert.Equal(t, []string{"x"}, dc.Tags)

	assert.Nil(t, (*SetMetadata)(nil).Clone())
	assert.Nil(t, (*SetDescriptor)(nil).Clone())
}

func TestCatalogFind(t *testing.T) {
	t.Parallel()

	c := &Catalog{FlashcardSets: []SetDescriptor{
		{ID: "anatomy_basics", Filename: "anatomy_basics.json", Title: "Anatomy Basics"},
		{ID: "world_history", Filename: "world_history.json", Title: "World History"},
	}}

	d, err := c.FindByFilename("world_history.json")
	require.NoError(t, err)
	assert.Equal(t, "world_history", d.ID)

	// The returned descriptor is a copy.
	d.Title = "changed"
	assert.Equal(t, "World History", c.FlashcardSets[1].Title)

	d, err = c.FindByID("anatomy_basics")
	require.NoError(t, err)
	assert.Equal(t, "anatomy_basics.json", d.Filename)

	_, err = c.FindByFilename("missing.json")
	assert.ErrorIs(t, err, ErrSetNotFound)

	_, err = c.FindByID("missing")
	assert.ErrorIs(t, err, ErrSetNotFound)
}
