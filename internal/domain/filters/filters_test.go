package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitOffset(t *testing.T) {
	f := Filters{}
	assert.Equal(t, DefaultPageSize, f.Limit())
	assert.Equal(t, 0, f.Offset())

	f = Filters{Page: 3, PageSize: 20}
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 40, f.Offset())
}

func TestMetadata(t *testing.T) {
	f := Filters{Page: 2, PageSize: 10}
	meta := f.Metadata(25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 1, meta.FirstPage)
	assert.Equal(t, 3, meta.LastPage)
	assert.Equal(t, 25, meta.TotalRecords)
}

func TestMetadataEmpty(t *testing.T) {
	f := Filters{}
	assert.Equal(t, Metadata{}, f.Metadata(0))
}
