package dto_test

import (
	"testing"

	"github.com/sangamhq/sangam/pkg/dto"
	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	p := dto.Page{}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 20, p.Size)

	p = dto.Page{Number: -3, Size: 500}.Normalize()
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 20, p.Size)

	p = dto.Page{Number: 4, Size: 50}.Normalize()
	assert.Equal(t, 4, p.Number)
	assert.Equal(t, 50, p.Size)
	assert.Equal(t, 150, p.Offset())
}

func TestNewPaginated(t *testing.T) {
	t.Parallel()

	data := []string{"a", "b"}
	result := dto.NewPaginated(data, 41, dto.Page{Number: 2, Size: 20})
	assert.Equal(t, 2, result.Count)
	assert.EqualValues(t, 41, result.Total)
	assert.Equal(t, 2, result.Page)
	assert.EqualValues(t, 3, result.Pages)

	empty := dto.NewPaginated([]string{}, 0, dto.Page{Number: 1, Size: 20})
	assert.Equal(t, 0, empty.Count)
	assert.EqualValues(t, 0, empty.Pages)
}
