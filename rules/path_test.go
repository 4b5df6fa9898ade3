package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formstate/datasource"
	"formstate/dotpath"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "name", want: "name"},
		{path: "user.name", want: "user.name"},
		{path: "items[]", want: "items[]"},
		{path: "items[].sku", want: "items[].sku"},
		{path: "a.b[].c[].d", want: "a.b[].c[].d"},
		{path: "", wantErr: true},
		{path: "a..b", wantErr: true},
		{path: "[]", wantErr: true},
		{path: "a.[]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			fp, err := ParsePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fp.String())
		})
	}
}

func TestMatch(t *testing.T) {
	fp, err := ParsePath("items[].sku")
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{path: "items.0.sku", want: true},
		{path: "items.12.sku", want: true},
		{path: "items.sku", want: false},
		{path: "items.x.sku", want: false},
		{path: "items.0", want: false},
		{path: "items.0.sku.extra", want: false},
		{path: "other.0.sku", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, fp.Match(dotpath.Split(tt.path)))
		})
	}
}

func TestIndicesAndConcretize(t *testing.T) {
	fp, err := ParsePath("a[].b[].c")
	require.NoError(t, err)

	indices := fp.Indices(dotpath.Split("a.3.b.7.c"))
	assert.Equal(t, []int{3, 7}, indices)

	path, ok := fp.Concretize(indices)
	require.True(t, ok)
	assert.Equal(t, "a.3.b.7.c", path)

	_, ok = fp.Concretize([]int{1})
	assert.False(t, ok, "too few indices must not concretize")
}

func TestExpand(t *testing.T) {
	data := datasource.New(map[string]any{
		"items": []any{
			map[string]any{"tags": []any{"a", "b"}},
			map[string]any{"tags": []any{"c"}},
		},
	})

	fp, err := ParsePath("items[].tags[]")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"items.0.tags.0", "items.0.tags.1", "items.1.tags.0"},
		fp.Expand(data))

	plain, err := ParsePath("user.name")
	require.NoError(t, err)
	assert.Equal(t, []string{"user.name"}, plain.Expand(data))

	missing, err := ParsePath("missing[]")
	require.NoError(t, err)
	assert.Empty(t, missing.Expand(data))
}
