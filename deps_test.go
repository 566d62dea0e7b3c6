package usda

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gousd/usda/usd"
)

func TestResolveAsset(t *testing.T) {
	tests := []struct {
		layer string
		asset usd.AssetRef
		want  string
	}{
		{filepath.Join("scenes", "shot.usda"), "./set.usda", filepath.Join("scenes", "set.usda")},
		{filepath.Join("scenes", "shot.usda"), "../lib/props.usda", filepath.Join("lib", "props.usda")},
		{filepath.Join("scenes", "shot.usda"), "set.usda", filepath.Join("scenes", "set.usda")},
		{"mem:shots/a.usda", "./b.usda", "mem:shots/b.usda"},
		{"mem:a.usda", "../up.usda", "mem:../up.usda"},
	}
	for _, tt := range tests {
		t.Run(string(tt.asset), func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveAsset(tt.layer, tt.asset))
		})
	}
}

func TestResolveAssetAbsolute(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join("assets", "x.usda"))
	require.NoError(t, err)
	assert.Equal(t, abs, ResolveAsset("mem:a.usda", usd.AssetRef(abs)))
}

func parseMem(t *testing.T, fsys fstest.MapFS) []FileResult {
	t.Helper()
	results, err := ParseFiles(context.Background(), FS("mem", fsys))
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err, r.Path)
	}
	return results
}

func TestLayerGraph(t *testing.T) {
	results := parseMem(t, fstest.MapFS{
		"shot.usda": {Data: []byte(`#usda 1.0
(
    subLayers = [@./anim.usda@]
)
def "Shot" (
    prepend references = @./set/set.usda@</Set>
)
{
}
`)},
		"anim.usda": {Data: []byte("#usda 1.0\n")},
		"set/set.usda": {Data: []byte(`def "Set" (
    payload = @../props/heavy.usdc@
)
{
}
`)},
	})

	lg := BuildLayerGraph(results)
	assert.Equal(t, []string{"mem:anim.usda", "mem:props/heavy.usdc", "mem:set/set.usda", "mem:shot.usda"}, lg.Layers())
	assert.Equal(t, []string{"mem:anim.usda", "mem:set/set.usda"}, lg.Dependencies("mem:shot.usda"))
	assert.Equal(t, []string{"mem:shot.usda"}, lg.Dependents("mem:set/set.usda"))
	assert.Equal(t, []string{"mem:props/heavy.usdc"}, lg.Unresolved())

	order, cycles := lg.LoadOrder()
	assert.Empty(t, cycles)
	assert.False(t, lg.HasCycles())
	assert.Equal(t, []string{"mem:anim.usda", "mem:props/heavy.usdc", "mem:set/set.usda", "mem:shot.usda"}, order)
}

func TestLayerGraphCycle(t *testing.T) {
	results := parseMem(t, fstest.MapFS{
		"a.usda": {Data: []byte("#usda 1.0\n(\n    subLayers = [@./b.usda@]\n)\n")},
		"b.usda": {Data: []byte("#usda 1.0\n(\n    subLayers = [@./a.usda@]\n)\n")},
		"c.usda": {Data: []byte("#usda 1.0\n(\n    subLayers = [@./a.usda@]\n)\n")},
	})

	lg := BuildLayerGraph(results)
	order, cycles := lg.LoadOrder()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"mem:a.usda", "mem:b.usda"}, cycles[0])
	assert.Equal(t, []string{"mem:c.usda"}, order)
	assert.True(t, lg.HasCycles())
	assert.Equal(t, cycles, lg.Cycles())
	assert.Equal(t, 3, lg.Len())
}

func TestLayerGraphFailedFiles(t *testing.T) {
	results, err := ParseFiles(context.Background(), MustDir("testdata/invalid"))
	require.NoError(t, err)

	lg := BuildLayerGraph(results)
	assert.Len(t, lg.Layers(), len(results))
	assert.Empty(t, lg.Unresolved())
}
