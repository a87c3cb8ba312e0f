package gamespecloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	specs, err := Builtin()
	require.NoError(t, err)

	var names []string
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"five_points", "match_play", "skins", "stableford"}, names)

	fp, ok := Find(specs, "five_points", 0)
	require.True(t, ok)
	assert.Len(t, fp.Junk, 5)
	assert.Len(t, fp.Multipliers, 5)
	assert.Equal(t, 2, fp.Teams.Count)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantCount int
		wantErr   error
	}{
		{
			name:      "two documents",
			data:      "name: a\nversion: 1\n---\nname: b\nversion: 2\n",
			wantCount: 2,
		},
		{
			name:    "unknown field",
			data:    "name: a\nversion: 1\nscorring: {}\n",
			wantErr: gamespecdomain.ErrMalformedGameSpec,
		},
		{
			name:    "invalid spec",
			data:    "name: a\nversion: 0\n",
			wantErr: gamespecdomain.ErrMalformedGameSpec,
		},
		{
			name:    "unknown calculation",
			data:    "name: a\nversion: 1\nscoring:\n  hole:\n    - {name: x, scope: hole, calculation: bogus}\n",
			wantErr: gamespecdomain.ErrMalformedGameSpec,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error %v does not match %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, specs, tt.wantCount)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: b\nversion: 1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("name: a\nversion: 1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	specs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "a", specs[0].Name)
	assert.Equal(t, "b", specs[1].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("name: c\n"), 0o600))
	_, err = LoadDir(dir)
	assert.ErrorIs(t, err, gamespecdomain.ErrMalformedGameSpec)
}

func TestFind(t *testing.T) {
	specs := []gamespecdomain.GameSpec{
		{Name: "a", Version: 1},
		{Name: "a", Version: 3},
		{Name: "a", Version: 2},
		{Name: "b", Version: 1},
	}
	got, ok := Find(specs, "a", 0)
	require.True(t, ok)
	assert.Equal(t, 3, got.Version)

	got, ok = Find(specs, "a", 2)
	require.True(t, ok)
	assert.Equal(t, 2, got.Version)

	_, ok = Find(specs, "a", 9)
	assert.False(t, ok)
}
