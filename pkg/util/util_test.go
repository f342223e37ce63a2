// SPDX-License-Identifier: Apache-2.0
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTarXz(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := map[string]string{
		"/proj/main.py":                    "print('hi')\n",
		"/proj/src/app.py":                 "class App: pass\n",
		"/proj/src/__pycache__/app.pyc":    "bytecode",
		"/proj/.env":                       "SUPABASE_URL=\n",
		"/proj/dist/old.tar.xz":            "stale",
		"/proj/src/pages/__pycache__/x.py": "x",
	}
	for p, c := range files {
		require.NoError(t, afero.WriteFile(fsys, p, []byte(c), 0644))
	}
	require.NoError(t, fsys.MkdirAll("/out", 0755))

	skip := func(rel string, info fs.FileInfo) bool {
		return rel == ".env" || rel == "dist" || info.Name() == "__pycache__"
	}

	n, err := CreateTarXz(fsys, "/proj", "/out/proj.tar.xz", skip)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	names, err := ListTarXz(fsys, "/out/proj.tar.xz")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.py", "src/app.py"}, names)
	for _, name := range names {
		assert.False(t, strings.Contains(name, "__pycache__"), name)
	}
}

func TestCreateTarXz_MissingSource(t *testing.T) {
	_, err := CreateTarXz(afero.NewMemMapFs(), "/nowhere", "/out.tar.xz", nil)
	assert.Error(t, err)
}

func TestListTarXz_NotAnArchive(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bogus.tar.xz", []byte("plain text"), 0644))

	_, err := ListTarXz(fsys, "/bogus.tar.xz")
	assert.Error(t, err)
}

func TestWriteSHA256File(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/dist/demo.tar.xz", []byte("payload"), 0644))

	sumPath, hash, err := WriteSHA256File(fsys, "/dist/demo.tar.xz")
	require.NoError(t, err)

	want := sha256.Sum256([]byte("payload"))
	assert.Equal(t, hex.EncodeToString(want[:]), hash)
	assert.Equal(t, "/dist/demo.tar.xz.sha256", sumPath)

	line, err := afero.ReadFile(fsys, sumPath)
	require.NoError(t, err)
	assert.Equal(t, hash+"  demo.tar.xz\n", string(line))
}

func TestCalculateSHA256_Missing(t *testing.T) {
	_, err := CalculateSHA256(afero.NewMemMapFs(), "/missing")
	assert.Error(t, err)
}
