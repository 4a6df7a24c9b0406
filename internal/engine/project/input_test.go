package project

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"ejbctx/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestExtractZip_SingleTopLevelDirectory(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"shop/":                          "",
		"shop/src/OrderService.java":     "public interface OrderService {}",
		"shop/src/OrderServiceBean.java": "public class OrderServiceBean implements OrderService {}",
	})
	dest := t.TempDir()

	root, err := ExtractZip(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "shop"), root)

	data, err := os.ReadFile(filepath.Join(root, "src", "OrderService.java"))
	require.NoError(t, err)
	assert.Equal(t, "public interface OrderService {}", string(data))
}

func TestExtractZip_FlatArchive(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"A.java":     "class A {}",
		"pkg/B.java": "class B {}",
	})
	dest := t.TempDir()

	root, err := ExtractZip(archive, dest)
	require.NoError(t, err)
	assert.Equal(t, dest, root)
	assert.FileExists(t, filepath.Join(dest, "pkg", "B.java"))
}

func TestExtractZip_RejectsPathTraversal(t *testing.T) {
	archive := writeZip(t, map[string]string{"../../evil.java": "class Evil {}"})
	parent := t.TempDir()
	dest := filepath.Join(parent, "out")

	_, err := ExtractZip(archive, dest)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
	assert.NoFileExists(t, filepath.Join(parent, "evil.java"))
}

func TestExtractZip_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ExtractZip(path, t.TempDir())
	assert.Error(t, err)
}

func TestPrepareInput_Directory(t *testing.T) {
	dir := t.TempDir()
	input, err := PrepareInput(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, input.Root)
	assert.False(t, input.FromArchive)
	assert.NoError(t, input.Cleanup())
	assert.DirExists(t, dir)
}

func TestPrepareInput_Zip(t *testing.T) {
	archive := writeZip(t, map[string]string{"proj/A.java": "class A {}"})

	input, err := PrepareInput(archive)
	require.NoError(t, err)
	assert.True(t, input.FromArchive)
	assert.Equal(t, "proj", filepath.Base(input.Root))
	assert.FileExists(t, filepath.Join(input.Root, "A.java"))

	require.NoError(t, input.Cleanup())
	assert.NoDirExists(t, input.Root)
}

func TestPrepareInput_Errors(t *testing.T) {
	_, err := PrepareInput(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	plain := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	input, err := PrepareInput(plain)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
	assert.NoError(t, input.Cleanup())
}
