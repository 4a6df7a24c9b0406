package scanner

import (
	"ejbctx/internal/core/errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := New(Options{
		ExcludeDirs:       []string{".git", "target", "node_modules", "*.egg-info"},
		ExcludeFiles:      []string{"*Generated.java"},
		IgnoredExtensions: []string{".class", ".jar"},
	})
	require.NoError(t, err)
	return s
}

func TestJavaFiles_FiltersAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b/B.java", "class B {}")
	writeFile(t, root, "src/a/A.java", "class A {}")
	writeFile(t, root, "src/a/Upper.JAVA", "class Upper {}")
	writeFile(t, root, "target/classes/Hidden.java", "class Hidden {}")
	writeFile(t, root, ".git/objects/X.java", "class X {}")
	writeFile(t, root, "pkg.egg-info/Y.java", "class Y {}")
	writeFile(t, root, "src/a/A.class", "binary")
	writeFile(t, root, "src/a/FooGenerated.java", "class FooGenerated {}")
	writeFile(t, root, "README.md", "docs")

	files, err := newTestScanner(t).JavaFiles(root)
	require.NoError(t, err)

	absRoot, _ := filepath.Abs(root)
	assert.Equal(t, []string{
		filepath.Join(absRoot, "src/a/A.java"),
		filepath.Join(absRoot, "src/a/Upper.JAVA"),
		filepath.Join(absRoot, "src/b/B.java"),
	}, files)
}

func TestJavaFiles_EmptyProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pom.xml", "<project/>")

	files, err := newTestScanner(t).JavaFiles(root)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFind_MissingRoot(t *testing.T) {
	_, err := newTestScanner(t).Find(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestFind_RootIsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "A.java", "class A {}")
	_, err := newTestScanner(t).Find(path, nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestFind_ByName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ejb/src/main/resources/META-INF/ejb-jar.xml", "<ejb-jar/>")
	writeFile(t, root, "web/WEB-INF/web.xml", "<web-app/>")

	files, err := newTestScanner(t).Find(root, func(name string) bool { return name == "ejb-jar.xml" })
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ejb-jar.xml", filepath.Base(files[0]))
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(Options{ExcludeDirs: []string{"["}})
	assert.Error(t, err)
}

func TestReadSource_DropsInvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bad.java")
	require.NoError(t, os.WriteFile(path, []byte("class B\xffad {}"), 0o644))

	text, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "class Bad {}", text)
}

func TestCachedReader(t *testing.T) {
	calls := map[string]int{}
	reader := NewCachedReader(func(path string) (string, error) {
		calls[path]++
		if path == "missing" {
			return "", os.ErrNotExist
		}
		return "content:" + path, nil
	})

	for i := 0; i < 3; i++ {
		text, err := reader.Read("a")
		require.NoError(t, err)
		assert.Equal(t, "content:a", text)

		_, err = reader.Read("missing")
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
	assert.Equal(t, 1, calls["a"])
	assert.Equal(t, 1, calls["missing"])
}
