package project

import (
	"os"
	"path/filepath"
	"testing"

	"ejbctx/internal/engine/scanner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) string {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestValidate_PlainPOJOsAreRejected(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{
		"src/Customer.java": "public class Customer { private String name; }",
		"src/Address.java":  "public class Address { private String street; }",
		"src/Shape.java":    "public interface Shape { double area(); }",
	})

	result := Validate(root, 100, scanner.Options{})
	assert.False(t, result.Valid)
	assert.Equal(t, MsgNotEJB, result.Message)
	assert.Equal(t, 3, result.JavaFiles)
}

func TestValidate_NoJavaFiles(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{"pom.xml": "<project/>"})

	result := Validate(root, 100, scanner.Options{})
	assert.False(t, result.Valid)
	assert.Equal(t, MsgNoJavaFiles, result.Message)
}

func TestValidate_MissingPath(t *testing.T) {
	result := Validate(filepath.Join(t.TempDir(), "nope"), 100, scanner.Options{})
	assert.False(t, result.Valid)
	assert.Equal(t, MsgPathMissing, result.Message)
}

func TestValidate_Markers(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		valid   bool
		message string
		hits    int
	}{
		{
			name: "deployment descriptor",
			files: map[string]string{
				"src/A.java": "class A {}",
				"src/main/resources/META-INF/ejb-jar.xml": "<ejb-jar/>",
			},
			valid:   true,
			message: "Valid EJB project detected with 0 interfaces",
		},
		{
			name: "annotation",
			files: map[string]string{
				"src/Cart.java": "@Stateful\npublic class Cart {}",
			},
			valid:   true,
			message: "Valid EJB project detected with 0 interfaces",
		},
		{
			name: "two conventional interfaces",
			files: map[string]string{
				"src/UserService.java": "public interface UserService {}",
				"src/UserDAO.java":     "public interface UserDAO {}",
			},
			valid:   true,
			message: "Valid EJB project detected with 2 interfaces",
			hits:    2,
		},
		{
			name: "one conventional interface is not enough",
			files: map[string]string{
				"src/UserService.java": "public interface UserService {}",
				"src/User.java":        "public class User {}",
			},
			valid:   false,
			message: MsgNotEJB,
			hits:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeTree(t, t.TempDir(), tt.files)
			result := Validate(root, 100, scanner.Options{})
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.message, result.Message)
			assert.Equal(t, tt.hits, result.InterfaceHits)
		})
	}
}

func TestValidate_SampleLimit(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{
		"a/A.java": "class A {}",
		"b/B.java": "class B {}",
		"z/Z.java": "@Stateless public class Z {}",
	})

	assert.False(t, Validate(root, 2, scanner.Options{}).Valid)
	assert.True(t, Validate(root, 3, scanner.Options{}).Valid)
}

func TestValidate_ExcludedDirectories(t *testing.T) {
	root := writeTree(t, t.TempDir(), map[string]string{
		"src/A.java":          "class A {}",
		"target/gen/Gen.java": "@Remote public interface GenRemote {}",
	})

	assert.True(t, Validate(root, 100, scanner.Options{}).Valid)
	assert.False(t, Validate(root, 100, scanner.Options{ExcludeDirs: []string{"target"}}).Valid)
}
