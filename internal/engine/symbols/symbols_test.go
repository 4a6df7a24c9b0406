package symbols

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryReader(files map[string]string) func(string) (string, error) {
	return func(path string) (string, error) {
		content, ok := files[path]
		if !ok {
			return "", errors.New("unreadable")
		}
		return content, nil
	}
}

func TestBuild(t *testing.T) {
	files := map[string]string{
		"/p/src/b/OrderBean.java":    "package com.acme.b;\npublic class OrderBean implements OrderService {\n  static final class Helper {}\n}",
		"/p/src/a/OrderService.java": "package com.acme.a;\n@Remote public interface OrderService {}",
		"/p/src/Default.java":        "enum Default { A }",
	}
	paths := []string{"/p/src/b/OrderBean.java", "/p/src/a/OrderService.java", "/p/src/Default.java", "/p/src/Gone.java"}

	table, stats := Build(paths, memoryReader(files))

	assert.Equal(t, 3, stats.FilesScanned)
	assert.Equal(t, 1, stats.FilesFailed)
	assert.Equal(t, 4, stats.Declarations)

	path, ok := table.Lookup("OrderService")
	require.True(t, ok)
	assert.Equal(t, "/p/src/a/OrderService.java", path)
	assert.True(t, table.Has("com.acme.a.OrderService"))
	assert.True(t, table.Has("com.acme.b.Helper"))
	assert.True(t, table.Has("Default"))
	assert.False(t, table.Has(".Default"))
	assert.Equal(t, 7, table.Len())

	assert.Equal(t, []string{"Default", "OrderService", "Helper", "OrderBean"}, table.SimpleNames())
	assert.Equal(t, []string{"/p/src/Default.java", "/p/src/a/OrderService.java", "/p/src/b/OrderBean.java"}, table.Files())
}

func TestBuild_LastPathWinsDeterministically(t *testing.T) {
	files := map[string]string{
		"/p/x/Dup.java": "package x; class Dup {}",
		"/p/y/Dup.java": "package y; class Dup {}",
	}

	for _, order := range [][]string{
		{"/p/x/Dup.java", "/p/y/Dup.java"},
		{"/p/y/Dup.java", "/p/x/Dup.java"},
	} {
		table, stats := Build(order, memoryReader(files))
		path, _ := table.Lookup("Dup")
		assert.Equal(t, "/p/y/Dup.java", path)
		assert.Equal(t, 1, stats.Collisions)
		assert.Equal(t, []Collision{{Name: "Dup", Kept: "/p/y/Dup.java", Shadowed: "/p/x/Dup.java"}}, table.Collisions())
		assert.True(t, table.Has("x.Dup"))
		assert.True(t, table.Has("y.Dup"))
	}
}

func TestBuildImports(t *testing.T) {
	files := map[string]string{
		"/p/A.java": "package p;\nimport com.acme.OrderDTO;\nimport com.acme.model.*;\ninterface A {}\nclass A2 {}",
		"/p/B.java": "package p; class B {}",
	}
	table, _ := Build([]string{"/p/A.java", "/p/B.java"}, memoryReader(files))

	calls := 0
	reader := func(path string) (string, error) {
		calls++
		if path == "/p/B.java" {
			return "", errors.New("gone")
		}
		return files[path], nil
	}

	imports := BuildImports(table, reader)
	assert.Equal(t, 2, calls, "each file is read once")
	assert.Equal(t, []string{"com.acme.OrderDTO", "com.acme.model.*"}, imports.Imports("/p/A.java"))
	assert.NotNil(t, imports["/p/B.java"])
	assert.Empty(t, imports["/p/B.java"])
}

func TestIsQualified(t *testing.T) {
	assert.True(t, IsQualified("a.B"))
	assert.False(t, IsQualified("B"))
}
