package scanner

import (
	"os"
	"strings"
)

// ReadFunc loads a source file as text.
type ReadFunc func(path string) (string, error)

// ReadSource reads path and drops byte sequences that are not valid UTF-8.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// CachedReader memoizes reads for the lifetime of one analysis run.
// Failed reads are cached too, so a broken file is reported once.
type CachedReader struct {
	read    ReadFunc
	content map[string]string
	failed  map[string]error
}

func NewCachedReader(read ReadFunc) *CachedReader {
	if read == nil {
		read = ReadSource
	}
	return &CachedReader{
		read:    read,
		content: make(map[string]string),
		failed:  make(map[string]error),
	}
}

func (c *CachedReader) Read(path string) (string, error) {
	if text, ok := c.content[path]; ok {
		return text, nil
	}
	if err, ok := c.failed[path]; ok {
		return "", err
	}
	text, err := c.read(path)
	if err != nil {
		c.failed[path] = err
		return "", err
	}
	c.content[path] = text
	return text, nil
}
