// Package project decides whether an input looks like an EJB code base and
// turns archive inputs into a directory the analysis can walk.
package project

import (
	"ejbctx/internal/engine/scanner"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

const (
	DescriptorName     = "ejb-jar.xml"
	DefaultSampleLimit = 100

	MsgPathMissing = "Project path does not exist"
	MsgNoJavaFiles = "No Java files found in the project"
	MsgNotEJB      = "This does not appear to be an EJB project. " +
		"EJB projects should contain @Remote/@Local annotations, " +
		"ejb-jar.xml configuration, or follow EJB naming conventions."
)

var (
	markerAnnotations = []string{"@Remote", "@Local", "@Stateless", "@Stateful", "@Singleton"}
	namingPattern     = regexp.MustCompile(`\binterface\s+\w+(?:Remote|Local|Service|DAO)\b`)
)

// Result is the outcome of Validate. InterfaceHits counts sampled files that
// declare an EJB-style interface name.
type Result struct {
	Valid          bool
	Message        string
	JavaFiles      int
	InterfaceHits  int
	HasDescriptor  bool
	HasAnnotations bool
}

// Validate checks root for EJB markers: a deployment descriptor anywhere, an
// EJB annotation in the first sampleLimit Java files, or at least two of those
// files declaring conventionally named interfaces.
func Validate(root string, sampleLimit int, opts scanner.Options) Result {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return Result{Message: MsgPathMissing}
	}
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}

	s, err := scanner.New(opts)
	if err != nil {
		return Result{Message: fmt.Sprintf("Invalid scanner configuration: %v", err)}
	}
	javaFiles, err := s.JavaFiles(root)
	if err != nil {
		return Result{Message: MsgPathMissing}
	}
	if len(javaFiles) == 0 {
		return Result{Message: MsgNoJavaFiles}
	}

	result := Result{JavaFiles: len(javaFiles)}

	descriptors, err := s.Find(root, func(name string) bool { return name == DescriptorName })
	if err == nil && len(descriptors) > 0 {
		result.HasDescriptor = true
	}

	sample := javaFiles
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	for _, path := range sample {
		content, err := scanner.ReadSource(path)
		if err != nil {
			slog.Debug("skipping unreadable file during validation", "path", path, "error", err)
			continue
		}
		if !result.HasAnnotations && containsMarker(content) {
			result.HasAnnotations = true
		}
		if namingPattern.MatchString(content) {
			result.InterfaceHits++
		}
	}

	result.Valid = result.HasDescriptor || result.HasAnnotations || result.InterfaceHits >= 2
	if !result.Valid {
		result.Message = MsgNotEJB
		return result
	}
	result.Message = fmt.Sprintf("Valid EJB project detected with %d interfaces", result.InterfaceHits)
	return result
}

func containsMarker(content string) bool {
	for _, marker := range markerAnnotations {
		if strings.Contains(content, marker) {
			return true
		}
	}
	return false
}
