package main

import (
	"ejbctx/internal/core/app"
	"ejbctx/internal/core/ports"
	"ejbctx/internal/engine/project"
	"ejbctx/internal/shared/util"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

func renderValidation(res project.Result) string {
	if !res.Valid {
		return errorStyle.Render(res.Message)
	}
	var b strings.Builder
	b.WriteString(successStyle.Render(res.Message))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d Java files | descriptor: %t | annotations: %t",
		res.JavaFiles, res.HasDescriptor, res.HasAnnotations)))
	return b.String()
}

func renderAnalysis(res app.Result) string {
	if !res.Success {
		return errorStyle.Render(res.Message)
	}

	var b strings.Builder
	b.WriteString(titleStyle("EJB Context Analysis"))
	b.WriteString("\n")
	b.WriteString(successStyle.Render(res.Message))
	b.WriteString("\n")

	if res.Analysis != nil {
		links := res.Analysis.Stats.Links
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d Java files | %d beans linked | %d without bean",
			res.Analysis.Stats.JavaFiles, links.ByNaming+links.ByImplements, links.Unlinked)))
		b.WriteString("\n")
	}

	byCategory := make(map[string][]string)
	for _, sc := range res.Contexts {
		category := string(sc.Metadata.Category)
		byCategory[category] = append(byCategory[category], sc.InterfaceName)
	}
	for _, category := range util.SortedStringKeys(byCategory) {
		fmt.Fprintf(&b, "  %s: %s\n", category, strings.Join(byCategory[category], ", "))
	}

	if res.BackupsWritten > 0 {
		fmt.Fprintf(&b, "Backups: %d files in %s\n", res.BackupsWritten, res.BackupDir)
	}
	if res.BundlesStored > 0 {
		fmt.Fprintf(&b, "Context store: %d bundles\n", res.BundlesStored)
	}
	if res.ManifestPath != "" {
		fmt.Fprintf(&b, "Manifest: %s\n", res.ManifestPath)
	}
	if n := res.ContextStats.DroppedRelated; n > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d related types had no readable source", n)))
		b.WriteString("\n")
	}
	for _, w := range res.Warnings {
		b.WriteString(warningStyle.Render("warning: " + w))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderQuery(query string, results []ports.QueryResult, full bool) string {
	if len(results) == 0 {
		return warningStyle.Render(fmt.Sprintf("No results for %q", query))
	}

	var b strings.Builder
	b.WriteString(titleStyle(fmt.Sprintf("%d results for %q", len(results), query)))
	for _, r := range results {
		md := r.Metadata
		bean := md.BeanClass
		if bean == "" {
			bean = "-"
		}
		fmt.Fprintf(&b, "\n%s %s\n", successStyle.Render(md.InterfaceName), statusStyle.Render(fmt.Sprintf("(distance %.3f)", r.Distance)))
		fmt.Fprintf(&b, "  package: %s | type: %s | bean: %s | methods: %d | DTOs: %d | entities: %d\n",
			md.Package, md.InterfaceType, bean, md.MethodCount, md.DTOCount, md.EntityCount)
		if full {
			b.WriteString(r.Document)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDocuments(res app.DocumentResult) string {
	var b strings.Builder
	b.WriteString(successStyle.Render(fmt.Sprintf("Generated %d documents", len(res.Generated))))
	for _, path := range res.Generated {
		b.WriteString("\n  " + path)
	}
	for _, name := range util.SortedStringKeys(res.Failed) {
		b.WriteString("\n" + warningStyle.Render(fmt.Sprintf("failed %s: %s", name, res.Failed[name])))
	}
	return b.String()
}
