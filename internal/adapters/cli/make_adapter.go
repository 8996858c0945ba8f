// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// generation and history to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/hexmaker/internal/ports/primary"
)

// MakeAdapter translates the make command to MakerService calls and reports
// every artifact and configuration change of the run.
type MakeAdapter struct {
	service primary.MakerService
	out     io.Writer
}

// NewMakeAdapter creates a new MakeAdapter with the given service.
func NewMakeAdapter(service primary.MakerService, out io.Writer) *MakeAdapter {
	return &MakeAdapter{
		service: service,
		out:     out,
	}
}

// Make runs one generation request and prints its outcome. On a partial
// failure the completed steps are printed before the error is returned.
func (a *MakeAdapter) Make(ctx context.Context, req primary.GenerateRequest) error {
	resp, err := a.service.Generate(ctx, req)

	var partial *primary.PartialGenerationError
	if err != nil && !errors.As(err, &partial) {
		return err
	}

	if resp != nil {
		if resp.DryRun {
			fmt.Fprintln(a.out, "Dry run: nothing will be written")
			fmt.Fprintln(a.out)
		}
		printArtifacts(a.out, resp.Artifacts)
		printConfig(a.out, resp.Config)
	}

	if partial != nil {
		fmt.Fprintf(a.out, "\n%s Stopped after %d of %d steps at %s\n",
			color.New(color.FgRed).Sprint("✗"), partial.Succeeded, partial.Total, partial.Failed)
		return err
	}

	fmt.Fprintf(a.out, "\n✓ %s %s %s: %s\n", summaryVerb(resp), req.Kind, req.Name, summarize(resp))
	if !resp.DryRun && resp.RunID != "" {
		fmt.Fprintf(a.out, "  Run: %s\n", resp.RunID)
	}
	return nil
}

func printArtifacts(out io.Writer, artifacts []primary.ArtifactResult) {
	for _, art := range artifacts {
		fmt.Fprintf(out, "  %s %s\n", artifactMarker(art), art.Path)
		if art.Diff != "" {
			for _, line := range strings.Split(strings.TrimRight(art.Diff, "\n"), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
		}
	}
}

func printConfig(out io.Writer, results []primary.ConfigResult) {
	for _, c := range results {
		m := marker("UNCHANGED", color.FgBlue)
		if c.Applied {
			m = marker("PATCH", color.FgMagenta)
		}
		fmt.Fprintf(out, "  %s %s (%s)\n", m, c.File, c.SectionKey)
	}
}

// artifactMarker labels one artifact. Previews are labelled by what a real
// run would do.
func artifactMarker(art primary.ArtifactResult) string {
	switch art.Status {
	case primary.ArtifactCreated:
		return marker("CREATE", color.FgGreen)
	case primary.ArtifactOverwritten:
		return marker("OVERWRITE", color.FgYellow)
	case primary.ArtifactSkipped:
		return marker("SKIP", color.FgCyan)
	case primary.ArtifactPreviewed:
		switch {
		case !art.Exists:
			return marker("CREATE", color.FgGreen)
		case art.Diff == "":
			return marker("UNCHANGED", color.FgBlue)
		default:
			return marker("OVERWRITE", color.FgYellow)
		}
	}
	return marker(strings.ToUpper(string(art.Status)), color.FgWhite)
}

// marker pads before colouring so columns line up with or without colour.
func marker(label string, attr color.Attribute) string {
	return color.New(attr).Sprintf("%-10s", label)
}

func summaryVerb(resp *primary.GenerateResponse) string {
	if resp.DryRun {
		return "Previewed"
	}
	return "Generated"
}

func summarize(resp *primary.GenerateResponse) string {
	counts := make(map[primary.ArtifactStatus]int)
	for _, art := range resp.Artifacts {
		counts[art.Status]++
	}

	var parts []string
	for _, s := range []primary.ArtifactStatus{
		primary.ArtifactCreated, primary.ArtifactOverwritten,
		primary.ArtifactSkipped, primary.ArtifactPreviewed,
	} {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "no files")
	}

	patched := 0
	for _, c := range resp.Config {
		if c.Applied {
			patched++
		}
	}
	return fmt.Sprintf("%s, %d of %d config sections patched", strings.Join(parts, ", "), patched, len(resp.Config))
}
