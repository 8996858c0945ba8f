package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/example/hexmaker/internal/core/property"
)

// promptProperties asks for one property spec per line until an empty line
// or end of input. Invalid specs are reported and asked for again.
func promptProperties(in io.Reader, out io.Writer) ([]property.Spec, error) {
	var specs []property.Spec
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "Add properties (name:type[(min,max)][:nullable][:unique]), empty line to finish.")
	for {
		fmt.Fprint(out, "Property: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		spec, err := property.Parse(line)
		if err != nil {
			fmt.Fprintf(out, "  ✗ %v\n", err)
			continue
		}
		if seen[spec.Name] {
			fmt.Fprintf(out, "  ✗ property %q already added\n", spec.Name)
			continue
		}
		seen[spec.Name] = true
		specs = append(specs, spec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}
	return specs, nil
}
