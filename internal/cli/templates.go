package cli

import (
	"github.com/spf13/cobra"
)

// TemplatesCmd returns the templates command.
func TemplatesCmd(s *session) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the template set",
		Long: `Inspect the templates used for generation. Files in the project's template
directory (template_dir in hexmaker.yaml) shadow the built-in templates with the
same id, e.g. .hexmaker/templates/entity/model.tmpl.`,
	}

	templatesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List template ids and where each comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := s.container.TemplatesAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.List(cmd.Context())
		},
	}

	templatesCheckCmd := &cobra.Command{
		Use:   "check",
		Short: "Parse every template and report all failures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := s.container.TemplatesAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Check(cmd.Context())
		},
	}

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesCheckCmd)
	return templatesCmd
}
