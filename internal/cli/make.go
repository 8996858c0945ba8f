package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/hexmaker/internal/core/binding"
	"github.com/example/hexmaker/internal/core/property"
	"github.com/example/hexmaker/internal/ports/primary"
)

// MakeCmd returns the make command.
func MakeCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make <kind> <path> <name>",
		Short: "Generate an artifact and register its configuration",
		Long: `Generate the files of one artifact under the module at <path> and merge the
configuration entries it needs.

Kinds:
` + kindHelp() + `
Properties are comma-separated name:type[(min,max)][:nullable][:unique] specs.
Types: string, text, int, float, bool, datetime, date, email.
Without --properties, property-accepting kinds prompt for them on stdin
unless --no-interaction is given.

Examples:
  hexmaker make entity sales/order Order --properties "total:float(0,),status:string:nullable" --with-repository
  hexmaker make command sales/order CreateOrder --factory --with-tests
  hexmaker make controller sales/order ShowOrder --route /orders/{id}
  hexmaker make crud catalog/product Product --dry-run`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := binding.ParseKind(args[0])
			if err != nil {
				return err
			}

			opts, err := makeOptions(cmd)
			if err != nil {
				return err
			}

			props, err := makeProperties(cmd, kind)
			if err != nil {
				return err
			}

			adapter, err := s.container.MakeAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return adapter.Make(cmd.Context(), primary.GenerateRequest{
				Kind:       string(kind),
				Path:       args[1],
				Name:       args[2],
				Properties: props,
				Options:    opts,
			})
		},
	}

	cmd.Flags().StringP("properties", "p", "", "Property specs, e.g. \"name:string(1,80),price:float(0,)\"")
	cmd.Flags().Bool("factory", false, "Also generate a factory for a create/update command")
	cmd.Flags().Bool("with-tests", false, "Also generate matching tests")
	cmd.Flags().Bool("with-repository", false, "Entity: also generate the repository interface and adapter")
	cmd.Flags().Bool("with-id-vo", false, "Entity: use an identifier value object")
	cmd.Flags().Bool("with-workflow", false, "Controller: also generate form, use case and command")
	cmd.Flags().Bool("with-subscriber", false, "Domain event: also generate a subscriber")
	cmd.Flags().String("layer", string(binding.LayerApplication), "Subscriber layer (application, infrastructure)")
	cmd.Flags().String("route", "", "Controller route (default: derived from the name)")
	cmd.Flags().String("route-prefix", "", "CRUD route prefix (default: /<entities>)")
	cmd.Flags().String("entity", "", "Entity name, overriding the one derived from the name")
	cmd.Flags().String("test-type", string(binding.TestUnit), "Test flavor (unit, integration, functional)")
	cmd.Flags().String("target", "", "Test: class under test")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	cmd.Flags().Bool("skip-existing", false, "Keep existing files and continue")
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing anything")
	cmd.Flags().BoolP("no-interaction", "n", false, "Never prompt")

	return cmd
}

func makeOptions(cmd *cobra.Command) (binding.Options, error) {
	flags := cmd.Flags()
	factory, _ := flags.GetBool("factory")
	withTests, _ := flags.GetBool("with-tests")
	withRepository, _ := flags.GetBool("with-repository")
	withIDVO, _ := flags.GetBool("with-id-vo")
	withWorkflow, _ := flags.GetBool("with-workflow")
	withSubscriber, _ := flags.GetBool("with-subscriber")
	layer, _ := flags.GetString("layer")
	route, _ := flags.GetString("route")
	routePrefix, _ := flags.GetString("route-prefix")
	entity, _ := flags.GetString("entity")
	testType, _ := flags.GetString("test-type")
	target, _ := flags.GetString("target")
	force, _ := flags.GetBool("force")
	skipExisting, _ := flags.GetBool("skip-existing")
	dryRun, _ := flags.GetBool("dry-run")

	if force && skipExisting {
		return binding.Options{}, fmt.Errorf("--force and --skip-existing cannot be combined")
	}

	return binding.Options{
		Factory:           factory,
		WithTests:         withTests,
		WithRepository:    withRepository,
		WithIDValueObject: withIDVO,
		WithWorkflow:      withWorkflow,
		WithSubscriber:    withSubscriber,
		Layer:             binding.Layer(layer),
		Route:             route,
		RoutePrefix:       routePrefix,
		Entity:            entity,
		TestType:          binding.TestType(testType),
		TestTarget:        target,
		Force:             force,
		SkipExisting:      skipExisting,
		DryRun:            dryRun,
	}, nil
}

// makeProperties reads --properties, or prompts when the kind uses
// properties and prompting is allowed.
func makeProperties(cmd *cobra.Command, kind binding.ArtifactKind) ([]property.Spec, error) {
	list, _ := cmd.Flags().GetString("properties")
	if strings.TrimSpace(list) != "" {
		return property.ParseList(list)
	}

	noInteraction, _ := cmd.Flags().GetBool("no-interaction")
	if noInteraction || !kind.AcceptsProperties() {
		return nil, nil
	}
	return promptProperties(cmd.InOrStdin(), cmd.OutOrStdout())
}

func kindHelp() string {
	var b strings.Builder
	for _, k := range binding.Kinds {
		fmt.Fprintf(&b, "  %-18s %s\n", k, k.Description())
	}
	return b.String()
}
