// Package cli defines the hexmaker command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/hexmaker/internal/version"
	"github.com/example/hexmaker/internal/wire"
)

// session carries the container built from the global flags.
type session struct {
	project   string
	verbose   bool
	container *wire.Container
}

// RootCmd builds the complete command tree.
func RootCmd() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "hexmaker",
		Short:   "Generate hexagonal Symfony building blocks",
		Version: version.String(),
		Long: `hexmaker generates the PHP classes, ORM mappings, tests and configuration
entries of a hexagonal Symfony project from short command-line descriptions.

Examples:
  hexmaker make entity sales/order Order --properties "total:float(0,),status:string:nullable"
  hexmaker make command sales/order CreateOrder --factory --with-tests
  hexmaker make crud catalog/product Product --dry-run`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.project, "project", "", "Project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "Log diagnostics to stderr")

	rootCmd.AddCommand(MakeCmd(s))
	rootCmd.AddCommand(HistoryCmd(s))
	rootCmd.AddCommand(TemplatesCmd(s))
	rootCmd.AddCommand(ConfigCmd(s))
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

func (s *session) open(cmd *cobra.Command) error {
	root := s.project
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	s.container = wire.New(wire.Settings{
		ProjectRoot: abs,
		Verbose:     s.verbose,
		Stderr:      cmd.ErrOrStderr(),
	})
	return nil
}

func (s *session) close() error {
	if s.container == nil {
		return nil
	}
	err := s.container.Close()
	s.container = nil
	return err
}
