// impgen generates conversational imptest mocks for Go interfaces.
//
// Put a directive next to the tests that need the mock:
//
//	//go:generate go run github.com/toejough/basketimp/impgen BasketLike --dir .
//
// The mock type is named <Interface>Imp unless --name is given, and is
// written to generated_<name>_test.go when generating for a test package.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/toejough/basketimp/impgen/run"
)

func main() {
	err := newCommand(os.Getenv, run.DirLoader{}, &realFileSystem{}, os.Stdout).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(
	getEnv func(string) string, loader run.PackageLoader, fileSys run.FileSystem, out io.Writer,
) *cobra.Command {
	var opts run.Options

	cmd := &cobra.Command{
		Use:           "impgen INTERFACE",
		Short:         "Generate an imptest mock for an interface",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			opts.Interface = args[0]

			return run.Run(opts, getEnv, loader, fileSys, out)
		},
	}
	cmd.SetOut(out)
	cmd.Flags().StringVar(&opts.Name, "name", "", "name for the generated mock (defaults to <Interface>Imp)")
	cmd.Flags().StringVar(&opts.Dir, "dir", ".", "directory of the package declaring the interface")

	return cmd
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
