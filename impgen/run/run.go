// Package run implements the impgen tool in a testable way.
package run

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSystem is where generated files go.
type FileSystem interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Options are the command-line settings for one generation.
type Options struct {
	// Interface is the interface to mock, optionally package-qualified
	// (basket.BasketLike); only the last element is used for lookup.
	Interface string
	// Name overrides the mock type name, which defaults to <Interface>Imp.
	Name string
	// Dir is the directory of the package declaring the interface.
	Dir string
}

// Run generates a mock for opts.Interface into the package go generate was
// invoked from ($GOPACKAGE, $GOFILE).
func Run(opts Options, getEnv func(string) string, loader PackageLoader, fileSys FileSystem, out io.Writer) error {
	code, impName, pkgName, err := Generate(opts, getEnv, loader)
	if err != nil {
		return err
	}

	return WriteGeneratedCode(code, impName, pkgName, getEnv, fileSys, out)
}

// Generate produces the mock source without writing it. It returns the code,
// the mock type name and the package the code belongs to.
func Generate(opts Options, getEnv func(string) string, loader PackageLoader) (string, string, string, error) {
	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return "", "", "", errNoGoPackage
	}

	localName := opts.Interface
	if idx := strings.LastIndex(localName, "."); idx >= 0 {
		localName = localName[idx+1:]
	}

	impName := opts.Name
	if impName == "" {
		impName = localName + "Imp"
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	files, err := loader.Load(dir)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to load package in %s: %w", dir, err)
	}

	iface, file, err := findInterface(files, localName)
	if err != nil {
		return "", "", "", err
	}

	qualifier := ""
	ifacePkgPath := ""

	if file.Name.Name != pkgName {
		qualifier = file.Name.Name

		ifacePkgPath, err = loader.ImportPath(dir)
		if err != nil {
			return "", "", "", err
		}
	}

	printer := newTypePrinter(qualifier)

	model, err := buildInterfaceModel(iface, file, localName, printer)
	if err != nil {
		return "", "", "", err
	}

	code, err := generateMockCode(newMockTemplateData(model, pkgName, impName, ifacePkgPath, printer.usedPkgs))
	if err != nil {
		return "", "", "", err
	}

	return code, impName, pkgName, nil
}
