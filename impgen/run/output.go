package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/toejough/go-reorder"
)

// GeneratedFileName is generated_<impName>.go, or _test.go when generating
// for a test package or from a test file.
func GeneratedFileName(impName, pkgName, goFile string) string {
	base := "generated_" + strings.TrimSuffix(impName, ".go")

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") {
		return strings.TrimSuffix(base, "_test") + "_test.go"
	}

	return base + ".go"
}

// WriteGeneratedCode reorders code by project convention and writes it.
func WriteGeneratedCode(
	code, impName, pkgName string, getEnv func(string) string, fileSys FileSystem, out io.Writer,
) error {
	const generatedFilePermissions = 0o600

	filename := GeneratedFileName(impName, pkgName, getEnv("GOFILE"))

	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileSys.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}

// unexported variables.
var (
	errNoGoPackage = errors.New("GOPACKAGE is not set; run impgen via go generate")
)
