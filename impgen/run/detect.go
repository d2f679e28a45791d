package run

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/dave/dst"
)

type interfaceModel struct {
	PkgName string
	Name    string
	Methods []methodModel
	// imports maps the local name of every import in the declaring file to its path.
	imports map[string]string
}

type methodModel struct {
	Name    string
	Params  []paramModel
	Results []string
}

// paramModel is one parameter. A variadic parameter keeps its "..." type and
// reaches Invoke as a single slice argument.
type paramModel struct {
	Name string
	Type string
}

// findInterface locates the interface type named name in files.
func findInterface(files []*dst.File, name string) (*dst.InterfaceType, *dst.File, error) {
	for _, file := range files {
		for _, decl := range file.Decls {
			gen, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gen.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != name {
					continue
				}

				iface, ok := typeSpec.Type.(*dst.InterfaceType)
				if !ok {
					return nil, nil, fmt.Errorf("%w: %s", errNotInterface, name)
				}

				return iface, file, nil
			}
		}
	}

	return nil, nil, fmt.Errorf("%w: %s", errInterfaceNotFound, name)
}

// buildInterfaceModel turns the interface into method models, printing types
// through printer.
func buildInterfaceModel(
	iface *dst.InterfaceType, file *dst.File, name string, printer *typePrinter,
) (*interfaceModel, error) {
	model := &interfaceModel{
		PkgName: file.Name.Name,
		Name:    name,
		imports: fileImports(file),
	}

	if iface.Methods == nil {
		return model, nil
	}

	for _, field := range iface.Methods.List {
		fn, ok := field.Type.(*dst.FuncType)
		if !ok || len(field.Names) == 0 {
			return nil, fmt.Errorf("%w: %s embeds %s", errEmbeddedUnsupported, name, printer.expr(field.Type))
		}

		method := methodModel{
			Name:    field.Names[0].Name,
			Params:  buildParams(fn.Params, printer),
			Results: printer.fieldTypes(fn.Results),
		}

		if printer.err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, method.Name, printer.err)
		}

		model.Methods = append(model.Methods, method)
	}

	return model, nil
}

func buildParams(fields *dst.FieldList, printer *typePrinter) []paramModel {
	if fields == nil {
		return nil
	}

	var params []paramModel

	for _, field := range fields.List {
		typeStr := printer.expr(field.Type)

		names := make([]string, 0, len(field.Names))
		for _, n := range field.Names {
			names = append(names, n.Name)
		}

		if len(names) == 0 {
			names = append(names, "")
		}

		for _, n := range names {
			params = append(params, paramModel{Name: n, Type: typeStr})
		}
	}

	// blank and missing names get positional ones
	for i := range params {
		if params[i].Name == "" || params[i].Name == "_" {
			params[i].Name = "a" + strconv.Itoa(i)
		}
	}

	return params
}

func fileImports(file *dst.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		localName := defaultImportName(importPath)
		if spec.Name != nil {
			localName = spec.Name.Name
		}

		imports[localName] = importPath
	}

	return imports
}

// defaultImportName is the name a package gets when imported without an
// alias, assuming it matches its last path element (ignoring a /vN suffix).
func defaultImportName(importPath string) string {
	base := path.Base(importPath)
	if len(base) > 1 && base[0] == 'v' && strings.Trim(base[1:], "0123456789") == "" {
		return path.Base(path.Dir(importPath))
	}

	return base
}

// unexported variables.
var (
	errEmbeddedUnsupported = errors.New("embedded interfaces are not supported")
	errInterfaceNotFound   = errors.New("interface not found")
	errNotInterface        = errors.New("type is not an interface")
)
