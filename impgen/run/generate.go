package run

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

// ImptestImportPath is the runtime package generated mocks depend on.
const ImptestImportPath = "github.com/toejough/basketimp/imptest"

type importInfo struct {
	Alias string
	Path  string
}

type mockTemplateData struct {
	PkgName  string
	ImpName  string
	ImplName string
	IfaceRef string
	Imports  []importInfo
	Methods  []methodTemplateData
}

type methodTemplateData struct {
	Name        string
	Params      string
	Args        string
	ResultList  string
	ReturnNames string
	Results     []resultTemplateData
}

type resultTemplateData struct {
	Index int
	Type  string
}

// generateMockCode renders and gofmts the mock for model.
func generateMockCode(data mockTemplateData) (string, error) {
	var buf bytes.Buffer

	err := mockTemplate.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to render mock %s: %w", data.ImpName, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generated mock %s does not format: %w", data.ImpName, err)
	}

	return string(formatted), nil
}

// newMockTemplateData shapes model for the template. ifacePkgPath is empty
// when the mock is generated into the interface's own package.
func newMockTemplateData(
	model *interfaceModel, pkgName, impName, ifacePkgPath string, usedPkgs map[string]bool,
) mockTemplateData {
	data := mockTemplateData{
		PkgName:  pkgName,
		ImpName:  impName,
		ImplName: lowerFirst(impName) + "Impl",
		IfaceRef: model.Name,
		Imports:  []importInfo{{Path: ImptestImportPath}},
	}

	if ifacePkgPath != "" {
		data.IfaceRef = model.PkgName + "." + model.Name
		data.Imports = append(data.Imports, importInfo{Path: ifacePkgPath})
	}

	for name := range usedPkgs {
		importPath, ok := model.imports[name]
		if !ok {
			continue
		}

		alias := ""
		if defaultImportName(importPath) != name {
			alias = name
		}

		data.Imports = append(data.Imports, importInfo{Alias: alias, Path: importPath})
	}

	slices.SortFunc(data.Imports, func(a, b importInfo) int {
		return strings.Compare(a.Path, b.Path)
	})

	for _, method := range model.Methods {
		data.Methods = append(data.Methods, newMethodTemplateData(method))
	}

	return data
}

func newMethodTemplateData(method methodModel) methodTemplateData {
	params := make([]string, 0, len(method.Params))
	args := make([]string, 0, len(method.Params))

	for _, p := range method.Params {
		params = append(params, p.Name+" "+p.Type)
		args = append(args, p.Name)
	}

	out := methodTemplateData{
		Name:   method.Name,
		Params: strings.Join(params, ", "),
	}

	if len(args) > 0 {
		out.Args = ", " + strings.Join(args, ", ")
	}

	names := make([]string, 0, len(method.Results))

	for i, r := range method.Results {
		out.Results = append(out.Results, resultTemplateData{Index: i, Type: r})
		names = append(names, "r"+strconv.Itoa(i))
	}

	out.ReturnNames = strings.Join(names, ", ")

	switch len(method.Results) {
	case 0:
	case 1:
		out.ResultList = " " + method.Results[0]
	default:
		out.ResultList = " (" + strings.Join(method.Results, ", ") + ")"
	}

	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

// unexported variables.
var (
	//nolint:gochecknoglobals // parsed once
	mockTemplate = template.Must(template.New("mock").Parse(mockTemplateText))
)

const mockTemplateText = `// Code generated by impgen. DO NOT EDIT.

package {{.PkgName}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.ImpName}} is a conversational mock of {{.IfaceRef}}.
type {{.ImpName}} struct {
	Imp *imptest.Imp
{{- range .Methods}}
	{{.Name}} *imptest.DependencyMethod
{{- end}}
}

// New{{.ImpName}} creates a {{.ImpName}} driven by t. Mocks built from the same
// t (or the same *imptest.Imp) share one call sequence.
func New{{.ImpName}}(t imptest.TestReporter) *{{.ImpName}} {
	imp := imptest.GetOrCreateImp(t)

	return &{{.ImpName}}{
		Imp: imp,
{{- range .Methods}}
		{{.Name}}: imptest.NewDependencyMethod(imp, "{{.Name}}"),
{{- end}}
	}
}

// Interface returns the {{.IfaceRef}} backed by this mock.
func (m *{{.ImpName}}) Interface() {{.IfaceRef}} {
	return &{{.ImplName}}{mock: m}
}

type {{.ImplName}} struct {
	mock *{{.ImpName}}
}
{{range .Methods}}
func (impl *{{$.ImplName}}) {{.Name}}({{.Params}}){{.ResultList}} {
{{- if .Results}}
	rets := impl.mock.Imp.Invoke("{{.Name}}"{{.Args}})
{{range .Results}}
	var r{{.Index}} {{.Type}}
	if len(rets) > {{.Index}} {
		r{{.Index}}, _ = rets[{{.Index}}].({{.Type}})
	}
{{end}}
	return {{.ReturnNames}}
{{- else}}
	impl.mock.Imp.Invoke("{{.Name}}"{{.Args}})
{{- end}}
}
{{end}}`
