package run

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/dave/dst"
)

// typePrinter renders dst type expressions as Go source. Exported identifiers
// declared in the mocked package get qualified when the mock lives in another
// package, and every package selector it prints is recorded. The first
// expression it cannot render is kept in err.
type typePrinter struct {
	qualifier string
	usedPkgs  map[string]bool
	err       error
}

func newTypePrinter(qualifier string) *typePrinter {
	return &typePrinter{qualifier: qualifier, usedPkgs: map[string]bool{}}
}

//nolint:cyclop // type switch over the expression kinds
func (p *typePrinter) expr(expr dst.Expr) string {
	switch typed := expr.(type) {
	case nil:
		return ""
	case *dst.Ident:
		return p.ident(typed.Name)
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		if pkg, ok := typed.X.(*dst.Ident); ok {
			p.usedPkgs[pkg.Name] = true

			return pkg.Name + "." + typed.Sel.Name
		}

		return p.expr(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + p.expr(typed.X)
	case *dst.ArrayType:
		return "[" + p.expr(typed.Len) + "]" + p.expr(typed.Elt)
	case *dst.MapType:
		return "map[" + p.expr(typed.Key) + "]" + p.expr(typed.Value)
	case *dst.ChanType:
		return p.chanType(typed)
	case *dst.Ellipsis:
		return "..." + p.expr(typed.Elt)
	case *dst.FuncType:
		return "func" + p.signature(typed)
	case *dst.InterfaceType:
		return p.interfaceType(typed)
	case *dst.StructType:
		if typed.Fields == nil || len(typed.Fields.List) == 0 {
			return "struct{}"
		}

		return p.unsupported(expr)
	case *dst.ParenExpr:
		return "(" + p.expr(typed.X) + ")"
	default:
		return p.unsupported(expr)
	}
}

func (p *typePrinter) chanType(ch *dst.ChanType) string {
	switch ch.Dir {
	case dst.SEND:
		return "chan<- " + p.expr(ch.Value)
	case dst.RECV:
		return "<-chan " + p.expr(ch.Value)
	default:
		return "chan " + p.expr(ch.Value)
	}
}

// interfaceType prints an interface literal on one line, methods and embedded
// types separated by semicolons.
func (p *typePrinter) interfaceType(iface *dst.InterfaceType) string {
	if iface.Methods == nil || len(iface.Methods.List) == 0 {
		return "interface{}"
	}

	elems := make([]string, 0, len(iface.Methods.List))

	for _, field := range iface.Methods.List {
		fn, ok := field.Type.(*dst.FuncType)
		if !ok || len(field.Names) == 0 {
			elems = append(elems, p.expr(field.Type))

			continue
		}

		for _, name := range field.Names {
			elems = append(elems, name.Name+p.signature(fn))
		}
	}

	return "interface{ " + strings.Join(elems, "; ") + " }"
}

// unsupported records that expr cannot be rendered and returns a placeholder
// that is never written out.
func (p *typePrinter) unsupported(expr dst.Expr) string {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %T", errUnsupportedType, expr)
	}

	return "<unsupported>"
}

// fieldTypes expands "a, b int" into one type per name.
func (p *typePrinter) fieldTypes(fields *dst.FieldList) []string {
	if fields == nil {
		return nil
	}

	var out []string

	for _, field := range fields.List {
		typeStr := p.expr(field.Type)

		count := max(len(field.Names), 1)
		for range count {
			out = append(out, typeStr)
		}
	}

	return out
}

func (p *typePrinter) ident(name string) string {
	if p.qualifier == "" || !isExportedIdent(name) {
		return name
	}

	return p.qualifier + "." + name
}

func (p *typePrinter) signature(fn *dst.FuncType) string {
	params := "(" + strings.Join(p.fieldTypes(fn.Params), ", ") + ")"

	results := p.fieldTypes(fn.Results)

	switch len(results) {
	case 0:
		return params
	case 1:
		return params + " " + results[0]
	default:
		return params + " (" + strings.Join(results, ", ") + ")"
	}
}

func isExportedIdent(name string) bool {
	if name == "" {
		return false
	}

	return token.IsExported(name) && unicode.IsUpper([]rune(name)[0])
}

// unexported variables.
var (
	errUnsupportedType = errors.New("unsupported type in interface signature")
)
