package gosrc

import (
	"go/ast"
	"reflect"
	"strings"

	"github.com/sirkon/implicator/internal/imod"
)

const directivePrefix = "//implicator:"

// markerPkg is the package the frontend attributes its directive
// applications to. The predefined marker table knows these spellings.
const markerPkg = "github.com/sirkon/implicator"

func attrImplicit() imod.Reference {
	return imod.Reference{Package: markerPkg, Name: "implicit"}
}

func attrPassThrough() imod.Reference {
	return imod.Reference{Package: markerPkg, Name: "passthrough"}
}

type dirSet struct {
	passThrough    bool
	implicit       bool // bare //implicator:implicit, used on vars
	implicitParams map[string]bool
}

func directives(doc *ast.CommentGroup) dirSet {
	d := dirSet{implicitParams: map[string]bool{}}
	if doc == nil {
		return d
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "passthrough":
			d.passThrough = true
		case "implicit":
			if len(fields) == 1 {
				d.implicit = true
				continue
			}
			for _, name := range fields[1:] {
				d.implicitParams[name] = true
			}
		}
	}

	return d
}

func hasImplicitTag(raw string) bool {
	tag := reflect.StructTag(strings.Trim(raw, "`"))
	_, ok := tag.Lookup("implicit")
	return ok
}
