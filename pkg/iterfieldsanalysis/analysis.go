// Package iterfieldsanalysis reports misuses of iterfields directives as
// analysis diagnostics, so that they show up in editors and linters before the
// generator runs.
package iterfieldsanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/Ike-l/iter-fields/internal/codefmt"
	iterfieldsinternal "github.com/Ike-l/iter-fields/internal/iterfields"
)

// Analyzer validates the usage of Iterfields in the package.
var Analyzer = &analysis.Analyzer{
	Name: "iterfields",
	Doc:  "linter for iterfields usage",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	g, err := iterfieldsinternal.New(pkg)
	if err != nil {
		return nil, err
	}

	if err := g.Build(); err != nil {
		report(pass, err)
	}
	return nil, nil
}

// report unrolls joined errors and reports the ones located in code.
func report(pass *analysis.Pass, err error) {
	if codeErr, ok := err.(*codefmt.CodeError); ok {
		pass.Report(analysis.Diagnostic{
			Pos:     codeErr.Pos(),
			End:     codeErr.End(),
			Message: codeErr.Unwrap().Error(),
		})
		return
	}

	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, err := range u.Unwrap() {
			report(pass, err)
		}
	}
}
