// golangcilintiterfields package provides a plugin for golangci-lint to
// integrate the Iterfields analyzer. To build a custom golangci-lint binary
// with this plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-iterfields binary that you can use to lint
// your Go code with the Iterfields analyzer.
package golangcilintiterfields

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/Ike-l/iter-fields/pkg/iterfieldsanalysis"
)

func init() {
	register.Plugin("iterfields", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return IterfieldsLinter{}, nil
}

type IterfieldsLinter struct{}

func (IterfieldsLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{iterfieldsanalysis.Analyzer}, nil
}

// GetLoadMode asks for type information because enums are resolved through
// the type checker.
func (IterfieldsLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
