package iterfields_test

import (
	"bytes"
	"errors"
	"fmt"
	"go/build"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/analysis/analysistest"

	iterfieldsinternal "github.com/Ike-l/iter-fields/internal/iterfields"
	"github.com/Ike-l/iter-fields/internal/iterfields/parse"
	"github.com/Ike-l/iter-fields/pkg/iterfieldsanalysis"
)

// TestAnalysis tests parsing errors using the Go analysis protocol. In this
// test, Iterfields errors will be reported as analysis errors. "// want
// `REGEXP`" comments in the fixture source files are used to check for expected
// analysis errors.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── analysis/
//	    ├── pkg1/
//	    │   └── *.go // with want comments
//	    └── pkg2/
//	        └── *.go // with want comments
func TestAnalysis(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/analysis"))
	require.NoError(t, err)

	t.Setenv("GOFLAGS", "-tags="+parse.BuildTag)

	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}

		t.Run(ent.Name(), func(t *testing.T) {
			defer func() {
				if t.Failed() {
					t.Logf("\n\tReproduce:\tgo run ./cmd/iterfields ./testdata/analysis/%s", ent.Name())
				}
			}()

			analysistest.Run(t, "", iterfieldsanalysis.Analyzer, "./testdata/analysis/"+ent.Name())
		})
	}
}

// TestPrograms tests programs in the testdata directory.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── program/
//	    ├── program1/
//	    │   ├── main/
//	    │   │   └── main.go
//	    │   └── want/
//	    │       └── program_output.txt
//	    └── program2/
//	        ├── main/
//	        │   └── main.go
//	        ├── level/
//	        │   └── level.go
//	        └── want/
//	            └── iterfields_error.txt
func TestPrograms(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/program"))
	require.NoError(t, err)

	iterfieldsGo, err := os.ReadFile("iterfields.go")
	require.NoError(t, err)

	var tests []*programTest
	for _, ent := range ents {
		name := ent.Name()
		if !ent.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		test, err := newProgramTest(name, iterfieldsGo)
		if err != nil {
			t.Error(err)
			continue
		}

		tests = append(tests, test)
	}

	for _, test := range tests {
		t.Run(test.Name(), test.Test())
	}
}

// programTest is a test case for a program. It executes Iterfields for the
// program and runs the program with generated code to check the output.
type programTest struct {
	name  string
	files map[string][]byte
	want  struct {
		ProgramOutput   string
		IterfieldsError string
	}
}

func (test *programTest) Name() string {
	return test.name
}

func (test *programTest) PkgPath() string {
	return fmt.Sprintf("example.com/%s", test.name)
}

func (test *programTest) ProgramPath() string {
	return test.PkgPath() + "/main"
}

// newProgramTest loads a program test case from testdata/program/NAME.
func newProgramTest(name string, iterfieldsGo []byte) (*programTest, error) {
	root := filepath.Join(filepath.FromSlash("testdata/program"), name)
	test := programTest{
		name:  name,
		files: make(map[string][]byte),
	}

	programOutput, _ := os.ReadFile(filepath.Join(root, "want", "program_output.txt"))
	iterfieldsError, _ := os.ReadFile(filepath.Join(root, "want", "iterfields_error.txt"))
	test.want.ProgramOutput = string(bytes.TrimSpace(programOutput))
	test.want.IterfieldsError = string(bytes.TrimSpace(iterfieldsError))

	if test.want.ProgramOutput == "" && test.want.IterfieldsError == "" {
		return nil, fmt.Errorf("load test case %s: does not want anything", name)
	}

	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".go" {
			return nil
		}
		if filepath.Base(path) == "iterfields_gen.go" {
			// Generated files might be left for debugging purposes.
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		goCode, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		test.files[test.PkgPath()+"/"+filepath.ToSlash(rel)] = goCode
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}

	test.files[parse.ImportPath+"/iterfields.go"] = iterfieldsGo
	return &test, nil
}

// materialize copies the program code and iterfields.go into the given GOPATH
// and writes go.mod files for both modules.
func (test *programTest) materialize(gopath string) error {
	for name, content := range test.files {
		dst := filepath.Join(gopath, "src", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return fmt.Errorf("mkdir %s: %w", name, err)
		}
		if err := os.WriteFile(dst, content, 0o666); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	iterfieldsDir := filepath.Join(gopath, "src", filepath.FromSlash(parse.ImportPath))
	iterfieldsGomod, err := gomod(parse.ImportPath, nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(iterfieldsDir, "go.mod"), iterfieldsGomod, 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", parse.ImportPath, err)
	}

	testDir := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()))
	testGomod, err := gomod(test.PkgPath(), map[string]string{parse.ImportPath: iterfieldsDir})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(testDir, "go.mod"), testGomod, 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", test.PkgPath(), err)
	}

	return nil
}

// gomod formats a go.mod file requiring the given modules replaced with local
// directories.
func gomod(path string, replaces map[string]string) ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(path); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt("1.25.0"); err != nil {
		return nil, err
	}
	for mod, dir := range replaces {
		if err := f.AddRequire(mod, "v0.0.0"); err != nil {
			return nil, err
		}
		if err := f.AddReplace(mod, "", dir, ""); err != nil {
			return nil, err
		}
	}
	f.Cleanup()
	return f.Format()
}

// Test returns a test function for the program test. It runs Iterfields for
// the program and then checks its error or output messages.
func (test *programTest) Test() func(*testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		defer func() {
			if t.Failed() {
				t.Logf("\n\tReproduce:\tgo run ./cmd/iterfields ./testdata/program/%s/main", test.Name())
			}
		}()

		gopath := filepath.Join(os.TempDir(), "iterfields_test_"+test.Name())
		require.NoError(t, os.RemoveAll(gopath))
		require.NoError(t, test.materialize(gopath), "Materialization failed")

		// Run Iterfields
		wd := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()))
		env := append(os.Environ(), "GOPATH="+gopath)
		generated, iterfieldsErr := iterfieldsinternal.Main(t.Context(), wd, env, "", false, "iterfields_gen.go", []string{"./..."})

		// Check for the Iterfields error
		if iterfieldsErr != nil {
			iterfieldsErr = errors.New(relPathInString(iterfieldsErr.Error(), wd))
			if test.want.IterfieldsError != "" {
				want := normalizeWhitespace(test.want.IterfieldsError)
				have := normalizeWhitespace(iterfieldsErr.Error())
				assert.Equal(t, want, have)
			} else {
				require.NoError(t, iterfieldsErr, "Iterfields exited with errors unexpectedly")
			}
			return
		}

		if test.want.IterfieldsError != "" {
			require.Error(t, iterfieldsErr, "Iterfields should have exited with an error")
		}

		// Write generated files
		for name, content := range generated {
			err := os.WriteFile(filepath.Join(wd, name), content, 0o666)
			require.NoError(t, err, "Failed to write a generated file")
		}

		// Run the program
		goCmd := filepath.Join(build.Default.GOROOT, "bin", "go")
		cmd := exec.Command(goCmd, "run", test.ProgramPath())
		cmd.Dir = wd
		cmd.Env = env
		progOut, err := cmd.CombinedOutput()
		require.NoError(t, err, string(progOut))

		if test.want.ProgramOutput != "" {
			assert.Equal(t, test.want.ProgramOutput, strings.TrimSpace(string(progOut)))
		}
	}
}

// relPathInString replaces paths in the given string to their relative paths
// to the new working directory.
func relPathInString(s, wd string) string {
	realWD, err := os.Getwd()
	if err != nil {
		return s
	}

	rel, err := filepath.Rel(realWD, wd)
	if err != nil {
		return s
	}

	s = strings.ReplaceAll(s, rel+"/", "")
	s = strings.ReplaceAll(s, rel, "")
	return s
}

// normalizeWhitespace normalizes whitespace in the given string for consistent
// comparison regardless of whitespace style.
func normalizeWhitespace(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\t", "    ")
	return s
}
