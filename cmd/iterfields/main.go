// Command iterfields generates iterfields_gen.go for each package matching the
// given patterns. The current directory is used when no pattern is given:
//
//	go run github.com/Ike-l/iter-fields/cmd/iterfields ./...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/sys/unix"

	iterfieldsinternal "github.com/Ike-l/iter-fields/internal/iterfields"
)

var Version = "dev"

var (
	bFlag = flag.String("b", "", "comma-separated build tags")
	tFlag = flag.Bool("t", false, "include tests")
	oFlag = flag.String("o", "iterfields_gen.go", "output file name")
	cFlag = flag.String("c", "auto", "colorize (auto|always|never)")
)

func init() {
	iterfieldsinternal.Version = Version
}

func main() {
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var color bool
	switch *cFlag {
	case "auto":
		color = isatty(os.Stderr)
	case "always":
		color = true
	case "never":
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(2)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	outs, err := iterfieldsinternal.Main(context.Background(), wd, os.Environ(), *bFlag, *tFlag, *oFlag, patterns)
	if err != nil {
		message := err.Error()
		if color {
			message = colorize(message)
		}
		fmt.Fprintln(os.Stderr, message)
		os.Exit(1)
	}

	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Println("Generated:", out)
	}
}

// isatty reports whether the file is a terminal. If it is true, we can use ANSI
// color codes.
func isatty(f *os.File) bool {
	_, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var (
	rePos = regexp.MustCompile(`(?m)^[^\s:]+:\d+:\d+:`)
	reTab = regexp.MustCompile(`(?m)^\t.+`)
)

// colorize adds ANSI color codes to the message. Positions are highlighted and
// indented details are dimmed.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	message = rePos.ReplaceAllString(message, red+"$0"+reset)
	message = reTab.ReplaceAllString(message, dim+"$0"+reset)
	return message
}
