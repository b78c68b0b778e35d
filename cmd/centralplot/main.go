// Command centralplot plots closeness against betweenness centrality for the
// nodes of a graph, with the least-squares line through them.
//
// Usage:
//
//	centralplot [view] [flags]          interactive chart
//	centralplot fit [flags]             print the regression summary
//	centralplot export -o chart.png     render the chart to png, svg or pdf
//	centralplot generate -edges e.csv   compute centralities from an edge list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{"view", "open the interactive chart (default)", runView},
	{"fit", "print the regression line and goodness of fit", runFit},
	{"export", "render the chart to an image file", runExport},
	{"generate", "compute a centrality file from an edge list", runGenerate},
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := commands[0]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		found := false
		for _, c := range commands {
			if c.name == args[0] {
				cmd, found = c, true
				break
			}
		}
		if !found {
			fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
			usage(stderr)
			return 2
		}
		args = args[1:]
	}

	if err := cmd.run(args, stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "centralplot %s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: centralplot <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.summary)
	}
}
