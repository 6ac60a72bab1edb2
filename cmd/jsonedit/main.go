package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/jsonedit/jsonedit"
)

// CLI defines the command-line interface
var CLI struct {
	Get GetCmd `cmd:"" help:"Print the node at a path."`
	Set SetCmd `cmd:"" help:"Merge a partial JSON value into the node at a path."`
	Fmt FmtCmd `cmd:"" help:"Reformat a document to canonical 2-space form."`
}

type GetCmd struct {
	Input string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	YAML  bool   `help:"Treat the input document as YAML."`
	Path  string `arg:"" help:"Bracket-notation path, e.g. '$[\"customer\"][0]'."`
}

type SetCmd struct {
	Input  string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	YAML   bool   `help:"Treat the document as YAML (in and out)."`
	Path   string `arg:"" help:"Bracket-notation path addressing the node to merge into."`
	Value  string `arg:"" help:"Partial JSON value to merge at the path."`
}

type FmtCmd struct {
	Input  string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	YAML   bool   `help:"Treat the document as YAML (in and out)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jsonedit"),
		kong.Description("Edit JSON documents by merging partial values at a path."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "jsonedit: %v\n", err)
		os.Exit(1)
	}
}

func (c *GetCmd) Run() error {
	root, err := readDocument(c.Input, c.YAML)
	if err != nil {
		return err
	}
	path, err := jsonedit.ParsePath(c.Path)
	if err != nil {
		return err
	}
	node, err := jsonedit.Lookup(root, path)
	if err != nil {
		return err
	}
	fmt.Println(jsonedit.Encode(node))
	return nil
}

func (c *SetCmd) Run() error {
	root, err := readDocument(c.Input, c.YAML)
	if err != nil {
		return err
	}
	path, err := jsonedit.ParsePath(c.Path)
	if err != nil {
		return err
	}
	newData, err := jsonedit.Parse(c.Value)
	if err != nil {
		return err
	}
	docText := jsonedit.Encode(root)
	merged := jsonedit.MergeWithCurrent(docText, path, newData)
	out, err := jsonedit.PatchDocument(docText, path, merged)
	if err != nil {
		return err
	}
	if c.YAML {
		patched, perr := jsonedit.Parse(out)
		if perr != nil {
			return perr
		}
		if out, err = jsonedit.EncodeYAML(patched); err != nil {
			return err
		}
		return writeOutput(c.Output, out)
	}
	return writeOutput(c.Output, out+"\n")
}

func (c *FmtCmd) Run() error {
	root, err := readDocument(c.Input, c.YAML)
	if err != nil {
		return err
	}
	if c.YAML {
		out, err := jsonedit.EncodeYAML(root)
		if err != nil {
			return err
		}
		return writeOutput(c.Output, out)
	}
	return writeOutput(c.Output, jsonedit.Encode(root)+"\n")
}

func readDocument(input string, isYAML bool) (*jsonedit.Node, error) {
	text, err := readInput(input)
	if err != nil {
		return nil, err
	}
	if isYAML {
		return jsonedit.ParseYAML(text)
	}
	return jsonedit.Parse(text)
}

func readInput(input string) (string, error) {
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", input, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return "", fmt.Errorf("no input provided: specify a file with -i or pipe a document to stdin")
	}
	return string(data), nil
}

func writeOutput(output, text string) error {
	if output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		return nil
	}
	_, err := fmt.Print(text)
	return err
}
