package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/jsonv/internal/config"
	"github.com/mcncl/jsonv/internal/errors"
	"github.com/mcncl/jsonv/internal/parser"
	"github.com/mcncl/jsonv/internal/serializer"
	"github.com/mcncl/jsonv/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Check       bool   `help:"Validate the input without writing the re-serialized document." short:"c"`
	SortKeys    bool   `help:"Serialize object keys in sorted order for deterministic output." short:"s"`
	RenameKeys  string `help:"Rename object keys to the given style (snake, camel, lower-camel, kebab, screaming-snake)." short:"r"`
	Config      string `help:"Path to a jsonv config file. Defaults to the nearest .jsonv.yml." type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("jsonv"),
		kong.Description("A tool to validate and re-serialize JSON documents"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonv version %s\n", Version)
		return
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.SortKeys, CLI.RenameKeys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonv --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Read the input text
	text, err := readInput()
	if err != nil {
		// Error is already wrapped by readInput
		return err
	}

	// 2. Parse it into a value tree
	v, err := parser.Parse(text)
	if err != nil {
		return errors.NewParsingError(err.Error(), err)
	}
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "parsed a %s root value\n", v.Kind())
	}

	// 3. Apply key renaming if configured
	if ctx.Config.RenameKeys != "" {
		style, err := transform.ParseStyle(ctx.Config.RenameKeys)
		if err != nil {
			return errors.NewTransformError("failed to resolve rename style", err)
		}
		v = transform.RenameKeys(v, style)
	}

	// 4. Validation-only mode stops here
	if CLI.Check {
		fmt.Fprintln(os.Stderr, "valid JSON")
		return nil
	}

	// 5. Serialize and write the result
	enc := serializer.Encoder{SortKeys: ctx.Config.SortKeys}
	return writeOutput(enc.Encode(v), ctx.Config.TrailingNewline)
}

// readInput reads JSON text from file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		return readInputFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return string(data), nil
}

// readInputFile reads JSON text from a file path
func readInputFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return string(data), nil
}

// writeOutput writes the serialized document to file or stdout
func writeOutput(text string, trailingNewline bool) error {
	if trailingNewline {
		text += "\n"
	}

	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(text), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		if CLI.Debug {
			fmt.Fprintf(os.Stderr, "Serialized JSON written to %s\n", CLI.Output)
		}
		return nil
	}

	// Write to stdout
	_, err := fmt.Print(text)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (string, error) {
	fmt.Fprintln(os.Stderr, "jsonv Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			jsonBuilder.WriteString(line)
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return jsonData, nil
}
