package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/h0rv/xlview-sub002/xlview"
)

var version = "dev"

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type options struct {
	allSheets           bool
	sheetID             int
	sheetName           string
	outputEncoding      string
	includeStyles       bool
	includeConditional  bool
	pretty              bool
	includeSheetPattern []*regexp.Regexp
	excludeSheetPattern []*regexp.Regexp
	edits               []editSpec
}

type editSpec struct {
	sheetName string
	row       int
	col       int
	value     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var includePatterns stringList
	var excludePatterns stringList
	var setSpecs stringList

	fs := flag.NewFlagSet("xlsx2json", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("v", false, "show version")
	fs.BoolVar(showVersion, "version", false, "show version")

	allSheets := fs.Bool("a", false, "dump all sheets")
	fs.BoolVar(allSheets, "all", false, "dump all sheets")

	outputEncoding := fs.String("c", "utf-8", "output encoding")
	fs.StringVar(outputEncoding, "outputencoding", "utf-8", "output encoding")

	sheetID := fs.Int("s", -1, "sheet number to dump, 0 for all")
	fs.IntVar(sheetID, "sheet", -1, "sheet number to dump, 0 for all")

	sheetName := fs.String("n", "", "sheet name to dump")
	fs.StringVar(sheetName, "sheetname", "", "sheet name to dump")

	includeStyles := fs.Bool("styles", false, "include resolved cell styles")
	includeConditional := fs.Bool("cf", false, "include conditional formatting results")

	pretty := fs.Bool("p", false, "indent JSON output")
	fs.BoolVar(pretty, "pretty", false, "indent JSON output")

	outFlag := fs.String("o", "", "output file path")
	fs.StringVar(outFlag, "output", "", "output file path")

	fs.Var(&setSpecs, "set", "edit a cell before output, SHEET!REF=VALUE")

	fs.Var(&includePatterns, "I", "include sheet patterns")
	fs.Var(&includePatterns, "include_sheet_pattern", "include sheet patterns")
	fs.Var(&excludePatterns, "E", "exclude sheet patterns")
	fs.Var(&excludePatterns, "exclude_sheet_pattern", "exclude sheet patterns")

	fs.Usage = func() {
		fmt.Fprint(stderr, usageText())
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fs.Usage()
		return 2
	}

	if *sheetName != "" && (*allSheets || *sheetID >= 0) {
		fmt.Fprintln(stderr, "cannot combine --sheetname with --sheet or --all")
		return 2
	}

	includeRegex, err := compilePatterns(includePatterns)
	if err != nil {
		fmt.Fprintf(stderr, "invalid include pattern: %v\n", err)
		return 2
	}
	excludeRegex, err := compilePatterns(excludePatterns)
	if err != nil {
		fmt.Fprintf(stderr, "invalid exclude pattern: %v\n", err)
		return 2
	}

	edits, err := parseEditSpecs(setSpecs)
	if err != nil {
		fmt.Fprintf(stderr, "invalid --set: %v\n", err)
		return 2
	}

	opts := options{
		allSheets:           *allSheets || *sheetID == 0,
		sheetID:             *sheetID,
		sheetName:           *sheetName,
		outputEncoding:      *outputEncoding,
		includeStyles:       *includeStyles,
		includeConditional:  *includeConditional,
		pretty:              *pretty,
		includeSheetPattern: includeRegex,
		excludeSheetPattern: excludeRegex,
		edits:               edits,
	}

	inputPath := rest[0]
	outputPath := *outFlag
	if outputPath == "" && len(rest) > 1 {
		outputPath = rest[1]
	}

	var content []byte
	if inputPath == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(inputPath)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if len(opts.edits) > 0 {
		if err := runEdit(content, outputPath, opts, stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if err := runDump(content, outputPath, opts, stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func usageText() string {
	return `Usage:

 xlsx2json [-h] [-v] [-a] [-c OUTPUTENCODING] [-s SHEETID]
                   [-n SHEETNAME] [--styles] [--cf] [-p] [-o OUTFILE]
                   [--set SHEET!REF=VALUE [--set ...]]
                   [-I INCLUDE_SHEET_PATTERN [INCLUDE_SHEET_PATTERN ...]]
                   [-E EXCLUDE_SHEET_PATTERN [EXCLUDE_SHEET_PATTERN ...]]
                   xlsxfile [outfile]
positional arguments:

  xlsxfile              xlsx file path, use '-' to read from STDIN
  outfile               output file path, defaults to STDOUT
optional arguments:

  -h, --help            show this help message and exit
  -v, --version         show program's version number and exit
  -a, --all             dump all sheets
  -c OUTPUTENCODING, --outputencoding OUTPUTENCODING
                        encoding of the JSON output (default: utf-8)
  -s SHEETID, --sheet SHEETID
                        sheet number to dump, 0 for all
  -n SHEETNAME, --sheetname SHEETNAME
                        sheet name to dump
  --styles              include resolved cell styles in the output
  --cf                  include conditional formatting results per cell
  -p, --pretty          indent the JSON output
  -o OUTFILE, --output OUTFILE
                        output file path, same as the outfile positional
  --set SHEET!REF=VALUE
                        commit a cell edit and write the patched workbook to
                        outfile instead of JSON; repeatable. The sheet name is
                        optional, REF=VALUE edits the first sheet. An empty
                        VALUE removes the cell.
  -I INCLUDE_SHEET_PATTERN, --include_sheet_pattern INCLUDE_SHEET_PATTERN
                        only include sheets with names matching the given
                        pattern, only affects when -a option is enabled.
  -E EXCLUDE_SHEET_PATTERN, --exclude_sheet_pattern EXCLUDE_SHEET_PATTERN
                        exclude sheets with names matching the given pattern,
                        only affects when -a option is enabled.
`
}

func compilePatterns(values []string) ([]*regexp.Regexp, error) {
	if len(values) == 0 {
		return nil, nil
	}
	patterns := make([]*regexp.Regexp, 0, len(values))
	for _, value := range values {
		re, err := regexp.Compile(value)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// parseEditSpecs parses SHEET!REF=VALUE specs. The sheet name is optional;
// the value may be empty, which removes the cell.
func parseEditSpecs(specs []string) ([]editSpec, error) {
	edits := make([]editSpec, 0, len(specs))
	for _, spec := range specs {
		eq := strings.Index(spec, "=")
		if eq < 0 {
			return nil, fmt.Errorf("missing '=' in %q", spec)
		}
		target, value := spec[:eq], spec[eq+1:]

		edit := editSpec{value: value}
		if bang := strings.LastIndex(target, "!"); bang >= 0 {
			edit.sheetName = target[:bang]
			target = target[bang+1:]
		}
		row, col, err := xlview.ParseCellRef(target)
		if err != nil {
			return nil, err
		}
		edit.row, edit.col = row, col
		edits = append(edits, edit)
	}
	return edits, nil
}

func runEdit(content []byte, outputPath string, opts options, stdout io.Writer) error {
	editor := xlview.NewEditor()
	if err := editor.Load(content); err != nil {
		return err
	}
	wb := editor.Workbook()

	for _, edit := range opts.edits {
		index := 0
		if edit.sheetName != "" {
			index = -1
			for i, sheet := range wb.Sheets {
				if sheet.Name == edit.sheetName {
					index = i
					break
				}
			}
			if index < 0 {
				return fmt.Errorf("sheet %s not found", edit.sheetName)
			}
		}
		if err := editor.CommitEdit(index, edit.row, edit.col, edit.value); err != nil {
			return err
		}
	}

	saved, err := editor.Save()
	if err != nil {
		return err
	}
	if outputPath == "" || outputPath == "-" {
		_, err := stdout.Write(saved)
		return err
	}
	return os.WriteFile(outputPath, saved, 0o644)
}

func runDump(content []byte, outputPath string, opts options, stdout io.Writer) error {
	wb, err := xlview.OpenWorkbookBytes(content)
	if err != nil {
		return err
	}

	indexes, err := selectSheets(wb, opts)
	if err != nil {
		return err
	}

	doc := buildDocument(wb, indexes, opts)

	var out io.Writer = stdout
	var file *os.File
	if outputPath != "" && outputPath != "-" {
		file, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	writer := bufio.NewWriter(out)
	encoded, err := encodeOutput(writer, opts.outputEncoding)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(encoded)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if closer, ok := encoded.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// encodeOutput wraps w with a charset encoder when the requested encoding is
// not UTF-8.
func encodeOutput(w io.Writer, name string) (io.Writer, error) {
	lower := strings.ToLower(name)
	if lower == "" || lower == "utf-8" || lower == "utf8" {
		return w, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported output encoding: %s", name)
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}

func selectSheets(wb *xlview.Workbook, opts options) ([]int, error) {
	if opts.sheetName != "" {
		for i, sheet := range wb.Sheets {
			if sheet.Name == opts.sheetName {
				return []int{i}, nil
			}
		}
		return nil, fmt.Errorf("sheet %s not found", opts.sheetName)
	}

	if opts.allSheets {
		indexes := make([]int, 0, len(wb.Sheets))
		for i, sheet := range wb.Sheets {
			if !matchPatterns(sheet.Name, opts.includeSheetPattern, opts.excludeSheetPattern) {
				continue
			}
			indexes = append(indexes, i)
		}
		if len(indexes) == 0 {
			return nil, fmt.Errorf("no sheets matched selection")
		}
		return indexes, nil
	}

	if opts.sheetID > 0 {
		index := opts.sheetID - 1
		if index >= len(wb.Sheets) {
			return nil, fmt.Errorf("sheet index %d out of range", opts.sheetID)
		}
		return []int{index}, nil
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("no sheets found")
	}
	return []int{0}, nil
}

func matchPatterns(name string, include, exclude []*regexp.Regexp) bool {
	if len(include) > 0 {
		matched := false
		for _, re := range include {
			if re.MatchString(name) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, re := range exclude {
		if re.MatchString(name) {
			return false
		}
	}
	return true
}
