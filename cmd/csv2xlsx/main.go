package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/yamitzky/xlsxwriter-go/xlsxwriter"
)

var version = "dev"

type options struct {
	sheetName     string
	delimiter     rune
	inputEncoding string
	raw           bool
	boldHeader    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csv2xlsx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	showVersion := fs.Bool("v", false, "show version")
	fs.BoolVar(showVersion, "version", false, "show version")

	sheetName := fs.String("n", "Sheet1", "worksheet name")
	fs.StringVar(sheetName, "sheetname", "Sheet1", "worksheet name")

	delimiterFlag := fs.String("d", ",", "delimiter")
	fs.StringVar(delimiterFlag, "delimiter", ",", "delimiter")

	inputEncoding := fs.String("c", "utf-8", "input CSV encoding")
	fs.StringVar(inputEncoding, "inputencoding", "utf-8", "input CSV encoding")

	raw := fs.Bool("r", false, "write every field as text")
	fs.BoolVar(raw, "raw", false, "write every field as text")

	boldHeader := fs.Bool("b", false, "bold the first row")
	fs.BoolVar(boldHeader, "bold-header", false, "bold the first row")

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

	delimiter, err := parseDelimiter(*delimiterFlag)
	if err != nil {
		fmt.Fprintf(stderr, "invalid delimiter: %v\n", err)
		return 2
	}

	opts := options{
		sheetName:     *sheetName,
		delimiter:     delimiter,
		inputEncoding: *inputEncoding,
		raw:           *raw,
		boldHeader:    *boldHeader,
	}

	inputPath := rest[0]
	outputPath := ""
	if len(rest) > 1 {
		outputPath = rest[1]
	}
	if outputPath == "" {
		if inputPath == "-" {
			fmt.Fprintln(stderr, "an output path is required when reading from STDIN")
			return 2
		}
		outputPath = strings.TrimSuffix(inputPath, ".csv") + ".xlsx"
	}

	if err := convertFile(inputPath, outputPath, opts, stdin); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func usageText() string {
	return `Usage:

 csv2xlsx [-h] [-v] [-n SHEETNAME] [-d DELIMITER] [-c INPUTENCODING]
          [-r] [-b]
          csvfile [outfile]
positional arguments:

  csvfile               csv file path, use '-' to read from STDIN
  outfile               output xlsx file path (default: csvfile with .xlsx)
optional arguments:

  -h, --help            show this help message and exit
  -v, --version         show program's version number and exit
  -n SHEETNAME, --sheetname SHEETNAME
                        worksheet name (default: Sheet1)
  -d DELIMITER, --delimiter DELIMITER
                        delimiter - column delimiter in CSV, 'tab' or 'x09'
                        for a tab (default: comma ',')
  -c INPUTENCODING, --inputencoding INPUTENCODING
                        encoding of the input CSV, e.g. iso-8859-1 or cp1252
                        (default: utf-8)
  -r, --raw             write every field as text, disabling number, boolean
                        and formula detection
  -b, --bold-header     style the first row with a bold font
`
}

func parseDelimiter(value string) (rune, error) {
	switch {
	case value == "tab" || value == `\t`:
		return '\t', nil
	case strings.HasPrefix(value, "x"):
		code, err := strconv.ParseUint(value[1:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex delimiter %q", value)
		}
		return rune(code), nil
	case len([]rune(value)) == 1:
		return []rune(value)[0], nil
	}
	return 0, fmt.Errorf("delimiter must be a single character, 'tab' or 'xHH'")
}

// decodingReader wraps r with a legacy-charmap decoder when the input is
// not UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "latin-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case "iso-8859-2":
		return charmap.ISO8859_2.NewDecoder().Reader(r), nil
	case "cp1250", "windows-1250":
		return charmap.Windows1250.NewDecoder().Reader(r), nil
	case "cp1251", "windows-1251":
		return charmap.Windows1251.NewDecoder().Reader(r), nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case "koi8-r":
		return charmap.KOI8R.NewDecoder().Reader(r), nil
	case "mac-roman", "macintosh":
		return charmap.Macintosh.NewDecoder().Reader(r), nil
	}
	return nil, fmt.Errorf("unsupported input encoding: %s", encoding)
}

func convertFile(inputPath, outputPath string, opts options, stdin io.Reader) error {
	var input io.Reader
	if inputPath == "-" {
		input = stdin
	} else {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	decoded, err := decodingReader(input, opts.inputEncoding)
	if err != nil {
		return err
	}

	reader := csv.NewReader(decoded)
	reader.Comma = opts.delimiter
	reader.FieldsPerRecord = -1

	wb := xlsxwriter.NewWorkbookWithRepository(xlsxwriter.NewStyleRepository())
	ws, err := wb.AddSheet(opts.sheetName)
	if err != nil {
		return err
	}

	rowx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		for colx, field := range record {
			if err := writeField(ws, rowx, colx, field, opts.raw); err != nil {
				return err
			}
		}
		if rowx == 0 && opts.boldHeader {
			headerStyle := &xlsxwriter.Style{
				Name: "Header",
				Font: &xlsxwriter.Font{Name: "Calibri", Size: 11, Bold: true},
			}
			for colx := range record {
				if err := ws.SetCellStyle(rowx, colx, headerStyle); err != nil {
					return err
				}
			}
		}
		rowx++
	}

	return wb.Save(outputPath)
}

// writeField stores one CSV field, detecting numbers, booleans and
// formulas unless raw mode is on.
func writeField(ws *xlsxwriter.Worksheet, rowx, colx int, field string, raw bool) error {
	if !raw {
		if n, err := strconv.ParseFloat(field, 64); err == nil {
			_, err := ws.SetNumber(rowx, colx, n)
			return err
		}
		switch strings.ToLower(field) {
		case "true":
			_, err := ws.SetBool(rowx, colx, true)
			return err
		case "false":
			_, err := ws.SetBool(rowx, colx, false)
			return err
		}
		if strings.HasPrefix(field, "=") {
			_, err := ws.SetFormula(rowx, colx, field)
			return err
		}
	}
	_, err := ws.SetString(rowx, colx, field)
	return err
}
