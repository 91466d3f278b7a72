// Field-selectable output formatting, shared by the verbs.
//
// A -fmt spec is a comma-separated mix of field names, aliases, and control attributes.  The
// control attributes are "fixed", "csv", "csvnamed", "json", "header", and "noheader".  Fixed
// output carries a header unless "noheader" is given; csv carries one only when "header" is
// given; json is self-describing and never carries one.

package command

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

type Formatter[Data, Ctx any] struct {
	Fmt  func(data Data, ctx Ctx) string
	Help string
}

type FormatOptions struct {
	Json   bool
	Csv    bool // csv or csvnamed
	Named  bool // csvnamed
	Fixed  bool
	Header bool
}

// Split a -fmt spec into the known field names (aliases expanded, order preserved) and the set of
// everything else, which StandardFormatOptions will interpret as control attributes.  An empty or
// "help" spec selects the default fields; "help" additionally ends up in the attribute set so the
// verb can print its format help.

func ParseFormatSpec[Data, Ctx any](
	defaults, fmtOpt string,
	formatters map[string]Formatter[Data, Ctx],
	aliases map[string][]string,
) ([]string, map[string]bool) {
	spec := fmtOpt
	if fmtOpt == "" || fmtOpt == "help" {
		spec = defaults
	}
	attrs := make(map[string]bool)
	fields := make([]string, 0)
	if fmtOpt == "help" {
		attrs["help"] = true
	}
	for _, kwd := range strings.Split(spec, ",") {
		switch {
		case formatters[kwd].Fmt != nil:
			fields = append(fields, kwd)
		case aliases[kwd] != nil:
			// Aliases expand to fundamental names only, no recursion
			for _, name := range aliases[kwd] {
				if formatters[name].Fmt != nil {
					fields = append(fields, name)
				} else {
					attrs[name] = true
				}
			}
		default:
			attrs[kwd] = true
		}
	}
	return fields, attrs
}

type DefaultFormat int

const (
	DefaultFixed DefaultFormat = iota
	DefaultCsv
)

func StandardFormatOptions(attrs map[string]bool, def DefaultFormat) *FormatOptions {
	named := attrs["csvnamed"]
	csv := attrs["csv"] || named
	json := attrs["json"] && !csv
	fixed := attrs["fixed"] && !csv && !json
	if !csv && !json && !fixed {
		if def == DefaultCsv {
			csv = true
		} else {
			fixed = true
		}
	}
	header := (fixed && !attrs["noheader"]) || (csv && attrs["header"])
	return &FormatOptions{
		Json:   json,
		Csv:    csv,
		Named:  named,
		Fixed:  fixed,
		Header: header,
	}
}

// FormatData prints one output row per datum, one column per selected field.

func FormatData[Data, Ctx any](
	out io.Writer,
	fields []string,
	formatters map[string]Formatter[Data, Ctx],
	opts *FormatOptions,
	data []Data,
	ctx Ctx,
) {
	rows := make([][]string, len(data))
	for r, x := range data {
		row := make([]string, len(fields))
		for c, kwd := range fields {
			row[c] = formatters[kwd].Fmt(x, ctx)
		}
		rows[r] = row
	}
	switch {
	case opts.Csv:
		formatCsv(out, fields, opts, rows)
	case opts.Json:
		formatJson(out, fields, rows)
	default:
		formatFixed(out, fields, opts, rows)
	}
}

func formatFixed(unbufOut io.Writer, fields []string, opts *FormatOptions, rows [][]string) {
	out := bufio.NewWriter(unbufOut)
	defer out.Flush()

	// Column widths are the max over the column, header included.
	widths := make([]int, len(fields))
	if opts.Header {
		for c, f := range fields {
			widths[c] = utf8.RuneCountInString(f)
		}
	}
	for _, row := range rows {
		for c, val := range row {
			if w := utf8.RuneCountInString(val); w > widths[c] {
				widths[c] = w
			}
		}
	}

	var s strings.Builder
	emit := func(row []string) {
		s.Reset()
		for c, val := range row {
			s.WriteString(val)
			for n := widths[c] - utf8.RuneCountInString(val) + 2; n > 0; n-- {
				s.WriteByte(' ')
			}
		}
		fmt.Fprintln(out, strings.TrimRight(s.String(), " "))
	}
	if opts.Header {
		emit(fields)
	}
	for _, row := range rows {
		emit(row)
	}
}

func formatCsv(out io.Writer, fields []string, opts *FormatOptions, rows [][]string) {
	w := csv.NewWriter(out)
	defer w.Flush()

	if opts.Header {
		w.Write(fields)
	}
	if opts.Named {
		named := make([]string, len(fields))
		for _, row := range rows {
			for c, val := range row {
				named[c] = fields[c] + "=" + val
			}
			w.Write(named)
		}
		return
	}
	for _, row := range rows {
		w.Write(row)
	}
}

func formatJson(unbufOut io.Writer, fields []string, rows [][]string) {
	out := bufio.NewWriter(unbufOut)
	defer out.Flush()

	fmt.Fprint(out, "[")
	for r, row := range rows {
		if r > 0 {
			fmt.Fprint(out, ",")
		}
		fmt.Fprint(out, "{")
		for c, val := range row {
			if c > 0 {
				fmt.Fprint(out, ",")
			}
			// Keys are plain identifiers, only the values need quoting
			v, _ := json.Marshal(val)
			fmt.Fprintf(out, "\"%s\":%s", fields[c], v)
		}
		fmt.Fprint(out, "}")
	}
	fmt.Fprint(out, "]")
}

///////////////////////////////////////////////////////////////////////////////////////////////////
//
// -fmt=help support.

type FormatHelp struct {
	Text     string
	Helps    map[string]string
	Aliases  map[string][]string
	Defaults string
}

func StandardFormatHelp[Data, Ctx any](
	fmtOpt string,
	helpText string,
	formatters map[string]Formatter[Data, Ctx],
	aliases map[string][]string,
	defaultFields string,
) *FormatHelp {
	if fmtOpt != "help" {
		return nil
	}
	helps := make(map[string]string, len(formatters))
	for k, v := range formatters {
		helps[k] = v.Help
	}
	return &FormatHelp{
		Text:     helpText,
		Helps:    helps,
		Aliases:  aliases,
		Defaults: defaultFields,
	}
}

func PrintFormatHelp(out io.Writer, h *FormatHelp) {
	fmt.Fprintln(out, h.Text)
	fmt.Fprintln(out, "Syntax:\n  -fmt=(field|alias|control),...")
	fmt.Fprintln(out, "\nFields:")
	fields := make([]string, 0, len(h.Helps))
	for f := range h.Helps {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "  %s - %s\n", f, h.Helps[f])
	}
	if len(h.Aliases) > 0 {
		fmt.Fprintln(out, "\nAliases:")
		aliases := make([]string, 0, len(h.Aliases))
		for a := range h.Aliases {
			aliases = append(aliases, a)
		}
		sort.Strings(aliases)
		for _, a := range aliases {
			fmt.Fprintf(out, "  %s --> %s\n", a, strings.Join(h.Aliases[a], ","))
		}
	}
	fmt.Fprintf(out, "\nDefaults:\n  %s\n", h.Defaults)
	fmt.Fprint(out, "\nControl:\n  csv\n  csvnamed\n  fixed\n  json\n  header\n  noheader\n")
}
