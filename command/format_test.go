package command

import (
	"strconv"
	"strings"
	"testing"
)

type testDatum struct {
	name string
	n    int
}

var testFormatters = map[string]Formatter[*testDatum, bool]{
	"name": {func(d *testDatum, _ bool) string { return d.name }, "The name"},
	"n":    {func(d *testDatum, _ bool) string { return strconv.Itoa(d.n) }, "The count"},
}

var testAliases = map[string][]string{
	"all": {"name", "n"},
}

func TestParseFormatSpec(t *testing.T) {
	fields, attrs := ParseFormatSpec("name,n", "", testFormatters, testAliases)
	if len(fields) != 2 || fields[0] != "name" || fields[1] != "n" {
		t.Fatalf("Defaulted fields: %v", fields)
	}
	if len(attrs) != 0 {
		t.Fatalf("Attrs: %v", attrs)
	}

	fields, attrs = ParseFormatSpec("name", "all,csvnamed", testFormatters, testAliases)
	if len(fields) != 2 || fields[0] != "name" || fields[1] != "n" {
		t.Fatalf("Alias expansion: %v", fields)
	}
	if !attrs["csvnamed"] {
		t.Fatalf("Attrs: %v", attrs)
	}

	_, attrs = ParseFormatSpec("name", "help", testFormatters, testAliases)
	if !attrs["help"] {
		t.Fatalf("Attrs: %v", attrs)
	}
}

func TestStandardFormatOptions(t *testing.T) {
	opts := StandardFormatOptions(map[string]bool{}, DefaultFixed)
	if !opts.Fixed || !opts.Header || opts.Csv || opts.Json {
		t.Fatalf("Default: %+v", opts)
	}
	opts = StandardFormatOptions(map[string]bool{"noheader": true}, DefaultFixed)
	if !opts.Fixed || opts.Header {
		t.Fatalf("Fixed noheader: %+v", opts)
	}
	opts = StandardFormatOptions(map[string]bool{}, DefaultCsv)
	if !opts.Csv || opts.Header {
		t.Fatalf("Default csv: %+v", opts)
	}
	opts = StandardFormatOptions(map[string]bool{"csv": true, "header": true}, DefaultFixed)
	if !opts.Csv || !opts.Header {
		t.Fatalf("Csv header: %+v", opts)
	}
	opts = StandardFormatOptions(map[string]bool{"csvnamed": true}, DefaultFixed)
	if !opts.Csv || !opts.Named {
		t.Fatalf("Csvnamed: %+v", opts)
	}
	// json wins over fixed, loses to csv
	opts = StandardFormatOptions(map[string]bool{"json": true, "header": true}, DefaultFixed)
	if !opts.Json || opts.Header {
		t.Fatalf("Json: %+v", opts)
	}
}

func testData() []*testDatum {
	return []*testDatum{{"alpha", 1}, {"b", 22}}
}

func TestFormatDataFixed(t *testing.T) {
	var sb strings.Builder
	opts := StandardFormatOptions(map[string]bool{}, DefaultFixed)
	FormatData(&sb, []string{"name", "n"}, testFormatters, opts, testData(), false)
	expect := "name   n\nalpha  1\nb      22\n"
	if sb.String() != expect {
		t.Fatalf("Fixed: %q", sb.String())
	}
}

func TestFormatDataCsv(t *testing.T) {
	var sb strings.Builder
	opts := StandardFormatOptions(map[string]bool{"header": true}, DefaultCsv)
	FormatData(&sb, []string{"name", "n"}, testFormatters, opts, testData(), false)
	expect := "name,n\nalpha,1\nb,22\n"
	if sb.String() != expect {
		t.Fatalf("Csv: %q", sb.String())
	}

	sb.Reset()
	opts = StandardFormatOptions(map[string]bool{"csvnamed": true}, DefaultFixed)
	FormatData(&sb, []string{"name", "n"}, testFormatters, opts, testData(), false)
	expect = "name=alpha,n=1\nname=b,n=22\n"
	if sb.String() != expect {
		t.Fatalf("Csvnamed: %q", sb.String())
	}
}

func TestFormatDataJson(t *testing.T) {
	var sb strings.Builder
	opts := StandardFormatOptions(map[string]bool{"json": true}, DefaultFixed)
	FormatData(&sb, []string{"name", "n"}, testFormatters, opts, testData(), false)
	expect := `[{"name":"alpha","n":"1"},{"name":"b","n":"22"}]`
	if sb.String() != expect {
		t.Fatalf("Json: %q", sb.String())
	}
}
