package xproc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/midbel/codecs/xml"
	"github.com/midbel/xproc"
	"github.com/midbel/xproc/value"
)

func TestTransformEcho(t *testing.T) {
	proc := loadProcessor(t, "testdata/echo/transform.xslt")
	setProperty(t, proc, "omit-xml-declaration", "yes")

	param := value.Object(value.F("hello", value.Str("world")))
	if err := proc.SetParameter("param", param); err != nil {
		t.Fatalf("error setting parameter: %s", err)
	}
	got, err := proc.Transform(value.Str("testdata/echo/doc.xml"))
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	want := "<root><param><root><hello>world</hello></root></param><input><root/></input></root>"
	if got != want {
		t.Errorf("result mismatched: want %s, got %s", want, got)
	}
}

func TestTransformMarkupInput(t *testing.T) {
	proc := loadProcessor(t, "testdata/identity/transform.xslt")
	setProperty(t, proc, "omit-xml-declaration", "yes")

	doc := parseDocument(t, "<root><a>1</a></root>")
	got, err := proc.Transform(value.Node(doc))
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	want := "<root><a>1</a></root>"
	if got != want {
		t.Errorf("result mismatched: want %s, got %s", want, got)
	}
}

func TestTransformEncodedInput(t *testing.T) {
	proc := loadProcessor(t, "testdata/identity/transform.xslt")
	setProperty(t, proc, "omit-xml-declaration", "yes")

	input := value.Object(value.F("hello", value.Str("world")))
	got, err := proc.Transform(input)
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	want := "<root><hello>world</hello></root>"
	if got != want {
		t.Errorf("result mismatched: want %s, got %s", want, got)
	}
}

func TestTransformAbsentInput(t *testing.T) {
	proc := loadProcessor(t, "testdata/identity/transform.xslt")
	setProperty(t, proc, "omit-xml-declaration", "yes")

	got, err := proc.Transform(value.None())
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	if got != "<root/>" {
		t.Errorf("absent input should transform the empty document: got %s", got)
	}
}

func TestTransformKeepsDeclaration(t *testing.T) {
	proc := loadProcessor(t, "testdata/identity/transform.xslt")

	got, err := proc.Transform(parseValue(t, "<root/>"))
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	if !strings.HasPrefix(got, "<?xml") {
		t.Errorf("declaration expected by default: got %s", got)
	}
}

func TestNewFromMarkup(t *testing.T) {
	sheet := parseDocument(t, `<xsl:stylesheet version="1.0" xmlns:xsl="http://www.w3.org/1999/XSL/Transform"><xsl:template match="/"><xsl:copy-of select="/root"/></xsl:template></xsl:stylesheet>`)
	proc, err := xproc.New(value.Node(sheet))
	if err != nil {
		t.Fatalf("error loading stylesheet: %s", err)
	}
	setProperty(t, proc, "omit-xml-declaration", "yes")

	got, err := proc.Transform(parseValue(t, "<root>ok</root>"))
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	if got != "<root>ok</root>" {
		t.Errorf("result mismatched: got %s", got)
	}
}

func TestNewMissingStylesheet(t *testing.T) {
	_, err := xproc.New(value.Str("testdata/nofile.xslt"))
	if !errors.Is(err, xproc.ErrStylesheetNotFound) {
		t.Errorf("want ErrStylesheetNotFound, got %v", err)
	}
}

func TestNewInvalidStylesheet(t *testing.T) {
	_, err := xproc.New(value.Str("testdata/bad/transform.xslt"))
	if !errors.Is(err, xproc.ErrStylesheetInvalid) {
		t.Errorf("want ErrStylesheetInvalid, got %v", err)
	}
}

func TestNewRejectsOtherKinds(t *testing.T) {
	_, err := xproc.New(value.Null())
	if !errors.Is(err, xproc.ErrStylesheetInvalid) {
		t.Errorf("want ErrStylesheetInvalid, got %v", err)
	}
}

func TestTransformMissingInput(t *testing.T) {
	proc := loadProcessor(t, "testdata/identity/transform.xslt")
	_, err := proc.Transform(value.Str("testdata/nofile.xml"))
	if !errors.Is(err, xproc.ErrInputNotFound) {
		t.Errorf("want ErrInputNotFound, got %v", err)
	}
}

func TestTransformResolvesDocument(t *testing.T) {
	proc := loadProcessor(t, "testdata/resolve/transform.xslt")
	setProperty(t, proc, "omit-xml-declaration", "yes")

	got, err := proc.Transform(value.None())
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	want := "<got><data>external</data></got>"
	if got != want {
		t.Errorf("result mismatched: want %s, got %s", want, got)
	}
}

func TestTransformResolverCallback(t *testing.T) {
	tests := []struct {
		name string
		fn   xproc.ResolveFunc
		want string
	}{
		{
			name: "markup",
			fn: func(href, base string) (value.Value, error) {
				doc := parseDocument(t, "<data>mapped</data>")
				return value.Node(doc), nil
			},
			want: "<got><data>mapped</data></got>",
		},
		{
			name: "path",
			fn: func(href, base string) (value.Value, error) {
				return value.Str("data.xml"), nil
			},
			want: "<got><data>external</data></got>",
		},
		{
			name: "composite",
			fn: func(href, base string) (value.Value, error) {
				return value.Object(value.F("data", value.Str("encoded"))), nil
			},
			want: "<got><root><data>encoded</data></root></got>",
		},
	}
	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			proc := loadProcessor(t, "testdata/resolve/transform.xslt")
			setProperty(t, proc, "omit-xml-declaration", "yes")
			proc.SetResolver(c.fn)

			got, err := proc.Transform(value.None())
			if err != nil {
				t.Fatalf("error executing transform: %s", err)
			}
			if got != c.want {
				t.Errorf("result mismatched: want %s, got %s", c.want, got)
			}
		})
	}
}

func TestPropertySealing(t *testing.T) {
	proc := loadProcessor(t, "testdata/seal/transform.xslt")
	setProperty(t, proc, "method", "text")

	got, err := proc.Transform(parseValue(t, "<root>hello</root>"))
	if err != nil {
		t.Fatalf("error executing transform: %s", err)
	}
	if got != "hello" {
		t.Errorf("caller property should seal over xsl:output: got %q", got)
	}
}

func loadProcessor(t *testing.T, file string) *xproc.Processor {
	t.Helper()
	proc, err := xproc.New(value.Str(file))
	if err != nil {
		t.Fatalf("error loading stylesheet: %s", err)
	}
	return proc
}

func setProperty(t *testing.T, proc *xproc.Processor, name, val string) {
	t.Helper()
	if err := proc.SetOutputProperty(name, value.Str(val)); err != nil {
		t.Fatalf("error setting output property: %s", err)
	}
}

func parseDocument(t *testing.T, text string) *xml.Document {
	t.Helper()
	ps := xml.NewParser(strings.NewReader(text))
	doc, err := ps.Parse()
	if err != nil {
		t.Fatalf("error parsing document: %s", err)
	}
	return doc
}

func parseValue(t *testing.T, text string) value.Value {
	t.Helper()
	return value.Node(parseDocument(t, text))
}
