package document

import (
	"errors"
	"testing"

	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	native "github.com/blevesearch/bleve/v2/document"
	"github.com/blevesearch/bleve/v2/mapping"
	index "github.com/blevesearch/bleve_index_api"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/field"
)

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	m := mapping.NewIndexMapping()
	text := m.AnalyzerNamed(standard.Name)
	kw := m.AnalyzerNamed(keyword.Name)
	if text == nil || kw == nil {
		t.Fatal("analyzers not registered")
	}
	return &Builder{Analyzers: Analyzers{Text: text, Keyword: kw}}
}

func TestParse_PlainFields(t *testing.T) {
	doc, err := Parse(Pairs{
		{Key: "title", Value: "hello world"},
		{Key: "body", Value: "lucene test"},
	}, codec.UTF8())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := doc.Names(); len(got) != 2 || got[0] != "title" || got[1] != "body" {
		t.Errorf("Names() = %v, want [title body]", got)
	}
	if v, _ := doc.Get("title"); v != "hello world" {
		t.Errorf("title = %q", v)
	}
	if doc.Fields[0].Value.Config() != field.Default {
		t.Errorf("plain field config = %v, want default", doc.Fields[0].Value.Config())
	}
}

func TestParse_Descriptors(t *testing.T) {
	doc, err := Parse(Pairs{
		{Key: "secret", Value: []any{"hidden", "no", "tokenized", "no"}},
		{Key: "tag", Value: []string{"go-lang", "compress", "untokenized", "yes"}},
		{Key: "named", Value: map[string]any{"value": "v", "store": "yes", "index": "nonorms", "termVector": "positions"}},
	}, codec.UTF8())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []field.Config{
		{Store: field.StoreNo, Index: field.IndexTokenized, TermVector: field.TermVectorNo},
		{Store: field.StoreCompress, Index: field.IndexUntokenized, TermVector: field.TermVectorYes},
		{Store: field.StoreYes, Index: field.IndexNoNorms, TermVector: field.TermVectorPositions},
	}
	for i, f := range doc.Fields {
		if _, ok := f.Value.(Configured); !ok {
			t.Errorf("field %s is %T, want Configured", f.Name, f.Value)
		}
		if f.Value.Config() != want[i] {
			t.Errorf("field %s config = %v, want %v", f.Name, f.Value.Config(), want[i])
		}
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		m    Mapping
	}{
		{"nil mapping", nil},
		{"non-string key", Pairs{{Key: 1, Value: "x"}}},
		{"number value", Pairs{{Key: "n", Value: 42}}},
		{"nil value", Pairs{{Key: "n", Value: nil}}},
		{"short descriptor", Pairs{{Key: "d", Value: []any{"v", "yes"}}}},
		{"non-string descriptor value", Pairs{{Key: "d", Value: []any{1, "yes", "tokenized", "no"}}}},
		{"non-string option", Pairs{{Key: "d", Value: []any{"v", true, "tokenized", "no"}}}},
		{"named without value", Pairs{{Key: "d", Value: map[string]any{"store": "yes"}}}},
		{"named unknown key", Pairs{{Key: "d", Value: map[string]any{"value": "v", "boost": "2"}}}},
		{"empty name", Pairs{{Key: "", Value: "x"}}},
		{"reserved name", Pairs{{Key: "_id", Value: "x"}}},
		{"reserved order name", Pairs{{Key: "_order", Value: "x"}}},
		{"duplicate", Pairs{{Key: "a", Value: "x"}, {Key: "a", Value: "y"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.m, codec.UTF8())
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("Parse() error = %v, want ErrSchema", err)
			}
			if doc.Len() != 0 {
				t.Errorf("Parse() returned %d fields on failure", doc.Len())
			}
		})
	}
}

func TestParse_InvalidOptionAbortsDocument(t *testing.T) {
	doc, err := Parse(Pairs{
		{Key: "ok", Value: "fine"},
		{Key: "bad", Value: []any{"v", "yes", "analyzed", "no"}},
		{Key: "later", Value: "never reached"},
	}, codec.UTF8())
	var optErr *field.InvalidOptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("Parse() error = %v, want InvalidOptionError", err)
	}
	if optErr.Axis != field.AxisIndex || optErr.Received != "analyzed" {
		t.Errorf("got %s %q", optErr.Axis, optErr.Received)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "bad" {
		t.Errorf("error should name field bad: %v", err)
	}
	if doc.Len() != 0 {
		t.Error("partial document returned")
	}
}

func TestParse_NamedMissingOptionFails(t *testing.T) {
	_, err := Parse(Pairs{{Key: "d", Value: map[string]any{"value": "v", "store": "yes", "index": "tokenized"}}}, codec.UTF8())
	var optErr *field.InvalidOptionError
	if !errors.As(err, &optErr) || optErr.Axis != field.AxisTermVector {
		t.Fatalf("Parse() error = %v, want termVector InvalidOptionError", err)
	}
}

func TestParse_DecodesHostCharset(t *testing.T) {
	latin1, err := codec.New("ISO-8859-1")
	if err != nil {
		t.Fatalf("codec.New() error = %v", err)
	}
	doc, err := Parse(Pairs{{Key: "gr\xfc\xdfe", Value: "caf\xe9"}}, latin1)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v, ok := doc.Get("grüße"); !ok || v != "café" {
		t.Errorf("decoded field = %q, %v", v, ok)
	}
}

func TestMap_SortedOrder(t *testing.T) {
	doc, err := Parse(Map{"b": "2", "a": "1", "c": "3"}, codec.UTF8())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := doc.Names()
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Names() = %v, want sorted", got)
	}
}

func TestBuild_AddsCompositeDefaultField(t *testing.T) {
	b := testBuilder(t)
	doc, _ := Parse(Pairs{{Key: "title", Value: "hello world"}}, codec.UTF8())
	nd, err := b.Build("0001", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if nd.ID() != "0001" {
		t.Errorf("ID() = %q", nd.ID())
	}
	if !nd.HasComposite() {
		t.Fatal("expected composite default field")
	}
	var names []string
	nd.VisitComposite(func(cf index.CompositeField) {
		names = append(names, cf.Name())
	})
	if len(names) != 1 || names[0] != DefaultField {
		t.Errorf("composite fields = %v", names)
	}
}

func TestBuild_OwnDefaultFieldSkipsComposite(t *testing.T) {
	b := testBuilder(t)
	doc, _ := Parse(Pairs{{Key: "contents", Value: "full text"}}, codec.UTF8())
	nd, err := b.Build("0001", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if nd.HasComposite() {
		t.Error("composite added although host supplied the default field")
	}
}

func TestBuild_FieldOptions(t *testing.T) {
	b := testBuilder(t)
	doc, _ := Parse(Pairs{
		{Key: "plain", Value: "a b"},
		{Key: "secret", Value: []any{"s", "no", "tokenized", "no"}},
		{Key: "stored", Value: []any{"x", "yes", "no", "no"}},
	}, codec.UTF8())
	nd, err := b.Build("0001", doc)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := map[string]index.FieldIndexingOptions{}
	nd.VisitFields(func(f index.Field) {
		got[f.Name()] = f.Options()
	})
	if !got["plain"].IsStored() || !got["plain"].IsIndexed() {
		t.Errorf("plain options = %v", got["plain"])
	}
	if got["secret"].IsStored() || !got["secret"].IsIndexed() {
		t.Errorf("secret options = %v", got["secret"])
	}
	if !got["stored"].IsStored() || got["stored"].IsIndexed() {
		t.Errorf("stored options = %v", got["stored"])
	}
}

func TestBuild_RequiresIDAndAnalyzers(t *testing.T) {
	doc, _ := Parse(Pairs{{Key: "a", Value: "b"}}, codec.UTF8())
	if _, err := testBuilder(t).Build("", doc); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := (&Builder{}).Build("1", doc); err == nil {
		t.Error("expected error without analyzers")
	}
}

func TestFromNative_RoundTrip(t *testing.T) {
	b := testBuilder(t)
	in, _ := Parse(Pairs{
		{Key: "title", Value: "hello world"},
		{Key: "body", Value: "lucene test"},
		{Key: "unicode", Value: "日本語"},
	}, codec.UTF8())
	nd, err := b.Build("0001", in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	out, err := FromNative(nd, codec.UTF8())
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip = %v, want %v", out.Map(), in.Map())
	}
}

func TestFromNative_RestoresHostOrder(t *testing.T) {
	b := testBuilder(t)
	in, _ := Parse(Pairs{
		{Key: "beta", Value: "second"},
		{Key: "alpha", Value: "two"},
	}, codec.UTF8())
	built, err := b.Build("0002", in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Rebuild with fields in the index's own order, keeping the order record.
	nd := native.NewDocument("0002")
	var recorded index.Field
	byName := map[string]index.Field{}
	built.VisitFields(func(f index.Field) {
		if f.Name() == orderFieldName {
			recorded = f
			return
		}
		byName[f.Name()] = f
	})
	if recorded == nil {
		t.Fatal("Build() recorded no field order")
	}
	nd.AddField(byName["alpha"].(*native.TextField))
	nd.AddField(byName["beta"].(*native.TextField))
	nd.AddField(recorded.(*native.TextField))

	out, err := FromNative(nd, codec.UTF8())
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	got := out.Names()
	if len(got) != 2 || got[0] != "beta" || got[1] != "alpha" {
		t.Errorf("Names() = %v, want [beta alpha]", got)
	}
}

func TestFromNative_WithoutOrderKeepsNativeOrder(t *testing.T) {
	nd := native.NewDocument("0003")
	nd.AddField(native.NewTextField("z", nil, []byte("1")))
	nd.AddField(native.NewTextField("a", nil, []byte("2")))
	out, err := FromNative(nd, codec.UTF8())
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	got := out.Names()
	if len(got) != 2 || got[0] != "z" || got[1] != "a" {
		t.Errorf("Names() = %v, want [z a]", got)
	}
}

func TestFromNative_SkipsIDField(t *testing.T) {
	nd := native.NewDocument("0007")
	nd.AddIDField()
	nd.AddField(native.NewTextField("title", nil, []byte("t")))
	out, err := FromNative(nd, codec.UTF8())
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}
	if out.Has("_id") || out.Len() != 1 {
		t.Errorf("FromNative() = %v", out.Names())
	}
}

func TestFromNative_Nil(t *testing.T) {
	if _, err := FromNative(nil, codec.UTF8()); err == nil {
		t.Error("expected error for nil document")
	}
}
