package multipage

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/ocrpage"
)

func coordinator(t *testing.T, src string) *Coordinator {
	t.Helper()
	doc, err := dom.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	return New(doc.Root, logging.Discard())
}

func pages(n int, attrs func(i int) string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteString(`<section class="win11OneOcrPage" ` + attrs(i) + `><div class="ocrContent"></div></section>`)
	}
	return sb.String()
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name      string
		head      string
		pages     int
		wantCount int
		wantMulti bool
	}{
		{"single section", "", 1, 1, false},
		{"counted sections", "", 3, 3, true},
		{"declaration wins", `<meta name="pagesCount" content="5">`, 1, 5, true},
		{"declared single", `<meta name="pagesCount" content="1">`, 2, 1, false},
		{"garbled declaration", `<meta name="pagesCount" content="many">`, 2, 1, false},
		{"empty document", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<html><head>" + tt.head + "</head><body>" +
				pages(tt.pages, func(int) string { return "" }) + "</body></html>"
			c := coordinator(t, src)
			if got := c.PageCount(); got != tt.wantCount {
				t.Errorf("PageCount() = %d, want %d", got, tt.wantCount)
			}
			if got := c.IsMultiPage(); got != tt.wantMulti {
				t.Errorf("IsMultiPage() = %v, want %v", got, tt.wantMulti)
			}
		})
	}
}

func TestPageByNumber(t *testing.T) {
	// pageNum runs backwards so attribute and position disagree
	src := "<html><body>" + pages(3, func(i int) string {
		return `pageNum="` + string(rune('3'-i)) + `" srcName="p` + string(rune('a'+i)) + `"`
	}) + "</body></html>"
	c := coordinator(t, src)

	tests := []struct {
		n    int
		want string
	}{
		{1, "pc"},
		{2, "pb"},
		{3, "pa"},
		{0, ""},
		{4, ""},
	}
	for _, tt := range tests {
		got := ""
		if p := c.PageByNumber(tt.n); p != nil {
			got, _ = dom.Attr(p, "srcName")
		}
		if got != tt.want {
			t.Errorf("PageByNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPageByNumberFallsBackToPosition(t *testing.T) {
	src := "<html><body>" + pages(2, func(i int) string {
		return `srcName="p` + string(rune('a'+i)) + `"`
	}) + "</body></html>"
	c := coordinator(t, src)
	p := c.PageByNumber(2)
	if got, _ := dom.Attr(p, "srcName"); got != "pb" {
		t.Errorf("PageByNumber(2) = %q, want pb", got)
	}
}

func TestDocumentMetadata(t *testing.T) {
	src := `<html><head>
<meta name="pagesCount" content="2">
<meta name="totalWords" content="120">
<meta name="totalSegments" content="14">
<meta name="averageConfidence" content="0.875">
<meta name="date" content="2024-05-01">
</head><body>` + pages(2, func(int) string { return "" }) + `</body></html>`
	got := coordinator(t, src).DocumentMetadata()
	want := ocrpage.DocumentMetadata{
		PageCount:         2,
		TotalWords:        120,
		TotalSegments:     14,
		AverageConfidence: 0.875,
		Date:              "2024-05-01",
	}
	if got != want {
		t.Errorf("DocumentMetadata() = %+v, want %+v", got, want)
	}
}

func TestDocumentMetadataDefaults(t *testing.T) {
	got := coordinator(t, "<html><body>"+pages(1, func(int) string { return "" })+"</body></html>").DocumentMetadata()
	want := ocrpage.DocumentMetadata{PageCount: 1}
	if got != want {
		t.Errorf("DocumentMetadata() = %+v, want %+v", got, want)
	}
}

func TestForEachPageContinuesAfterFailures(t *testing.T) {
	src := "<html><body>" + pages(4, func(i int) string {
		if i == 2 {
			return `pageNum="x"`
		}
		return ""
	}) + "</body></html>"
	c := coordinator(t, src)

	boom := errors.New("boom")
	var seen []int
	err := c.ForEachPage(func(page *html.Node, number int, multi bool) error {
		if !multi {
			t.Error("multi = false for a four page document")
		}
		seen = append(seen, number)
		switch number {
		case 2:
			return boom
		case 3:
			panic("bad page")
		}
		return nil
	})

	if want := []int{1, 2, 3, 4}; len(seen) != len(want) {
		t.Fatalf("processed pages %v, want %v", seen, want)
	} else {
		for i := range want {
			if seen[i] != want[i] {
				t.Errorf("processed pages %v, want %v", seen, want)
				break
			}
		}
	}
	if !errors.Is(err, boom) {
		t.Errorf("ForEachPage() error = %v, want it to wrap boom", err)
	}
	if err == nil || !strings.Contains(err.Error(), "panic processing page 3") {
		t.Errorf("ForEachPage() error = %v, want the recovered panic", err)
	}
}

func TestForEachPageNoPages(t *testing.T) {
	c := coordinator(t, "<html><body><p>nothing</p></body></html>")
	called := false
	err := c.ForEachPage(func(*html.Node, int, bool) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrNoPages) {
		t.Errorf("ForEachPage() error = %v, want ErrNoPages", err)
	}
	if called {
		t.Error("processor called without pages")
	}
}

func TestPageNumber(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><section class="win11OneOcrPage" pageNum=" 7 "></section><section class="win11OneOcrPage"></section></body></html>`)
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	ps := dom.QueryAll(doc.Root, ocrpage.PageSelector)
	if got := PageNumber(ps[0], 0); got != 7 {
		t.Errorf("PageNumber() = %d, want 7", got)
	}
	if got := PageNumber(ps[1], 1); got != 2 {
		t.Errorf("PageNumber() = %d, want 2", got)
	}
}
