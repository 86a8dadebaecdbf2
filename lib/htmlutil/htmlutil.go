package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText returns the printable text of a selection with whitespace collapsed.
func CleanText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		getTextRecursive(n, &buffer)
	}
	text := removeNonPrintable(buffer.String())
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = innerWhitespace.ReplaceAllString(text, " ")
	return strings.Trim(text, " \t\n")
}

// Table is the text content of an html table, with the header row split out.
type Table struct {
	Header []string
	Rows   [][]string
	// the cell selections of each row, parallel to Rows
	Cells [][]*goquery.Selection
}

// Column returns the index of the first header cell equal to name, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a <table> selection. The header is taken from <thead>
// when present, otherwise from the first row.
func ReadTable(table *goquery.Selection) Table {
	var out Table

	headerRow := table.Find("thead tr").First()
	bodyRows := table.Find("tbody tr")
	if headerRow.Length() == 0 {
		all := table.Find("tr")
		headerRow = all.First()
		bodyRows = all.Slice(1, all.Length())
	}

	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		out.Header = append(out.Header, CleanText(cell))
	})
	bodyRows.Each(func(_ int, row *goquery.Selection) {
		var texts []string
		var cells []*goquery.Selection
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			texts = append(texts, CleanText(cell))
			cells = append(cells, cell)
		})
		if len(texts) == 0 {
			return
		}
		out.Rows = append(out.Rows, texts)
		out.Cells = append(out.Cells, cells)
	})

	return out
}
