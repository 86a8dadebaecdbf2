package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestReadTable(t *testing.T) {
	cases := []struct {
		name   string
		html   string
		header []string
		rows   [][]string
	}{
		{
			name: "thead",
			html: `<table>
				<thead><tr><th>Rank</th><th> Player </th><th>TTL</th></tr></thead>
				<tbody>
					<tr><td>1</td><td><a>Lamar   Jackson</a></td><td>35.2</td></tr>
					<tr><td>2</td><td>Ja'Marr&nbsp;Chase</td><td>30.1</td></tr>
				</tbody>
			</table>`,
			header: []string{"Rank", "Player", "TTL"},
			rows: [][]string{
				{"1", "Lamar Jackson", "35.2"},
				{"2", "Ja'Marr Chase", "30.1"},
			},
		},
		{
			name: "first row header",
			html: `<table>
				<tr><td>Name</td><td>Points</td></tr>
				<tr><td>Alice</td><td>12</td></tr>
			</table>`,
			header: []string{"Name", "Points"},
			rows:   [][]string{{"Alice", "12"}},
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(test.html))
			if err != nil {
				t.Fatal(err)
			}
			table := ReadTable(doc.Find("table").First())
			require.Equal(t, test.header, table.Header)
			require.Equal(t, test.rows, table.Rows)
			require.Len(t, table.Cells, len(test.rows))
		})
	}
}

func TestColumn(t *testing.T) {
	table := Table{Header: []string{"Rank", "Player", "TTL"}}
	require.Equal(t, 1, table.Column("Player"))
	require.Equal(t, 2, table.Column("TTL"))
	require.Equal(t, -1, table.Column("AVG"))
}
