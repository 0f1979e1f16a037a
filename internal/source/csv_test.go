package source

import (
	"io"
	"strings"
	"testing"
)

func readAllRows(t *testing.T, r Reader) [][]string {
	t.Helper()
	var rows [][]string
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, row)
	}
}

func TestCSVReader(t *testing.T) {
	input := "id,name,joined\n1,alice,2023-04-15\n2,bob,2023-01-05\n"
	r := NewCSVReader(strings.NewReader(input))
	defer r.Close()

	rows := readAllRows(t, r)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if got := strings.Join(rows[1], "|"); got != "1|alice|2023-04-15" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestCSVReaderRaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\n3,4,5,6\n"
	r := NewCSVReader(strings.NewReader(input))

	rows := readAllRows(t, r)
	want := []int{3, 2, 4}
	for i, row := range rows {
		if len(row) != want[i] {
			t.Errorf("row %d has %d fields, want %d", i, len(row), want[i])
		}
	}
}

func TestCSVReaderStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFa,b\n1,2\n"
	r := NewCSVReader(strings.NewReader(input))

	rows := readAllRows(t, r)
	if rows[0][0] != "a" {
		t.Errorf("first header = %q, want %q", rows[0][0], "a")
	}
}

func TestOpenDispatch(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr bool
	}{
		{name: "csv", file: "data.csv"},
		{name: "txt", file: "data.txt"},
		{name: "no extension", file: "data"},
		{name: "unsupported", file: "data.parquet", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Open(tt.file, strings.NewReader("a,b\n"), "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("want error for unsupported extension")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			r.Close()
		})
	}
}
