package scan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/colscan/colscan/internal/infer"
	"github.com/colscan/colscan/internal/source"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanCSV(t *testing.T, opts Options, csv string) *Result {
	t.Helper()
	res, err := New(opts).Scan(context.Background(), source.NewCSVReader(strings.NewReader(csv)))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return res
}

func TestScanWithHeader(t *testing.T) {
	res := scanCSV(t, Options{HasHeader: true},
		"id,joined on,note\n"+
			"1,2023-04-15,hello\n"+
			"2,2023-01-05,\n")

	if len(res.Columns) != 3 || res.Rows != 2 {
		t.Fatalf("columns = %d rows = %d, want 3 and 2", len(res.Columns), res.Rows)
	}

	wantNames := []string{"id", "joinedon", "note"}
	wantTypes := []infer.DataType{infer.Integer, infer.Date, infer.String}
	for i, col := range res.Columns {
		if col.Name() != wantNames[i] {
			t.Errorf("column %d name = %q, want %q", i, col.Name(), wantNames[i])
		}
		if col.DataType() != wantTypes[i] {
			t.Errorf("column %d type = %v, want %v", i, col.DataType(), wantTypes[i])
		}
		if col.Len() != res.Rows {
			t.Errorf("column %d Len = %d, want %d", i, col.Len(), res.Rows)
		}
	}

	// The empty trailing cell stays absent at its original position.
	if res.Columns[2].Values()[1] != nil {
		t.Errorf("note[1] = %v, want nil", res.Columns[2].Values()[1])
	}
}

func TestScanWithoutHeader(t *testing.T) {
	res := scanCSV(t, Options{}, "1,a\n2,b\n")

	if len(res.Columns) != 2 || res.Rows != 2 {
		t.Fatalf("columns = %d rows = %d, want 2 and 2", len(res.Columns), res.Rows)
	}
	if res.Columns[0].Name() != "" {
		t.Errorf("unnamed column has name %q", res.Columns[0].Name())
	}
	v := res.Columns[0].Values()[1].(pgtype.Int8)
	if v.Int64 != 2 {
		t.Errorf("values[1] = %+v, want 2", v)
	}
}

func TestScanRowLimit(t *testing.T) {
	res := scanCSV(t, Options{HasHeader: true, RowLimit: 2},
		"n\n1\n2\n3\n4\n")

	if res.Rows != 2 {
		t.Errorf("rows = %d, want 2", res.Rows)
	}
	if res.Columns[0].Len() != 2 {
		t.Errorf("column Len = %d, want 2", res.Columns[0].Len())
	}
}

func TestScanShortRowsFeedAbsent(t *testing.T) {
	res := scanCSV(t, Options{HasHeader: true}, "a,b\n1,2\n3\n")

	b := res.Columns[1]
	if b.Len() != 2 {
		t.Fatalf("column b Len = %d, want 2", b.Len())
	}
	if b.Values()[1] != nil {
		t.Errorf("b[1] = %v, want absent", b.Values()[1])
	}
}

func TestScanLateColumnsBackfilled(t *testing.T) {
	res := scanCSV(t, Options{}, "1\n2,x\n")

	if len(res.Columns) != 2 {
		t.Fatalf("columns = %d, want 2", len(res.Columns))
	}
	late := res.Columns[1]
	if late.Len() != 2 {
		t.Fatalf("late column Len = %d, want 2", late.Len())
	}
	if late.Values()[0] != nil {
		t.Errorf("late[0] = %v, want absent backfill", late.Values()[0])
	}
}

func TestScanExtraNullTokens(t *testing.T) {
	res := scanCSV(t, Options{HasHeader: true, NullTokens: []string{"n/a"}},
		"a\nN/A\n5\n")

	col := res.Columns[0]
	if col.Values()[0] != nil {
		t.Errorf("values[0] = %v, want absent", col.Values()[0])
	}
	if col.DataType() != infer.Integer {
		t.Errorf("type = %v, want integer", col.DataType())
	}
}

func TestScanUnresolvedColumnFails(t *testing.T) {
	_, err := New(Options{HasHeader: true}).Scan(context.Background(),
		source.NewCSVReader(strings.NewReader("day\n03-04-05\n06-07-08\n")))

	var unresolved *infer.UnresolvedFormatError
	if !errors.As(err, &unresolved) {
		t.Fatalf("err = %v, want *infer.UnresolvedFormatError", err)
	}
	if unresolved.Column != "day" {
		t.Errorf("column = %q, want day", unresolved.Column)
	}
}

func TestScanConversionFailureReportsRow(t *testing.T) {
	_, err := New(Options{HasHeader: true}).Scan(context.Background(),
		source.NewCSVReader(strings.NewReader("n\n1\n2\noops\n")))

	if err == nil {
		t.Fatal("want error, got nil")
	}
	var conv *infer.ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("err = %v, want wrapped *infer.ConversionError", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("err = %q, want row number in message", err)
	}
}

func TestScanCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Scan(ctx, source.NewCSVReader(strings.NewReader("1\n")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestScanEmptySourceWithHeaderOption(t *testing.T) {
	res := scanCSV(t, Options{HasHeader: true}, "")
	if len(res.Columns) != 0 || res.Rows != 0 {
		t.Errorf("got %d columns, %d rows from empty input", len(res.Columns), res.Rows)
	}
}
