package sheet

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lovefest/lovefest_backend/config"
)

func testSheetContract(t *testing.T, s Sheet) {
	t.Helper()
	ctx := context.Background()

	n, err := s.RowCount(ctx)
	if err != nil {
		t.Fatalf("RowCount: %v", err)
	}
	if n != 0 {
		t.Fatalf("empty sheet RowCount = %d, want 0", n)
	}
	if h, err := s.Header(ctx); err != nil || h != nil {
		t.Fatalf("Header on empty sheet = %v, %v; want nil, nil", h, err)
	}

	header := Header{Cells: []string{"A", "B"}, Bold: true, Widths: []int{1, 1}}
	if err := s.WriteHeader(ctx, header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if n, _ := s.RowCount(ctx); n != 1 {
		t.Fatalf("RowCount after header = %d, want 1", n)
	}

	row := []string{"x", "y"}
	for i := 0; i < 2; i++ {
		if err := s.Append(ctx, row); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	// Writing the header again replaces row 1 rather than adding a row.
	if err := s.WriteHeader(ctx, header); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	if n, _ := s.RowCount(ctx); n != 3 {
		t.Fatalf("RowCount = %d, want 3", n)
	}
	rows, err := s.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	want := [][]string{{"x", "y"}, {"x", "y"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Rows = %v, want %v", rows, want)
	}

	got, err := s.Header(ctx)
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if got == nil || !got.Bold || !reflect.DeepEqual(got.Cells, header.Cells) || !reflect.DeepEqual(got.Widths, header.Widths) {
		t.Fatalf("Header = %+v, want %+v", got, header)
	}
}

func TestMemory(t *testing.T) {
	testSheetContract(t, NewMemory())
}

func TestMemory_HeaderIsCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := Header{Cells: []string{"A", "B"}, Bold: true, Widths: []int{3, 4}}
	if err := m.WriteHeader(ctx, in); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	in.Cells[0] = "mutated"
	in.Widths[0] = 99

	out, err := m.Header(ctx)
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	out.Cells[1] = "mutated"
	out.Widths[1] = 99

	got, _ := m.Header(ctx)
	want := &Header{Cells: []string{"A", "B"}, Bold: true, Widths: []int{3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stored header = %+v, want %+v", got, want)
	}
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	_ = m.Close()
	if err := m.Append(context.Background(), []string{"a"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Append after Close = %v, want ErrClosed", err)
	}
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rsvp.db")
	s, err := OpenSQLite(context.Background(), path, "rsvp")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()
	testSheetContract(t, s)
}

func TestSQLite_SheetsAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rsvp.db")

	a, err := OpenSQLite(ctx, path, "a")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer a.Close()
	if err := a.Append(ctx, []string{"1"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	b, err := OpenSQLite(ctx, path, "b")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer b.Close()
	if n, _ := b.RowCount(ctx); n != 0 {
		t.Fatalf("sheet b RowCount = %d, want 0", n)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.SheetConfig{Driver: "excel"}, nil)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("err = %v, want ErrUnknownDriver", err)
	}
}

func TestOpen_RedisWithoutClient(t *testing.T) {
	if _, err := Open(context.Background(), config.SheetConfig{Driver: "redis"}, nil); err == nil {
		t.Fatal("expected error without redis client")
	}
}

func TestAutoSize(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want []int
	}{
		{"empty", nil, nil},
		{"single", [][]string{{"ab", "c"}}, []int{2, 1}},
		{"widest wins", [][]string{{"ab", "c"}, {"a", "cdef"}}, []int{2, 4}},
		{"ragged", [][]string{{"a"}, {"a", "bcd"}}, []int{1, 3}},
		{"runes not bytes", [][]string{{"héllo"}}, []int{5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoSize(tt.rows...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AutoSize() = %v, want %v", got, tt.want)
			}
		})
	}
}
