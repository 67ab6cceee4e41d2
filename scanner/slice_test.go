package scanner

import (
	"io"
	"testing"
)

func TestFromDataInfersColumns(t *testing.T) {
	s := FromData([][]any{{1, "a", nil}})
	cols := s.Columns()
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	want := []struct{ name, typ string }{{"column_0", "int"}, {"column_1", "string"}, {"column_2", "nil"}}
	for i, w := range want {
		if cols[i].Name() != w.name || cols[i].DatabaseTypeName() != w.typ {
			t.Errorf("column %d = %s %s, want %s %s", i, cols[i].Name(), cols[i].DatabaseTypeName(), w.name, w.typ)
		}
	}
	if s.Driver() != "go-slice" {
		t.Errorf("unexpected driver %q", s.Driver())
	}
}

func TestFromDataIteration(t *testing.T) {
	s := FromData([][]any{{1}, {2}}, NewColumn("ks", "t", "n", "int"))
	for want := 1; want <= 2; want++ {
		if s.Exhausted() {
			t.Fatalf("exhausted before row %d", want)
		}
		row, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if row[0] != want {
			t.Errorf("expected %d, got %v", want, row[0])
		}
	}
	if !s.Exhausted() {
		t.Error("expected exhausted")
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFromDataRaggedRow(t *testing.T) {
	s := FromData([][]any{{1, 2}, {3}})
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if _, err := s.Next(); err == nil {
		t.Error("expected error for short row")
	}
}

func TestFromDataEmpty(t *testing.T) {
	s := FromData(nil)
	if len(s.Columns()) != 0 {
		t.Error("expected no columns")
	}
	if !s.Exhausted() {
		t.Error("expected exhausted")
	}
}

func TestHiveColumns(t *testing.T) {
	cols := hiveColumns([][]string{
		{"users.id", "INT_TYPE"},
		{"name", "STRING_TYPE"},
		{},
		{"bare"},
	})
	if len(cols) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(cols))
	}
	if cols[0].Table() != "users" || cols[0].Name() != "id" || cols[0].DatabaseTypeName() != "INT" {
		t.Errorf("unexpected first column %s.%s %s", cols[0].Table(), cols[0].Name(), cols[0].DatabaseTypeName())
	}
	if cols[1].Table() != "" || cols[1].Name() != "name" || cols[1].DatabaseTypeName() != "STRING" {
		t.Errorf("unexpected second column %s.%s %s", cols[1].Table(), cols[1].Name(), cols[1].DatabaseTypeName())
	}
	if cols[2].Name() != "bare" || cols[2].DatabaseTypeName() != "" {
		t.Errorf("unexpected third column %s %s", cols[2].Name(), cols[2].DatabaseTypeName())
	}
}
