package source_test

import (
	"testing"

	"cascade/internal/source"
)

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.casc", []byte("let a = 1\nlet b = 2\nprint b\n"))

	tests := []struct {
		off      uint32
		wantLine uint32
		wantCol  uint32
	}{
		{0, 1, 1},   // 'l' первой строки
		{4, 1, 5},   // 'a'
		{10, 2, 1},  // 'l' второй строки
		{14, 2, 5},  // 'b'
		{20, 3, 1},  // 'p'
		{26, 3, 7},  // 'b' в print b
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(source.Span{File: fileID, Start: tt.off, End: tt.off})
		if start.Line != tt.wantLine || start.Col != tt.wantCol {
			t.Errorf("offset %d = %d:%d, want %d:%d", tt.off, start.Line, start.Col, tt.wantLine, tt.wantCol)
		}
	}
}

func TestResolveSingleLineFile(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("one.casc", []byte("print 1"))
	start, _ := fs.Resolve(source.Span{File: fileID, Start: 6, End: 7})
	if start.Line != 1 || start.Col != 7 {
		t.Errorf("got %d:%d, want 1:7", start.Line, start.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.casc", []byte("first\nsecond\nthird"))
	f := fs.Get(fileID)

	tests := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAddVirtualFlags(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("v.casc", []byte("x"))
	if fs.Get(fileID).Flags&source.FileVirtual == 0 {
		t.Error("virtual file must carry FileVirtual flag")
	}
}

func TestGetLatest(t *testing.T) {
	fs := source.NewFileSet()
	first := fs.AddVirtual("same.casc", []byte("a"))
	second := fs.AddVirtual("same.casc", []byte("b"))
	if first == second {
		t.Fatal("re-adding a path must mint a new FileID")
	}
	latest, ok := fs.GetLatest("same.casc")
	if !ok || latest != second {
		t.Errorf("GetLatest = (%d, %v), want (%d, true)", latest, ok, second)
	}
}
