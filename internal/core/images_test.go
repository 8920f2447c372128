package core

import "testing"

func mustParse(t *testing.T, csv string) *Table {
	t.Helper()
	tbl, err := ParseTable([]byte(csv))
	if err != nil {
		t.Fatalf("ParseTable error = %v", err)
	}
	return tbl
}

func TestBuildImageIndex(t *testing.T) {
	tbl := mustParse(t, `Handle,Image Src,Image Position
shirt,http://x/1.jpg,1
shirt,http://x/2.jpg,2.0
shirt,http://x/other.jpg,1
mug,http://x/m.jpg,1
,http://x/orphan.jpg,1
shirt,,3
shirt,http://x/bad.jpg,abc
shirt,http://x/zero.jpg,0
shirt,http://x/six.jpg,6
`)

	ix := BuildImageIndex(tbl)

	tests := []struct {
		name   string
		handle string
		pos    int
		want   string
	}{
		{name: "position 1", handle: "shirt", pos: 1, want: "http://x/1.jpg"},
		{name: "float position truncated", handle: "shirt", pos: 2, want: "http://x/2.jpg"},
		{name: "blank src skipped", handle: "shirt", pos: 3, want: ""},
		{name: "other handle", handle: "mug", pos: 1, want: "http://x/m.jpg"},
		{name: "unknown handle", handle: "ghost", pos: 1, want: ""},
		{name: "out of range position", handle: "shirt", pos: 6, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.URL(tt.handle, tt.pos); got != tt.want {
				t.Errorf("URL(%q, %d) = %q, want %q", tt.handle, tt.pos, got, tt.want)
			}
		})
	}
}

func TestBuildImageIndexMissingColumns(t *testing.T) {
	tbl := mustParse(t, "Handle,Title\na,Shirt\n")
	ix := BuildImageIndex(tbl)
	if len(ix) != 0 {
		t.Errorf("index from table without image columns = %v, want empty", ix)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{input: "1", want: 1, wantOK: true},
		{input: "1.0", want: 1, wantOK: true},
		{input: " 5 ", want: 5, wantOK: true},
		{input: "2.9", want: 2, wantOK: true},
		{input: "0", wantOK: false},
		{input: "6", wantOK: false},
		{input: "-1", wantOK: false},
		{input: "abc", wantOK: false},
		{input: "", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := parsePosition(tt.input)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("parsePosition(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
