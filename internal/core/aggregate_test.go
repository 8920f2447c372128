package core

import "testing"

func TestBuildProductValues(t *testing.T) {
	tbl := mustParse(t, `Handle,Title,Vendor,Variant SKU
shirt,Blue Shirt,Acme,S1
shirt,,,S2
mug,,Beta,M1
mug,Big Mug,,M2
`)
	handles := resolveHandles(tbl)
	fields := []MappedField{
		{Key: "name", Source: "Title"},
		{Key: "brand", Source: "Vendor"},
		{Key: "sku", Source: "Variant SKU"},
		{Key: "ghost", Source: "No Such Column"},
	}

	ix := BuildProductValues(tbl, fields, handles)

	tests := []struct {
		name   string
		handle string
		key    string
		want   string
		wantOK bool
	}{
		{name: "first non-blank wins", handle: "shirt", key: "name", want: "Blue Shirt", wantOK: true},
		{name: "filled on later row", handle: "mug", key: "name", want: "Big Mug", wantOK: true},
		{name: "brand from first row", handle: "mug", key: "brand", want: "Beta", wantOK: true},
		{name: "variant source not aggregated", handle: "shirt", key: "sku", wantOK: false},
		{name: "missing source column", handle: "shirt", key: "ghost", wantOK: false},
		{name: "unknown handle", handle: "ghost", key: "name", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ix.Value(tt.handle, tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Value(%q, %q) = (%q, %v), want (%q, %v)",
					tt.handle, tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolveHandles(t *testing.T) {
	t.Run("trimmed handles", func(t *testing.T) {
		tbl := mustParse(t, "Handle,Title\n shirt ,x\nmug,y\n")
		handles := resolveHandles(tbl)
		if handles[0] != "shirt" || handles[1] != "mug" {
			t.Errorf("handles = %v", handles)
		}
	})

	t.Run("missing column gets synthetic handles", func(t *testing.T) {
		tbl := mustParse(t, "Title\nx\ny\n")
		handles := resolveHandles(tbl)
		if handles[0] != "__row__0" || handles[1] != "__row__1" {
			t.Errorf("handles = %v", handles)
		}
	})

	t.Run("blank cells get synthetic handles", func(t *testing.T) {
		tbl := mustParse(t, "Handle,Title\nshirt,x\n,y\n")
		handles := resolveHandles(tbl)
		if handles[0] != "shirt" || handles[1] != "__row__1" {
			t.Errorf("handles = %v", handles)
		}
	})
}
