package reporting

import (
	"context"
	"testing"

	"gridbook/pkg/openf1"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// fakeResolver records resolve calls and returns a fixed path.
type fakeResolver struct {
	calls []string
	path  string
}

func (f *fakeResolver) Resolve(ctx context.Context, id, url string) (string, bool) {
	f.calls = append(f.calls, id)
	if url == "" || f.path == "" {
		return "", false
	}
	return f.path, true
}

func TestBuildResolvesTeamColor(t *testing.T) {
	b := NewBuilder(nil)
	row := b.Build(context.Background(), openf1.Driver{TeamColour: strPtr("3671C6")})

	want := RGB{R: 54, G: 113, B: 198}
	if row.Fill != want {
		t.Errorf("Fill = %+v, want %+v", row.Fill, want)
	}
}

func TestBuildMalformedColorFallsBack(t *testing.T) {
	b := NewBuilder(nil)
	row := b.Build(context.Background(), openf1.Driver{TeamColour: strPtr("not-hex")})

	if row.Fill != DefaultFill {
		t.Errorf("Fill = %+v, want default %+v", row.Fill, DefaultFill)
	}
}

func TestBuildCellsInSchemaOrder(t *testing.T) {
	b := NewBuilder(nil)
	d := openf1.Driver{
		Number:      intPtr(1),
		FirstName:   strPtr("Max"),
		LastName:    strPtr("Verstappen"),
		Acronym:     strPtr("VER"),
		TeamName:    strPtr("Red Bull Racing"),
		DOB:         strPtr("1997-09-30"),
		CountryCode: strPtr("NED"),
	}
	row := b.Build(context.Background(), d)

	want := []string{"1", "Max Verstappen", "VER", "Red Bull Racing", "1997-09-30", "NED"}
	if len(row.Cells) != len(want) {
		t.Fatalf("got %d cells, want %d", len(row.Cells), len(want))
	}
	for i := range want {
		if row.Cells[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, row.Cells[i], want[i])
		}
	}
}

func TestBuildMissingFieldsRenderNA(t *testing.T) {
	b := NewBuilder(nil)
	row := b.Build(context.Background(), openf1.Driver{})

	want := []string{NA, "N/A N/A", NA, NA, NA, NA}
	for i := range want {
		if row.Cells[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, row.Cells[i], want[i])
		}
	}
	if row.Asset != "" {
		t.Errorf("Asset = %q, want empty", row.Asset)
	}
}

func TestBuildAssetResolution(t *testing.T) {
	resolver := &fakeResolver{path: "/tmp/cache/max_verstappen.png"}
	b := NewBuilder(resolver)

	d := openf1.Driver{
		ID:          strPtr("max_verstappen"),
		HeadshotURL: strPtr("https://example.com/ver.png"),
	}
	row := b.Build(context.Background(), d)

	if row.Asset != resolver.path {
		t.Errorf("Asset = %q, want %q", row.Asset, resolver.path)
	}
	if len(resolver.calls) != 1 || resolver.calls[0] != "max_verstappen" {
		t.Errorf("resolver calls = %v, want [max_verstappen]", resolver.calls)
	}
}

func TestBuildNilResolverSkipsAssets(t *testing.T) {
	b := NewBuilder(nil)
	row := b.Build(context.Background(), openf1.Driver{HeadshotURL: strPtr("https://example.com/ver.png")})

	if row.Asset != "" {
		t.Errorf("Asset = %q, want empty without a resolver", row.Asset)
	}
}

func TestBuildNoURLSkipsResolver(t *testing.T) {
	resolver := &fakeResolver{path: "/tmp/cache/nico_hulkenberg.png"}
	b := NewBuilder(resolver)

	row := b.Build(context.Background(), openf1.Driver{ID: strPtr("nico_hulkenberg")})
	if len(resolver.calls) != 0 {
		t.Errorf("resolver calls = %v, want none without a headshot URL", resolver.calls)
	}
	if row.Asset != "" {
		t.Errorf("Asset = %q, want empty", row.Asset)
	}
}

func TestEntityID(t *testing.T) {
	tests := []struct {
		name string
		d    openf1.Driver
		want string
	}{
		{name: "explicit id", d: openf1.Driver{ID: strPtr("max_verstappen"), Number: intPtr(1)}, want: "max_verstappen"},
		{name: "empty id falls back to number", d: openf1.Driver{ID: strPtr(""), Number: intPtr(44)}, want: "unknown_44"},
		{name: "number fallback", d: openf1.Driver{Number: intPtr(44)}, want: "unknown_44"},
		{name: "nothing", d: openf1.Driver{}, want: NA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntityID(tt.d); got != tt.want {
				t.Errorf("EntityID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildAllPreservesOrder(t *testing.T) {
	b := NewBuilder(nil)
	drivers := []openf1.Driver{
		{Number: intPtr(1)},
		{Number: intPtr(44)},
		{Number: intPtr(4)},
	}
	rows := b.BuildAll(context.Background(), drivers)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantFirstCells := []string{"1", "44", "4"}
	for i, row := range rows {
		if row.Cells[0] != wantFirstCells[i] {
			t.Errorf("row %d driver number = %q, want %q", i, row.Cells[0], wantFirstCells[i])
		}
	}
}
