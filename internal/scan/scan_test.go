package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeTree creates empty files for each relative path under a fresh
// temp root. Scan never opens the files, so content does not matter.
func writeTree(t *testing.T, paths []string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScanSelectsLargestSize(t *testing.T) {
	root := writeTree(t, []string{
		"action/home/normal/18px.svg",
		"action/home/normal/48px.svg",
		"action/home/normal/24px.svg",
	})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Size != 48 {
		t.Errorf("Size = %d, want 48", records[0].Size)
	}
	want := Key{Category: "action", Name: "home", Variant: "normal"}
	if records[0].Key != want {
		t.Errorf("Key = %v, want %v", records[0].Key, want)
	}
}

func TestScanSingleSize(t *testing.T) {
	root := writeTree(t, []string{"alert/warning/normal/24px.svg"})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 1 || records[0].Size != 24 {
		t.Errorf("records = %+v, want single 24px record", records)
	}
}

func TestScanLegacyFlatLayout(t *testing.T) {
	root := writeTree(t, []string{
		"action/ic_home_24px.svg",
		"action/ic_home_48px.svg",
		"action/ic_3d_rotation_24px.svg",
	})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Sorted by key: 3d_rotation before home.
	if records[0].Key.Name != "3d_rotation" || records[1].Key.Name != "home" {
		t.Errorf("unexpected order: %v, %v", records[0].Key, records[1].Key)
	}
	if records[0].Key.Variant != "normal" {
		t.Errorf("flat layout variant = %q, want %q", records[0].Key.Variant, "normal")
	}
	if records[1].Size != 48 {
		t.Errorf("home Size = %d, want 48", records[1].Size)
	}
}

func TestScanNormalizesDefaultVariant(t *testing.T) {
	root := writeTree(t, []string{"toggle/star/default/24px.svg"})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if records[0].Key.Variant != "normal" {
		t.Errorf("Variant = %q, want %q", records[0].Key.Variant, "normal")
	}
}

func TestScanSkipsUnrecognizedFiles(t *testing.T) {
	root := writeTree(t, []string{
		"action/home/normal/24px.svg",
		"action/home/normal/README.md",
		"action/home/normal/24px_wide.svg",
		"action/stray.txt",
	})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1 (auxiliary files must be skipped)", len(records))
	}
}

func TestScanDuplicateRecord(t *testing.T) {
	// The same key at the same size through both layouts is ambiguous.
	root := writeTree(t, []string{
		"action/ic_home_24px.svg",
		"action/home/normal/24px.svg",
	})
	_, err := Scan(root)
	var dre *DuplicateRecordError
	if !errors.As(err, &dre) {
		t.Fatalf("got %v, want DuplicateRecordError", err)
	}
	if dre.Size != 24 {
		t.Errorf("Size = %d, want 24", dre.Size)
	}
}

func TestScanSkipsNonUTF8Category(t *testing.T) {
	root := writeTree(t, []string{"action/home/normal/24px.svg"})
	bad := filepath.Join(root, "bad\xff\xfecat")
	if err := os.Mkdir(bad, 0o755); err != nil {
		t.Skipf("filesystem rejects non-UTF-8 names: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bad, "ic_x_24px.svg"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(records) != 1 || records[0].Key.Category != "action" {
		t.Errorf("records = %+v, want only the action category", records)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Scan succeeded on missing root, want error")
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	root := writeTree(t, []string{
		"b/two/normal/24px.svg",
		"a/one/outlined/24px.svg",
		"a/one/normal/24px.svg",
		"b/one/normal/24px.svg",
	})
	records, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	var keys []Key
	for _, r := range records {
		keys = append(keys, r.Key)
	}
	want := []Key{
		{Category: "a", Name: "one", Variant: "normal"},
		{Category: "b", Name: "one", Variant: "normal"},
		{Category: "b", Name: "two", Variant: "normal"},
		{Category: "a", Name: "one", Variant: "outlined"},
	}
	if len(keys) != len(want) {
		t.Fatalf("got %d records, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestKeyCompare(t *testing.T) {
	a := Key{Category: "action", Name: "add", Variant: "normal"}
	b := Key{Category: "action", Name: "add", Variant: "outlined"}
	if a.Compare(b) >= 0 {
		t.Error("normal should order before outlined")
	}
	if a.Compare(a) != 0 {
		t.Error("key should compare equal to itself")
	}
}
