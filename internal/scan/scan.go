// Package scan discovers icon source files under a directory tree and
// reduces them to one authoritative record per icon.
//
// The canonical layout nests one directory level per axis:
//
//	root/<category>/<name>/<variant>/<size>px.svg
//
// The legacy flat layout used by older icon drops is also accepted; files
// found directly inside a category directory are parsed as
// ic_<name>_<size>px.svg and assigned the "normal" variant.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"iconc"
)

// Key uniquely identifies one logical icon across all discovered sizes.
type Key struct {
	Category string
	Name     string
	Variant  string
}

func (k Key) String() string {
	return k.Category + "/" + k.Name + "/" + k.Variant
}

// Compare orders keys by variant, then category, then name. This is the
// ordering the emitter groups by, so output regenerates byte-identically.
func (k Key) Compare(o Key) int {
	if c := strings.Compare(k.Variant, o.Variant); c != 0 {
		return c
	}
	if c := strings.Compare(k.Category, o.Category); c != 0 {
		return c
	}
	return strings.Compare(k.Name, o.Name)
}

// Record is one discovered source file.
type Record struct {
	Key  Key
	Size int
	Path string
}

// DuplicateRecordError reports two distinct files claiming the same icon
// at the same size. Silently picking one would make the build depend on
// directory iteration order.
type DuplicateRecordError struct {
	Key    Key
	Size   int
	First  string
	Second string
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("scan: duplicate source for %s at %dpx: %s and %s",
		e.Key, e.Size, e.First, e.Second)
}

var (
	// sizedName matches the nested-layout leaf file, e.g. "24px.svg".
	sizedName = regexp.MustCompile(`^(\d+)px\.svg$`)

	// flatName matches the legacy flat-layout file, e.g. "ic_add_24px.svg".
	flatName = regexp.MustCompile(`^ic_(.+)_(\d+)px\.svg$`)
)

// Scan walks root and returns one Record per icon key, keeping the largest
// size discovered for each. Files that do not match either filename
// pattern are skipped with a warning. An unreadable directory aborts the
// scan. The result is sorted by Key.
func Scan(root string) ([]Record, error) {
	categories, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	byKey := make(map[Key]Record)
	for _, cat := range categories {
		if !utf8.ValidString(cat.Name()) {
			warnSkip(filepath.Join(root, cat.Name()), "name is not valid UTF-8")
			continue
		}
		if !cat.IsDir() {
			warnSkip(filepath.Join(root, cat.Name()), "not a directory")
			continue
		}
		if err := scanCategory(root, cleanName(cat.Name()), byKey); err != nil {
			return nil, err
		}
	}

	records := make([]Record, 0, len(byKey))
	for _, rec := range byKey {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b Record) int {
		return a.Key.Compare(b.Key)
	})
	return records, nil
}

// scanCategory handles one category directory: flat legacy files at the
// top level, nested name/variant directories below it.
func scanCategory(root, category string, byKey map[Key]Record) error {
	dir := filepath.Join(root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	for _, ent := range entries {
		path := filepath.Join(dir, ent.Name())
		if !utf8.ValidString(ent.Name()) {
			warnSkip(path, "name is not valid UTF-8")
			continue
		}
		if !ent.IsDir() {
			m := flatName.FindStringSubmatch(ent.Name())
			if m == nil {
				warnSkip(path, "unrecognized filename")
				continue
			}
			size, err := strconv.Atoi(m[2])
			if err != nil {
				warnSkip(path, "size out of range")
				continue
			}
			key := Key{Category: category, Name: cleanName(m[1]), Variant: normalizeVariant("")}
			if err := fold(byKey, Record{Key: key, Size: size, Path: path}); err != nil {
				return err
			}
			continue
		}
		if err := scanIcon(dir, category, cleanName(ent.Name()), byKey); err != nil {
			return err
		}
	}
	return nil
}

// scanIcon handles one nested name directory containing variant
// subdirectories of sized files.
func scanIcon(catDir, category, name string, byKey map[Key]Record) error {
	dir := filepath.Join(catDir, name)
	variants, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	for _, v := range variants {
		vpath := filepath.Join(dir, v.Name())
		if !v.IsDir() {
			warnSkip(vpath, "expected a variant directory")
			continue
		}
		if !utf8.ValidString(v.Name()) {
			warnSkip(vpath, "name is not valid UTF-8")
			continue
		}
		variant := normalizeVariant(cleanName(v.Name()))

		files, err := os.ReadDir(vpath)
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		for _, f := range files {
			fpath := filepath.Join(vpath, f.Name())
			m := sizedName.FindStringSubmatch(f.Name())
			if f.IsDir() || m == nil {
				warnSkip(fpath, "unrecognized filename")
				continue
			}
			size, err := strconv.Atoi(m[1])
			if err != nil {
				warnSkip(fpath, "size out of range")
				continue
			}
			key := Key{Category: category, Name: name, Variant: variant}
			if err := fold(byKey, Record{Key: key, Size: size, Path: fpath}); err != nil {
				return err
			}
		}
	}
	return nil
}

// fold merges a candidate record into the accumulator, keeping the
// strictly largest size per key. A true duplicate (same key, same size,
// different file) is an error rather than a coin flip.
func fold(byKey map[Key]Record, rec Record) error {
	prev, ok := byKey[rec.Key]
	if !ok || rec.Size > prev.Size {
		byKey[rec.Key] = rec
		return nil
	}
	if rec.Size == prev.Size && rec.Path != prev.Path {
		return &DuplicateRecordError{
			Key:    rec.Key,
			Size:   rec.Size,
			First:  prev.Path,
			Second: rec.Path,
		}
	}
	return nil
}

// normalizeVariant canonicalizes the default variant spellings to "normal".
func normalizeVariant(v string) string {
	switch v {
	case "", "default":
		return "normal"
	}
	return v
}

// cleanName NFC-normalizes a path component so that icons scanned on
// filesystems with decomposed unicode names (macOS) key identically to
// precomposed ones.
func cleanName(s string) string {
	return norm.NFC.String(s)
}

func warnSkip(path, reason string) {
	iconc.Logger().Warn("skipping source entry", "path", path, "reason", reason)
}
