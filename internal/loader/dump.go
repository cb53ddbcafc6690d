package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/samcharles93/keyinfo/internal/rawbuf"
	"github.com/samcharles93/keyinfo/pkg/terminfo"
)

// WriteDump writes the human-readable report of a load: headers, section
// offsets, every capability seen, the record store and the direct table.
func WriteDump(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)

	if r.Path != "" {
		fmt.Fprintf(bw, "PATH %s\n", r.Path)
	}
	if len(r.Names) > 0 {
		fmt.Fprintf(bw, "NAMES %s\n", strings.Join(r.Names, " | "))
	}

	h := r.Header
	fmt.Fprintf(bw, "HEADER\n")
	fmt.Fprintf(bw, "  magic: %06o\n", uint16(h.Magic))
	fmt.Fprintf(bw, "  names_size: %d\n", h.NamesSize)
	fmt.Fprintf(bw, "  booleans_count: %d\n", h.BooleansCount)
	fmt.Fprintf(bw, "  numbers_count: %d\n", h.NumbersCount)
	fmt.Fprintf(bw, "  string_table_entries: %d\n", h.StringTableEntries)
	fmt.Fprintf(bw, "  string_table_size: %d\n", h.StringTableSize)
	if h.Magic == terminfo.MagicExtendedNumbers {
		fmt.Fprintf(bw, "NOTE 32-bit numbers\n")
	} else {
		fmt.Fprintf(bw, "NOTE 16-bit numbers\n")
	}
	fmt.Fprintf(bw, "index_table_offset: %d\n", r.Layout.IndexTable)
	fmt.Fprintf(bw, "string_table_offset: %d\n", r.Layout.StringData)

	fmt.Fprintf(bw, "LEGACY STRINGS\n")
	for i, c := range r.Legacy {
		fmt.Fprintf(bw, "%d: %d %s %s (length %d)\n", i+1, c.Ordinal, c.Name, rawbuf.Armor(c.Value), len(c.Value))
	}
	fmt.Fprintf(bw, "Legacy ends on %04x\n", r.Layout.End)

	if r.Extended != nil {
		e := r.Extended
		fmt.Fprintf(bw, "EXTENDED HEADER\n")
		fmt.Fprintf(bw, "  booleans_count: %d\n", e.BooleansCount)
		fmt.Fprintf(bw, "  numbers_count: %d\n", e.NumbersCount)
		fmt.Fprintf(bw, "  strings_count: %d\n", e.StringsCount)
		fmt.Fprintf(bw, "  string_table_entries: %d\n", e.StringTableEntries)
		fmt.Fprintf(bw, "  string_table_size: %d\n", e.StringTableSize)

		fmt.Fprintf(bw, "EXTENDED STRINGS\n")
		for _, c := range r.ExtendedCaps {
			fmt.Fprintf(bw, "%d: %s %s\n", c.Ordinal+1, c.Name, rawbuf.Armor(c.Value))
		}
		if r.NamesTruncated {
			fmt.Fprintf(bw, "NOTE extended names truncated after %d of %d\n", len(r.ExtendedCaps), e.StringsCount)
		}
	} else {
		fmt.Fprintf(bw, "End of terminfo file\n")
	}

	if len(r.Issues) > 0 {
		fmt.Fprintf(bw, "ISSUES\n")
		for _, is := range r.Issues {
			fmt.Fprintf(bw, "  %s\n", is.Error())
		}
	}

	writeTables(bw, r)
	return bw.Flush()
}

func writeTables(w io.Writer, r *Result) {
	fmt.Fprintf(w, "INPUT STRING TABLE\n")
	for i, rec := range r.Table.Records().All() {
		fmt.Fprintf(w, "%d: (key %d, mod %01x) %s\n", i+1, rec.Key, uint8(rec.Mod), rawbuf.Armor(rec.Bytes))
	}

	fmt.Fprintf(w, "INPUT KEY TABLE\n")
	for _, s := range r.Table.Direct().Entries() {
		fmt.Fprintf(w, "%d %d\n", s.Code, s.Key)
	}
}
