package loader

import "github.com/samcharles93/keyinfo/internal/rawbuf"

// Document is the machine-readable form of a Result, shared by the export
// command and the HTTP API.
type Document struct {
	Path     string          `json:"path,omitempty" yaml:"path,omitempty"`
	Names    []string        `json:"names,omitempty" yaml:"names,omitempty"`
	Header   HeaderDoc       `json:"header" yaml:"header"`
	Extended *ExtendedDoc    `json:"extended,omitempty" yaml:"extended,omitempty"`
	Direct   []DirectDoc     `json:"direct" yaml:"direct"`
	Records  []RecordDoc     `json:"records" yaml:"records"`
	Caps     []CapabilityDoc `json:"capabilities" yaml:"capabilities"`
	Issues   []IssueDoc      `json:"issues,omitempty" yaml:"issues,omitempty"`
}

type HeaderDoc struct {
	Magic              int `json:"magic" yaml:"magic"`
	NumberWidth        int `json:"number_width" yaml:"number_width"`
	NamesSize          int `json:"names_size" yaml:"names_size"`
	BooleansCount      int `json:"booleans_count" yaml:"booleans_count"`
	NumbersCount       int `json:"numbers_count" yaml:"numbers_count"`
	StringTableEntries int `json:"string_table_entries" yaml:"string_table_entries"`
	StringTableSize    int `json:"string_table_size" yaml:"string_table_size"`
	IndexTableOffset   int `json:"index_table_offset" yaml:"index_table_offset"`
	StringTableOffset  int `json:"string_table_offset" yaml:"string_table_offset"`
	LegacyEnd          int `json:"legacy_end" yaml:"legacy_end"`
}

type ExtendedDoc struct {
	BooleansCount      int  `json:"booleans_count" yaml:"booleans_count"`
	NumbersCount       int  `json:"numbers_count" yaml:"numbers_count"`
	StringsCount       int  `json:"strings_count" yaml:"strings_count"`
	StringTableEntries int  `json:"string_table_entries" yaml:"string_table_entries"`
	StringTableSize    int  `json:"string_table_size" yaml:"string_table_size"`
	StringTableOffset  int  `json:"string_table_offset" yaml:"string_table_offset"`
	NamesTruncated     bool `json:"names_truncated,omitempty" yaml:"names_truncated,omitempty"`
}

type DirectDoc struct {
	Code    int    `json:"code" yaml:"code"`
	Key     int    `json:"key" yaml:"key"`
	KeyName string `json:"key_name" yaml:"key_name"`
}

type RecordDoc struct {
	Index    int    `json:"index" yaml:"index"`
	Key      int    `json:"key" yaml:"key"`
	KeyName  string `json:"key_name" yaml:"key_name"`
	Modifier int    `json:"modifier" yaml:"modifier"`
	ModName  string `json:"modifier_name,omitempty" yaml:"modifier_name,omitempty"`
	Sequence string `json:"sequence" yaml:"sequence"`
}

type CapabilityDoc struct {
	Source    string `json:"source" yaml:"source"`
	Ordinal   int    `json:"ordinal" yaml:"ordinal"`
	Name      string `json:"name" yaml:"name"`
	Sequence  string `json:"sequence" yaml:"sequence"`
	Mapped    bool   `json:"mapped" yaml:"mapped"`
	KeyName   string `json:"key_name,omitempty" yaml:"key_name,omitempty"`
	ModName   string `json:"modifier_name,omitempty" yaml:"modifier_name,omitempty"`
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty"`
}

type IssueDoc struct {
	Source     string `json:"source" yaml:"source"`
	Ordinal    int    `json:"ordinal" yaml:"ordinal"`
	Capability string `json:"capability" yaml:"capability"`
	Error      string `json:"error" yaml:"error"`
}

// NewDocument converts r. Sequences are rendered in armored form.
func NewDocument(r *Result) Document {
	h := r.Header
	doc := Document{
		Path:  r.Path,
		Names: r.Names,
		Header: HeaderDoc{
			Magic:              int(h.Magic),
			NumberWidth:        r.Layout.NumberWidth,
			NamesSize:          int(h.NamesSize),
			BooleansCount:      int(h.BooleansCount),
			NumbersCount:       int(h.NumbersCount),
			StringTableEntries: int(h.StringTableEntries),
			StringTableSize:    int(h.StringTableSize),
			IndexTableOffset:   r.Layout.IndexTable,
			StringTableOffset:  r.Layout.StringData,
			LegacyEnd:          r.Layout.End,
		},
		Direct:  []DirectDoc{},
		Records: []RecordDoc{},
	}
	if e := r.Extended; e != nil {
		doc.Extended = &ExtendedDoc{
			BooleansCount:      int(e.BooleansCount),
			NumbersCount:       int(e.NumbersCount),
			StringsCount:       int(e.StringsCount),
			StringTableEntries: int(e.StringTableEntries),
			StringTableSize:    int(e.StringTableSize),
			StringTableOffset:  r.ExtendedLayout.StringData,
			NamesTruncated:     r.NamesTruncated,
		}
	}

	for _, s := range r.Table.Direct().Entries() {
		doc.Direct = append(doc.Direct, DirectDoc{Code: int(s.Code), Key: int(s.Key), KeyName: s.Key.Name()})
	}
	for i, rec := range r.Table.Records().All() {
		doc.Records = append(doc.Records, RecordDoc{
			Index:    i,
			Key:      int(rec.Key),
			KeyName:  rec.Key.Name(),
			Modifier: int(rec.Mod),
			ModName:  rec.Mod.String(),
			Sequence: rawbuf.Armor(rec.Bytes),
		})
	}

	addCaps := func(caps []Capability) {
		for _, c := range caps {
			cd := CapabilityDoc{
				Source:   c.Source.String(),
				Ordinal:  c.Ordinal,
				Name:     c.Name,
				Sequence: rawbuf.Armor(c.Value),
				Mapped:   c.Mapped,
			}
			if c.Mapped {
				cd.KeyName = c.Key.Name()
				cd.ModName = c.Mod.String()
				cd.Placement = c.Outcome.Placement.String()
			}
			doc.Caps = append(doc.Caps, cd)
		}
	}
	addCaps(r.Legacy)
	addCaps(r.ExtendedCaps)

	for _, is := range r.Issues {
		doc.Issues = append(doc.Issues, IssueDoc{
			Source:     is.Source.String(),
			Ordinal:    is.Ordinal,
			Capability: is.Capability,
			Error:      is.Err.Error(),
		})
	}
	return doc
}
