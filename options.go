package luamark

// Record keys recognized by Normalize.
const (
	KeyAllowAnyImgSrc             = "allow_any_img_src"
	KeyAllowDangerousHTML         = "allow_dangerous_html"
	KeyAllowDangerousProtocol     = "allow_dangerous_protocol"
	KeyDefaultLineEnding          = "default_line_ending"
	KeyGFMFootnoteBackLabel       = "gfm_footnote_back_label"
	KeyGFMFootnoteClobberPrefix   = "gfm_footnote_clobber_prefix"
	KeyGFMFootnoteLabelAttributes = "gfm_footnote_label_attributes"
	KeyGFMFootnoteLabelTagName    = "gfm_footnote_label_tag_name"
	KeyGFMFootnoteLabel           = "gfm_footnote_label"
	KeyGFMTaskListItemCheckable   = "gfm_task_list_item_checkable"
	KeyGFMTagfilter               = "gfm_tagfilter"
)

// BoolKeys lists the record keys holding boolean values.
var BoolKeys = []string{
	KeyAllowAnyImgSrc,
	KeyAllowDangerousHTML,
	KeyAllowDangerousProtocol,
	KeyGFMTaskListItemCheckable,
	KeyGFMTagfilter,
}

// StringKeys lists the record keys holding string values.
var StringKeys = []string{
	KeyDefaultLineEnding,
	KeyGFMFootnoteBackLabel,
	KeyGFMFootnoteClobberPrefix,
	KeyGFMFootnoteLabelAttributes,
	KeyGFMFootnoteLabelTagName,
	KeyGFMFootnoteLabel,
}

// Record is a loosely-typed option bag supplied by a host script.
// Unrecognized keys are ignored and values of the wrong type count as absent.
type Record map[string]any

// GetBool returns the boolean stored under key and whether one was present.
func (r Record) GetBool(key string) (bool, bool) {
	v, ok := r[key].(bool)
	return v, ok
}

// GetString returns the string stored under key and whether one was present.
func (r Record) GetString(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

func (r Record) boolOr(key string, def bool) bool {
	if v, ok := r.GetBool(key); ok {
		return v
	}
	return def
}

func (r Record) stringPtr(key string) *string {
	if v, ok := r.GetString(key); ok {
		return &v
	}
	return nil
}

// LineEnding is the line ending used in generated HTML.
type LineEnding string

// LineEnding values.
const (
	LineEndingCRLF LineEnding = "\r\n"
	LineEndingLF   LineEnding = "\n"
	LineEndingCR   LineEnding = "\r"
)

// ParseLineEnding maps a record value onto a LineEnding.
// Only "lf" selects LineEndingLF; anything else yields LineEndingCRLF.
func ParseLineEnding(s string) LineEnding {
	switch s {
	case "lf":
		return LineEndingLF
	default:
		return LineEndingCRLF
	}
}

// Name returns the record spelling of the line ending.
func (e LineEnding) Name() string {
	switch e {
	case LineEndingLF:
		return "lf"
	case LineEndingCR:
		return "cr"
	default:
		return "crlf"
	}
}

// ParseOptions controls which syntax extensions are recognized.
type ParseOptions struct {
	GFM bool `json:"gfm"`
}

// CompileOptions controls HTML emission. Every field is set once
// normalization completes; nil footnote strings defer to the renderer's
// own defaults.
type CompileOptions struct {
	AllowAnyImgSrc           bool       `json:"allowAnyImgSrc"`
	AllowDangerousHTML       bool       `json:"allowDangerousHtml"`
	AllowDangerousProtocol   bool       `json:"allowDangerousProtocol"`
	DefaultLineEnding        LineEnding `json:"defaultLineEnding"`
	GFMTaskListItemCheckable bool       `json:"gfmTaskListItemCheckable"`
	GFMTagfilter             bool       `json:"gfmTagfilter"`

	GFMFootnoteBackLabel       *string `json:"gfmFootnoteBackLabel"`
	GFMFootnoteClobberPrefix   *string `json:"gfmFootnoteClobberPrefix"`
	GFMFootnoteLabelAttributes *string `json:"gfmFootnoteLabelAttributes"`
	GFMFootnoteLabelTagName    *string `json:"gfmFootnoteLabelTagName"`
	GFMFootnoteLabel           *string `json:"gfmFootnoteLabel"`
}

// Options combines parse and compile options for a single render.
type Options struct {
	Parse   ParseOptions   `json:"parse"`
	Compile CompileOptions `json:"compile"`
}

// Normalize resolves a record into fully-populated compile options.
// It never fails: missing or unrecognized values fall back to defaults.
func Normalize(rec Record) CompileOptions {
	lineEnding := LineEndingCRLF
	if s, ok := rec.GetString(KeyDefaultLineEnding); ok {
		lineEnding = ParseLineEnding(s)
	}

	return CompileOptions{
		AllowAnyImgSrc:           rec.boolOr(KeyAllowAnyImgSrc, false),
		AllowDangerousHTML:       rec.boolOr(KeyAllowDangerousHTML, false),
		AllowDangerousProtocol:   rec.boolOr(KeyAllowDangerousProtocol, false),
		DefaultLineEnding:        lineEnding,
		GFMTaskListItemCheckable: rec.boolOr(KeyGFMTaskListItemCheckable, true),
		GFMTagfilter:             rec.boolOr(KeyGFMTagfilter, true),

		GFMFootnoteBackLabel:       rec.stringPtr(KeyGFMFootnoteBackLabel),
		GFMFootnoteClobberPrefix:   rec.stringPtr(KeyGFMFootnoteClobberPrefix),
		GFMFootnoteLabelAttributes: rec.stringPtr(KeyGFMFootnoteLabelAttributes),
		GFMFootnoteLabelTagName:    rec.stringPtr(KeyGFMFootnoteLabelTagName),
		GFMFootnoteLabel:           rec.stringPtr(KeyGFMFootnoteLabel),
	}
}

// GFMOptions returns the renderer's stock GFM option set, used when a
// script passes no record at all. It differs from Normalize(nil): task
// list items are not checkable and the default line ending is LF.
func GFMOptions() *Options {
	return &Options{
		Parse: ParseOptions{GFM: true},
		Compile: CompileOptions{
			DefaultLineEnding: LineEndingLF,
			GFMTagfilter:      true,
		},
	}
}

// DefaultRecord returns the recommended GFM option record handed to
// scripts by gfm_options(). Footnote strings are left out on purpose.
func DefaultRecord() Record {
	return Record{
		KeyAllowAnyImgSrc:           false,
		KeyAllowDangerousHTML:       false,
		KeyAllowDangerousProtocol:   false,
		KeyDefaultLineEnding:        "crlf",
		KeyGFMTaskListItemCheckable: true,
		KeyGFMTagfilter:             true,
	}
}
