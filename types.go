package filerenamer

import "strings"

// Rules is the immutable set of filename transformations applied to a batch.
type Rules struct {
	ReplaceEnabled bool   `json:"replace_enabled"`
	FindText       string `json:"find_text"`
	ReplaceText    string `json:"replace_text"`

	RenumberEnabled bool `json:"renumber_enabled"`
	StartNumber     int  `json:"start_number"`

	PaddingEnabled bool `json:"padding_enabled"`
	PaddingWidth   int  `json:"padding_width"`

	ExtensionEnabled bool   `json:"extension_enabled"`
	NewExtension     string `json:"new_extension"`
}

const (
	DefaultStartNumber  = 1001
	DefaultPaddingWidth = 4
)

func DefaultRules() Rules {
	return Rules{
		StartNumber:  DefaultStartNumber,
		PaddingWidth: DefaultPaddingWidth,
	}
}

// PadWidth returns the minimum digit count used for sequence numbers.
func (r Rules) PadWidth() int {
	if r.PaddingEnabled {
		return r.PaddingWidth
	}
	return DefaultPaddingWidth
}

// Extension returns the replacement extension without leading dots, or ""
// when the extension is left alone.
func (r Rules) Extension() string {
	if !r.ExtensionEnabled {
		return ""
	}
	return strings.TrimLeft(r.NewExtension, ".")
}

type Mode string

const (
	ModePreview Mode = "preview"
	ModeExecute Mode = "execute"
)

type Operation string

const (
	OpRename Operation = "rename"
	OpCopy   Operation = "copy"
)

// FileEntry is a regular file found in the input directory.
type FileEntry struct {
	Name string `json:"name"`
}

func (e FileEntry) Stem() string {
	stem, _ := SplitName(e.Name)
	return stem
}

func (e FileEntry) Ext() string {
	_, ext := SplitName(e.Name)
	return ext
}

type Mapping struct {
	OriginalName string    `json:"original_name"`
	NewName      string    `json:"new_name"`
	SourcePath   string    `json:"source_path,omitempty"`
	DestPath     string    `json:"dest_path,omitempty"`
	Op           Operation `json:"op,omitempty"`
}

type Outcome string

const (
	OutcomePlanned Outcome = "planned"
	OutcomeRenamed Outcome = "renamed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

const ReasonUnchanged = "unchanged"

type ReportEntry struct {
	Mapping
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
	Error   string  `json:"error,omitempty"`
	Err     error   `json:"-"`
}

type Report struct {
	Mode    Mode          `json:"mode"`
	Entries []ReportEntry `json:"entries"`
}

// Mappings returns the mapping of every processed file in processing order.
func (r *Report) Mappings() []Mapping {
	mappings := make([]Mapping, 0, len(r.Entries))
	for _, entry := range r.Entries {
		mappings = append(mappings, entry.Mapping)
	}
	return mappings
}

func (r *Report) Failures() []ReportEntry {
	var failed []ReportEntry
	for _, entry := range r.Entries {
		if entry.Outcome == OutcomeFailed {
			failed = append(failed, entry)
		}
	}
	return failed
}

func (r *Report) Count(outcome Outcome) int {
	count := 0
	for _, entry := range r.Entries {
		if entry.Outcome == outcome {
			count++
		}
	}
	return count
}
