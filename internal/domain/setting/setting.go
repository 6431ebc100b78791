package setting

import "time"

// Section groups site settings by the capability that gates them.
type Section string

const (
	SectionBasic    Section = "basic"
	SectionAdvanced Section = "advanced"
	SectionSEO      Section = "seo"
)

// Valid reports whether the section is one of the three known groups.
func (s Section) Valid() bool {
	switch s {
	case SectionBasic, SectionAdvanced, SectionSEO:
		return true
	default:
		return false
	}
}

// Setting is a single key/value entry of the site configuration.
type Setting struct {
	Key       string    `json:"key"`
	Section   Section   `json:"section"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
