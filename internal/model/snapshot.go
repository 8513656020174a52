package model

// LabelEntry is one labeled accessibility element in a snapshot listing.
type LabelEntry struct {
	ID          uint64 `yaml:"id"             json:"id"`
	Label       string `yaml:"label"          json:"label"`
	Description string `yaml:"desc,omitempty" json:"desc,omitempty"`
	Surface     string `yaml:"surface"        json:"surface"`
	Path        string `yaml:"path,omitempty" json:"path,omitempty"`
}

// Snapshot is the top-level output of the `snapshot` command and the MCP
// snapshot tool: every non-empty semantic label visible across the active
// surfaces at one instant.
type Snapshot struct {
	TS       int64        `yaml:"ts"       json:"ts"`
	Surfaces int          `yaml:"surfaces" json:"surfaces"`
	Elements []LabelEntry `yaml:"elements" json:"elements"`
}
