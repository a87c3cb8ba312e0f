package golftypes

import "time"

// Well known score keys. Any other key is a flag such as a junk marker.
const (
	KeyGross = "gross"
)

// ScoreValue is one write of a key on a hole. Several writers may record
// the same key; the current value is derived, never stored.
type ScoreValue struct {
	K   string    `json:"k" yaml:"k"`
	V   string    `json:"v" yaml:"v"`
	TS  time.Time `json:"ts" yaml:"ts"`
	By  string    `json:"by,omitempty" yaml:"by,omitempty"`
	Seq int64     `json:"seq,omitempty" yaml:"seq,omitempty"`
}

// ScoreUpdate is an audit record of a value being superseded.
type ScoreUpdate struct {
	Key string    `json:"key" yaml:"key"`
	By  string    `json:"by" yaml:"by"`
	At  time.Time `json:"at" yaml:"at"`
	Old string    `json:"old" yaml:"old"`
}

// Score holds every write recorded for one hole of a round.
type Score struct {
	Hole    string        `json:"hole" yaml:"hole"`
	Values  []ScoreValue  `json:"values" yaml:"values"`
	History []ScoreUpdate `json:"history,omitempty" yaml:"history,omitempty"`
}
