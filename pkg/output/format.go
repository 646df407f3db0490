// Package output renders query tables for humans and machines.
package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrUnknownFormat is returned by Parse for names it does not recognize.
var ErrUnknownFormat = errors.New("unknown output format")

// Kind selects the rendering backend.
type Kind int

const (
	Human Kind = iota
	Simple
	JSON
	JSONCompact
	CSV
	TSV
	YAML
	Silent
)

var kindNames = map[Kind]string{
	Human:       "human",
	Simple:      "simple",
	JSON:        "json",
	JSONCompact: "json-compact",
	CSV:         "csv",
	TSV:         "tsv",
	YAML:        "yaml",
	Silent:      "silent",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Noise controls how much the human format prints.
type Noise int

const (
	Normal Noise = iota
	Quiet
	Verbose
)

// Format is the rendering policy handed to every query.
type Format struct {
	Kind  Kind
	Noise Noise
	// Now anchors relative times in human output. Nil means time.Now.
	Now func() time.Time
}

// Names lists every format name accepted by Parse.
func Names() []string {
	names := make([]string, 0, len(kindNames))
	for k := Human; k <= Silent; k++ {
		names = append(names, kindNames[k])
	}
	return names
}

// Parse resolves a format by name. The empty string means human.
func Parse(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Format{Kind: Human}, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Format{Kind: k}, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, name, strings.Join(Names(), ", "))
}

func (f Format) String() string {
	return f.Kind.String()
}

// IsHuman reports whether output is meant for people rather than programs.
func (f Format) IsHuman() bool {
	return f.Kind == Human
}

// IsSilent reports whether the format suppresses listing output entirely.
func (f Format) IsSilent() bool {
	return f.Kind == Silent
}

// FormatTime renders a timestamp: relative ("3 hours ago") for humans,
// RFC 3339 for everything else.
func (f Format) FormatTime(t time.Time) string {
	if f.IsHuman() {
		return humanize.RelTime(t, f.now(), "ago", "from now")
	}
	return t.Format(time.RFC3339)
}

func (f Format) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
