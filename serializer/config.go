package serializer

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/geoknoesis/rdf-dynsyn/rdfxml"
	"github.com/geoknoesis/rdf-dynsyn/turtle"
)

// Config holds one optional configuration per serializing engine. A nil
// field selects the engine's defaults.
//
// The TOML form uses one table per engine:
//
//	[turtle]
//	pretty = true
//	indent = "  "
//	[turtle.prefixes]
//	ex = "http://example.org/"
type Config struct {
	NTriples *turtle.NTriplesConfig `toml:"ntriples"`
	NQuads   *turtle.NQuadsConfig   `toml:"nquads"`
	Turtle   *turtle.TurtleConfig   `toml:"turtle"`
	TriG     *turtle.TriGConfig     `toml:"trig"`
	RDFXML   *rdfxml.Config         `toml:"rdfxml"`
}

// DecodeConfig reads a Config in TOML form.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("serializer: decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("serializer: unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// LoadConfig reads a Config from a TOML file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

// clone copies every engine configuration so later changes by the caller
// are not seen by a factory.
func (c Config) clone() Config {
	var out Config
	if c.NTriples != nil {
		v := *c.NTriples
		out.NTriples = &v
	}
	if c.NQuads != nil {
		v := *c.NQuads
		out.NQuads = &v
	}
	if c.Turtle != nil {
		v := *c.Turtle
		v.Prefixes = maps.Clone(v.Prefixes)
		out.Turtle = &v
	}
	if c.TriG != nil {
		v := *c.TriG
		v.Prefixes = maps.Clone(v.Prefixes)
		out.TriG = &v
	}
	if c.RDFXML != nil {
		v := *c.RDFXML
		v.Prefixes = maps.Clone(v.Prefixes)
		out.RDFXML = &v
	}
	return out
}

func orDefault[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
