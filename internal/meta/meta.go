// Package meta loads the metadata file that accompanies a WAD: which sky
// texture each level uses, which flats and walls animate, and how map things
// are drawn.
package meta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// maxNameLen mirrors the eight byte limit on lump names inside a WAD.
const maxNameLen = 8

// Metadata is the decoded metadata file. It is read-only once loaded.
type Metadata struct {
	Sky        []Sky      `toml:"sky" yaml:"sky"`
	Animations Animations `toml:"animations" yaml:"animations"`
	Things     Things     `toml:"things" yaml:"things"`
}

// Sky assigns a sky texture to every level whose name matches LevelPattern.
type Sky struct {
	LevelPattern  string  `toml:"level_pattern" yaml:"level_pattern"`
	TextureName   string  `toml:"texture_name" yaml:"texture_name"`
	TiledBandSize float32 `toml:"tiled_band_size" yaml:"tiled_band_size"`

	pattern *regexp.Regexp
}

// Animations lists the frame sequences of animated flats and wall textures.
type Animations struct {
	Flats [][]string `toml:"flats" yaml:"flats"`
	Walls [][]string `toml:"walls" yaml:"walls"`
}

// Thing describes how a map thing type is drawn.
type Thing struct {
	ThingType uint16 `toml:"thing_type" yaml:"thing_type"`
	Sprite    string `toml:"sprite" yaml:"sprite"`
	Sequence  string `toml:"sequence" yaml:"sequence"`
	Hanging   bool   `toml:"hanging" yaml:"hanging"`
	Radius    uint32 `toml:"radius" yaml:"radius"`
}

// Things groups thing descriptions by category.
type Things struct {
	Decorations []Thing `toml:"decorations" yaml:"decorations"`
	Weapons     []Thing `toml:"weapons" yaml:"weapons"`
	Powerups    []Thing `toml:"powerups" yaml:"powerups"`
	Artifacts   []Thing `toml:"artifacts" yaml:"artifacts"`
	Ammo        []Thing `toml:"ammo" yaml:"ammo"`
	Keys        []Thing `toml:"keys" yaml:"keys"`
	Monsters    []Thing `toml:"monsters" yaml:"monsters"`
}

// Load reads the metadata file at path. The format is chosen by extension:
// .toml, or .yaml/.yml.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("metadata file %s is not valid UTF-8", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseTOML(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported metadata format %q", ext)
	}
}

// ParseTOML decodes TOML metadata.
func ParseTOML(data []byte) (*Metadata, error) {
	var m Metadata
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding TOML metadata: %w", err)
	}
	if err := m.compile(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseYAML decodes YAML metadata.
func ParseYAML(data []byte) (*Metadata, error) {
	var m Metadata
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding YAML metadata: %w", err)
	}
	if err := m.compile(); err != nil {
		return nil, err
	}
	return &m, nil
}

// compile validates names and compiles the sky level patterns.
func (m *Metadata) compile() error {
	for i := range m.Sky {
		sky := &m.Sky[i]
		if err := checkName("sky texture", sky.TextureName); err != nil {
			return err
		}
		// Patterns match the whole level name
		re, err := regexp.Compile("^(?:" + sky.LevelPattern + ")$")
		if err != nil {
			return fmt.Errorf("sky %d: invalid level pattern %q: %w", i, sky.LevelPattern, err)
		}
		sky.pattern = re
	}

	for _, group := range [][][]string{m.Animations.Flats, m.Animations.Walls} {
		for _, frames := range group {
			for _, name := range frames {
				if err := checkName("animation frame", name); err != nil {
					return err
				}
			}
		}
	}

	for _, things := range m.Things.all() {
		for _, t := range things {
			if len(t.Sprite) != 4 {
				return fmt.Errorf("thing %d: sprite %q must be 4 characters", t.ThingType, t.Sprite)
			}
		}
	}
	return nil
}

func checkName(what, name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("%s name %q must be 1 to %d bytes", what, name, maxNameLen)
	}
	return nil
}

func (t *Things) all() [][]Thing {
	return [][]Thing{t.Decorations, t.Weapons, t.Powerups, t.Artifacts, t.Ammo, t.Keys, t.Monsters}
}

// SkyFor returns the first sky whose pattern matches levelName.
func (m *Metadata) SkyFor(levelName string) (*Sky, bool) {
	for i := range m.Sky {
		sky := &m.Sky[i]
		if sky.pattern != nil && sky.pattern.MatchString(levelName) {
			return sky, true
		}
	}
	return nil, false
}

// FindThing returns the description of thingType, searching every category.
func (m *Metadata) FindThing(thingType uint16) (*Thing, bool) {
	for _, things := range m.Things.all() {
		for i := range things {
			if things[i].ThingType == thingType {
				return &things[i], true
			}
		}
	}
	return nil, false
}

// AnimationFor returns the frame sequence that contains the flat or wall
// texture name, if any.
func (m *Metadata) AnimationFor(name string) ([]string, bool) {
	for _, group := range [][][]string{m.Animations.Flats, m.Animations.Walls} {
		for _, frames := range group {
			for _, frame := range frames {
				if strings.EqualFold(frame, name) {
					return frames, true
				}
			}
		}
	}
	return nil, false
}
