package lexicon

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document is the raw YAML form of a lexicon. Lists are kept as nodes so that
// non-string entries can be rejected instead of silently coerced.
type document struct {
	Version    string               `yaml:"version"`
	Categories map[string]yaml.Node `yaml:"categories"`
	Modifiers  yaml.Node            `yaml:"modifiers"`
	Negations  yaml.Node            `yaml:"negations"`
}

// Parse decodes and validates a YAML lexicon document
func Parse(data []byte) (*Lexicon, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidLexicon, err)
	}

	spec := Spec{
		Version:    doc.Version,
		Categories: make(map[Category][]string, len(categories)),
	}

	known := make(map[string]Category, len(categories))
	for _, cat := range categories {
		known[cat.Key()] = cat
	}
	for key := range doc.Categories {
		if _, ok := known[key]; !ok {
			return nil, newValidationError("categories."+key, "unknown category")
		}
	}
	for _, cat := range categories {
		node, ok := doc.Categories[cat.Key()]
		if !ok {
			return nil, newValidationError("categories."+cat.Key(), "category list is missing")
		}
		phrases, err := stringList(&node, "categories."+cat.Key())
		if err != nil {
			return nil, err
		}
		spec.Categories[cat] = phrases
	}

	modifiers, err := modifierList(&doc.Modifiers)
	if err != nil {
		return nil, err
	}
	spec.Modifiers = modifiers

	negations, err := stringList(&doc.Negations, "negations")
	if err != nil {
		return nil, err
	}
	spec.Negations = negations

	return New(spec)
}

// Load reads a YAML lexicon document from r
func Load(r io.Reader) (*Lexicon, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a YAML lexicon document from path
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return lex, nil
}

// stringList converts a YAML sequence of strings, rejecting any other shape
func stringList(node *yaml.Node, field string) ([]string, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, newValidationError(field, "must be a list of strings")
	}

	out := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, newValidationError(fmt.Sprintf("%s[%d]", field, i), "entry is not a string (line %d)", item.Line)
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// modifierList converts the ordered modifier table
func modifierList(node *yaml.Node) ([]Modifier, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, newValidationError("modifiers", "must be a list of {phrase, multiplier} entries")
	}

	out := make([]Modifier, 0, len(node.Content))
	for i, item := range node.Content {
		field := fmt.Sprintf("modifiers[%d]", i)
		if item.Kind != yaml.MappingNode {
			return nil, newValidationError(field, "entry is not a mapping (line %d)", item.Line)
		}

		var m Modifier
		hasMultiplier := false
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, value := item.Content[j], item.Content[j+1]
			switch key.Value {
			case "phrase":
				if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!str" {
					return nil, newValidationError(field+".phrase", "phrase is not a string (line %d)", value.Line)
				}
				m.Phrase = value.Value
			case "multiplier":
				tag := value.ShortTag()
				if value.Kind != yaml.ScalarNode || (tag != "!!float" && tag != "!!int") {
					return nil, newValidationError(field+".multiplier", "multiplier is not a number (line %d)", value.Line)
				}
				if err := value.Decode(&m.Multiplier); err != nil {
					return nil, newValidationError(field+".multiplier", "decode multiplier: %v", err)
				}
				hasMultiplier = true
			default:
				return nil, newValidationError(field+"."+key.Value, "unknown modifier field")
			}
		}
		if !hasMultiplier {
			return nil, newValidationError(field+".multiplier", "multiplier is missing")
		}
		out = append(out, m)
	}
	return out, nil
}

// encodedCategories keeps categories in scan order when marshaled
type encodedCategories struct {
	StrongPositive   []string `yaml:"strong_positive"`
	ModeratePositive []string `yaml:"moderate_positive"`
	WeakPositive     []string `yaml:"weak_positive"`
	WeakNegative     []string `yaml:"weak_negative"`
	ModerateNegative []string `yaml:"moderate_negative"`
	StrongNegative   []string `yaml:"strong_negative"`
}

type encodedDocument struct {
	Version    string            `yaml:"version"`
	Categories encodedCategories `yaml:"categories"`
	Modifiers  []Modifier        `yaml:"modifiers"`
	Negations  []string          `yaml:"negations"`
}

// Marshal encodes a lexicon as a YAML document that Parse accepts
func Marshal(l *Lexicon) ([]byte, error) {
	cats := l.Categories()
	doc := encodedDocument{
		Version: l.version,
		Categories: encodedCategories{
			StrongPositive:   cats[StrongPositive],
			ModeratePositive: cats[ModeratePositive],
			WeakPositive:     cats[WeakPositive],
			WeakNegative:     cats[WeakNegative],
			ModerateNegative: cats[ModerateNegative],
			StrongNegative:   cats[StrongNegative],
		},
		Modifiers: l.Modifiers(),
		Negations: l.Negations(),
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode lexicon: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode lexicon: %w", err)
	}
	return buf.Bytes(), nil
}
