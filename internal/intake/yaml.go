package intake

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/finclusion-dev/finclusion/internal/model"
)

// YAMLParser reads a YAML sequence of mappings, one mapping per record.
// Scalar values keep their literal text; null values are omitted.
type YAMLParser struct{}

// Format returns the parser name.
func (p *YAMLParser) Format() string { return "yaml" }

// Parse reads a YAML list of records.
func (p *YAMLParser) Parse(r io.Reader) ([]model.Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of records", seq.Line)
	}

	recs := make([]model.Record, 0, len(seq.Content))
	for _, item := range seq.Content {
		rec, err := yamlRecord(item)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func yamlRecord(n *yaml.Node) (model.Record, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: record must be a mapping", n.Line)
	}
	rec := make(model.Record, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind == yaml.AliasNode {
			val = val.Alias
		}
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: field %q must be a scalar", val.Line, key.Value)
		}
		if val.ShortTag() == "!!null" {
			continue
		}
		rec[key.Value] = val.Value
	}
	return rec, nil
}
