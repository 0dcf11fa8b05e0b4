package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultTables []byte

// Taxonomy bundles the static tables consumed by the normalizer and gap analyzer
type Taxonomy struct {
	Aliases      *AliasTable
	Importance   *ImportanceTable
	Dependencies *DependencyTable
	Categories   *CategoryTable
}

type tablesFile struct {
	Aliases      yaml.Node           `yaml:"aliases"`
	Importance   map[string]float64  `yaml:"importance"`
	Dependencies map[string][]string `yaml:"dependencies"`
	Categories   yaml.Node           `yaml:"categories"`
}

// Default returns the tables compiled into the binary
func Default() (*Taxonomy, error) {
	return Parse(defaultTables)
}

// Load reads tables from a YAML file
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML table content
func Parse(data []byte) (*Taxonomy, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	aliasPairs, err := orderedLists(&f.Aliases, "aliases")
	if err != nil {
		return nil, err
	}
	aliasEntries := make([]AliasEntry, len(aliasPairs))
	for i, p := range aliasPairs {
		aliasEntries[i] = AliasEntry{Canonical: p.key, Aliases: p.values}
	}
	aliases, err := NewAliasTable(aliasEntries)
	if err != nil {
		return nil, err
	}

	importance, err := NewImportanceTable(f.Importance)
	if err != nil {
		return nil, err
	}

	categoryPairs, err := orderedLists(&f.Categories, "categories")
	if err != nil {
		return nil, err
	}
	categoryEntries := make([]CategoryEntry, len(categoryPairs))
	for i, p := range categoryPairs {
		categoryEntries[i] = CategoryEntry{Name: p.key, Skills: p.values}
	}

	return &Taxonomy{
		Aliases:      aliases,
		Importance:   importance,
		Dependencies: NewDependencyTable(f.Dependencies),
		Categories:   NewCategoryTable(categoryEntries),
	}, nil
}

type keyedList struct {
	key    string
	values []string
}

// orderedLists decodes a mapping of string -> []string keeping document order
func orderedLists(node *yaml.Node, section string) ([]keyedList, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("taxonomy %s: expected a mapping at line %d", section, node.Line)
	}

	out := make([]keyedList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var values []string
		if err := valueNode.Decode(&values); err != nil {
			return nil, fmt.Errorf("taxonomy %s.%s: %w", section, keyNode.Value, err)
		}
		out = append(out, keyedList{key: keyNode.Value, values: values})
	}
	return out, nil
}
