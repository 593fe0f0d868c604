package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSchema is a completion.Schema loaded from a small YAML catalog file,
// standing in for the sqlite_schema introspection a real editor integration
// would run against a live connection.
type yamlSchema struct {
	Tables []struct {
		Name    string   `yaml:"name"`
		Columns []string `yaml:"columns"`
	} `yaml:"tables"`
}

func loadSchema(path string) (*yamlSchema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s yamlSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *yamlSchema) TableNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

func (s *yamlSchema) ColumnNames(table string) []string {
	if s == nil {
		return nil
	}
	for _, t := range s.Tables {
		if t.Name == table {
			return t.Columns
		}
	}
	return nil
}
