package explicit

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The YAML description of a System.
//
//	name: counter
//	size: 8
//	init:
//	  location: idle
//	  values: [0]
//	errors: [overflow]
//	edges:
//	  - label: inc
//	    from: idle
//	    to: idle
//	    guard: [0, 1, 2, 3, 4, 5, 6]
//	    add: 1
//
// A missing guard enables the edge for every value, and missing initial values start from every value.
// An edge updates the variable with at most one of assign, add (modulo size) and map.
type Model struct {
	Name   string      `yaml:"name"`
	Size   int         `yaml:"size"`
	Init   InitModel   `yaml:"init"`
	Errors []string    `yaml:"errors,omitempty"`
	Edges  []EdgeModel `yaml:"edges,omitempty"`
}

type InitModel struct {
	Location string `yaml:"location"`
	Values   []int  `yaml:"values,omitempty"`
}

type EdgeModel struct {
	Label string `yaml:"label,omitempty"`
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Guard []int  `yaml:"guard,omitempty"`

	Assign *int  `yaml:"assign,omitempty"`
	Add    *int  `yaml:"add,omitempty"`
	Map    []int `yaml:"map,omitempty"`
}

// Parse a System from its YAML description. Unknown fields are rejected.
func Parse(data []byte) (*System, error) {
	var m Model
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	return Build(m)
}

// Load a System from a YAML file
func Load(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("explicit: reading model: %w", err)
	}
	return Parse(data)
}
