package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const errorDescribeDefaultsFormat = "encoding default tables: %w"

// DescribeDefaults renders the compiled-in tables as YAML for the defaults command.
// The output is informational; pathstamp never reads it back.
func DescribeDefaults() ([]byte, error) {
	encoded, encodeError := yaml.Marshal(DefaultConfiguration())
	if encodeError != nil {
		return nil, fmt.Errorf(errorDescribeDefaultsFormat, encodeError)
	}
	return encoded, nil
}
