// SPDX-License-Identifier: MPL-2.0

package input

import (
	"github.com/invowk/shlit/pkg/shvalue"

	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(data []byte) (shvalue.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return shvalue.Value{}, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return shvalue.FromAny(doc)
}
