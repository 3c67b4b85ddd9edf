// SPDX-License-Identifier: EPL-2.0

package augment

import "encoding/json"

// AppliedTransform records what one transform did. Parameters is either
// the transform's Parameters or, for OneOf and SomeOf, a list of
// AppliedTransform for their children.
type AppliedTransform struct {
	Name       string
	Parameters any
}

// MarshalJSON encodes the entry as a [name, parameters] pair.
func (a AppliedTransform) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{a.Name, a.Parameters})
}

func (a *AppliedTransform) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &a.Name); err != nil {
		return err
	}

	return json.Unmarshal(pair[1], &a.Parameters)
}

// Applied lists the parameters drawn by the last Apply of t. A Compose
// reports one entry per child; any other transform reports itself.
func Applied(t Transform) []AppliedTransform {
	c, ok := t.(*Compose)
	if !ok {
		return []AppliedTransform{entry(t)}
	}

	out := make([]AppliedTransform, len(c.Transforms))
	for i, child := range c.Transforms {
		out[i] = entry(child)
	}

	return out
}

func entry(t Transform) AppliedTransform {
	var children []Transform

	switch v := t.(type) {
	case *OneOf:
		children = v.Transforms
	case *SomeOf:
		children = v.Transforms
	default:
		return AppliedTransform{Name: t.Name(), Parameters: t.Parameters()}
	}

	list := make([]AppliedTransform, len(children))
	for i, c := range children {
		list[i] = AppliedTransform{Name: c.Name(), Parameters: c.Parameters()}
	}

	return AppliedTransform{Name: t.Name(), Parameters: list}
}
