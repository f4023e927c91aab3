// Copyright 2026 mldata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tensor

import (
	"github.com/juju/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Composite is an ordered, named collection of tensors treated as one input or
// target, e.g. an image and its tags. All members have the same length.
type Composite struct {
	members *orderedmap.OrderedMap[string, *Tensor]
}

// Member is a named tensor used to build a Composite.
type Member struct {
	Name   string
	Tensor *Tensor
}

// NewComposite builds a composite in the order of members.
func NewComposite(members ...Member) (*Composite, error) {
	if len(members) == 0 {
		return nil, errors.NotValidf("empty composite")
	}
	c := &Composite{members: orderedmap.New[string, *Tensor]()}
	for _, m := range members {
		if m.Tensor == nil {
			return nil, errors.NotValidf("nil tensor %q", m.Name)
		}
		if _, exist := c.members.Get(m.Name); exist {
			return nil, errors.NotValidf("duplicated member %q", m.Name)
		}
		if m.Tensor.Len() != members[0].Tensor.Len() {
			return nil, errors.NotValidf("member %q has %d samples, expected %d",
				m.Name, m.Tensor.Len(), members[0].Tensor.Len())
		}
		c.members.Set(m.Name, m.Tensor)
	}
	return c, nil
}

// Len implements Data.
func (c *Composite) Len() int {
	return c.members.Oldest().Value.Len()
}

// Names returns member names in order.
func (c *Composite) Names() []string {
	names := make([]string, 0, c.members.Len())
	for pair := c.members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Get returns the member with the given name.
func (c *Composite) Get(name string) (*Tensor, bool) {
	return c.members.Get(name)
}

// Tensors implements Data.
func (c *Composite) Tensors() []*Tensor {
	tensors := make([]*Tensor, 0, c.members.Len())
	for pair := c.members.Oldest(); pair != nil; pair = pair.Next() {
		tensors = append(tensors, pair.Value)
	}
	return tensors
}

// EmptyClone implements Data.
func (c *Composite) EmptyClone() Data {
	clone := &Composite{members: orderedmap.New[string, *Tensor]()}
	for pair := c.members.Oldest(); pair != nil; pair = pair.Next() {
		clone.members.Set(pair.Key, pair.Value.Empty())
	}
	return clone
}

// Select gathers samples by index from every member.
func (c *Composite) Select(indices []int) *Composite {
	selected := &Composite{members: orderedmap.New[string, *Tensor]()}
	for pair := c.members.Oldest(); pair != nil; pair = pair.Next() {
		selected.members.Set(pair.Key, pair.Value.Select(indices))
	}
	return selected
}

// Named pairs every tensor of data with its member name. A single tensor is
// named "".
func Named(data Data) []Member {
	switch typed := data.(type) {
	case *Composite:
		members := make([]Member, 0, typed.members.Len())
		for pair := typed.members.Oldest(); pair != nil; pair = pair.Next() {
			members = append(members, Member{Name: pair.Key, Tensor: pair.Value})
		}
		return members
	case *Tensor:
		return []Member{{Tensor: typed}}
	default:
		return nil
	}
}

// Select gathers samples by index from either kind of Data.
func Select(data Data, indices []int) Data {
	switch typed := data.(type) {
	case *Composite:
		return typed.Select(indices)
	case *Tensor:
		return typed.Select(indices)
	default:
		panic(errors.NotSupportedf("data type %T", data))
	}
}
