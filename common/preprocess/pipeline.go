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

package preprocess

import (
	"github.com/gorse-io/mldata/base"
	"github.com/gorse-io/mldata/base/log"
	"github.com/gorse-io/mldata/common/tensor"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Transform is a stateful preprocessing step. Statistics are stored per tensor
// name so that the members of a composite never share them.
type Transform interface {
	// Fit computes statistics of t and stores them under name.
	Fit(name string, t *tensor.Tensor) error
	// Apply transforms t in place with the statistics stored under name.
	Apply(name string, t *tensor.Tensor) error
	// RequiresFit reports whether Apply needs statistics.
	RequiresFit() bool
	// Fitted reports whether statistics exist for name.
	Fitted(name string) bool
}

// Pipeline is an ordered sequence of transforms applied together.
type Pipeline struct {
	steps []Transform
}

// NewPipeline wraps a single transform or an ordered sequence of transforms.
func NewPipeline(steps ...Transform) (*Pipeline, error) {
	for i, step := range steps {
		if step == nil {
			return nil, errors.NotValidf("nil transform at step %d", i)
		}
	}
	return &Pipeline{steps: steps}, nil
}

func (p *Pipeline) Len() int {
	return len(p.steps)
}

func (p *Pipeline) Steps() []Transform {
	return p.steps
}

// RequiresFit reports whether any step needs statistics.
func (p *Pipeline) RequiresFit() bool {
	for _, step := range p.steps {
		if step.RequiresFit() {
			return true
		}
	}
	return false
}

// Fitted reports whether every step that needs statistics has them for name.
func (p *Pipeline) Fitted(name string) bool {
	for _, step := range p.steps {
		if step.RequiresFit() && !step.Fitted(name) {
			return false
		}
	}
	return true
}

// Fit fits each step on the output of the previous one, transforming t in
// place along the way.
func (p *Pipeline) Fit(name string, t *tensor.Tensor) error {
	for i, step := range p.steps {
		if err := step.Fit(name, t); err != nil {
			return errors.Annotatef(err, "fit step %d", i)
		}
		if err := step.Apply(name, t); err != nil {
			return errors.Annotatef(err, "apply step %d", i)
		}
	}
	log.Logger().Debug("fit preprocess pipeline",
		zap.String("tensor", name), zap.Int("steps", len(p.steps)), zap.Int("samples", t.Len()))
	return nil
}

// Apply transforms t in place with stored statistics. Statistics are never
// modified. Nothing is mutated when a step has not been fit.
func (p *Pipeline) Apply(name string, t *tensor.Tensor) error {
	for i, step := range p.steps {
		if step.RequiresFit() && !step.Fitted(name) {
			return base.InvalidOperationf("step %d of pipeline applied to %q before fit", i, name)
		}
	}
	for i, step := range p.steps {
		if err := step.Apply(name, t); err != nil {
			return errors.Annotatef(err, "apply step %d", i)
		}
	}
	return nil
}
