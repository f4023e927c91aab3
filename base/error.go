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

package base

import (
	"github.com/gorse-io/mldata/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// Error kinds not covered by juju/errors. Invalid arguments use errors.NotValid
// and unsupported optional capabilities use errors.NotImplemented.
const (
	// NotSerializable is returned by every encoder of data sets and data sources.
	NotSerializable = errors.ConstError("not serializable")
	// UnknownAxis is returned when a named axis is missing from an axis layout.
	UnknownAxis = errors.ConstError("unknown axis")
	// InvalidOperation is returned when fitted statistics are used before fitting.
	InvalidOperation = errors.ConstError("invalid operation")
)

// NotSerializablef returns an error satisfying errors.Is(err, NotSerializable).
func NotSerializablef(format string, args ...any) error {
	return errors.Annotatef(NotSerializable, format, args...)
}

// UnknownAxisf returns an error satisfying errors.Is(err, UnknownAxis).
func UnknownAxisf(format string, args ...any) error {
	return errors.Annotatef(UnknownAxis, format, args...)
}

// InvalidOperationf returns an error satisfying errors.Is(err, InvalidOperation).
func InvalidOperationf(format string, args ...any) error {
	return errors.Annotatef(InvalidOperation, format, args...)
}

func Must(err error) {
	if err != nil {
		log.Logger().Fatal("unexpected error", zap.Error(err))
	}
}
