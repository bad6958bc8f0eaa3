// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings contains the helper types and functions which are
// shared by the configuration settings, such as a human-readable
// Duration, the Bounds of numeric settings, and their defaults.
package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is read from and written to the
// yaml and json files in the time.ParseDuration format, like 1h30m.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler, so durations may
// be decoded from yaml and json strings. The `d` receiver is updated
// only if data could be parsed.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns the string representation of `d`, or nil if `d` is
// nil, so it can fill the optional fields of a marshalled struct.
// Zero trailing units are dropped, so 2h0m0s becomes 2h.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// String formats d like time.Duration, without the zero trailing
// minutes and seconds.
func (d Duration) String() string {
	s := time.Duration(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// MarshalText implements encoding.TextMarshaler for json encoding.
func (d *Duration) MarshalText() ([]byte, error) {
	if s := d.Marshal(); s != nil {
		return []byte(*s), nil
	}
	return nil, errors.New("nil duration")
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
