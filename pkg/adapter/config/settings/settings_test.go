// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/txscope/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleDuration_Marshal() {
	for _, d := range []time.Duration{
		0, 90 * time.Minute, 2 * time.Hour, 1500 * time.Millisecond,
	} {
		sd := settings.Duration(d)
		fmt.Println(*sd.Marshal())
	}
	// Output:
	// 0s
	// 1h30m
	// 2h
	// 1.5s
}

func TestDurationJSON(t *testing.T) {
	in := struct {
		Slow *settings.Duration `json:"slow"`
	}{}
	require.NoError(t, json.Unmarshal([]byte(`{"slow":"250ms"}`), &in))
	require.NotNil(t, in.Slow)
	assert.Equal(t, settings.Duration(250*time.Millisecond), *in.Slow)
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"slow":"250ms"}`, string(b))
}

func TestBoundsClamp(t *testing.T) {
	minb, maxb := 1, 10
	b := settings.Bounds[int]{Min: &minb, Max: &maxb}
	v := new(int)
	*v = 20
	err := b.Clamp(&v)
	require.NotNil(t, err)
	assert.False(t, err.LessThanMin)
	assert.Equal(t, 20, err.Value)
	assert.Equal(t, "value (20) is greater than max (10)", err.Error())
	assert.Equal(t, 10, *v, "value must be clamped")

	*v = 0
	err = b.Clamp(&v)
	require.NotNil(t, err)
	assert.True(t, err.LessThanMin)
	assert.Equal(t, 1, *v)

	var missing *int
	assert.Nil(t, b.Clamp(&missing))
	inverted := settings.Bounds[int]{Min: &maxb, Max: &minb}
	assert.True(t, inverted.Clamp(&v).InvalidRange)
	assert.Nil(t, settings.Bounds[int]{}.Clamp(&v), "no bounds, no error")
}

func TestDurationBounds(t *testing.T) {
	minb := settings.Duration(time.Second)
	d := new(settings.Duration)
	*d = settings.Duration(time.Millisecond)
	err := settings.Bounds[settings.Duration]{Min: &minb}.Clamp(&d)
	require.NotNil(t, err)
	assert.Equal(t, "value (1ms) is less than min (1s)", err.Error())
	assert.Equal(t, minb, *d)
}

func TestDefault(t *testing.T) {
	var b *bool
	settings.Default(&b, true)
	require.NotNil(t, b)
	assert.True(t, *b)
	*b = false
	settings.Default(&b, true)
	assert.False(t, *b, "non-nil pointers must be kept")
}
