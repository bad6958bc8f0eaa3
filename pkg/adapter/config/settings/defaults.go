// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Default makes the nil (*t) pointer point to a new copy of def.
// If (*t) is not nil, it is kept intact.
func Default[T any](t **T, def T) {
	if *t != nil {
		return
	}
	*t = &def
}
