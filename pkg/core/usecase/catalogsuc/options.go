// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package catalogsuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the catalog use case.
type Option func(uc *UseCase) error

// WithMaxBooks option limits the number of books which may be created
// with an author in one CreateAuthor call.
func WithMaxBooks(n int) Option {
	return func(uc *UseCase) error {
		if n <= 0 {
			return fmt.Errorf("max books (%d) is not positive", n)
		}
		if uc.maxBooks != 0 {
			return errors.New("max books is already configured")
		}
		uc.maxBooks = n
		return nil
	}
}
