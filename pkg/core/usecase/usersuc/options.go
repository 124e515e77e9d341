// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the users use case.
type Option func(uc *UseCase) error

// WithHashIterations option configures a users UseCase instance in
// order to run as many PBKDF2 iterations during the password hashing
// operations. This option may be passed to the New() function.
// The SCRAM mechanism rejects values below 4096.
func WithHashIterations(iters int) Option {
	return func(uc *UseCase) error {
		if iters < 4096 {
			return fmt.Errorf("iters (%d) is less than 4096", iters)
		}
		if uc.hashIters != 0 {
			return errors.New("iterations count is already configured")
		}
		uc.hashIters = iters
		return nil
	}
}
