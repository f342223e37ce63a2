// SPDX-License-Identifier: Apache-2.0
package ui

import (
	"errors"

	"github.com/charmbracelet/huh"

	zerrors "github.com/Work-Fort/Zypher/pkg/errors"
)

// Confirm shows a yes/no confirmation dialog using huh
func Confirm(prompt, description string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Description(description).
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, formError(err)
	}

	return confirmed, nil
}

// formError maps an aborted form (ctrl+c, esc) to ECancelled
func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return zerrors.Wrap(zerrors.ECancelled, "aborted", err)
	}
	return zerrors.Wrap(zerrors.EInput, "prompt failed", err)
}
