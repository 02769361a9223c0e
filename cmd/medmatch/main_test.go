package main

import (
	"errors"
	"testing"

	"medmatch/internal/services"
)

func TestExitCodeSeparatesFatalFromTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"configuration defect", services.Wrap(services.ErrConfiguration, "config", "validate", "bad threshold", nil), 2},
		{"invalid data", services.Wrap(services.ErrInvalidData, "record", "validate", "no id", nil), 2},
		{"missing model", services.Wrap(services.ErrModelNotFound, "classify", "resolve model", "train first", nil), 2},
		{"transient failure", services.Wrap(services.ErrTransient, "extract", "fetch source", "db busy", errors.New("locked")), 1},
		{"plain error", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode = %d, want %d", got, tc.want)
			}
		})
	}
}
