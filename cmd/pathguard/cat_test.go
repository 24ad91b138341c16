package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRunCatRefusalReturnsBareError(t *testing.T) {
	// A missing file is refused by the open pipeline. The full diagnostic is
	// printed before returning, so the error handed back to cobra must stay a
	// short one-liner that does not repeat it.
	err := runCat(catCmd, []string{"/definitely/does/not/exist.txt"})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, errFileRefused) {
		t.Errorf("error = %v, want errFileRefused", err)
	}
	if strings.Contains(err.Error(), "/definitely/does/not/exist.txt") {
		t.Errorf("error should not repeat the printed diagnostic, got: %v", err)
	}
}
