package pass

import (
	"errors"
	"testing"
)

func TestHashCompare(t *testing.T) {
	h, err := Hash("hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if h == "hunter2" {
		t.Fatal("password stored as is")
	}
	if err := Compare(h, "hunter2"); err != nil {
		t.Errorf("correct password: %v", err)
	}
	if err := Compare(h, "hunter3"); !errors.Is(err, ErrMismatch) {
		t.Errorf("wrong password err = %v, want ErrMismatch", err)
	}
}
