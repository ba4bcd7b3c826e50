package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/timelock/errors"
)

type recordingTester struct {
	failed bool
}

func (r *recordingTester) Helper() {}

func (r *recordingTester) Fatal(...interface{}) { r.failed = true }

func (r *recordingTester) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":             {value: nil},
		"nil error ptr":   {value: (*errors.Error)(nil)},
		"nil slice":       {value: []byte(nil)},
		"non nil error":   {value: errors.ErrNotFound, wantFail: true},
		"not nilable int": {value: 1, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recordingTester
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want fail %v, got %v", tc.wantFail, r.failed)
			}
		})
	}
}

func TestIsErr(t *testing.T) {
	var r recordingTester
	IsErr(&r, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "wrapped"))
	if r.failed {
		t.Fatal("wrapped error must match")
	}

	IsErr(&r, errors.ErrNotFound, fmt.Errorf("other"))
	if !r.failed {
		t.Fatal("unrelated error must not match")
	}
}

func TestPanicsAndEqual(t *testing.T) {
	var r recordingTester
	Panics(&r, func() { panic("boom") })
	Equal(&r, []int{1}, []int{1})
	if r.failed {
		t.Fatal("unexpected failure")
	}
	Equal(&r, 1, 2)
	if !r.failed {
		t.Fatal("want failure")
	}
}
