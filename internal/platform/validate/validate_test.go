package validate

import (
	"testing"

	perr "prodanalytics/internal/platform/errors"
	kit "prodanalytics/internal/platform/testkit"
)

type sample struct {
	Name    string `yaml:"name" validate:"required"`
	Channel string `json:"channel" validate:"required"`
	Workers int    `validate:"min=1,max=64"`
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(sample{Name: "q4", Channel: "social_media", Workers: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_Messages(t *testing.T) {
	cases := []struct {
		name string
		in   sample
		want string
	}{
		{"required uses yaml name", sample{Channel: "web", Workers: 1}, "name is a required field"},
		{"required uses json name", sample{Name: "x", Workers: 1}, "channel is a required field"},
		{"min", sample{Name: "x", Channel: "web", Workers: 0}, "Workers must be 1 or greater"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("code = %v, err = %v", perr.CodeOf(err), err)
			}
			kit.MustContain(t, err.Error(), tc.want)
		})
	}
}

func TestStruct_InvalidTarget(t *testing.T) {
	err := Struct(42)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}
