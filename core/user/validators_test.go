package user

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/edunova/colegio/core"
)

func Test_passwordPolicy(t *testing.T) {
	newUser := func(pwd string) NewUser {
		return NewUser{
			Name:            "Jose Bayona",
			Email:           "jose@colegio.com",
			Type:            TypeStudent,
			Password:        pwd,
			PasswordConfirm: pwd,
		}
	}

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "lol", wantTag: pwdMinLenTag},
		{name: "whitespace", pwd: "white space", wantTag: pwdNoSpaceTag},
		{name: "all numeric", pwd: "20240311", wantTag: pwdNotAllNumTag},
		{name: "similar to name", pwd: "JoseBayona12", wantTag: pwdAttrSimTag},
		{name: "similar to email", pwd: "jose@colegio.com1", wantTag: pwdAttrSimTag},
		{name: "ok", pwd: "unrelated-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate.Struct(newUser(tt.pwd))
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Validate.Struct() unexpected error = %v", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate.Struct() error = %v, want validator.ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Validate.Struct() = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}

func Test_userTypeValidation(t *testing.T) {
	nu := NewUser{
		Name:            "Jose Bayona",
		Email:           "jose@colegio.com",
		Type:            "principal",
		Password:        "unrelated-pass",
		PasswordConfirm: "unrelated-pass",
	}
	err := core.Validate.Struct(nu)
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		t.Fatalf("Validate.Struct() error = %v, want validator.ValidationErrors", err)
	}
	for _, vErr := range vErrs {
		if vErr.Tag() == userTypeTag {
			return
		}
	}
	t.Errorf("Validate.Struct() = %v, want tag %q", vErrs, userTypeTag)
}

func Test_MenuFor(t *testing.T) {
	tests := []struct {
		typ       string
		wantFirst string
		wantLen   int
	}{
		{typ: TypeStudent, wantFirst: "/publications", wantLen: 8},
		{typ: TypeTeacher, wantFirst: "/publications", wantLen: 6},
		{typ: TypeAdmin, wantFirst: "/publications", wantLen: 7},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			menu := MenuFor(User{Type: tt.typ})
			if len(menu) != tt.wantLen {
				t.Errorf("MenuFor() returned %d items, want %d", len(menu), tt.wantLen)
			}
			if menu[0].Path != tt.wantFirst {
				t.Errorf("MenuFor()[0].Path = %s, want %s", menu[0].Path, tt.wantFirst)
			}
		})
	}
}
