package main

import (
	"bytes"
	"testing"

	"github.com/edunova/colegio/core/user"
	"github.com/edunova/colegio/storage/kvstore"
	testutil "github.com/edunova/colegio/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	db := testutil.NewDB(t)
	usrRepo = kvstore.NewUserRepo(db)

	return &commandLine{
		db:      db,
		usrRepo: usrRepo,
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "email but no name", args: []string{"adduser", "-email", "dir@colegio.com"}, wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-email", "dir@colegio.com", "-name", "Directora"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-email", "dir@colegio.com", "-name", "Directora"}, pwd: "s3cr3t-pass"},
		{name: "update existing", args: []string{"adduser", "-email", "dir@colegio.com", "-name", "Directora G.", "-type", "teacher"}, pwd: "0th3r-pass"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				usr, err := usrRepo.GetUserByEmail("dir@colegio.com")
				if err != nil {
					t.Fatalf("GetUserByEmail() failed: %v", err)
				}
				if err = usr.CheckPassword(tt.pwd); err != nil {
					t.Error("failed to set password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// the second run updated in place
	users, err := usrRepo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed: %v", err)
	}
	if len(users) != 4 { // 3 seeded + 1 created
		t.Errorf("got %d users, want 4", len(users))
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr, err := usrRepo.GetUserByEmail("alumno@colegio.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() failed: %v", err)
	}

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "alumno@colegio.com"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@colegio.com"}, pwd: "lol-pass", wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", "alumno@colegio.com"}, pwd: "n3w-pass"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshed, err := usrRepo.GetUserByID(usr.ID)
				if err != nil {
					t.Fatalf("GetUserByID() failed: %v", err)
				}
				if bytes.Equal(refreshed.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_resetData(t *testing.T) {
	cli := setup(t)

	if err := usrRepo.DeleteUsersByID("1", "2", "3"); err != nil {
		t.Fatalf("DeleteUsersByID() failed: %v", err)
	}

	if err := cli.run([]string{"admin", "resetdata"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	users, err := usrRepo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers() failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("got %d users, want 3", len(users))
	}
}
