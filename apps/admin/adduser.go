package main

import (
	"time"

	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/user"
)

// addUser updates or creates an account.
func (cli *commandLine) addUser(name, email, typ, pwd string) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	typ = core.CleanString(typ, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	usr.Name = name
	usr.Type = typ
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(usr)
	}
	return err
}
