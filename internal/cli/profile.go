package cli

import (
	"context"
	"os"
)

// ShowProfile prints the in-memory profile record.
func (a *App) ShowProfile(ctx context.Context) error {
	p := a.vm.Snapshot().Profile
	printlnFn("Username:", p.Username)
	printlnFn("Email:   ", p.Email)
	if p.Role != "" {
		printlnFn("Role:    ", p.Role)
	}
	return nil
}

// EditProfile is the modal flow: prompt for the editable fields, then save
// the full record. On failure the "modal" stays open, meaning the entered
// values are kept for another try.
func (a *App) EditProfile(ctx context.Context) error {
	a.vm.EditProfile()

	current := a.vm.Snapshot().Profile

	username, err := GetSimpleText(a.reader, "Username ["+current.Username+"]", os.Stdout)
	if err != nil {
		return err
	}
	if username == "" {
		username = current.Username
	}

	email, err := GetSimpleText(a.reader, "Email ["+current.Email+"]", os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		email = current.Email
	}

	a.vm.SetProfile(username, email)

	if err := a.vm.SaveProfile(ctx); err != nil {
		printlnFn(a.vm.Snapshot().Err)
		return err
	}

	printlnFn("Profile updated successfully")
	return nil
}

// Logout signals intent to end the session. There is no session system yet.
func (a *App) Logout(ctx context.Context) error {
	a.vm.Logout(ctx)
	printlnFn("Logged out (no active session)")
	return nil
}

// Status prints the observable view state, mostly for troubleshooting.
func (a *App) Status(ctx context.Context) error {
	s := a.vm.Snapshot()
	printlnFn("Mode:    ", string(a.getMode()))
	printlnFn("Selected:", orNone(s.FileName))
	printlnFn("Type:    ", orNone(string(s.InputType)))
	printlnFn("Loading: ", s.Loading)
	printlnFn("Error:   ", orNone(s.Err))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
