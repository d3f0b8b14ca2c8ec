package main

import (
	"context"
	"io"

	"github.com/ncobase/taskdesk/todo"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/todo/view"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewShowCommand creates the show command
func NewShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			t, err := a.repo.Get(cmd.Context(), structs.ID(args[0]))
			if err != nil {
				return err
			}
			renderTask(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

// formFlags binds one string flag per form field.
func formFlags(flags *pflag.FlagSet, withStatus bool) map[string]*string {
	values := map[string]*string{
		view.FieldTitle:         flags.StringP(view.FieldTitle, "t", "", "title"),
		view.FieldScheduledDate: flags.StringP(view.FieldScheduledDate, "d", "", "scheduled date, YYYY-MM-DD"),
		view.FieldPriority:      flags.StringP(view.FieldPriority, "p", "", "high, medium or low"),
		view.FieldAssignee:      flags.StringP(view.FieldAssignee, "a", "", "assignee id"),
		view.FieldDescription:   flags.String(view.FieldDescription, "", "description"),
	}
	if withStatus {
		values[view.FieldStatus] = flags.StringP(view.FieldStatus, "s", "", "pending, in_progress, hold, completed or revoked")
	}
	return values
}

// fillForm copies the flags the user set into the open form.
func fillForm(cmd *cobra.Command, form *view.FormSession, values map[string]*string) error {
	for key, v := range values {
		if !cmd.Flags().Changed(key) {
			continue
		}
		if err := form.Set(key, *v); err != nil {
			return err
		}
	}
	return nil
}

// showPage prints the page the desk re-fetched after a mutation.
func showPage(w io.Writer, desk *todo.Desk) {
	s := desk.List().Snapshot()
	if s.Failed == nil {
		renderList(w, s)
	}
}

// NewAddCommand creates the add command
func NewAddCommand(a *app) *cobra.Command {
	var values map[string]*string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			desk, err := a.desk(false)
			if err != nil {
				return err
			}
			form := desk.Form()
			form.OpenCreate()
			if err := fillForm(cmd, form, values); err != nil {
				return err
			}
			if err := form.Submit(cmd.Context()); err != nil {
				return quiet(err)
			}
			showPage(cmd.OutOrStdout(), desk)
			return nil
		},
	}

	values = formFlags(cmd.Flags(), false)
	return cmd
}

// NewEditCommand creates the edit command
func NewEditCommand(a *app) *cobra.Command {
	var values map[string]*string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update a todo, status included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			desk, err := a.desk(false)
			if err != nil {
				return err
			}
			if _, err := desk.Edit(cmd.Context(), structs.ID(args[0])); err != nil {
				return err
			}
			form := desk.Form()
			if err := fillForm(cmd, form, values); err != nil {
				return err
			}
			if err := form.Submit(cmd.Context()); err != nil {
				return quiet(err)
			}
			showPage(cmd.OutOrStdout(), desk)
			return nil
		},
	}

	values = formFlags(cmd.Flags(), true)
	return cmd
}

// NewRevokeCommand creates the revoke command
func NewRevokeCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "revoke [id]", "Revoke a todo",
		func(ctx context.Context, desk *todo.Desk, id structs.ID) error {
			return desk.List().Revoke(ctx, id)
		})
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(a *app) *cobra.Command {
	return newMutationCommand(a, "delete [id]", "Delete a todo",
		func(ctx context.Context, desk *todo.Desk, id structs.ID) error {
			return desk.List().Delete(ctx, id)
		})
}

func newMutationCommand(a *app, use, short string, mutate func(context.Context, *todo.Desk, structs.ID) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			desk, err := a.desk(false)
			if err != nil {
				return err
			}
			if err := mutate(cmd.Context(), desk, structs.ID(args[0])); err != nil {
				return quiet(err)
			}
			showPage(cmd.OutOrStdout(), desk)
			return nil
		},
	}
}

// errNotified is returned for failures the notifier already printed; the
// process still exits non-zero.
type errNotified struct{ err error }

func (e errNotified) Error() string { return e.err.Error() }
func (e errNotified) Unwrap() error { return e.err }

func quiet(err error) error {
	if alreadyNotified(err) {
		return errNotified{err: err}
	}
	return err
}
