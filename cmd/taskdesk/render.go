package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/ncobase/taskdesk/net/resp"
	"github.com/ncobase/taskdesk/todo/service"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/ncobase/taskdesk/todo/view"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
	headerColor  = color.New(color.Bold)
)

// notifier prints mutation outcomes.
type notifier struct {
	out    io.Writer
	errOut io.Writer
}

func newNotifier(out, errOut io.Writer) *notifier {
	return &notifier{out: out, errOut: errOut}
}

func (n *notifier) Success(_ context.Context, msg string) {
	_, _ = successColor.Fprintln(n.out, msg)
}

func (n *notifier) Error(_ context.Context, msg string, err error) {
	_, _ = errorColor.Fprintf(n.errOut, "%s: %s\n", msg, describeError(err))
}

// describeError flattens field errors into one line.
func describeError(err error) string {
	var exc *resp.Exception
	if errors.As(err, &exc) && len(exc.Errors) > 0 {
		return fieldErrors(exc.Errors)
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return "please fill all required fields: " + fieldErrors(verr.Fields)
	}
	return err.Error()
}

func fieldErrors(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, fields[k])
	}
	return strings.Join(parts, "; ")
}

// alreadyNotified reports whether the coordinator has shown err to the user.
func alreadyNotified(err error) bool {
	var verr *service.ValidationError
	return err != nil && !errors.As(err, &verr) &&
		!errors.Is(err, service.ErrSubmissionPending) && !errors.Is(err, view.ErrNoSession)
}

func renderList(w io.Writer, s view.Snapshot) {
	if s.Failed != nil {
		_, _ = errorColor.Fprintf(w, "Failed to load todos: %s\n", describeError(s.Failed))
	}
	if !s.Filter.IsEmpty() {
		fields := s.Filter.Fields()
		parts := make([]string, 0, len(fields))
		for _, k := range slices.Sorted(maps.Keys(fields)) {
			parts = append(parts, k+"="+fields[k])
		}
		_, _ = dimColor.Fprintf(w, "Filter: %s\n", strings.Join(parts, " "))
	}
	if s.Empty() {
		fmt.Fprintln(w, "No records found")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = headerColor.Fprintln(tw, "#\tTITLE\tDATE\tPRIORITY\tSTATUS\tASSIGNEE")
		for _, r := range s.Rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.Number, r.Task.Title, r.Task.ScheduledDate.Display(),
				r.Task.Priority.Label(), r.Status().Label(), assigneeOf(r.Task))
		}
		_ = tw.Flush()
	}
	fmt.Fprintf(w, "Page %d of %d\n", s.Page, s.DisplayPages)
}

func assigneeOf(t *structs.Task) string {
	if t.Assignee != "" {
		return t.Assignee
	}
	return t.AssigneeID.String()
}

func renderTask(w io.Writer, t *structs.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Date:\t%s\n", t.ScheduledDate.Display())
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority.Label())
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status.Label())
	fmt.Fprintf(tw, "Assignee:\t%s\n", assigneeOf(t))
	if t.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", t.Description)
	}
	_ = tw.Flush()
}

func renderUsers(w io.Writer, users []*structs.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No records found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = headerColor.Fprintln(tw, "ID\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.Username)
	}
	_ = tw.Flush()
}

func renderForm(w io.Writer, f *view.FormSession) {
	if !f.IsOpen() {
		fmt.Fprintln(w, "No form open")
		return
	}
	b := f.Values()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mode:\t%s\n", f.Mode())
	if f.Mode() == view.ModeEdit {
		fmt.Fprintf(tw, "Task:\t%s\n", f.TaskID())
	}
	fmt.Fprintf(tw, "%s:\t%s\n", view.FieldTitle, b.Title)
	fmt.Fprintf(tw, "%s:\t%s\n", view.FieldScheduledDate, b.ScheduledDate)
	fmt.Fprintf(tw, "%s:\t%s\n", view.FieldPriority, b.Priority)
	fmt.Fprintf(tw, "%s:\t%s\n", view.FieldAssignee, b.AssigneeID)
	fmt.Fprintf(tw, "%s:\t%s\n", view.FieldDescription, b.Description)
	if f.Mode() == view.ModeEdit {
		fmt.Fprintf(tw, "%s:\t%s\n", view.FieldStatus, b.Status)
	}
	_ = tw.Flush()
}
