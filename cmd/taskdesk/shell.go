package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ncobase/taskdesk/config"
	"github.com/ncobase/taskdesk/logging/logger"
	"github.com/ncobase/taskdesk/todo"
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  list                   refresh the current page
  next, prev, page N     move between pages
  filter KEY VALUE       set a filter field (title, assignee, status, priority, date, from, to)
  apply                  fetch with the current filter
  reset                  clear the filter
  show N                 show row N
  new                    open a blank form
  edit N                 open the form on row N
  set KEY VALUE          set a form field (title, date, priority, assignee, description, status)
  form                   show the open form
  submit                 create or update from the form
  cancel                 close the form
  revoke N, delete N     revoke or delete row N
  assignees              list assignable users
  help, quit`

// NewShellCommand creates the interactive shell command
func NewShellCommand(a *app) *cobra.Command {
	var manual bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit todos interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			desk, err := a.desk(manual)
			if err != nil {
				return err
			}
			a.cfg.Watch(func(c *config.Config) {
				if _, err := logger.New(c.LoggerConfig()); err != nil {
					logger.Warnf(context.Background(), "logger reload: %v", err)
				}
				logger.Infof(context.Background(), "configuration reloaded")
			}, func(err error) {
				logger.Warnf(context.Background(), "configuration reload: %v", err)
			})

			sh := newShell(desk, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return sh.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&manual, "manual", false, "fetch on apply instead of on every filter change")
	return cmd
}

type shell struct {
	desk   *todo.Desk
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newShell(desk *todo.Desk, in io.Reader, out, errOut io.Writer) *shell {
	return &shell{desk: desk, in: in, out: out, errOut: errOut}
}

var errQuit = errors.New("quit")

// Run shows page 1 and then reads commands until quit or end of input.
func (s *shell) Run(ctx context.Context) error {
	s.desk.List().Refresh(ctx)
	renderList(s.out, s.desk.List().Snapshot())

	sc := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, s.prompt())
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		args, err := splitArgs(sc.Text())
		if err != nil {
			s.fail(err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		err = s.exec(ctx, args[0], args[1:])
		if errors.Is(err, errQuit) {
			return nil
		}
		var notified errNotified
		if err != nil && !errors.As(err, &notified) {
			s.fail(err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func (s *shell) prompt() string {
	if f := s.desk.Form(); f.IsOpen() {
		return fmt.Sprintf("taskdesk [%s]> ", f.Mode())
	}
	return "taskdesk> "
}

func (s *shell) fail(err error) {
	_, _ = errorColor.Fprintf(s.errOut, "%s\n", describeError(err))
}

func (s *shell) exec(ctx context.Context, name string, args []string) error {
	list, form := s.desk.List(), s.desk.Form()

	switch strings.ToLower(name) {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit", "q":
		return errQuit
	case "list", "ls", "refresh":
		list.Refresh(ctx)
		s.showList()
	case "next", "n":
		if !list.Next(ctx) {
			return errors.New("already on the last page")
		}
		s.showList()
	case "prev", "previous", "p":
		if !list.Previous(ctx) {
			return errors.New("already on the first page")
		}
		s.showList()
	case "page":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		list.GoToPage(ctx, n)
		s.showList()
	case "filter":
		if len(args) == 0 {
			renderList(s.out, list.Snapshot())
			return nil
		}
		if err := list.SetFilter(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		if s.desk.ManualApply() {
			fmt.Fprintln(s.out, "Filter set, run apply to fetch")
			return nil
		}
		s.showList()
	case "apply":
		list.Apply(ctx)
		s.showList()
	case "reset":
		list.ResetFilter(ctx)
		s.showList()
	case "show":
		t, err := s.row(args)
		if err != nil {
			return err
		}
		renderTask(s.out, t)
	case "new", "add":
		form.OpenCreate()
		renderForm(s.out, form)
	case "edit":
		t, err := s.row(args)
		if err != nil {
			return err
		}
		if _, err := s.desk.Edit(ctx, t.ID); err != nil {
			return err
		}
		renderForm(s.out, form)
	case "set":
		if len(args) == 0 {
			return errors.New("usage: set KEY VALUE")
		}
		return form.Set(args[0], strings.Join(args[1:], " "))
	case "form":
		renderForm(s.out, form)
	case "submit", "save":
		if err := form.Submit(ctx); err != nil {
			return quiet(err)
		}
		s.showList()
	case "cancel", "close":
		form.Close()
	case "revoke":
		t, err := s.row(args)
		if err != nil {
			return err
		}
		if err := list.Revoke(ctx, t.ID); err != nil {
			return quiet(err)
		}
		s.showList()
	case "delete", "rm":
		t, err := s.row(args)
		if err != nil {
			return err
		}
		if err := list.Delete(ctx, t.ID); err != nil {
			return quiet(err)
		}
		s.showList()
	case "assignees", "users":
		users, err := s.desk.Assignees(ctx)
		if err != nil {
			return err
		}
		renderUsers(s.out, users)
	default:
		return fmt.Errorf("unknown command %q, try help", name)
	}
	return nil
}

func (s *shell) showList() {
	renderList(s.out, s.desk.List().Snapshot())
}

// row returns the task at the row number in args.
func (s *shell) row(args []string) (*structs.Task, error) {
	n, err := intArg(args)
	if err != nil {
		return nil, err
	}
	t, ok := s.desk.List().Task(n)
	if !ok {
		return nil, fmt.Errorf("no row %d on this page", n)
	}
	return t, nil
}

func intArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("a number is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[0])
	}
	return n, nil
}

// splitArgs splits a line on blanks; double or single quotes group words.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		quote   rune
		inToken bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
