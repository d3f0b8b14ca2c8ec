package main

import (
	"github.com/ncobase/taskdesk/todo/structs"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command
func NewListCommand(a *app) *cobra.Command {
	var page int
	filter := map[string]*string{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			desk, err := a.desk(true)
			if err != nil {
				return err
			}
			list := desk.List()
			for _, key := range structs.FilterKeys {
				if v := *filter[key]; v != "" {
					if err := list.SetFilter(cmd.Context(), key, v); err != nil {
						return err
					}
				}
			}
			list.GoToPage(cmd.Context(), page)

			s := list.Snapshot()
			if s.Failed != nil {
				return s.Failed
			}
			renderList(cmd.OutOrStdout(), s)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&page, "page", 1, "page number")
	filter[structs.FilterTitle] = flags.String(structs.FilterTitle, "", "title contains")
	filter[structs.FilterAssignee] = flags.String(structs.FilterAssignee, "", "assignee id")
	filter[structs.FilterStatus] = flags.String(structs.FilterStatus, "", "pending, in_progress, hold, completed or revoked")
	filter[structs.FilterPriority] = flags.String(structs.FilterPriority, "", "high, medium or low")
	filter[structs.FilterScheduledDate] = flags.String(structs.FilterScheduledDate, "", "scheduled on, YYYY-MM-DD")
	filter[structs.FilterStartDate] = flags.String(structs.FilterStartDate, "", "scheduled on or after, YYYY-MM-DD")
	filter[structs.FilterEndDate] = flags.String(structs.FilterEndDate, "", "scheduled on or before, YYYY-MM-DD")
	return cmd
}

// NewAssigneesCommand creates the assignees command
func NewAssigneesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assignees",
		Short: "List users todos can be assigned to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			users, err := a.repo.Assignees(cmd.Context())
			if err != nil {
				return err
			}
			renderUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
}
