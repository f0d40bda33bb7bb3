package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/h0rv/pmboard/internal/config"
	"github.com/h0rv/pmboard/internal/derive"
	"github.com/h0rv/pmboard/internal/domain"
	"github.com/h0rv/pmboard/internal/gql"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Print the project list and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx, cancel := signalContext()
			defer cancel()

			projects, err := e.gateway.Projects(ctx, gql.NetworkOnly)
			if err != nil {
				return fmt.Errorf("%s", gql.UserMessage(err))
			}
			writeProjects(cmd.OutOrStdout(), projects, domain.DateOf(time.Now()))
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print one project with its tasks and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx, cancel := signalContext()
			defer cancel()

			p, err := e.gateway.ProjectDetail(ctx, args[0], gql.NetworkOnly)
			if err != nil {
				return fmt.Errorf("%s", gql.UserMessage(err))
			}
			writeProject(cmd.OutOrStdout(), p, domain.DateOf(time.Now()))
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			path := configFlag
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteFile(path, cfg, forceFlag); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing file")

	showCfg := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.Options{File: configFlag, Flags: cmd.Flags()})
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCfg)
	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// writeProjects prints one row per project with its derived progress and
// due-date urgency.
func writeProjects(w io.Writer, projects []domain.Project, today domain.Date) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects yet.")
		return
	}

	t := newTable("ID", "NAME", "STATUS", "PROGRESS", "DUE")
	for _, p := range projects {
		progress := derive.ProjectProgress(p)
		t.Row(
			p.ID,
			p.Name,
			p.Status.Label(),
			fmt.Sprintf("%d/%d (%d%%)", progress.Done, progress.Total, progress.Percent),
			dueText(p.DueDate, derive.ProjectDueUrgency(p, today)),
		)
	}
	fmt.Fprintln(w, t.String())
}

// writeProject prints a project header followed by its tasks and comment
// counts.
func writeProject(w io.Writer, p domain.Project, today domain.Date) {
	progress := derive.ProjectProgress(p)
	fmt.Fprintf(w, "%s [%s] %d/%d tasks done (%d%%)\n", p.Name, p.Status.Label(), progress.Done, progress.Total, progress.Percent)
	if due := dueText(p.DueDate, derive.ProjectDueUrgency(p, today)); due != "" {
		fmt.Fprintf(w, "Due: %s\n", due)
	}
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	fmt.Fprintln(w)

	if len(p.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}
	t := newTable("ID", "TITLE", "STATUS", "ASSIGNEE", "DUE", "COMMENTS")
	for _, task := range p.Tasks {
		t.Row(
			task.ID,
			task.Title,
			task.Status.Label(),
			task.AssigneeEmail,
			dueText(task.DueDate, derive.DueUrgency(task.DueDate, task.Status, today)),
			strconv.Itoa(len(task.Comments)),
		)
	}
	fmt.Fprintln(w, t.String())
}

func dueText(due *domain.Date, urgency derive.Urgency) string {
	if due == nil {
		return ""
	}
	switch urgency {
	case derive.UrgencyOverdue, derive.UrgencySoon:
		return due.String() + " (" + strings.ToLower(string(urgency)) + ")"
	}
	return due.String()
}
