package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/ui"
)

const timeLayout = "2006-01-02 15:04:05"

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func printUserTable(w io.Writer, u *model.User) {
	fmt.Fprintf(w, "%s          %d\n", ui.RenderAccent("ID:"), u.ID)
	fmt.Fprintf(w, "%s    %s\n", ui.RenderAccent("Username:"), u.Username)
	fmt.Fprintf(w, "%s  %s\n", ui.RenderAccent("First name:"), u.FirstName)
	fmt.Fprintf(w, "%s     %s\n", ui.RenderAccent("Surname:"), u.Surname)
	fmt.Fprintf(w, "%s  %s\n", ui.RenderAccent("Created at:"), formatTime(u.CreateTs))

	if len(u.Comments) == 0 {
		fmt.Fprintln(w, ui.RenderMuted("No comments"))
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.RenderAccent("Comments:"))
	for _, c := range u.Comments {
		fmt.Fprintf(w, "  [%s] #%d %s: %s\n", formatTime(c.Timestamp), c.ID, c.Title, c.Text)
	}
}

func printUserListTable(w io.Writer, users []*model.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tCREATED\tCOMMENTS")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%d\n",
			u.ID,
			u.Username,
			u.FirstName,
			u.Surname,
			formatTime(u.CreateTs),
			len(u.Comments),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d users\n", len(users))
}

func printUser(w io.Writer, u *model.User) error {
	if jsonOutput {
		return printJSON(w, u)
	}
	printUserTable(w, u)
	return nil
}
