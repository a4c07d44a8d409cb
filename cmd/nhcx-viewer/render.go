package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ehr/nhcx-viewer/internal/domain/bundles"
	"github.com/ehr/nhcx-viewer/internal/domain/display"
	"github.com/ehr/nhcx-viewer/internal/platform/db"
)

func writeList(w io.Writer, items []bundles.Info) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIRECTION\tSTAGE\tPROGRESS")
	for _, it := range items {
		c := it.Classification
		stage := display.NA
		if c.Stage.ID != "" {
			stage = c.Stage.ID + " " + c.Stage.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d%%\n",
			it.ID, it.Name, c.Category, c.Direction, stage, c.Stage.Progress)
	}
	return tw.Flush()
}

func writeView(w io.Writer, v *bundles.View) error {
	c := v.Classification
	fmt.Fprintf(w, "%s (%s)\n", c.Title, v.Name)
	fmt.Fprintf(w, "%s\n\n", c.Description)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Bundle\t%s\n", v.BundleID)
	fmt.Fprintf(tw, "Type\t%s\n", v.BundleType)
	fmt.Fprintf(tw, "Timestamp\t%s\n", v.Timestamp)
	fmt.Fprintf(tw, "Category\t%s / %s\n", c.Category, c.Direction)
	if c.Stage.ID != "" {
		fmt.Fprintf(tw, "Stage\t%s %s (%d%%)\n", c.Stage.ID, c.Stage.Name, c.Stage.Progress)
	}
	fmt.Fprintf(tw, "Resources\t%d\n", c.ResourceCount)
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.Benefits != nil {
		fmt.Fprintf(w, "\nPlan benefits: %d, total limit %s\n", v.Benefits.Count, display.AmountText(v.Benefits.TotalValue))
	}
	if v.Eligibility != nil {
		fmt.Fprintf(w, "\nEligible benefits: %d, total allowed %s\n", v.Eligibility.Count, display.AmountText(v.Eligibility.TotalValue))
	}
	if v.ClaimTotal != nil {
		fmt.Fprintf(w, "\nClaimed total: %s\n", display.AmountText(*v.ClaimTotal))
	}
	if s := v.Settlement; s != nil {
		fmt.Fprintf(w, "\nRequested %s, approved %s, difference %s\n",
			display.MoneyText(&s.Requested), display.MoneyText(&s.Approved), display.AmountText(s.Difference))
	}
	if len(v.Items) > 0 {
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w)
		fmt.Fprintln(tw, "ITEM\tSUBMITTED\tAPPROVED\tSTATUS\t")
		for _, it := range v.Items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", it.Sequence,
				display.AmountText(it.Submitted), display.AmountText(it.Approved), it.Status)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, r := range v.Resources {
		fmt.Fprintf(w, "\n%s %s\n", r.ResourceType, r.Title)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range r.Fields {
			fmt.Fprintf(tw, "  %s\t%s\n", f.Label, f.Value)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(v.Actions) > 0 {
		labels := make([]string, 0, len(v.Actions))
		for _, a := range v.Actions {
			labels = append(labels, a.Label)
		}
		fmt.Fprintf(w, "\nNext: %s\n", strings.Join(labels, " | "))
	}
	return nil
}

func writeMigrationStatus(w io.Writer, statuses []db.MigrationStatus) error {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
	return nil
}
