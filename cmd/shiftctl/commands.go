package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"shiftpay/internal/app/service"
	"shiftpay/internal/domain"
	"shiftpay/internal/export"
	"shiftpay/internal/model"
	"shiftpay/internal/profileio"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage salary profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List salary profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profileService.ListProfiles()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(profiles) == 0 {
			fmt.Fprintln(out, "No profiles.")
			return nil
		}
		for _, p := range profiles {
			until := "open"
			if p.EndDate != nil {
				until = p.EndDate.Format(model.DateLayout)
			}
			fmt.Fprintf(out, "%-4d %-24s %s..%-10s base %s  evening +%s from %s  saturday +%s from %s\n",
				p.ID, p.Name, p.StartDate.Format(model.DateLayout), until,
				p.BaseHourlyRate.StringFixed(2), p.EveningExtra.StringFixed(2), p.EveningStartTime,
				p.WeekendExtra.StringFixed(2), p.WeekendExtraStartTime)
		}
		return nil
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a salary profile",
	Long: `Add a salary profile effective from --start.
Evening extra starts at 18:00 and the Saturday extra at 13:00 unless overridden.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := profileInputFromFlags(cmd)
		if err != nil {
			return err
		}
		p, err := profileService.AddProfile(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added profile #%d %q from %s\n", p.ID, p.Name, p.StartDate.Format(model.DateLayout))
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a salary profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := profileService.DeleteProfile(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile #%d\n", id)
		return nil
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Add profiles from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		inputs, err := profileio.Read(f)
		if err != nil {
			return err
		}
		for i, in := range inputs {
			p, err := profileService.AddProfile(in)
			if err != nil {
				return fmt.Errorf("profile %d: %w", i+1, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added profile #%d %q\n", p.ID, p.Name)
		}
		return nil
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: "Write all profiles to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := profileService.ListProfiles()
		if err != nil {
			return err
		}
		return writeFile(args[0], func(w io.Writer) error {
			return profileio.Write(w, profiles)
		})
	},
}

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "Manage shifts",
}

var shiftAddCmd = &cobra.Command{
	Use:     "add <date> <start> <end>",
	Short:   "Log a shift and store its pay breakdown",
	Example: "  shiftctl shift add 2024-01-02 14:00 19:00",
	Args:    cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, err := shiftService.AddShift(shiftInput(args))
		if err != nil {
			return err
		}
		printShift(cmd.OutOrStdout(), it)
		return nil
	},
}

var shiftEditCmd = &cobra.Command{
	Use:   "edit <id> <date> <start> <end>",
	Short: "Change a shift and recompute its pay",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		it, err := shiftService.UpdateShift(id, shiftInput(args[1:]))
		if err != nil {
			return err
		}
		printShift(cmd.OutOrStdout(), it)
		return nil
	},
}

var shiftDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a shift and its calculation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := shiftService.DeleteShift(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted shift #%d\n", id)
		return nil
	},
}

var shiftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shifts of a month or a date range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := rangeFromFlags(cmd)
		if err != nil {
			return err
		}
		items, err := shiftService.ListShifts(from, to)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, it := range items {
			printShift(out, it)
		}
		fmt.Fprintf(out, "%d shift(s)\n", len(items))
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <date> <start> <end>",
	Short: "Estimate pay for a shift without saving it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, profile, err := shiftService.PreviewShift(shiftInput(args))
		if err != nil {
			return err
		}
		b := e.Breakdown
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Profile: %s\n", profile.Name)
		fmt.Fprintf(out, "Hours:   %s (paid %s)\n", e.DurationHours, b.BaseHours.Round(2))
		fmt.Fprintf(out, "Evening: %s h  +%s\n", b.EveningHours.Round(2), b.EveningExtra.StringFixed(2))
		fmt.Fprintf(out, "Weekend: %s h  +%s\n", b.WeekendHours.Round(2), b.WeekendExtra.StringFixed(2))
		fmt.Fprintf(out, "Sunday:  %s h  +%s\n", b.SundayHours.Round(2), b.SundayExtra.StringFixed(2))
		fmt.Fprintf(out, "Total:   %s\n", e.Amount.StringFixed(2))
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Earnings statistics",
}

var statsMonthCmd = &cobra.Command{
	Use:   "month [YYYY-MM]",
	Short: "Summary of one month (current month by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		month := time.Now().In(cfg.Location)
		if len(args) == 1 {
			var err error
			if month, err = time.Parse("2006-01", args[0]); err != nil {
				return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
			}
		}
		s, err := shiftService.MonthlyStats(month.Year(), month.Month())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", month.Format("January 2006"))
		fmt.Fprintf(out, "Shifts:        %d\n", s.TotalShifts)
		for i := 1; i <= 7; i++ {
			wd := time.Weekday(i % 7)
			if n := s.DayBreakdown[wd]; n > 0 {
				fmt.Fprintf(out, "  %-11s %d\n", wd, n)
			}
		}
		fmt.Fprintf(out, "Hours:         %s\n", s.TotalHours.StringFixed(2))
		fmt.Fprintf(out, "Base:          %s\n", s.BaseEarnings.StringFixed(2))
		fmt.Fprintf(out, "Evening extra: %s\n", s.EveningExtra.StringFixed(2))
		fmt.Fprintf(out, "Weekend extra: %s\n", s.WeekendExtra.StringFixed(2))
		fmt.Fprintf(out, "Sunday extra:  %s\n", s.SundayExtra.StringFixed(2))
		fmt.Fprintf(out, "Total:         %s\n", s.TotalEarnings.StringFixed(2))
		return nil
	},
}

var statsYearCmd = &cobra.Command{
	Use:   "year [YYYY]",
	Short: "Per-month totals of one year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := time.Now().In(cfg.Location).Year()
		if len(args) == 1 {
			var err error
			if year, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}
		}
		totals, err := shiftService.YearlyTotals(year)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, t := range totals {
			fmt.Fprintf(out, "%-10s %s\n", time.Month(i+1), t.StringFixed(2))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <YYYY-MM> <file.xlsx>",
	Short: "Write a monthly report workbook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		month, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", args[0])
		}
		items, err := shiftService.ListShifts(month, month.AddDate(0, 1, -1))
		if err != nil {
			return err
		}
		if err := writeFile(args[1], func(w io.Writer) error {
			return export.WriteMonthlyReport(w, month, items)
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d shift(s) to %s\n", len(items), args[1])
		return nil
	},
}

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recompute stored calculations with the current profiles",
	Long: `Recompute the pay breakdown of every shift in the range using the profiles as they are now.
Editing a profile never changes stored calculations until this is run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := rangeFromFlags(cmd)
		if err != nil {
			return err
		}
		report, err := shiftService.Recalculate(from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %d shift(s)\n", report.Updated)
		if len(report.Skipped) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped (no profile): %v\n", report.Skipped)
		}
		return nil
	},
}

func init() {
	profileAddCmd.Flags().String("name", "", "profile name")
	profileAddCmd.Flags().String("start", "", "first day the profile applies (YYYY-MM-DD)")
	profileAddCmd.Flags().String("end", "", "last day the profile applies (YYYY-MM-DD)")
	profileAddCmd.Flags().String("base", "0", "base hourly rate")
	profileAddCmd.Flags().String("evening", "0", "evening extra per hour")
	profileAddCmd.Flags().String("evening-start", "", "evening extra start (HH:MM)")
	profileAddCmd.Flags().String("weekend", "0", "Saturday extra per hour")
	profileAddCmd.Flags().String("weekend-start", "", "Saturday extra start (HH:MM)")
	profileAddCmd.Flags().String("sunday", "0", "stored Sunday extra")
	_ = profileAddCmd.MarkFlagRequired("start")
	profileCmd.AddCommand(profileListCmd, profileAddCmd, profileDeleteCmd, profileImportCmd, profileExportCmd)

	for _, c := range []*cobra.Command{shiftListCmd, recalcCmd} {
		c.Flags().String("month", "", "month (YYYY-MM)")
		c.Flags().String("from", "", "first day (YYYY-MM-DD)")
		c.Flags().String("to", "", "last day (YYYY-MM-DD)")
	}
	shiftCmd.AddCommand(shiftAddCmd, shiftEditCmd, shiftDeleteCmd, shiftListCmd)

	statsCmd.AddCommand(statsMonthCmd, statsYearCmd)
}

func profileInputFromFlags(cmd *cobra.Command) (domain.ProfileInput, error) {
	var in domain.ProfileInput
	fl := cmd.Flags()
	var err error
	for name, dst := range map[string]*string{
		"name":          &in.Name,
		"start":         &in.StartDate,
		"end":           &in.EndDate,
		"evening-start": &in.EveningStartTime,
		"weekend-start": &in.WeekendExtraStartTime,
	} {
		if *dst, err = fl.GetString(name); err != nil {
			return in, err
		}
	}
	for name, dst := range map[string]*decimal.Decimal{
		"base":    &in.BaseHourlyRate,
		"evening": &in.EveningExtra,
		"weekend": &in.WeekendExtra,
		"sunday":  &in.SundayExtra,
	} {
		raw, err := fl.GetString(name)
		if err != nil {
			return in, err
		}
		if *dst, err = service.ParseRate(name, raw); err != nil {
			return in, err
		}
	}
	return in, nil
}

func shiftInput(args []string) domain.ShiftInput {
	return domain.ShiftInput{Date: args[0], StartTime: args[1], EndTime: args[2]}
}

// rangeFromFlags: --from/--to или --month, по умолчанию текущий месяц.
func rangeFromFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	monthStr, _ := cmd.Flags().GetString("month")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")

	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be given together")
		}
		from, err := model.ParseDate(fromStr)
		if err != nil {
			return from, from, err
		}
		to, err := model.ParseDate(toStr)
		if err != nil {
			return from, to, err
		}
		if to.Before(from) {
			return from, to, fmt.Errorf("--to is before --from")
		}
		return from, to, nil
	}

	month := time.Now().In(cfg.Location)
	month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	if monthStr != "" {
		var err error
		if month, err = time.Parse("2006-01", monthStr); err != nil {
			return month, month, fmt.Errorf("invalid month %q, expected YYYY-MM", monthStr)
		}
	}
	return month, month.AddDate(0, 1, -1), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printShift(out io.Writer, it model.ShiftWithCalculation) {
	fmt.Fprintf(out, "#%-4d %s %-9s %s-%s", it.ID, it.Date.Format(model.DateLayout), it.Date.Weekday(), it.StartTime, it.EndTime)
	if c := it.Calculation; c != nil {
		fmt.Fprintf(out, "  %sh  base %s  evening %s  weekend %s  sunday %s  total %s",
			c.DurationHours.Round(2), c.BasePay.StringFixed(2), c.EveningExtra.StringFixed(2),
			c.WeekendExtra.StringFixed(2), c.SundayExtra.StringFixed(2), c.TotalPay.StringFixed(2))
	}
	fmt.Fprintln(out)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
