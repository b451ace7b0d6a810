package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fitterm/internal/bootstrap"
	librarydomain "fitterm/internal/modules/library/domain"
	progressdomain "fitterm/internal/modules/progress/domain"
	"fitterm/internal/modules/progress/dto"
	statsdomain "fitterm/internal/modules/stats/domain"
	"fitterm/internal/platform/dates"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var server string
	var debug bool

	root := &cobra.Command{
		Use:           "fitterm",
		Short:         "Terminal client for the fitness tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(server, debug)
		},
	}
	root.PersistentFlags().StringVar(&server, "server", "", "backend base URL (overrides config and FITTERM_SERVER)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(newTUICmd(&server, &debug))
	root.AddCommand(newLoginCmd(&server, &debug))
	root.AddCommand(newRegisterCmd(&server, &debug))
	root.AddCommand(newLogoutCmd(&server, &debug))
	root.AddCommand(newWhoamiCmd(&server, &debug))
	root.AddCommand(newProgressCmd(&server, &debug))
	root.AddCommand(newLibraryCmd(&server, &debug))
	root.AddCommand(newStatsCmd(&server, &debug))
	return root
}

func loadContainer(server string, debug, fileLog bool) (*bootstrap.Container, error) {
	return bootstrap.New(bootstrap.Options{ServerFlag: server, Debug: debug, FileLog: fileLog})
}

func runTUI(server string, debug bool) error {
	c, err := loadContainer(server, debug, true)
	if err != nil {
		return err
	}
	defer c.Close()
	return c.RunTUI()
}

func newTUICmd(server *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen interface",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(*server, *debug)
		},
	}
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("stdin is not a terminal; use the TUI to sign in")
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "password: ")
	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func newLoginCmd(server *string, debug *bool) *cobra.Command {
	var email string
	login := &cobra.Command{
		Use:   "login --email <address>",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(email) == "" {
				return fmt.Errorf("--email is required")
			}
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			session, err := c.Auth.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", session.User.Name, session.User.Email)
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	return login
}

func newRegisterCmd(server *string, debug *bool) *cobra.Command {
	var name, email string
	register := &cobra.Command{
		Use:   "register --name <name> --email <address>",
		Short: "Create an account and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
				return fmt.Errorf("--name and --email are required")
			}
			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			session, err := c.Auth.Register(context.Background(), name, email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "account created: %s (%s)\n", session.User.Name, session.User.Email)
			return nil
		},
	}
	register.Flags().StringVar(&name, "name", "", "display name")
	register.Flags().StringVar(&email, "email", "", "account email")
	return register
}

func newLogoutCmd(server *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Auth.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(server *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			session, err := c.Auth.Current(context.Background())
			if err != nil {
				return err
			}
			u := session.User
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nemail: %s\n", u.Name, u.Email)
			if u.HeightCm > 0 && u.WeightKg > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile: %s, %d, %.0f cm, %.1f kg, %s\n",
					u.Sex, u.Age, u.HeightCm, u.WeightKg, u.ActivityLevel)
			}
			if exp := tokenExpiry(session.Token); !exp.IsZero() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "token expires: %s\n", exp.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

// tokenExpiry reads the unverified exp claim; the server owns validation.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}

func newProgressCmd(server *string, debug *bool) *cobra.Command {
	progress := &cobra.Command{Use: "progress", Short: "Weekly progress operations"}

	var weekDate string
	week := &cobra.Command{
		Use:   "week [--date YYYY-MM-DD]",
		Short: "Print the week containing the date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(weekDate)
			if err != nil {
				return err
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			week, err := c.Progress.Week(context.Background(), day)
			if err != nil {
				return err
			}
			printWeek(cmd, week)
			return nil
		},
	}
	week.Flags().StringVar(&weekDate, "date", "", "any day inside the week (default today)")

	var toggleDate, toggleType string
	var toggleIndex int
	toggle := &cobra.Command{
		Use:   "toggle --type <meal|exercise> --index <n> [--date YYYY-MM-DD]",
		Short: "Flip one item's completion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(toggleDate)
			if err != nil {
				return err
			}
			kind := progressdomain.ItemKind(toggleType)
			if kind != progressdomain.KindMeal && kind != progressdomain.KindExercise {
				return fmt.Errorf("--type must be meal or exercise")
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			ctx := context.Background()
			week, err := c.Progress.Week(ctx, day)
			if err != nil {
				return err
			}
			if err := c.Progress.ValidateToggle(week.Entries, day, kind, toggleIndex); err != nil {
				return err
			}
			entry, err := c.Progress.Toggle(ctx, dto.ToggleInput{Day: day, Kind: kind, Index: toggleIndex})
			if err != nil {
				return err
			}
			printEntry(cmd, entry)
			return nil
		},
	}
	toggle.Flags().StringVar(&toggleDate, "date", "", "target day (default today)")
	toggle.Flags().StringVar(&toggleType, "type", "", "item kind: meal|exercise")
	toggle.Flags().IntVar(&toggleIndex, "index", 0, "item position within the day")

	var noteDate, noteText string
	note := &cobra.Command{
		Use:   "note --text <text> [--date YYYY-MM-DD]",
		Short: "Set the day's note, keeping its items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(noteDate)
			if err != nil {
				return err
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			ctx := context.Background()
			week, err := c.Progress.Week(ctx, day)
			if err != nil {
				return err
			}
			input := dto.SaveDayInput{Day: day, Notes: noteText}
			if entry, ok := progressdomain.FindEntry(week.Entries, day); ok {
				input.Meals = entry.Meals
				input.Exercises = entry.Exercises
			}
			entry, err := c.Progress.SaveDay(ctx, input)
			if err != nil {
				return err
			}
			printEntry(cmd, entry)
			return nil
		},
	}
	note.Flags().StringVar(&noteDate, "date", "", "target day (default today)")
	note.Flags().StringVar(&noteText, "text", "", "note text (empty clears)")

	var saveDate string
	save := &cobra.Command{
		Use:   "save [--date YYYY-MM-DD]",
		Short: "Replace a day's entry from JSON on stdin",
		Long:  "Reads {\"meals\": [...], \"exercises\": [...], \"notes\": \"...\"} from stdin and replaces the day wholesale.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(saveDate)
			if err != nil {
				return err
			}
			var payload struct {
				Meals     []progressdomain.MealSlot     `json:"meals"`
				Exercises []progressdomain.ExerciseSlot `json:"exercises"`
				Notes     string                        `json:"notes"`
			}
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&payload); err != nil {
				return fmt.Errorf("decode day payload: %w", err)
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			entry, err := c.Progress.SaveDay(context.Background(), dto.SaveDayInput{
				Day:       day,
				Meals:     payload.Meals,
				Exercises: payload.Exercises,
				Notes:     payload.Notes,
			})
			if err != nil {
				return err
			}
			printEntry(cmd, entry)
			return nil
		},
	}
	save.Flags().StringVar(&saveDate, "date", "", "target day (default today)")

	progress.AddCommand(week, toggle, note, save)
	return progress
}

func printWeek(cmd *cobra.Command, week dto.WeekOutput) {
	for _, day := range week.Days {
		entry, ok := progressdomain.FindEntry(week.Entries, day)
		if !ok {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  -\n", dates.Key(day))
			continue
		}
		done, total := 0, 0
		for _, slot := range entry.Meals {
			total++
			if slot.Completed {
				done++
			}
		}
		for _, slot := range entry.Exercises {
			total++
			if slot.Completed {
				done++
			}
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %d/%d done\n", dates.Key(day), done, total)
	}
}

func printEntry(cmd *cobra.Command, entry progressdomain.Entry) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", entry.Key())
	for i, slot := range entry.Meals {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  meal %d  %s  %s  %s\n", i, mark(slot.Completed), slot.Time, refLabel(slot.Meal))
	}
	for i, slot := range entry.Exercises {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  exercise %d  %s  %s  %s\n", i, mark(slot.Completed), slot.Time, exerciseLabel(slot.Exercise))
	}
	if entry.Notes != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  notes: %s\n", entry.Notes)
	}
}

func mark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func refLabel(ref progressdomain.Ref[librarydomain.Meal]) string {
	if meal, ok := ref.Data(); ok {
		return meal.Name
	}
	return ref.ID()
}

func exerciseLabel(ref progressdomain.Ref[librarydomain.Exercise]) string {
	if ex, ok := ref.Data(); ok {
		return ex.Name
	}
	return ref.ID()
}

func newLibraryCmd(server *string, debug *bool) *cobra.Command {
	library := &cobra.Command{Use: "library", Short: "Reference list queries"}

	library.AddCommand(&cobra.Command{
		Use:   "meals",
		Short: "List the meal library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			meals, err := c.Library.Meals(context.Background())
			if err != nil {
				return err
			}
			for _, meal := range meals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f kcal\n", meal.ID, meal.Name, meal.Calories)
			}
			return nil
		},
	})

	library.AddCommand(&cobra.Command{
		Use:   "exercises",
		Short: "List the exercise library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			exercises, err := c.Library.Exercises(context.Background())
			if err != nil {
				return err
			}
			for _, ex := range exercises {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.0f kcal\t%d min\n", ex.ID, ex.Name, ex.CaloriesBurned, ex.DurationMin)
			}
			return nil
		},
	})

	library.AddCommand(&cobra.Command{
		Use:   "plans",
		Short: "List single-day plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			plans, err := c.Library.Plans(context.Background())
			if err != nil {
				return err
			}
			for _, plan := range plans {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", plan.ID, plan.Name)
			}
			return nil
		},
	})

	library.AddCommand(&cobra.Command{
		Use:   "weekly-plans",
		Short: "List weekly plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			plans, err := c.Library.WeeklyPlans(context.Background())
			if err != nil {
				return err
			}
			for _, plan := range plans {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d days\n", plan.ID, plan.Name, len(plan.Days))
			}
			return nil
		},
	})

	return library
}

func newStatsCmd(server *string, debug *bool) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Body metrics and day balance"}

	stats.AddCommand(&cobra.Command{
		Use:   "bmi",
		Short: "Body mass index from the stored profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			session, err := c.Auth.Current(context.Background())
			if err != nil {
				return err
			}
			u := session.User
			bmi, err := statsdomain.BMI(u.HeightCm, u.WeightKg)
			if err != nil {
				return fmt.Errorf("profile incomplete: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bmi: %.1f (%s)\n", bmi, statsdomain.BMICategory(bmi))
			return nil
		},
	})

	stats.AddCommand(&cobra.Command{
		Use:   "bmr",
		Short: "Resting rate and daily expenditure from the stored profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			session, err := c.Auth.Current(context.Background())
			if err != nil {
				return err
			}
			u := session.User
			bmr, err := statsdomain.BMR(u.Sex, u.Age, u.HeightCm, u.WeightKg)
			if err != nil {
				return fmt.Errorf("profile incomplete: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bmr: %.0f kcal/day\ntdee: %.0f kcal/day\n",
				bmr, statsdomain.TDEE(bmr, u.ActivityLevel))
			return nil
		},
	})

	var dayDate string
	day := &cobra.Command{
		Use:   "day [--date YYYY-MM-DD]",
		Short: "Calorie balance for one day's completed items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := parseDay(dayDate)
			if err != nil {
				return err
			}
			c, err := loadContainer(*server, *debug, false)
			if err != nil {
				return err
			}
			defer c.Close()
			ctx := context.Background()
			week, err := c.Progress.Week(ctx, target)
			if err != nil {
				return err
			}
			entry, ok := progressdomain.FindEntry(week.Entries, target)
			if !ok {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no entry for this day")
				return nil
			}
			meals, err := c.Library.Meals(ctx)
			if err != nil {
				return err
			}
			exercises, err := c.Library.Exercises(ctx)
			if err != nil {
				return err
			}
			mealTable := make(map[string]librarydomain.Meal, len(meals))
			for _, meal := range meals {
				mealTable[meal.ID] = meal
			}
			exTable := make(map[string]librarydomain.Exercise, len(exercises))
			for _, ex := range exercises {
				exTable[ex.ID] = ex
			}
			summary := statsdomain.Summarize(entry, mealTable, exTable)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "meals: %d/%d done\nexercises: %d/%d done\nconsumed: %.0f kcal\nburned: %.0f kcal\nnet: %+.0f kcal\n",
				summary.CompletedMeals, summary.TotalMeals,
				summary.CompletedExs, summary.TotalExs,
				summary.ConsumedKcal, summary.BurnedKcal, summary.NetKcal())
			return nil
		},
	}
	day.Flags().StringVar(&dayDate, "date", "", "target day (default today)")
	stats.AddCommand(day)

	return stats
}
