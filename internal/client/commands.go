// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

const (
	defaultHistorySize = 10
	flagPrimary        = "--primary"
)

type command struct {
	usage   string
	help    string
	minArgs int
	run     func(ctx context.Context, args []string) error
}

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"login":        {usage: "<email>", help: "mail a sign-in link", minArgs: 1, run: a.login},
		"verify":       {usage: "[link]", help: "sign in with the link (read from the clipboard when omitted)", run: a.verify},
		"logout":       {help: "sign out", run: a.logout},
		"summary":      {help: "total saved, primary goal and goals", run: a.summary},
		"goals":        {help: "list goals", run: a.goals},
		"history":      {usage: "[n]", help: "latest records", run: a.history},
		"add":          {usage: "<amount> [goal-id] [note]", help: "record a deposit", minArgs: 1, run: a.deposit},
		"withdraw":     {usage: "<amount> [goal-id] [note]", help: "record a withdrawal", minArgs: 1, run: a.withdraw},
		"goal-add":     {usage: "<name> <target> [icon] [--primary]", help: "create a goal", minArgs: 2, run: a.addGoal},
		"goal-primary": {usage: "<goal-id>", help: "make a goal the primary one", minArgs: 1, run: a.makePrimary},
		"goal-rm":      {usage: "<goal-id>", help: "delete a goal", minArgs: 1, run: a.removeGoal},
		"edit":         {usage: "<record-id> [--amount A] [--goal ID|--no-goal] [--date D] [--note N|--no-note]", help: "change a record", minArgs: 2, run: a.editRecord},
		"goal-edit":    {usage: "<goal-id> [--name N] [--target T] [--icon I] [--primary]", help: "change a goal", minArgs: 2, run: a.editGoal},
		"rm":           {usage: "<record-id>", help: "delete a record", minArgs: 1, run: a.removeRecord},
		"icons":        {help: "list goal icons", run: a.icons},
	}
}

func (a *App) printUsage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, titleStyle.Render("Usage: savings-jar <command> [arguments]"))
	for _, name := range names {
		cmd := a.commands[name]
		fmt.Fprintf(a.out, "  %-32s %s\n", strings.TrimSpace(name+" "+cmd.usage), mutedStyle.Render(cmd.help))
	}
}

// ── Session ──

func (a *App) login(ctx context.Context, args []string) error {
	email := strings.TrimSpace(args[0])
	if err := a.services.Sessions.RequestSignIn(ctx, email); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sign-in link sent to %s. Open it, then run: verify <link>\n", email)
	return nil
}

func (a *App) verify(ctx context.Context, args []string) error {
	link := strings.Join(args, "")
	if link == "" {
		var err error
		if link, err = a.readLink(); err != nil {
			return fmt.Errorf("read link from clipboard: %w", err)
		}
		link = strings.TrimSpace(link)
	}

	_, result, carried := a.services.Sessions.HandleCallbackURL(ctx, link)
	if !carried {
		return ErrNoTokenInLink
	}
	if !result.OK() {
		a.services.Sessions.ClearAuthError()
		return fmt.Errorf("%w: %s", ErrVerificationFailed, result.Error)
	}

	who := "your account"
	if identity := a.services.Sessions.Identity(); identity != nil && identity.Email != "" {
		who = identity.Email
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", who)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	err := a.services.Sessions.SignOut(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return err
}

// ── Views ──

func (a *App) summary(ctx context.Context, _ []string) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	records := a.services.Records
	fmt.Fprintf(a.out, "%s %s\n", titleStyle.Render("Total saved:"), a.balance(records.Total(nil)))

	var lastDate *models.Date
	if last, ok := records.Last(); ok {
		lastDate = &last.Date
	}
	fmt.Fprintf(a.out, "%s %s\n", mutedStyle.Render("Last record:"), utils.DaysAgo(lastDate, a.now()))

	if primary, ok := a.services.Goals.Primary(); ok {
		saved := records.Total(&primary.ID)
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "%s %s\n", titleStyle.Render("Primary goal:"), primary.Name)
		fmt.Fprintf(a.out, "  %s of %s\n", a.money(saved), a.money(primary.Target))
		fmt.Fprintf(a.out, "  %s\n", progressBar(primary.Progress(saved)))
	}

	fmt.Fprintln(a.out)
	a.printGoals()
	return nil
}

func (a *App) goals(ctx context.Context, _ []string) error {
	if err := a.ready(ctx); err != nil {
		return err
	}
	a.printGoals()
	return nil
}

func (a *App) printGoals() {
	goals := a.services.Goals.Goals()
	if len(goals) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No goals yet, create one with: goal-add <name> <target>"))
		return
	}

	fmt.Fprintln(a.out, titleStyle.Render("Goals"))
	for _, goal := range goals {
		saved := a.services.Records.Total(&goal.ID)
		marker := " "
		if goal.IsPrimary {
			marker = primaryStyle.Render("*")
		}
		fmt.Fprintf(a.out, "%s %-14s %-24s %s / %s (%d%%)  %s\n",
			marker, goal.Icon.OrDefault(), goal.Name,
			a.money(saved), a.money(goal.Target), goal.Progress(saved),
			mutedStyle.Render(goal.ID))
	}
}

func (a *App) history(ctx context.Context, args []string) error {
	n := defaultHistorySize
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("%w, usage: history [n]", ErrUsage)
		}
		n = parsed
	}

	if err := a.ready(ctx); err != nil {
		return err
	}

	records := a.services.Records.Records()
	if len(records) == 0 {
		fmt.Fprintln(a.out, mutedStyle.Render("No records"))
		return nil
	}
	if len(records) > n {
		records = records[:n]
	}

	for _, record := range records {
		goalName := "-"
		if record.GoalID != nil {
			if goal, ok := a.services.Goals.Find(*record.GoalID); ok {
				goalName = goal.Name
			}
		}
		note := ""
		if record.Description != nil {
			note = *record.Description
		}
		fmt.Fprintf(a.out, "%s  %s  %-20s %-24s %s\n",
			record.Date, a.recordAmount(record), goalName, note, mutedStyle.Render(record.ID))
	}
	return nil
}

func (a *App) icons(context.Context, []string) error {
	for _, icon := range models.GoalIcons {
		suffix := ""
		if icon == models.DefaultGoalIcon {
			suffix = mutedStyle.Render(" (default)")
		}
		fmt.Fprintf(a.out, "%s%s\n", icon, suffix)
	}
	return nil
}

// ── Records ──

func (a *App) deposit(ctx context.Context, args []string) error {
	return a.addRecord(ctx, args, false)
}

func (a *App) withdraw(ctx context.Context, args []string) error {
	return a.addRecord(ctx, args, true)
}

// addRecord files the record under the goal named by args[1] when it is a
// known goal id; every other argument after the amount is the note.
func (a *App) addRecord(ctx context.Context, args []string, withdrawal bool) error {
	amount, err := utils.ParseAmount(args[0])
	if err != nil {
		return err
	}
	if withdrawal {
		amount = amount.Neg()
	}

	if err = a.ready(ctx); err != nil {
		return err
	}

	in := models.RecordInput{Amount: amount}
	rest := args[1:]
	if len(rest) > 0 {
		if goal, ok := a.services.Goals.Find(rest[0]); ok {
			in.GoalID = &goal.ID
			rest = rest[1:]
		}
	}
	if note := strings.TrimSpace(strings.Join(rest, " ")); note != "" {
		in.Description = &note
	}

	record, err := a.services.Records.Create(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Recorded %s on %s\n", a.recordAmount(*record), record.Date)
	fmt.Fprintf(a.out, "%s %s\n", titleStyle.Render("Total saved:"), a.money(a.services.Records.Total(nil)))
	return nil
}

// editRecord applies only the flags given. The amount keeps the record's
// direction: editing a withdrawal with --amount 50 stores -50.
func (a *App) editRecord(ctx context.Context, args []string) error {
	fs := newFlagSet("edit")
	amountRaw := fs.String("amount", "", "")
	goalID := fs.String("goal", "", "")
	noGoal := fs.Bool("no-goal", false, "")
	dateRaw := fs.String("date", "", "")
	note := fs.String("note", "", "")
	noNote := fs.Bool("no-note", false, "")
	set, err := parseFlags(fs, args[1:])
	if err != nil {
		return fmt.Errorf("%w, usage: edit %s", ErrUsage, a.commands["edit"].usage)
	}
	if (set["goal"] && *noGoal) || (set["note"] && *noNote) {
		return fmt.Errorf("%w: conflicting flags", ErrUsage)
	}

	var patch models.RecordPatch
	var amount decimal.Decimal
	if set["amount"] {
		if amount, err = utils.ParseAmount(*amountRaw); err != nil {
			return err
		}
	}
	if set["date"] {
		date, err := models.ParseDate(*dateRaw)
		if err != nil {
			return err
		}
		patch.Date = models.Some(date)
	}
	switch {
	case *noNote:
		patch.Description = models.Some[*string](nil)
	case set["note"]:
		if trimmed := strings.TrimSpace(*note); trimmed != "" {
			patch.Description = models.Some(&trimmed)
		} else {
			patch.Description = models.Some[*string](nil)
		}
	}
	if *noGoal {
		patch.GoalID = models.Some[*string](nil)
	}

	if err = a.ready(ctx); err != nil {
		return err
	}

	recordID := args[0]
	record, ok := findRecord(a.services.Records.Records(), recordID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRecord, recordID)
	}
	if set["goal"] {
		goal, ok := a.services.Goals.Find(*goalID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGoal, *goalID)
		}
		patch.GoalID = models.Some(&goal.ID)
	}
	if set["amount"] {
		if record.IsWithdrawal() {
			amount = amount.Neg()
		}
		patch.Amount = models.Some(amount)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to change", ErrUsage)
	}

	updated, err := a.services.Records.Update(ctx, record.ID, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Record updated: %s on %s\n", a.recordAmount(*updated), updated.Date)
	return nil
}

func (a *App) removeRecord(ctx context.Context, args []string) error {
	if err := a.ready(ctx); err != nil {
		return err
	}

	recordID := args[0]
	if _, ok := findRecord(a.services.Records.Records(), recordID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRecord, recordID)
	}
	if err := a.services.Records.Remove(ctx, recordID); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Record deleted")
	return nil
}

func findRecord(records models.Records, recordID string) (models.Record, bool) {
	for _, record := range records {
		if record.ID == recordID {
			return record, true
		}
	}
	return models.Record{}, false
}

// ── Goals ──

func (a *App) addGoal(ctx context.Context, args []string) error {
	primary := false
	positional := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == flagPrimary {
			primary = true
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) < 2 || len(positional) > 3 {
		return fmt.Errorf("%w, usage: goal-add <name> <target> [icon] [--primary]", ErrUsage)
	}

	name := strings.TrimSpace(positional[0])
	if err := utils.ValidateGoalName(name); err != nil {
		return err
	}
	target, err := utils.ParseAmount(positional[1])
	if err != nil {
		return err
	}

	in := models.GoalInput{Name: name, Target: target, IsPrimary: primary}
	if len(positional) == 3 {
		icon := models.GoalIcon(positional[2])
		if !icon.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownIcon, icon)
		}
		in.Icon = &icon
	}

	if err = a.ready(ctx); err != nil {
		return err
	}

	goal, err := a.services.Goals.Create(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Goal %q created %s\n", goal.Name, mutedStyle.Render(goal.ID))
	return nil
}

func (a *App) makePrimary(ctx context.Context, args []string) error {
	goal, err := a.knownGoal(ctx, args[0])
	if err != nil {
		return err
	}

	if _, err = a.services.Goals.Update(ctx, goal.ID, models.GoalPatch{IsPrimary: models.Some(true)}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%q is now the primary goal\n", goal.Name)
	return nil
}

// editGoal applies only the flags given. --primary clears the flag on every
// other goal first.
func (a *App) editGoal(ctx context.Context, args []string) error {
	fs := newFlagSet("goal-edit")
	name := fs.String("name", "", "")
	targetRaw := fs.String("target", "", "")
	iconRaw := fs.String("icon", "", "")
	primary := fs.Bool("primary", false, "")
	set, err := parseFlags(fs, args[1:])
	if err != nil {
		return fmt.Errorf("%w, usage: goal-edit %s", ErrUsage, a.commands["goal-edit"].usage)
	}

	var patch models.GoalPatch
	if set["name"] {
		trimmed := strings.TrimSpace(*name)
		if err = utils.ValidateGoalName(trimmed); err != nil {
			return err
		}
		patch.Name = models.Some(trimmed)
	}
	if set["target"] {
		target, err := utils.ParseAmount(*targetRaw)
		if err != nil {
			return err
		}
		patch.Target = models.Some(target)
	}
	if set["icon"] {
		icon := models.GoalIcon(*iconRaw)
		if !icon.Valid() {
			return fmt.Errorf("%w: %s", ErrUnknownIcon, icon)
		}
		patch.Icon = models.Some(icon)
	}
	if set["primary"] {
		patch.IsPrimary = models.Some(*primary)
	}
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to change", ErrUsage)
	}

	goal, err := a.knownGoal(ctx, args[0])
	if err != nil {
		return err
	}

	updated, err := a.services.Goals.Update(ctx, goal.ID, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Goal %q updated: %s\n", updated.Name, a.money(updated.Target))
	return nil
}

func (a *App) removeGoal(ctx context.Context, args []string) error {
	goal, err := a.knownGoal(ctx, args[0])
	if err != nil {
		return err
	}

	if err = a.services.Goals.Remove(ctx, goal.ID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Goal %q deleted\n", goal.Name)
	return nil
}

func (a *App) knownGoal(ctx context.Context, goalID string) (models.Goal, error) {
	if err := a.ready(ctx); err != nil {
		return models.Goal{}, err
	}
	goal, ok := a.services.Goals.Find(goalID)
	if !ok {
		return models.Goal{}, fmt.Errorf("%w: %s", ErrUnknownGoal, goalID)
	}
	return goal, nil
}

// ── Flags ──

// newFlagSet returns a silent flag set for one command's options; usage
// errors are reported by the command itself.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args and reports which flags were given. Positional
// leftovers are an error.
func parseFlags(fs *flag.FlagSet, args []string) (map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set, nil
}

// ── Formatting ──

func (a *App) money(amount decimal.Decimal) string {
	return "$" + utils.FormatCurrency(amount, utils.WithLocale(a.locale))
}

// recordAmount renders a record's amount signed and coloured by direction.
func (a *App) recordAmount(record models.Record) string {
	switch {
	case record.IsWithdrawal():
		return withdrawalStyle.Render("-" + a.money(record.Amount.Abs()))
	case record.IsDeposit():
		return depositStyle.Render("+" + a.money(record.Amount))
	default:
		return a.money(record.Amount)
	}
}

// balance renders a total with the cents set apart from the whole units.
func (a *App) balance(amount decimal.Decimal) string {
	parts := utils.FormatCurrencyParts(amount, utils.WithLocale(a.locale))
	return titleStyle.Render("$"+parts.IntPart) + mutedStyle.Render(parts.Separator+parts.DecPart)
}
