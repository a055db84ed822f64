package main

import (
	"Ginraidee/domain"
	"Ginraidee/pkg/expiry"
	"Ginraidee/pkg/pantry"
	"Ginraidee/pkg/prompt"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

var errUsage = errors.New("invalid arguments")

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func listCommand(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("list")
	status := fs.String("status", "all", "all, due-soon, past-due or fresh")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	pred, ok := expiry.ParseFilter(*status)
	if !ok {
		return fmt.Errorf("%w: unknown status %q", errUsage, *status)
	}
	if err := c.store.LoadAll(ctx); err != nil {
		return err
	}

	selected := map[string]bool{}
	for _, item := range c.store.Filter(c.now(), pred) {
		selected[item.ID] = true
	}
	var items []domain.InventoryItem
	for _, item := range c.store.SortedByExpiration() {
		if selected[item.ID] {
			items = append(items, item)
		}
	}
	c.printItems(items)
	return nil
}

func addCommand(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("add")
	var req domain.AddInventoryItemRequest
	fs.StringVar(&req.Name, "name", "", "item name")
	fs.StringVar(&req.Category, "category", "", "food category")
	fs.Float64Var(&req.Quantity, "qty", 1, "quantity")
	fs.StringVar(&req.Unit, "unit", "pcs", "unit")
	fs.StringVar(&req.ExpirationDate, "date", "", "expiration date, YYYY-MM-DD")
	fs.StringVar(&req.Emoji, "emoji", "", "emoji shown with the item")
	fs.StringVar(&req.BackgroundColor, "color", "", "background colour")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	item, err := c.store.Add(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.lang.Pick("เพิ่มรายการแล้ว", "Added"))
	c.printItems([]domain.InventoryItem{item})
	return nil
}

func updateCommand(ctx context.Context, c *cli, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("%w: update <id> [flags]", errUsage)
	}
	id := args[0]

	fs := newFlagSet("update")
	name := fs.String("name", "", "item name")
	category := fs.String("category", "", "food category")
	qty := fs.Float64("qty", 0, "quantity")
	unit := fs.String("unit", "", "unit")
	date := fs.String("date", "", "expiration date, YYYY-MM-DD")
	emoji := fs.String("emoji", "", "emoji")
	color := fs.String("color", "", "background colour")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var patch domain.UpdateInventoryItemRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "category":
			patch.Category = category
		case "qty":
			patch.Quantity = qty
		case "unit":
			patch.Unit = unit
		case "date":
			patch.ExpirationDate = date
		case "emoji":
			patch.Emoji = emoji
		case "color":
			patch.BackgroundColor = color
		}
	})
	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", errUsage)
	}

	item, err := c.store.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, c.lang.Pick("แก้ไขรายการแล้ว", "Updated"))
	c.printItems([]domain.InventoryItem{item})
	return nil
}

func removeCommand(ctx context.Context, c *cli, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: rm <id>...", errUsage)
	}
	removed, err := c.store.RemoveMany(ctx, args)
	for _, id := range removed {
		fmt.Fprintf(c.out, "%s %s\n", c.lang.Pick("ลบแล้ว", "removed"), id)
	}

	var bulk *pantry.BulkDeleteError
	if errors.As(err, &bulk) {
		for _, id := range bulk.FailedIDs() {
			fmt.Fprintf(c.out, "%s %s: %s\n", c.lang.Pick("ลบไม่สำเร็จ", "failed"), id, describe(bulk.Failed[id], c.lang))
		}
	}
	return err
}

func expiringCommand(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("expiring")
	days := fs.Int("days", expiry.DueSoonDays, "window in days")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := c.store.LoadAll(ctx); err != nil {
		return err
	}
	items := prompt.ExpiringWithin(c.store.Items(), c.now(), *days)
	if len(items) == 0 {
		fmt.Fprintln(c.out, prompt.NoExpiringMessage(c.lang))
		return nil
	}
	c.printItems(items)
	return nil
}

func recipeCommand(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("recipe")
	craving := fs.String("craving", "", "what you feel like eating")
	ids := fs.String("items", "", "comma separated item ids to cook with")
	all := fs.Bool("all", false, "cook with the whole inventory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	var items []domain.InventoryItem
	if *all || *ids != "" {
		if err := c.store.LoadAll(ctx); err != nil {
			return err
		}
	}
	switch {
	case *all:
		items = c.store.Items()
	case *ids != "":
		for _, id := range strings.Split(*ids, ",") {
			item, ok := c.store.Get(strings.TrimSpace(id))
			if !ok {
				return fmt.Errorf("item %s: %w", id, domain.ErrInventoryItemNotFound)
			}
			items = append(items, item)
		}
	}

	req, err := c.builder.Build(*craving, items, c.lang)
	if err != nil {
		return err
	}
	res, applied := c.board.Request(ctx, c.orchestrator, req)
	if !applied {
		c.logger.Debug("recipe result superseded")
		return nil
	}
	c.printRecipe(res)
	return nil
}

func suggestCommand(ctx context.Context, c *cli, args []string) error {
	if err := c.store.LoadAll(ctx); err != nil {
		return err
	}
	res := c.orchestrator.Suggest(ctx, c.store.Items(), c.now(), c.lang)
	if res.Message != "" {
		fmt.Fprintln(c.out, res.Message)
	}
	if len(res.ExpiringItems) > 0 {
		c.printItems(res.ExpiringItems)
	}
	if res.Suggestion != nil {
		fmt.Fprintln(c.out)
		c.printRecipe(*res.Suggestion)
	}
	return nil
}

func loginCommand(ctx context.Context, c *cli, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	register := fs.Bool("register", false, "create the account first")
	name := fs.String("name", "", "display name when registering")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: -email and -password are required", errUsage)
	}

	var (
		res domain.AuthResponse
		err error
	)
	if *register {
		res, err = c.auth.Register(ctx, domain.RegisterRequest{
			Email:    *email,
			Password: *password,
			Name:     firstNonEmpty(*name, *email),
			Language: string(c.lang),
		})
	} else {
		res, err = c.auth.Login(ctx, domain.LoginRequest{Email: *email, Password: *password})
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, res.Token)
	return nil
}

func (c *cli) printItems(items []domain.InventoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(c.out, c.lang.Pick("ไม่มีรายการ", "No items"))
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tEXPIRES\tSTATUS")
	for _, item := range items {
		_, text := expiry.Classify(item.ExpirationDate.Time, c.now(), c.lang)
		fmt.Fprintf(w, "%s\t%s %s\t%s %s\t%s\t%s\n",
			item.ID,
			item.Emoji, item.Name,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64), unitLabel(item.Unit, c.lang),
			item.ExpirationDate,
			text,
		)
	}
	w.Flush()
}

func (c *cli) printRecipe(res domain.RecipeResult) {
	fmt.Fprintln(c.out, res.RecipeText)
	if res.Source == domain.RecipeSourceFallback {
		fmt.Fprintln(c.out, c.lang.Pick("(สูตรสำรอง)", "(fallback recipe)"))
	}
}

func unitLabel(unit domain.Unit, lang domain.Language) string {
	info, ok := domain.LookupUnit(string(unit))
	if !ok {
		return string(unit)
	}
	return info.Label(lang)
}
