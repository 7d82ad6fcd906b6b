package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/Makepad-fr/menuadmin/internal/controller"
	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/ui"
)

func runItems(ctx context.Context, args []string, opt Options) error {
	if len(args) == 0 {
		return usage("items ls|add|edit|rm")
	}
	switch args[0] {
	case "ls", "list":
		if len(args) != 1 {
			return usage("items ls")
		}
		return itemsList(ctx, opt)
	case "add":
		return itemsAdd(ctx, args[1:], opt)
	case "edit":
		return itemsEdit(ctx, args[1:], opt)
	case "rm", "delete":
		if len(args) != 2 {
			return usage("items rm <id>")
		}
		tab := opt.menuItemTab()
		if err := tab.Load(ctx); err != nil {
			return err
		}
		if err := tab.Delete(ctx, args[1]); err != nil {
			return err
		}
		ui.OK("menu item deleted")
		return nil
	}
	return usage("unknown items subcommand: %s", args[0])
}

func itemsList(ctx context.Context, opt Options) error {
	cats, items := opt.categoryTab(), opt.menuItemTab()
	if err := controller.LoadAll(ctx, cats, items); err != nil {
		return err
	}
	ui.Panel(menuItemLines(items.Items(), cats.Items()))
	return nil
}

func menuItemLines(items []model.MenuItem, cats []model.Category) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d", t.Title.Render("Menu Items"), t.Accent.Render("Total"), len(items))
	if len(items) == 0 {
		return []string{header, "", t.Muted.Render("no menu items")}
	}
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{
			t.Muted.Render(m.ID),
			ui.Truncate(m.Name, 40),
			strconv.FormatFloat(m.Price, 'f', 2, 64),
			model.CategoryLabel(cats, m.CategoryID),
		})
	}
	return append([]string{header, ""}, ui.Table([]string{"ID", "NAME", "PRICE", "CATEGORY"}, rows)...)
}

type menuItemFlags struct {
	name, description, price, category, image *string
}

func (f menuItemFlags) apply(dst *form.MenuItemForm, set map[string]bool) {
	if set["name"] {
		dst.Name = *f.name
	}
	if set["description"] {
		dst.Description = *f.description
	}
	if set["price"] {
		dst.Price = *f.price
	}
	if set["category"] {
		dst.CategoryID = *f.category
	}
	if set["image"] {
		dst.Image = *f.image
	}
}

func menuItemFlagSet(name string) (*menuItemFlags, *flag.FlagSet) {
	fs := newFlagSet(name)
	return &menuItemFlags{
		name:        fs.String("name", "", "item name"),
		description: fs.String("description", "", "description"),
		price:       fs.String("price", "", "price, e.g. 6.50"),
		category:    fs.String("category", "", "category id"),
		image:       fs.String("image", "", "image URL or local file to upload"),
	}, fs
}

func itemsAdd(ctx context.Context, args []string, opt Options) error {
	mf, fs := menuItemFlagSet("items add")
	if err := fs.Parse(args); err != nil {
		return usage("items add: %v", err)
	}
	if fs.NArg() > 0 {
		return usage("items add: unexpected argument %q", fs.Arg(0))
	}
	var f form.MenuItemForm
	mf.apply(&f, visited(fs))
	if err := f.Validate(); err != nil {
		return usage("items add: %v", err)
	}
	m, err := opt.menuItemTab().Create(ctx, f)
	if err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("menu item %q created (%s)", m.Name, m.ID))
	return nil
}

func itemsEdit(ctx context.Context, args []string, opt Options) error {
	mf, fs := menuItemFlagSet("items edit")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}
	tab := opt.menuItemTab()
	if err := tab.Load(ctx); err != nil {
		return err
	}
	prior, ok := tab.Get(id)
	if !ok {
		return fmt.Errorf("menu item %s not found", id)
	}
	f := form.MenuItemFormFrom(prior)
	mf.apply(&f, visited(fs))
	m, err := tab.Update(ctx, id, f)
	if err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("menu item %q updated", m.Name))
	return nil
}
