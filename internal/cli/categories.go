package cli

import (
	"context"
	"fmt"

	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/ui"
)

func runCategories(ctx context.Context, args []string, opt Options) error {
	if len(args) == 0 {
		return usage("categories ls|add|edit|rm")
	}
	switch args[0] {
	case "ls", "list":
		return categoriesList(ctx, args[1:], opt)
	case "add":
		return categoriesAdd(ctx, args[1:], opt)
	case "edit":
		return categoriesEdit(ctx, args[1:], opt)
	case "rm", "delete":
		if len(args) != 2 {
			return usage("categories rm <id>")
		}
		tab := opt.categoryTab()
		if err := tab.Load(ctx); err != nil {
			return err
		}
		if err := tab.Delete(ctx, args[1]); err != nil {
			return err
		}
		ui.OK("category deleted")
		return nil
	}
	return usage("unknown categories subcommand: %s", args[0])
}

func categoriesList(ctx context.Context, args []string, opt Options) error {
	fs := newFlagSet("categories ls")
	q := fs.String("q", "", "search by name")
	limit := fs.Int("limit", 0, "page size")
	page := fs.Int("page", 0, "page number")
	strict := fs.Bool("strict", false, "exact name match")
	if err := fs.Parse(args); err != nil {
		return usage("categories ls: %v", err)
	}
	query := &model.CategoryQuery{Q: *q, Limit: *limit, Page: *page, Strict: *strict}
	cats, err := opt.Client.ListCategories(ctx, query)
	if err != nil {
		return err
	}
	ui.Panel(categoryLines(cats))
	return nil
}

func categoryLines(cats []model.Category) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d", t.Title.Render("Categories"), t.Accent.Render("Total"), len(cats))
	if len(cats) == 0 {
		return []string{header, "", t.Muted.Render("no categories")}
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{
			t.Muted.Render(c.ID),
			ui.Truncate(c.Name, 40),
			ui.Truncate(model.Deref(c.Description), 50),
		})
	}
	return append([]string{header, ""}, ui.Table([]string{"ID", "NAME", "DESCRIPTION"}, rows)...)
}

func categoriesAdd(ctx context.Context, args []string, opt Options) error {
	fs := newFlagSet("categories add")
	name := fs.String("name", "", "category name")
	description := fs.String("description", "", "description")
	image := fs.String("image", "", "image URL or local file to upload")
	if err := fs.Parse(args); err != nil {
		return usage("categories add: %v", err)
	}
	if fs.NArg() > 0 {
		return usage("categories add: unexpected argument %q", fs.Arg(0))
	}
	f := form.CategoryForm{Name: *name, Description: *description, Image: *image}
	if err := f.Validate(); err != nil {
		return usage("categories add: %v", err)
	}
	c, err := opt.categoryTab().Create(ctx, f)
	if err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("category %q created (%s)", c.Name, c.ID))
	return nil
}

func categoriesEdit(ctx context.Context, args []string, opt Options) error {
	fs := newFlagSet("categories edit")
	name := fs.String("name", "", "category name")
	description := fs.String("description", "", "description")
	image := fs.String("image", "", "image URL or local file to upload")
	id, err := parseWithID(fs, args)
	if err != nil {
		return err
	}

	tab := opt.categoryTab()
	if err := tab.Load(ctx); err != nil {
		return err
	}
	prior, ok := tab.Get(id)
	if !ok {
		return fmt.Errorf("category %s not found", id)
	}
	// Start from the current values; only flags given on the command line change.
	f := form.CategoryFormFrom(prior)
	set := visited(fs)
	if set["name"] {
		f.Name = *name
	}
	if set["description"] {
		f.Description = *description
	}
	if set["image"] {
		f.Image = *image
	}
	c, err := tab.Update(ctx, id, f)
	if err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("category %q updated", c.Name))
	return nil
}
