package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Makepad-fr/menuadmin/internal/api"
	"github.com/Makepad-fr/menuadmin/internal/controller"
	"github.com/Makepad-fr/menuadmin/internal/form"
	"github.com/Makepad-fr/menuadmin/internal/model"
	"github.com/Makepad-fr/menuadmin/internal/store/jsonstore"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"go.uber.org/zap"
)

func snapshotPath(args []string, required bool) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case len(args) == 0 && !required:
		return jsonstore.DefaultPath()
	}
	if required {
		return "", usage("import <file>")
	}
	return "", usage("export [file]")
}

func doExport(ctx context.Context, args []string, opt Options) error {
	path, err := snapshotPath(args, false)
	if err != nil {
		return err
	}
	cats, items := opt.categoryTab(), opt.menuItemTab()
	if err := controller.LoadAll(ctx, cats, items); err != nil {
		return err
	}
	s := jsonstore.Snapshot{
		ExportedAt: time.Now().UTC(),
		Source:     opt.Client.BaseURL(),
		Categories: cats.Items(),
		MenuItems:  items.Items(),
	}
	if err := jsonstore.Save(path, s); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	ui.OK(fmt.Sprintf("exported %d categories and %d menu items to %s", len(s.Categories), len(s.MenuItems), path))
	return nil
}

type importStats struct {
	categoriesCreated, categoriesSkipped int
	itemsCreated, itemsSkipped           int
}

// doImport creates the snapshot's categories that are missing by name,
// then its menu items with category ids remapped to the live ids.
func doImport(ctx context.Context, args []string, opt Options) error {
	path, err := snapshotPath(args, true)
	if err != nil {
		return err
	}
	s, err := jsonstore.Load(path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	cats, items := opt.categoryTab(), opt.menuItemTab()
	if err := controller.LoadAll(ctx, cats, items); err != nil {
		return err
	}

	st, err := importSnapshot(ctx, s, cats, items, opt.Logger)
	if err != nil {
		return err
	}
	ui.OK(fmt.Sprintf("imported %d categories (%d existing), %d menu items (%d existing)",
		st.categoriesCreated, st.categoriesSkipped, st.itemsCreated, st.itemsSkipped))
	return nil
}

func importSnapshot(ctx context.Context, s jsonstore.Snapshot, cats *controller.CategoryTab, items *controller.MenuItemTab, logger *zap.Logger) (importStats, error) {
	var st importStats
	// snapshot category id -> live category id
	ids := make(map[string]string, len(s.Categories))

	for _, c := range s.Categories {
		if live, ok := model.FindByName(cats.Items(), c.Name, ""); ok {
			ids[c.ID] = live.ID
			st.categoriesSkipped++
			continue
		}
		created, err := cats.Create(ctx, form.CategoryFormFrom(c))
		switch {
		case errors.Is(err, api.ErrAlreadyExists):
			// created elsewhere since our load
			logger.Warn("category appeared during import", zap.String("name", c.Name))
			if err := cats.Load(ctx); err != nil {
				return st, fmt.Errorf("import category %q: %w", c.Name, err)
			}
			live, ok := model.FindByName(cats.Items(), c.Name, "")
			if !ok {
				return st, fmt.Errorf("import category %q: reported as existing but not listed", c.Name)
			}
			ids[c.ID] = live.ID
			st.categoriesSkipped++
			continue
		case err != nil:
			return st, fmt.Errorf("import category %q: %w", c.Name, err)
		}
		ids[c.ID] = created.ID
		st.categoriesCreated++
	}

	for _, m := range s.MenuItems {
		catID := ids[m.CategoryID]
		if exists(items.Items(), m.Name, catID) {
			st.itemsSkipped++
			continue
		}
		f := form.MenuItemFormFrom(m)
		f.CategoryID = catID
		if _, err := items.Create(ctx, f); err != nil {
			return st, fmt.Errorf("import menu item %q: %w", m.Name, err)
		}
		st.itemsCreated++
	}
	return st, nil
}

func exists(items []model.MenuItem, name, categoryID string) bool {
	for _, it := range items {
		if it.CategoryID == categoryID && model.SameName(it.Name, name) {
			return true
		}
	}
	return false
}
