package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/api"
	"github.com/Makepad-fr/menuadmin/internal/controller"
	"github.com/Makepad-fr/menuadmin/internal/tui"
	"github.com/Makepad-fr/menuadmin/internal/ui"
	"go.uber.org/zap"
)

// Options carry what the root command built from flags and config.
type Options struct {
	Client           *api.Client
	Logger           *zap.Logger
	ResyncCategories bool
}

func (o Options) categoryTab() *controller.CategoryTab {
	return controller.NewCategoryTab(o.Client, o.Logger, controller.WithResync(o.ResyncCategories))
}

func (o Options) menuItemTab() *controller.MenuItemTab {
	return controller.NewMenuItemTab(o.Client, o.Logger)
}

// errUsage marks a bad invocation; Run maps it to exit code 2.
var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	var err error
	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0
	case "ui":
		err = tui.Run(ctx, opt.categoryTab(), opt.menuItemTab())
	case "categories", "category", "cat":
		err = runCategories(ctx, a, opt)
	case "items", "item":
		err = runItems(ctx, a, opt)
	case "upload":
		err = doUpload(ctx, a, opt)
	case "export":
		err = doExport(ctx, a, opt)
	case "import":
		err = doImport(ctx, a, opt)
	case "auth":
		err = runAuth(a)
	default:
		ui.Fail("unknown subcommand: " + cmd)
		fmt.Fprintln(os.Stderr)
		PrintHelp()
		return 2
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		ui.Fail(strings.TrimPrefix(err.Error(), "usage: "))
		return 2
	}
	ui.Fail(err.Error())
	return 1
}

func PrintHelp() {
	fmt.Printf(`menuadmin - restaurant menu admin

Usage:
  menuadmin [-env FILE] [-api URL] [-debug] <subcommand> [args]

Subcommands:
  ui                                        Interactive admin (Categories / Menu Items tabs)
  categories ls [-q S] [-limit N] [-page N] [-strict]
  categories add -name S [-description S] [-image PATH|URL]
  categories edit <id> [-name S] [-description S] [-image PATH|URL]
  categories rm <id>
  items ls
  items add -name S -price N [-description S] [-category ID] [-image PATH|URL]
  items edit <id> [same flags as add]
  items rm <id>
  upload <file>                             Upload an image and print its URL
  export [file]                             Write both lists to a JSON snapshot (default menu.json)
  import <file>                             Create categories and menu items from a snapshot
  auth login [token] | logout | status

Examples:
  menuadmin categories add -name Desserts -image ./desserts.png
  menuadmin items add -name Tiramisu -price 6.5 -category 64f1c2
  menuadmin categories edit 64f1c2 -description "Sweet things"
`)
}

// newFlagSet returns a flag set whose errors come back to the caller
// instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseWithID parses args that carry one positional id, before or after
// the flags.
func parseWithID(fs *flag.FlagSet, args []string) (string, error) {
	var id string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		id, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", usage("%s: %v", fs.Name(), err)
	}
	rest := fs.Args()
	if id == "" && len(rest) > 0 {
		id, rest = rest[0], rest[1:]
	}
	if id == "" || len(rest) > 0 {
		return "", usage("%s <id> [flags]", fs.Name())
	}
	return id, nil
}

// visited reports which flags were set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func doUpload(ctx context.Context, args []string, opt Options) error {
	if len(args) != 1 {
		return usage("upload <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer f.Close()
	u, err := opt.Client.UploadImage(ctx, args[0], f)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}
