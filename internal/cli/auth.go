package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Makepad-fr/menuadmin/internal/auth"
	"github.com/Makepad-fr/menuadmin/internal/ui"
)

func runAuth(args []string) error {
	if len(args) == 0 {
		return usage("auth login [token] | logout | status")
	}
	switch args[0] {
	case "login":
		token := strings.Join(args[1:], " ")
		if token == "" {
			fmt.Print("Paste API token: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token: %w", err)
			}
			token = line
		}
		if err := auth.Save(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		ui.OK("logged in")
		return nil

	case "logout":
		if err := auth.Clear(); err != nil {
			return fmt.Errorf("remove token: %w", err)
		}
		ui.OK("logged out")
		return nil

	case "status":
		creds, err := auth.Lookup()
		if err != nil {
			return err
		}
		if creds == nil {
			fmt.Println(ui.Current().Muted.Render("not logged in"))
			return nil
		}
		ui.OK(fmt.Sprintf("logged in (%s) token %s", creds.Source, mask(creds.Token)))
		return nil
	}
	return usage("unknown auth subcommand: %s", args[0])
}

func mask(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
