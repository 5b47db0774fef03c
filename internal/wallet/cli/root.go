package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/cardvault/internal/wallet/models"
)

func (a *App) getStatus(ctx context.Context) string {
	mode, err := a.manager.StorageMode(ctx)
	if err != nil {
		mode = models.StorageModeLocal
	}

	s := string(mode)
	if a.isOnline() {
		s += " online"
	} else {
		s += " offline"
	}
	if n, err := a.manager.PendingOperationCount(ctx); err == nil && n > 0 {
		s += fmt.Sprintf(" %d pending", n)
	}
	return "(" + s + ")"
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to CardVault CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cardvault %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: add, list, show <n>, delete <n>, favorite <n>, mode [local|cloud], sync, pending, exit")

		case "add":
			a.add(ctx)
		case "list", "l":
			a.list(ctx)
		case "show":
			a.show(ctx, args)
		case "delete":
			a.delete(ctx, args)
		case "favorite", "fav":
			a.favorite(ctx, args)
		case "mode":
			a.mode(ctx, args)
		case "sync":
			a.sync(ctx)
		case "pending":
			a.pending(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
