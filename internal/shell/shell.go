// Package shell is a line-oriented terminal front end for the storefront.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fsanano/storefront/internal/model"
)

type Storefront interface {
	View() model.View
	Items() []model.Item
	Login(ctx context.Context, username, password string) *model.Notice
	AddToCart(ctx context.Context, itemID int) *model.Notice
	ShowCart(ctx context.Context) *model.Notice
	ShowOrders(ctx context.Context) *model.Notice
	Checkout(ctx context.Context) *model.Notice
}

const helpText = `commands:
  login <username> <password>
  items
  add <itemID>
  cart
  orders
  checkout
  help
  quit
`

type Shell struct {
	shop Storefront
	in   io.Reader
	out  io.Writer
}

func New(shop Storefront, in io.Reader, out io.Writer) *Shell {
	return &Shell{shop: shop, in: in, out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if quit := s.Exec(ctx, scanner.Text()); quit {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *Shell) prompt() {
	fmt.Fprintf(s.out, "%s> ", s.shop.View())
}

// Exec runs a single command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(s.out, helpText)
		return false
	case "login":
		if len(args) != 2 {
			fmt.Fprintln(s.out, "usage: login <username> <password>")
			return false
		}
		s.notify(s.shop.Login(ctx, args[0], args[1]))
		if s.shop.View() == model.ViewShop {
			s.printItems()
		}
		return false
	}

	if s.shop.View() != model.ViewShop {
		fmt.Fprintln(s.out, "please login first")
		return false
	}

	switch cmd {
	case "items":
		s.printItems()
	case "add":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: add <itemID>")
			return false
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(s.out, "invalid item id %q\n", args[0])
			return false
		}
		s.notify(s.shop.AddToCart(ctx, id))
	case "cart":
		s.notify(s.shop.ShowCart(ctx))
	case "orders":
		s.notify(s.shop.ShowOrders(ctx))
	case "checkout":
		s.notify(s.shop.Checkout(ctx))
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (s *Shell) notify(n *model.Notice) {
	if n == nil {
		return
	}
	fmt.Fprintf(s.out, "[%s] %s\n", n.Level, strings.TrimRight(n.Message, "\n"))
}

func (s *Shell) printItems() {
	items := s.shop.Items()
	fmt.Fprintln(s.out, "Shop Items:")
	for _, item := range items {
		fmt.Fprintf(s.out, "  [%d] %s (%s)\n", item.ID, item.Name, item.Status)
	}
}
