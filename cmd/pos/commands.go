package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	identityapp "github.com/erp/pos/internal/application/identity"
	"github.com/erp/pos/internal/application/checkout"
	"github.com/erp/pos/internal/interfaces/terminal"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "pos",
		Usage:  "point-of-sale till",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file (default: config.toml in . or ./config)",
				Sources: cli.EnvVars("POS_CONFIG"),
			},
		},
		Action: runTerminal,
		Commands: []*cli.Command{
			{
				Name:   "terminal",
				Usage:  "run the interactive till",
				Action: runTerminal,
			},
			{
				Name:   "catalog",
				Usage:  "print the products and discount tiers",
				Action: runCatalog,
			},
			{
				Name:   "register",
				Usage:  "register the till account",
				Flags:  credentialFlags(),
				Action: runRegister,
			},
			{
				Name:   "login",
				Usage:  "check a username and password",
				Flags:  credentialFlags(),
				Action: runLogin,
			},
			{
				Name:  "quote",
				Usage: "log in, build a cart and print its total",
				Flags: append(credentialFlags(),
					&cli.StringSliceFlag{
						Name:  "item",
						Usage: "cart line as NAME=QTY; repeat for more lines",
					},
					&cli.StringFlag{
						Name:  "discount",
						Usage: "discount tier name",
					},
					&cli.StringSliceFlag{
						Name:  "remove",
						Usage: "1-based cart line to remove after adding; repeatable",
					},
				),
				Action: runQuote,
			},
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
		&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
	}
}

func runTerminal(ctx context.Context, cmd *cli.Command) error {
	t, err := setup(ctx, cmd.String("config"), true)
	if err != nil {
		return err
	}
	defer t.close()

	app := terminal.New(t.auth, t.newSession, terminal.Options{
		Title:          "Point of Sale",
		SplashDuration: t.cfg.Terminal.SplashDuration,
	}, t.log)
	return app.Run(ctx)
}

func runCatalog(ctx context.Context, cmd *cli.Command) error {
	t, err := setup(ctx, cmd.String("config"), false)
	if err != nil {
		return err
	}
	defer t.close()

	w := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tPRICE\tDISCOUNTABLE")
	for _, p := range t.catalog.Products() {
		fmt.Fprintf(w, "%s\t%s\t%t\n", p.Name, p.UnitPrice.Display(), p.Discountable)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DISCOUNT\tRATE")
	for _, tier := range t.tiers.Tiers() {
		fmt.Fprintf(w, "%s\t%s%%\n", tier.Name, tier.Rate.Shift(2).String())
	}
	return w.Flush()
}

func runRegister(ctx context.Context, cmd *cli.Command) error {
	t, err := setup(ctx, cmd.String("config"), false)
	if err != nil {
		return err
	}
	defer t.close()

	input := identityapp.RegisterInput{Username: cmd.String("username"), Password: cmd.String("password")}
	if err := t.auth.Register(ctx, input); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Registered %s\n", input.Username)
	return nil
}

func runLogin(ctx context.Context, cmd *cli.Command) error {
	t, err := setup(ctx, cmd.String("config"), false)
	if err != nil {
		return err
	}
	defer t.close()

	result, err := t.auth.Login(ctx, identityapp.LoginInput{Username: cmd.String("username"), Password: cmd.String("password")})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "Logged in as %s\n", result.Username)
	return nil
}

func runQuote(ctx context.Context, cmd *cli.Command) error {
	t, err := setup(ctx, cmd.String("config"), false)
	if err != nil {
		return err
	}
	defer t.close()

	result, err := t.auth.Login(ctx, identityapp.LoginInput{Username: cmd.String("username"), Password: cmd.String("password")})
	if err != nil {
		return err
	}

	session := t.newSession(t.log.With(zap.String("username", result.Username)))
	for _, item := range cmd.StringSlice("item") {
		input, err := parseItem(item)
		if err != nil {
			return err
		}
		if _, err := session.AddToCart(ctx, input); err != nil {
			return fmt.Errorf("--item %s: %w", item, err)
		}
	}

	if name := cmd.String("discount"); name != "" {
		if err := session.SelectDiscount(ctx, name); err != nil {
			return err
		}
	}

	for _, raw := range cmd.StringSlice("remove") {
		line, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid --remove %q: want a line number", raw)
		}
		if err := session.RemoveFromCart(ctx, line-1); err != nil {
			return fmt.Errorf("--remove %d: %w", line, err)
		}
	}

	printQuote(cmd.Root().Writer, session.Quote(ctx))
	return nil
}

// parseItem splits NAME=QTY at the last '='
func parseItem(item string) (checkout.AddToCartInput, error) {
	i := strings.LastIndex(item, "=")
	if i < 0 {
		return checkout.AddToCartInput{}, fmt.Errorf("invalid --item %q: want NAME=QTY", item)
	}
	quantity, err := checkout.ParseQuantity(item[i+1:])
	if err != nil {
		return checkout.AddToCartInput{}, fmt.Errorf("--item %s: %w", item, err)
	}
	return checkout.AddToCartInput{ProductName: strings.TrimSpace(item[:i]), Quantity: quantity}, nil
}

func printQuote(w io.Writer, q checkout.QuoteView) {
	for i, line := range q.Lines {
		fmt.Fprintf(w, "%d. %s\n", i+1, line.Text)
	}
	fmt.Fprintf(w, "Discount tier: %s\n", q.Tier)
	fmt.Fprintf(w, "Subtotal: %s\n", q.Subtotal)
	fmt.Fprintf(w, "Discount: %s\n", q.Discount)
	fmt.Fprintf(w, "Total: %s %s\n", q.Total, q.Currency)
}
