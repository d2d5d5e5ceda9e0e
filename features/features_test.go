package features

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appidentity "github.com/erp/pos/internal/application/identity"
	"github.com/erp/pos/internal/application/checkout"
	"github.com/erp/pos/internal/domain/shared"
	"github.com/erp/pos/internal/infrastructure/credential"
	csvimport "github.com/erp/pos/internal/infrastructure/import"
	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

type tillTestContext struct {
	dir     string
	session *checkout.Session
	store   *credential.FileStore
	auth    *appidentity.AuthService
	err     error
}

func (c *tillTestContext) reset() error {
	if c.dir != "" {
		_ = os.RemoveAll(c.dir)
	}
	dir, err := os.MkdirTemp("", "pos-features-*")
	if err != nil {
		return err
	}
	c.dir = dir
	c.session = checkout.NewSession(nil, nil, zap.NewNop())
	c.store = credential.NewFileStore(filepath.Join(dir, "users.txt"), zap.NewNop())
	c.auth = appidentity.NewAuthService(c.store, zap.NewNop())
	c.err = nil
	return nil
}

// Catalog and cart steps

func (c *tillTestContext) theCatalog(table *godog.Table) error {
	var sb strings.Builder
	for _, row := range table.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Value
		}
		sb.WriteString(strings.Join(cells, ",") + "\n")
	}

	path := filepath.Join(c.dir, "config.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return err
	}

	loaded := csvimport.LoadCatalog(context.Background(), &csvimport.CatalogLoader{Path: path}, zap.NewNop())
	c.session = checkout.NewSession(loaded, nil, zap.NewNop())
	return nil
}

func (c *tillTestContext) iAdd(quantity, product string) error {
	qty, err := checkout.ParseQuantity(quantity)
	if err != nil {
		c.err = err
		return nil
	}
	_, c.err = c.session.AddToCart(context.Background(), checkout.AddToCartInput{ProductName: product, Quantity: qty})
	return nil
}

func (c *tillTestContext) iSelectTheDiscount(tier string) error {
	c.err = c.session.SelectDiscount(context.Background(), tier)
	return nil
}

func (c *tillTestContext) iRemoveLine(line int) error {
	c.err = c.session.RemoveFromCart(context.Background(), line-1)
	return nil
}

func (c *tillTestContext) theTotalIs(want string) error {
	if got := c.session.Quote(context.Background()).Total; got != want {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *tillTestContext) theDiscountIs(want string) error {
	if got := c.session.Quote(context.Background()).Discount; got != want {
		return fmt.Errorf("expected discount %s, got %s", want, got)
	}
	return nil
}

func (c *tillTestContext) theCartShows(table *godog.Table) error {
	got := c.session.CartLines()
	if len(got) != len(table.Rows) {
		return fmt.Errorf("expected %d cart lines, got %d: %q", len(table.Rows), len(got), got)
	}
	for i, row := range table.Rows {
		if got[i] != row.Cells[0].Value {
			return fmt.Errorf("cart line %d: expected %q, got %q", i+1, row.Cells[0].Value, got[i])
		}
	}
	return nil
}

func (c *tillTestContext) theCartHasLines(n int) error {
	if got := c.session.CartLen(); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *tillTestContext) theCatalogIsEmpty() error {
	if names := c.session.ProductNames(); len(names) != 0 {
		return fmt.Errorf("expected an empty catalog, got %q", names)
	}
	return nil
}

// Credential steps

func (c *tillTestContext) anEmptyCredentialStore() error {
	_, err := os.Stat(c.store.Path())
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("expected no credential file, stat returned %v", err)
	}
	return nil
}

func (c *tillTestContext) theCredentialStoreContains(doc *godog.DocString) error {
	return os.WriteFile(c.store.Path(), []byte(doc.Content+"\n"), 0o600)
}

func (c *tillTestContext) isRegisteredWithPassword(username, password string) error {
	return c.auth.Register(context.Background(), appidentity.RegisterInput{Username: username, Password: password})
}

func (c *tillTestContext) iRegisterWithPassword(username, password string) error {
	c.err = c.auth.Register(context.Background(), appidentity.RegisterInput{Username: username, Password: password})
	return nil
}

func (c *tillTestContext) iLogInAsWithPassword(username, password string) error {
	_, c.err = c.auth.Login(context.Background(), appidentity.LoginInput{Username: username, Password: password})
	return nil
}

func (c *tillTestContext) theCredentialStoreHoldsRecords(n int) error {
	creds, err := c.store.FindAll(context.Background())
	if err != nil {
		return err
	}
	if len(creds) != n {
		return fmt.Errorf("expected %d records, got %d", n, len(creds))
	}
	return nil
}

// Outcome steps

func (c *tillTestContext) theLastActionSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	return nil
}

func (c *tillTestContext) theLastActionFailsWith(code string) error {
	if c.err == nil {
		return fmt.Errorf("expected error %s but the action succeeded", code)
	}
	if got := shared.CodeOf(c.err); got != code {
		return fmt.Errorf("expected error %s, got %s (%v)", code, got, c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &tillTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.dir != "" {
			_ = os.RemoveAll(tc.dir)
			tc.dir = ""
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog:$`, tc.theCatalog)
	ctx.Step(`^an empty credential store$`, tc.anEmptyCredentialStore)
	ctx.Step(`^the credential store contains:$`, tc.theCredentialStoreContains)
	ctx.Step(`^"([^"]*)" is registered with password "([^"]*)"$`, tc.isRegisteredWithPassword)

	// When steps
	ctx.Step(`^I add (\S+) "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I select the "([^"]*)" discount$`, tc.iSelectTheDiscount)
	ctx.Step(`^I remove line (\d+)$`, tc.iRemoveLine)
	ctx.Step(`^I register "([^"]*)" with password "([^"]*)"$`, tc.iRegisterWithPassword)
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, tc.iLogInAsWithPassword)

	// Then steps
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the discount is "([^"]*)"$`, tc.theDiscountIs)
	ctx.Step(`^the cart shows:$`, tc.theCartShows)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the catalog is empty$`, tc.theCatalogIsEmpty)
	ctx.Step(`^the credential store holds (\d+) records?$`, tc.theCredentialStoreHoldsRecords)
	ctx.Step(`^the last action succeeds$`, tc.theLastActionSucceeds)
	ctx.Step(`^the last action fails with "([^"]*)"$`, tc.theLastActionFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"."},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
