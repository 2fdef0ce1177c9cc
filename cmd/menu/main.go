// Command menu loads the menu through a running proxy, prints it grouped by
// category, and can submit a cart as an order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/cart"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/menu"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/pkg/logger"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/pkg/menuclient"
	"github.com/joho/godotenv"
)

type options struct {
	apiURL          string
	apiKey          string
	storeID         string
	category        string
	search          string
	add             string
	paymentType     string
	note            string
	categoryTimeout time.Duration
	logLevel        string
}

// cartItem is one -add entry
type cartItem struct {
	variantID string
	quantity  int
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "menu: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	items, err := parseCartItems(opts.add)
	if err != nil {
		return err
	}
	if len(items) > 0 && opts.paymentType == "" {
		return errors.New("-payment-type is required when submitting an order")
	}

	log := logger.NewWithWriter(os.Stderr, opts.logLevel)

	client, err := menuclient.New(opts.apiURL, menuclient.WithAPIKey(opts.apiKey))
	if err != nil {
		return err
	}

	agg := menu.NewAggregator(client, opts.categoryTimeout, log)

	var m *menu.Menu
	if opts.category != "" {
		m, err = agg.BuildCategory(ctx, opts.category)
	} else {
		m, err = agg.Build(ctx)
	}
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}

	printMenu(out, m.Filter(opts.search), opts.storeID)

	if len(items) == 0 {
		return nil
	}

	c := cart.New(opts.storeID)
	if err := fillCart(c, m, items); err != nil {
		return err
	}

	receipt, err := c.Submit(ctx, client, opts.paymentType, opts.note)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nOrder placed: receipt %s (%s) total %s\n", receipt.ReceiptNumber, receipt.ID, receipt.TotalMoney.StringFixed(2))
	return nil
}

func parseFlags(args []string) (options, error) {
	set := flag.NewFlagSet("menu", flag.ContinueOnError)

	var opts options
	set.StringVar(&opts.apiURL, "api", envOr("PROXY_URL", "http://localhost:8080"), "Base URL of the ordering proxy")
	set.StringVar(&opts.apiKey, "api-key", os.Getenv("PROXY_API_KEY"), "API key sent on order calls")
	set.StringVar(&opts.storeID, "store", os.Getenv("LOYVERSE_STORE_ID"), "Store the order is placed in; empty uses the proxy default")
	set.StringVar(&opts.category, "category", "", "Only load this category ID")
	set.StringVar(&opts.search, "search", "", "Only show products whose name contains this text")
	set.StringVar(&opts.add, "add", "", "Comma-separated variantID[:qty] entries to order")
	set.StringVar(&opts.paymentType, "payment-type", "", "Payment type ID for the order")
	set.StringVar(&opts.note, "note", "", "Order note")
	set.DurationVar(&opts.categoryTimeout, "category-timeout", 10*time.Second, "Time budget for loading each category")
	set.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	if err := set.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseCartItems reads "v1:2,v2" into items; a missing quantity means 1
func parseCartItems(raw string) ([]cartItem, error) {
	var items []cartItem
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, qtyStr, hasQty := strings.Cut(entry, ":")
		item := cartItem{variantID: strings.TrimSpace(id), quantity: 1}
		if hasQty {
			qty, err := strconv.Atoi(strings.TrimSpace(qtyStr))
			if err != nil || qty <= 0 {
				return nil, fmt.Errorf("invalid quantity in %q", entry)
			}
			item.quantity = qty
		}
		if item.variantID == "" {
			return nil, fmt.Errorf("missing variant ID in %q", entry)
		}
		items = append(items, item)
	}
	return items, nil
}

// fillCart resolves each variant against the loaded menu
func fillCart(c *cart.Cart, m *menu.Menu, items []cartItem) error {
	type entry struct {
		product models.Product
		variant models.Variant
	}
	index := make(map[string]entry)
	for _, products := range m.Products {
		for _, p := range products {
			for _, v := range p.Variants {
				index[v.ID] = entry{product: p, variant: v}
			}
		}
	}

	for _, item := range items {
		e, ok := index[item.variantID]
		if !ok {
			return fmt.Errorf("variant %s is not on the menu", item.variantID)
		}
		if err := c.Add(e.product, e.variant, item.quantity); err != nil {
			return err
		}
	}
	return nil
}

// printMenu shows prices as the cart will charge them in storeID
func printMenu(w io.Writer, m *menu.Menu, storeID string) {
	for _, section := range m.Sections() {
		if len(section.Products) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\n", section.Category.Name)
		for _, p := range section.Products {
			fmt.Fprintf(w, "  %s\n", p.Name)
			for _, v := range p.Variants {
				label := v.Label()
				if label == "" {
					label = "-"
				}
				fmt.Fprintf(w, "    %-24s %8s  [%s]\n", label, v.PriceAt(storeID).StringFixed(2), v.ID)
			}
		}
	}

	if failed := m.FailedCategories(); len(failed) > 0 {
		fmt.Fprintf(w, "\nUnavailable categories: %s\n", strings.Join(failed, ", "))
	}
}
