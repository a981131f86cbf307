// Command teklif operates on the quotation data set from the
// terminal: snapshot export/import, PDF rendering and quick listings,
// directly against the configured store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/odemir/go-teklif/internal/config"
	"github.com/odemir/go-teklif/internal/document"
	"github.com/odemir/go-teklif/internal/kvstore"
	"github.com/odemir/go-teklif/internal/pdf"
	"github.com/odemir/go-teklif/internal/repository"
)

func main() {
	app := &cli.App{
		Name:  "teklif",
		Usage: "manage the quotation data set from the command line",
		Commands: []*cli.Command{
			exportCommand(),
			importCommand(),
			pdfCommand(),
			productsCommand(),
			offersCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withRepo opens the configured store for the duration of one command.
func withRepo(fn func(ctx context.Context, repo *repository.Repository) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := kvstore.Open(cfg.StoreOptions())
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(c.Context, repository.New(store))
	}
}

func exportCommand() *cli.Command {
	var out string
	cmd := &cli.Command{
		Name:  "export",
		Usage: "write a snapshot of company, products and offers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)", Destination: &out},
		},
	}
	cmd.Action = withRepo(func(ctx context.Context, repo *repository.Repository) error {
		snap, err := repo.ExportSnapshot(ctx)
		if err != nil {
			return err
		}
		raw, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		if out == "" {
			_, err = os.Stdout.Write(append(raw, '\n'))
			return err
		}
		return os.WriteFile(out, raw, 0o644)
	})
	return cmd
}

func importCommand() *cli.Command {
	cmd := &cli.Command{
		Name:      "import",
		Usage:     "restore collections from a snapshot file",
		ArgsUsage: "<file>",
	}
	cmd.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("usage: teklif import <file>", 1)
		}
		raw, err := os.ReadFile(c.Args().First())
		if err != nil {
			return err
		}
		return withRepo(func(ctx context.Context, repo *repository.Repository) error {
			if err := repo.ImportSnapshot(ctx, raw); err != nil {
				return err
			}
			log.Info("snapshot imported")
			return nil
		})(c)
	}
	return cmd
}

func pdfCommand() *cli.Command {
	var out string
	cmd := &cli.Command{
		Name:      "pdf",
		Usage:     "render a saved offer to PDF",
		ArgsUsage: "<offer-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default the offer's download name)", Destination: &out},
		},
	}
	cmd.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("usage: teklif pdf <offer-id>", 1)
		}
		id := c.Args().First()
		return withRepo(func(ctx context.Context, repo *repository.Repository) error {
			offer, err := repo.Offer(ctx, id)
			if err != nil {
				return err
			}
			company, err := repo.Company(ctx)
			if err != nil {
				return err
			}
			data, err := pdf.Render(document.Assemble(company, offer))
			if err != nil {
				log.WithError(err).Warn("render failed, writing fallback document")
				data, err = pdf.Fallback("PDF oluşturmada hata oluştu. Lütfen tekrar deneyin.")
				if err != nil {
					return err
				}
			}
			name := out
			if name == "" {
				name = pdf.Filename(offer)
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				return err
			}
			log.WithField("file", name).Info("PDF written")
			return nil
		})(c)
	}
	return cmd
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "catalog operations",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list catalog products",
				Action: withRepo(func(ctx context.Context, repo *repository.Repository) error {
					products, err := repo.Products(ctx)
					if err != nil {
						return err
					}
					for _, p := range products {
						fmt.Printf("%s\t%s\t%s\t%s\n",
							p.ID, p.Name, document.FormatCurrency(p.Price), document.FormatPercent(p.Tax))
					}
					return nil
				}),
			},
		},
	}
}

func offersCommand() *cli.Command {
	return &cli.Command{
		Name:  "offers",
		Usage: "offer history operations",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list saved offers, most recent first",
				Action: withRepo(func(ctx context.Context, repo *repository.Repository) error {
					offers, err := repo.Offers(ctx)
					if err != nil {
						return err
					}
					for _, o := range offers {
						fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
							o.ID, o.OfferNo, document.FormatDate(o.Date),
							o.Customer.Name, document.FormatCurrency(o.Totals.Total))
					}
					return nil
				}),
			},
		},
	}
}
