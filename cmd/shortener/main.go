package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sundayezeilo/shortlink/internal/app"
	"github.com/sundayezeilo/shortlink/internal/logx"
	"github.com/sundayezeilo/shortlink/internal/shortener"
	"github.com/sundayezeilo/shortlink/sluggen"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run walks one link through its lifecycle against a fresh registry and
// prints each step.
func run() error {
	ctx := context.Background()

	application, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer application.Shutdown(ctx)

	svc := application.Service
	ctx, _ = logx.WithOperationID(ctx)

	link, err := svc.CreateShortLink(ctx, shortener.CreateLinkRequest{URL: "https://docs.rs"})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	fmt.Printf("created %s -> %s\n", link.Slug, link.URL)

	if link, err = svc.Redirect(ctx, link.Slug); err != nil {
		return fmt.Errorf("redirect: %w", err)
	}
	fmt.Printf("redirect %s -> %s\n", link.Slug, link.URL)

	_, err = svc.CreateShortLink(ctx, shortener.CreateLinkRequest{URL: "https://docs.rs", Slug: link.Slug})
	if !errors.Is(err, shortener.ErrSlugAlreadyInUse) {
		return fmt.Errorf("duplicate create: want %v, got %v", shortener.ErrSlugAlreadyInUse, err)
	}
	fmt.Printf("duplicate create rejected: %v\n", err)

	if link, err = svc.ChangeURL(ctx, link.Slug, "https://docs.rs/tokio/latest/tokio/"); err != nil {
		return fmt.Errorf("change url: %w", err)
	}
	fmt.Printf("changed %s -> %s\n", link.Slug, link.URL)

	if link, err = svc.Redirect(ctx, link.Slug); err != nil {
		return fmt.Errorf("redirect: %w", err)
	}
	fmt.Printf("redirect %s -> %s\n", link.Slug, link.URL)

	stats, err := svc.Stats(ctx, link.Slug)
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	fmt.Printf("stats %s: url=%s redirects=%d created=%s\n",
		stats.Link.Slug, stats.Link.URL, stats.Redirects, stats.CreatedAt.Format(time.RFC3339))

	gen, err := sluggen.NewWithAlphabet(application.Config.Shortener.Alphabet())
	if err != nil {
		return err
	}
	var unused string
	for unused == "" || application.Store.Contains(ctx, unused) {
		if unused, err = gen.Generate(application.Config.Shortener.SlugLength); err != nil {
			return err
		}
	}
	if _, err := svc.Stats(ctx, unused); !errors.Is(err, shortener.ErrSlugNotFound) {
		return fmt.Errorf("stats for %s: want %v, got %v", unused, shortener.ErrSlugNotFound, err)
	}
	fmt.Printf("stats %s: not found\n", unused)

	return nil
}
