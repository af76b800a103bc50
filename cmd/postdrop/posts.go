package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
)

func (a *app) cmdPosts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "posts per page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	result, err := a.api.ListPosts(ctx, *page, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCREATED")
	for _, post := range result.Posts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", post.ID, post.Title, post.CreatedAt)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "[cmdPosts] flush output")
	}
	fmt.Fprintf(a.out, "page %d of %d (%d posts)\n",
		result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.Total)
	return nil
}

func (a *app) cmdPost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	key := fs.String("key", "", "post key (defaults to the logged-in account's key)")
	title := fs.String("title", "", "post title")
	body := fs.String("body", "", "post body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("[cmdPost] --title is required")
	}

	// The capability URL works without a session, but a logged-in user
	// can omit the key and use their own.
	if *key == "" {
		if err := a.requireAuth(); err != nil {
			return err
		}
		resp, err := a.api.PostKey(ctx)
		if err != nil {
			return err
		}
		*key = resp.PostKey
	}

	created, err := a.api.CreateTestPost(ctx, *key, *title, *body)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created post %s\n", created.ID)
	return nil
}
