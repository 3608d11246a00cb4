package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/orgball2608/douyin-parser/internal/app"
	"github.com/orgball2608/douyin-parser/internal/domain"
	"github.com/orgball2608/douyin-parser/internal/resolver"
	"github.com/orgball2608/douyin-parser/internal/resolver/resolverimpl"
	"github.com/orgball2608/douyin-parser/pkg/config"
	"github.com/orgball2608/douyin-parser/pkg/formatter"
	"github.com/orgball2608/douyin-parser/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "douyin-parser",
		Short:         "Resolve share links into media metadata",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newResolveCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

			application := fx.New(
				fx.Logger(log),
				app.App,
			)

			if err := application.Start(context.Background()); err != nil {
				log.Error("Failed to start application", "error", err)
				return err
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan

			stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := application.Stop(stopCtx); err != nil {
				log.Error("Failed to stop application", "error", err)
				return err
			}
			return nil
		},
	}
}

func newResolveCmd() *cobra.Command {
	var (
		asJSON bool
		file   string
	)

	cmd := &cobra.Command{
		Use:   "resolve [share text or url]",
		Short: "Resolve a single share link and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				return resolveFile(cmd.OutOrStdout(), file, asJSON)
			}
			if len(args) == 0 {
				return fmt.Errorf("a share link or --file is required")
			}

			shareURL, err := resolver.ExtractShareURL(args[0])
			if err != nil {
				return err
			}

			var client resolver.Client
			application := fx.New(
				fx.NopLogger,
				app.Core,
				fx.Populate(&client),
			)
			if err := application.Err(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := application.Start(ctx); err != nil {
				return err
			}
			defer application.Stop(context.Background())

			record, err := client.Resolve(ctx, shareURL)
			if err != nil {
				return err
			}
			return printRecord(cmd.OutOrStdout(), record, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	cmd.Flags().StringVar(&file, "file", "", "parse a saved page instead of fetching")
	return cmd
}

// resolveFile parses a page saved to disk, useful when the markup drifts.
func resolveFile(w io.Writer, path string, asJSON bool) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	record, err := resolverimpl.Parse(string(body), cfg.Location())
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return printRecord(w, record, asJSON)
}

func printRecord(w io.Writer, record domain.MediaRecord, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(record)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ID:          %s\n", formatter.OrDash(record.ID))
	fmt.Fprintf(&b, "Kind:        %s\n", record.Kind)
	fmt.Fprintf(&b, "Author:      %s\n", formatter.OrDash(record.AuthorName))
	fmt.Fprintf(&b, "Bio:         %s\n", formatter.OrDash(record.AuthorBio))
	fmt.Fprintf(&b, "Description: %s\n", formatter.OrDash(record.Description))
	fmt.Fprintf(&b, "Created:     %s\n", formatter.OrDash(record.CreatedAt))
	fmt.Fprintf(&b, "Likes: %s  Comments: %s  Shares: %s  Collects: %s\n",
		formatter.FormatOptional(record.LikeCount),
		formatter.FormatOptional(record.CommentCount),
		formatter.FormatOptional(record.ShareCount),
		formatter.FormatOptional(record.CollectCount),
	)

	if record.IsVideo() {
		fmt.Fprintf(&b, "Video:       %s\n", record.VideoURL)
	} else {
		fmt.Fprintf(&b, "Images (%d):\n", len(record.ImageURLs))
		for i, u := range record.ImageURLs {
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, u)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
