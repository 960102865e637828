package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/creator-studio/internal/db"
	"github.com/jonathan/creator-studio/internal/query"
	"github.com/jonathan/creator-studio/internal/types"
)

var (
	searchKind    string
	searchCreator string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Interactively search a creator's examples",
	Long: `Interactively search a creator's style or response examples.
Typed lines become search terms (debounced per 'search_debounce_ms').
Commands: /category <name|all>, /page <n>, /refresh, /quit.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKind, "kind", "style", "Corpus kind: style or response")
	searchCmd.Flags().StringVar(&searchCreator, "creator", "", "Creator UUID (falls back to 'creator_id' config entry)")
	rootCmd.AddCommand(searchCmd)
}

// liveView is the subset of query.LiveList the command loop drives; it lets
// one loop serve both corpus kinds.
type liveView interface {
	SetSearch(string)
	SetCategory(string)
	SetPage(int)
	Refresh()
	Stop()
}

func runSearch(_ *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig()
	if err != nil {
		return err
	}
	databaseURL, err := requireDatabaseURL(cfg)
	if err != nil {
		return err
	}
	creatorID, err := resolveCreatorID(searchCreator, cfg.CreatorID)
	if err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	creator, err := database.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}
	if creator == nil {
		return fmt.Errorf("creator not found: %s", creatorID)
	}

	var view liveView
	switch searchKind {
	case "style":
		view = query.NewLiveList(ctx, cfg.SearchSettleDelay(), cfg.PageSize,
			func(ctx context.Context, state query.ListState) (query.Page[types.StyleExample], error) {
				examples, total, err := database.ListStyleExamples(ctx, creatorID, db.ExampleFilters{
					Search:   state.Search,
					Category: state.Category,
					Skip:     state.Skip,
					Limit:    state.Limit,
				})
				if err != nil {
					return query.Page[types.StyleExample]{}, err
				}
				return query.NewPage(examples, total, state.Skip, state.Limit), nil
			},
			func(state query.ListState, page query.Page[types.StyleExample], err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
					return
				}
				printPageHeader(state, page.Total)
				for _, e := range page.Items {
					fmt.Printf("  %s  %q -> %q\n", e.ID, e.FanMessage, e.CreatorResponse)
				}
			})
	case "response":
		view = query.NewLiveList(ctx, cfg.SearchSettleDelay(), cfg.PageSize,
			func(ctx context.Context, state query.ListState) (query.Page[types.ResponseExample], error) {
				examples, err := database.ListResponseExamples(ctx, creatorID)
				if err != nil {
					return query.Page[types.ResponseExample]{}, err
				}
				filtered := types.FilterResponseExamples(examples, state.Search, state.Category)
				return query.Paginate(filtered, state.Skip, state.Limit), nil
			},
			func(state query.ListState, page query.Page[types.ResponseExample], err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
					return
				}
				printPageHeader(state, page.Total)
				for _, e := range page.Items {
					fmt.Printf("  %s  %q (%d candidates)\n", e.ID, e.FanMessage, len(e.Responses))
				}
			})
	default:
		return fmt.Errorf("unknown kind %q: expected style or response", searchKind)
	}
	defer view.Stop()

	view.Refresh()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit":
			return nil
		case line == "/refresh":
			view.Refresh()
		case strings.HasPrefix(line, "/category "):
			category := strings.TrimSpace(strings.TrimPrefix(line, "/category "))
			if category != types.CategoryAll && !types.ValidCategory(category) {
				fmt.Fprintf(os.Stderr, "invalid category %q\n", category)
				continue
			}
			view.SetCategory(category)
		case strings.HasPrefix(line, "/page "):
			page, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/page ")))
			if err != nil {
				fmt.Fprintln(os.Stderr, "usage: /page <n>")
				continue
			}
			view.SetPage(page)
		default:
			view.SetSearch(line)
		}
	}
	return scanner.Err()
}

func printPageHeader(state query.ListState, total int) {
	page := 1
	if state.Limit > 0 {
		page = state.Skip/state.Limit + 1
	}
	fmt.Printf("-- %d match(es), page %d (search=%q category=%s)\n",
		total, page, state.Search, state.Category)
}
