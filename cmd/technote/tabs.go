package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/technote/config"
	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/ranking"
	"github.com/mohammad-safakhou/technote/internal/refresh"
	"github.com/mohammad-safakhou/technote/internal/render"
	"github.com/mohammad-safakhou/technote/internal/store"
)

// tabsCMD loads the article document once and prints one rendered tab page.
func tabsCMD() *cobra.Command {
	var cfgPath string
	var tab string
	var page int
	var lang string

	var cmd = &cobra.Command{
		Use:   "tabs",
		Short: "Print one page of a listing tab as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			t, err := ranking.ParseTab(tab)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Articles.FetchTimeout)
			defer cancel()

			local, closer, err := kv.Open(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer closer.Close()
			st := store.New(store.SourceFromConfig(cfg.Articles), store.Options{
				Fallback:     cfg.Articles.Fallback,
				IncludeLocal: cfg.Articles.IncludeLocal,
				Local:        local,
			})
			list, err := st.Load(ctx)
			if err != nil {
				return err
			}

			r := render.New(render.Options{Location: cfg.Site.Location(), BaseURL: cfg.Site.BaseURL})
			v := r.Tab(ranking.Project(list, t), page, cfg.Articles.PageSize, render.Parse(lang))
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
	cmd.Flags().StringVar(&tab, "tab", string(ranking.TabLatest), "latest, trending, popular or ai-generated")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&lang, "lang", "ja", "ja or en")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}

// scheduleCMD lists the upcoming automatic publication slots.
func scheduleCMD() *cobra.Command {
	var cfgPath string
	var n int

	var cmd = &cobra.Command{
		Use:   "schedule",
		Short: "Show the next automatic publication times",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			sched, err := refresh.ParsePublicationSchedule(cfg.Site.PublishCron, cfg.Site.Location())
			if err != nil {
				return err
			}
			for _, t := range sched.NextN(time.Now(), n) {
				cmd.Println(t.Format("2006-01-02 15:04 MST"))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 3, "number of slots to show")
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return cmd
}
